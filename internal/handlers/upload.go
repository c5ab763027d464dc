package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
)

// formOverhead leaves room for the text fields next to the file part.
const formOverhead = 1 << 20

var errNoFile = errors.New("no file provided")

type uploadedFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// parseUpload reads a multipart form limited to maxSize bytes of file data
// and returns the "file" part. errNoFile is returned when the form has no file
// or the body is not multipart; any url-encoded fields stay readable.
func parseUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (*uploadedFile, error) {
	limit := maxSize + formOverhead
	if r.ContentLength > limit {
		return nil, fileTooLarge(maxSize)
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fileTooLarge(maxSize)
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, errNoFile
		}
		return nil, utils.NewBadRequestError("Invalid form data")
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, errNoFile
	}
	if err != nil {
		return nil, utils.NewBadRequestError("Invalid file upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, utils.NewInternalError("Failed to read file")
	}
	if int64(len(data)) > maxSize {
		return nil, fileTooLarge(maxSize)
	}

	return &uploadedFile{
		Data:        data,
		Filename:    filepath.Base(header.Filename),
		ContentType: imageContentType(header, data),
	}, nil
}

func fileTooLarge(maxSize int64) error {
	return utils.NewBadRequestError("File size exceeds " + humanSize(maxSize) + " limit")
}

func humanSize(n int64) string {
	const mb = 1 << 20
	if n%mb == 0 {
		return strconv.FormatInt(n/mb, 10) + "MB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}

// imageContentType prefers the sniffed type over the client's header.
func imageContentType(header *multipart.FileHeader, data []byte) string {
	sniffed := http.DetectContentType(data)
	if models.IsImageType(sniffed) {
		return sniffed
	}

	reported := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if models.IsImageType(reported) {
		return reported
	}

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}

	return sniffed
}
