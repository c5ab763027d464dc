package services

import (
	"errors"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldNames maps struct fields to the names clients submit.
var fieldNames = map[string]string{
	"UserName":       "userName",
	"UserEmail":      "userEmail",
	"Transcription":  "transcription",
	"ImageURL":       "imageUrl",
	"FileID":         "fileId",
	"Title":          "title",
	"ApprovalStatus": "approvalStatus",
	"ContentHash":    "contentHash",
}

var fieldMessages = map[string]string{
	"UserName":       "User name is required",
	"UserEmail":      "Valid email is required",
	"Transcription":  "Transcription is required",
	"ImageURL":       "Image URL is required",
	"FileID":         "File ID is required",
	"Title":          "Title is required",
	"ApprovalStatus": "Approval status is required",
	"ContentHash":    "Content hash must be a lower-case SHA-256 hex digest",
}

// validateStruct returns nil or a validation AppError listing every rejected field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return utils.NewBadRequestError("Invalid request")
	}

	return utils.NewValidationError(toFieldErrors(verrs))
}

func toFieldErrors(verrs validator.ValidationErrors) []utils.FieldError {
	out := make([]utils.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		name, ok := fieldNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out = append(out, utils.FieldError{Field: name, Msg: msg})
	}
	return out
}
