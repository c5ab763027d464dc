package models

import (
	"time"
)

// DefaultApprovalReason is stored when a verdict carries no reason.
const DefaultApprovalReason = "Approved, no reason"

// Thumbnail is one compliance decision for one unique image content.
type Thumbnail struct {
	ID                   string    `json:"id" db:"id"`
	UserName             string    `json:"userName" db:"user_name"`
	UserEmail            string    `json:"userEmail" db:"user_email"`
	FileID               string    `json:"fileId" db:"file_id"`
	Title                string    `json:"title" db:"title"`
	ImageURL             string    `json:"imageUrl" db:"image_url"`
	ApprovalStatus       string    `json:"approvalStatus" db:"approval_status"`
	ApprovalStatusReason string    `json:"approvalStatusReason" db:"approval_status_reason"`
	Warning              string    `json:"warning" db:"warning"`
	ContentHash          string    `json:"contentHash" db:"content_hash"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`
}

// ThumbnailUpdate is a partial update. Empty fields keep the stored value.
type ThumbnailUpdate struct {
	UserName             string `json:"userName"`
	UserEmail            string `json:"userEmail"`
	FileID               string `json:"fileId"`
	Title                string `json:"title"`
	ImageURL             string `json:"imageUrl"`
	ApprovalStatus       string `json:"approvalStatus"`
	ApprovalStatusReason string `json:"approvalStatusReason"`
	Warning              string `json:"warning"`
}

var imageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// IsImageType reports whether contentType is an accepted thumbnail format.
func IsImageType(contentType string) bool {
	return imageTypes[contentType]
}

// ReviewRequest is a thumbnail submitted for compliance review.
type ReviewRequest struct {
	File          []byte
	Filename      string
	ContentType   string
	UserName      string `validate:"required"`
	UserEmail     string `validate:"required,email"`
	Transcription string `validate:"required"`
	ImageURL      string `validate:"required"`
}

// ReviewResponse keeps the key names clients of the review endpoint expect.
type ReviewResponse struct {
	Thumbnail  *Thumbnail      `json:"thumbnaildata"`
	Transcript []ThreadMessage `json:"data"`
	Inserted   bool            `json:"inserted"`
}

// CreateThumbnailRequest inserts a record directly, without a review.
type CreateThumbnailRequest struct {
	UserName             string `json:"userName" validate:"required"`
	UserEmail            string `json:"userEmail" validate:"required,email"`
	FileID               string `json:"fileId" validate:"required"`
	Title                string `json:"title" validate:"required"`
	ImageURL             string `json:"imageUrl" validate:"required"`
	ApprovalStatus       string `json:"approvalStatus" validate:"required"`
	ApprovalStatusReason string `json:"approvalStatusReason"`
	Warning              string `json:"warning"`
	ContentHash          string `json:"contentHash" validate:"required,len=64,hexadecimal,lowercase"`
}

// SaveImageResponse is returned after an image is stored in the bucket.
type SaveImageResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
