package models

import "time"

// ThreadMessage is one message of a reviewer conversation.
type ThreadMessage struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"`
	CreatedAt int64            `json:"created_at"`
	Content   []MessageContent `json:"content"`
}

type MessageContent struct {
	Type      string     `json:"type"`
	Text      *TextValue `json:"text,omitempty"`
	ImageFile *ImageFile `json:"image_file,omitempty"`
}

type TextValue struct {
	Value string `json:"value"`
}

type ImageFile struct {
	FileID string `json:"file_id"`
}

// Assistant is a reviewer configuration on the external platform.
type Assistant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Model        string `json:"model"`
	Instructions string `json:"instructions"`
	CreatedAt    int64  `json:"created_at"`
}

// RemoteFile is a file stored on the reviewer platform.
type RemoteFile struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
}

// DeletionStatus is the platform's reply to a delete call.
type DeletionStatus struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ReviewOutcome is what the reviewer returns for one submitted image.
type ReviewOutcome struct {
	FileID     string
	ThreadID   string
	RunID      string
	Verdict    string
	Transcript []ThreadMessage
	Elapsed    time.Duration
}
