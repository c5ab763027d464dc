package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/thumbnails",
		BaseURL(Options{Endpoint: "localhost:9000", BucketName: "thumbnails"}))
	assert.Equal(t, "https://s3.example.com/thumbs",
		BaseURL(Options{Endpoint: "s3.example.com", BucketName: "thumbs", UseSSL: true}))
	assert.Equal(t, "https://cdn.example.com",
		BaseURL(Options{Endpoint: "s3.example.com", BucketName: "thumbs", PublicBaseURL: "https://cdn.example.com/"}))
}

func TestPublicURL_EscapesKey(t *testing.T) {
	s := &s3Storage{baseURL: "https://cdn.example.com"}

	assert.Equal(t, "https://cdn.example.com/thumbnail.png", s.PublicURL("thumbnail.png"))
	assert.Equal(t, "https://cdn.example.com/my%20thumb.png", s.PublicURL("my thumb.png"))
	assert.Equal(t, "https://cdn.example.com/thumbnails/ab/x.png", s.PublicURL("/thumbnails/ab/../ab/x.png"))
}

func TestPublicReadPolicy(t *testing.T) {
	var policy struct {
		Statement []struct {
			Effect   string
			Action   []string
			Resource []string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(PublicReadPolicy("thumbs")), &policy))
	require.Len(t, policy.Statement, 1)
	assert.Equal(t, "Allow", policy.Statement[0].Effect)
	assert.Equal(t, []string{"s3:GetObject"}, policy.Statement[0].Action)
	assert.Equal(t, []string{"arn:aws:s3:::thumbs/*"}, policy.Statement[0].Resource)
}
