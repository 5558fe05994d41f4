package blobs

import (
	"context"
	"errors"
)

// maxBlobSize caps uploads at 6MB (6291456 bytes)
const maxBlobSize = 6291456

var (
	// ErrBlobMissing is returned by Delete when no blob exists at the given URL.
	// Callers that delete best-effort should treat it as success.
	ErrBlobMissing = errors.New("blob not found")

	// ErrBlobTooLarge is returned by Put when data exceeds the size cap
	ErrBlobTooLarge = errors.New("blob exceeds maximum size")

	// ErrUnsupportedType is returned by Put for MIME types other than
	// JPEG, PNG, or WebP
	ErrUnsupportedType = errors.New("unsupported blob MIME type")
)

// Store is the blob-storage collaborator: upload-by-key, URL resolution,
// and delete-by-URL.
type Store interface {
	// Put stores data under key and returns the public URL for it.
	// Overwrites any existing blob at the same key.
	Put(ctx context.Context, key string, data []byte, mimeType string) (string, error)

	// Delete removes the blob a previous Put returned url for.
	// Returns ErrBlobMissing when nothing exists at that URL.
	Delete(ctx context.Context, url string) error

	// Resolve returns the public URL for a key without touching storage
	Resolve(key string) string
}

// normalizeMimeType converts non-standard MIME types to their standard equivalents
// Common case: many clients send image/jpg instead of the standard image/jpeg
func normalizeMimeType(mimeType string) string {
	switch mimeType {
	case "image/jpg":
		return "image/jpeg"
	default:
		return mimeType
	}
}

// isValidMimeType checks if the MIME type is allowed for blob uploads
func isValidMimeType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}

// ExtensionFor maps an image MIME type to a file extension, defaulting to .jpg
func ExtensionFor(mimeType string) string {
	switch normalizeMimeType(mimeType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
