package ports

import "context"

// MediaStore is the object-storage collaborator for captured attachments.
// Store persists the bytes and returns a durable opaque reference; failures
// surface as domain.ErrUploadFailed.
type MediaStore interface {
	Store(ctx context.Context, name string, data []byte) (string, error)
}
