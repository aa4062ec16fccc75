// Package media implements the object-storage collaborator for captured
// attachments as a local content-addressed blob directory.
package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/civicconnect/reporting-system/internal/core/domain"
)

const maxRetries = 3

// BlobStore writes attachment bytes to a local directory and hands back a
// durable file reference. Content addressing makes Store idempotent: the
// same bytes always yield the same reference.
type BlobStore struct {
	dir string
	log zerolog.Logger
}

// NewBlobStore ensures the blob directory exists and returns a ready store.
func NewBlobStore(dir string, log zerolog.Logger) (*BlobStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("media: resolve blob dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("media: create blob dir: %w", err)
	}
	return &BlobStore{dir: abs, log: log}, nil
}

// Store persists data and returns its reference. Transient write failures
// are retried with exponential backoff; exhausting the retries surfaces as
// domain.ErrUploadFailed.
func (b *BlobStore) Store(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", domain.ErrUploadFailed)
	}

	sum := sha256.Sum256(data)
	filename := hex.EncodeToString(sum[:]) + filepath.Ext(name)
	path := filepath.Join(b.dir, filename)

	op := func() error {
		if _, err := os.Stat(path); err == nil {
			return nil // already stored
		}
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return err
		}
		return os.Rename(tmp, path)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		b.log.Error().Err(err).Str("name", name).Msg("blob write failed")
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	b.log.Debug().Str("name", name).Str("blob", filename).Int("bytes", len(data)).Msg("blob stored")
	return "file://" + path, nil
}
