package gcs

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"

	"github.com/pawmart/pawmart-backend/pkg/helpers"
)

// DocumentStore uploads KYC documents to a Google Cloud Storage bucket and
// returns their public URLs.
type DocumentStore struct {
	Client *storage.Client
	Bucket string
}

func NewDocumentStore(client *storage.Client, bucket string) *DocumentStore {
	return &DocumentStore{Client: client, Bucket: bucket}
}

func (s *DocumentStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if s.Client == nil || s.Bucket == "" {
		return "", errors.New("gcs not configured")
	}
	return helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, r)
}
