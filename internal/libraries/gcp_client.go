package libraries

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSClient uploads finished export archives to a bucket so they can be
// shared by link instead of downloaded. It implements export.ShareUploader.
type GCSClient struct {
	client *storage.Client
	bucket string
}

var gcsClient *GCSClient

func GetGCSClient() *GCSClient {
	return gcsClient
}

// NewGCSClient builds the storage client from a base64 encoded service
// account JSON. Returns nil without error when no bucket is configured:
// share delivery is optional, download always works.
func NewGCSClient(ctx context.Context) (*GCSClient, error) {
	bucket := os.Getenv("EXPORT_SHARE_BUCKET")
	if bucket == "" {
		return nil, nil
	}

	// read base64 encoded JSON
	encoded := os.Getenv("GCP_SERVICE_ACCOUNT_CREDENTIALS")
	if encoded == "" {
		return nil, fmt.Errorf("GCP_SERVICE_ACCOUNT_CREDENTIALS not set")
	}

	// decode JSON
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service account json: %w", err)
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(decoded))
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}

	gcsClient = &GCSClient{client: client, bucket: bucket}
	return gcsClient, nil
}

// UploadArchive writes the archive under exports/ and returns its object URL.
func (c *GCSClient) UploadArchive(ctx context.Context, name string, data []byte) (string, error) {
	object := "exports/" + name

	w := c.client.Bucket(c.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/zip"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write archive object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize archive object: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucket, object), nil
}

func (c *GCSClient) Close() {
	c.client.Close()
}
