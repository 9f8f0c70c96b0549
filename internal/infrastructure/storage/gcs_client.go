package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/sabrinaansede/apphib/internal/domain/service"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

const gcsPublicPrefix = "https://storage.googleapis.com/"

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName, credentialsJSON string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	storageClient := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}

	if err := storageClient.setBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set CORS configuration: %v", err)
	}

	return storageClient, nil
}

var _ service.PhotoStore = (*CloudStorageClient)(nil)

// setBucketCORS lets the web map load review photos directly from the bucket.
func (c *CloudStorageClient) setBucketCORS(ctx context.Context) error {
	bucket := c.client.Bucket(c.bucketName)

	bucketAttrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %v", err)
	}
	if len(bucketAttrs.CORS) > 0 {
		return nil
	}

	_, err = bucket.Update(ctx, storage.BucketAttrsToUpdate{
		CORS: []storage.CORS{{
			MaxAge:          3600,
			Methods:         []string{"GET", "HEAD"},
			Origins:         []string{"*"},
			ResponseHeaders: []string{"Content-Type"},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to update bucket CORS: %v", err)
	}
	return nil
}

func (c *CloudStorageClient) Save(ctx context.Context, file io.Reader, contentType string) (string, error) {
	p, err := readPhoto(file, contentType)
	if err != nil {
		return "", err
	}

	obj := c.client.Bucket(c.bucketName).Object(p.name)
	wc := obj.NewWriter(ctx)
	wc.ContentType = p.contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, p.reader()); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %v", err)
	}

	return c.publicURL(p.name), nil
}

func (c *CloudStorageClient) publicURL(objectName string) string {
	return fmt.Sprintf("%s%s/%s", gcsPublicPrefix, c.bucketName, objectName)
}

// objectName extracts the object path from a URL produced by Save.
func (c *CloudStorageClient) objectName(fileURL string) (string, error) {
	if !strings.HasPrefix(fileURL, gcsPublicPrefix) {
		return "", fmt.Errorf("invalid GCS URL format")
	}

	parts := strings.SplitN(strings.TrimPrefix(fileURL, gcsPublicPrefix), "/", 2)
	if len(parts) != 2 || parts[0] != c.bucketName || parts[1] == "" {
		return "", fmt.Errorf("invalid GCS URL format or bucket mismatch")
	}
	return parts[1], nil
}

func (c *CloudStorageClient) Delete(ctx context.Context, fileURL string) error {
	name, err := c.objectName(fileURL)
	if err != nil {
		return err
	}

	if err := c.client.Bucket(c.bucketName).Object(name).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
