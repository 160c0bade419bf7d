package storage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chartmuseum/storage"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/config"
)

// S3Client implements ReportStore against any S3-compatible endpoint.
type S3Client struct {
	backend storage.Backend
	prefix  string
}

// NewS3Client builds a report store backed by chartmuseum's Amazon backend.
func NewS3Client(cfg config.ReportsConfig) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("reports bucket must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("reports credentials must be provided")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		scheme := "https"
		if !cfg.UseSSL {
			scheme = "http"
		}
		endpoint = fmt.Sprintf("%s://%s", scheme, strings.TrimPrefix(endpoint, "//"))
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	os.Setenv("AWS_ACCESS_KEY_ID", cfg.AccessKey)
	os.Setenv("AWS_SECRET_ACCESS_KEY", cfg.SecretKey)
	os.Setenv("AWS_REGION", region)
	os.Setenv("AWS_DEFAULT_REGION", region)

	backend := storage.NewAmazonS3BackendWithOptions(
		cfg.Bucket,
		"",
		region,
		endpoint,
		"",
		&storage.AmazonS3Options{
			S3ForcePathStyle: awsBool(true),
		},
	)

	return &S3Client{
		backend: backend,
		prefix:  strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (c *S3Client) objectKey(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + "/" + strings.TrimPrefix(key, "/")
}

// UploadObject writes a report under the configured prefix.
func (c *S3Client) UploadObject(ctx context.Context, key string, data []byte) error {
	if err := c.backend.PutObject(c.objectKey(key), data); err != nil {
		return fmt.Errorf("reports upload %s failed: %w", key, err)
	}
	return nil
}

// ListObjects lists stored reports for a given prefix.
func (c *S3Client) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	objects, err := c.backend.ListObjects(c.objectKey(prefix))
	if err != nil {
		return nil, fmt.Errorf("reports list failed: %w", err)
	}
	results := make([]ObjectInfo, 0, len(objects))
	for _, object := range objects {
		results = append(results, ObjectInfo{
			Key:  object.Path,
			Size: int64(len(object.Content)),
		})
	}
	return results, nil
}

var _ ReportStore = (*S3Client)(nil)

func awsBool(v bool) *bool {
	return &v
}
