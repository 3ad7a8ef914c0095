// utils/storage.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var storeClient *s3.Client
var storeBucket string
var cdnBaseURL string

// InitObjectStore configures the R2 client used for challenge cover images.
// Returns an error when the R2 environment is incomplete; callers may treat
// that as non-fatal and run with uploads disabled.
func InitObjectStore() error {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	storeBucket = os.Getenv("R2_BUCKET_NAME")
	if accountID == "" || accessKeyID == "" || accessKeySecret == "" || storeBucket == "" {
		return fmt.Errorf("object store not configured (CLOUDFLARE_ACCOUNT_ID / R2_ACCESS_KEY_ID / R2_ACCESS_KEY_SECRET / R2_BUCKET_NAME)")
	}
	cdnBaseURL = os.Getenv("CDN_BASE_URL")
	if cdnBaseURL == "" {
		cdnBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load R2 config: %w", err)
	}

	storeClient = s3.NewFromConfig(cfg)
	return nil
}

// ObjectStoreReady reports whether InitObjectStore succeeded.
func ObjectStoreReady() bool {
	return storeClient != nil
}

// UploadObject uploads a multipart file under the given key and returns the
// public CDN URL (e.g. key "challenges/covers/abc123.png").
func UploadObject(fileHeader *multipart.FileHeader, key string) (string, error) {
	if storeClient == nil {
		return "", fmt.Errorf("object store not initialized")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = storeClient.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(storeBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s", cdnBaseURL, key), nil
}
