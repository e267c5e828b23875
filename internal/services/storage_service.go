// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/utils"
)

// checksumMetadataKey carries the SHA-256 of a published snapshot.
const checksumMetadataKey = "Sha256"

// StorageService reads and publishes JSON catalog snapshots in S3 and
// resolves product image keys to public URLs. It satisfies catalog.Source.
type StorageService struct {
	s3Client s3iface.S3API
	config   config.AWSConfig
}

func NewStorageService(cfg config.AWSConfig) (*StorageService, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewStorageServiceWithClient(s3.New(sess), cfg), nil
}

func NewStorageServiceWithClient(client s3iface.S3API, cfg config.AWSConfig) *StorageService {
	return &StorageService{
		s3Client: client,
		config:   cfg,
	}
}

// Products downloads the snapshot object and decodes it. When the object
// carries a checksum the body must match it.
func (s *StorageService) Products(ctx context.Context) ([]catalog.Product, error) {
	out, err := s.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(s.config.CatalogKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download catalog snapshot: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}

	if expected := aws.StringValue(out.Metadata[checksumMetadataKey]); expected != "" {
		if !utils.ValidateFileHash(body, expected) {
			return nil, fmt.Errorf("catalog snapshot checksum mismatch for %s", s.config.CatalogKey)
		}
	}

	products, err := catalog.DecodeProducts(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for i := range products {
		products[i].Image = s.ImageURL(products[i].Image)
	}

	logrus.WithFields(logrus.Fields{
		"bucket":   s.config.S3Bucket,
		"key":      s.config.CatalogKey,
		"products": len(products),
	}).Debug("Catalog snapshot loaded")

	return products, nil
}

// PublishCatalog uploads products as the current snapshot.
func (s *StorageService) PublishCatalog(ctx context.Context, products []catalog.Product) error {
	body, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode catalog snapshot: %w", err)
	}

	_, err = s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(s.config.CatalogKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(body))),
		Metadata: map[string]*string{
			checksumMetadataKey: aws.String(utils.HashBytes(body)),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload catalog snapshot: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"bucket":   s.config.S3Bucket,
		"key":      s.config.CatalogKey,
		"products": len(products),
	}).Info("Catalog snapshot published")
	return nil
}

// ImageURL turns an object key into a public URL. Absolute URLs and empty
// values pass through.
func (s *StorageService) ImageURL(key string) string {
	if key == "" || strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return s.getS3URL(strings.TrimPrefix(key, "/"))
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.S3Bucket, s.config.Region, key)
}
