// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assetstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config describes an S3-compatible bucket (AWS, R2, MinIO).
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string

	// PublicURL is the delivery prefix objects are served from.
	PublicURL string
}

// objectAPI is the subset of the S3 client the store calls.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Store keeps objects under "{kind}/upload/{publicId}.{ext}" so the same
// [Locator] heuristic works for both backends.
type S3Store struct {
	client    objectAPI
	bucket    string
	publicURL string
	logger    *slog.Logger
}

// NewS3Store builds the AWS client from static credentials when given,
// otherwise from the default credential chain.
func NewS3Store(context context.Context, config S3Config, logger *slog.Logger) (*S3Store, error) {
	options := []func(*awsconfig.LoadOptions) error{}
	if config.Region != "" {
		options = append(options, awsconfig.WithRegion(config.Region))
	}
	if config.AccessKeyID != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(context, options...)
	if err != nil {
		return nil, fmt.Errorf("assetstore: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(options *s3.Options) {
		if config.Endpoint != "" {
			options.BaseEndpoint = aws.String(config.Endpoint)
			options.UsePathStyle = true
		}
	})

	return newS3Store(client, config, logger), nil
}

func newS3Store(client objectAPI, config S3Config, logger *slog.Logger) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    config.Bucket,
		publicURL: strings.TrimSuffix(config.PublicURL, "/"),
		logger:    logger,
	}
}

// Locator returns the public delivery prefix.
func (store *S3Store) Locator() Locator {
	return Locator{BaseURL: store.publicURL}
}

// Upload writes the object with its sniffed content type.
func (store *S3Store) Upload(context context.Context, file File) (Asset, error) {
	publicID := PublicIDFromName(file.Name)
	key := objectKey(file.Kind, publicID, file.Extension)

	_, err := store.client.PutObject(context, &s3.PutObjectInput{
		Bucket:        aws.String(store.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentType:   aws.String(file.ContentType),
		ContentLength: aws.Int64(int64(len(file.Data))),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("assetstore: put %s: %w", key, err)
	}

	return Asset{URL: store.publicURL + "/" + key, Kind: file.Kind, PublicID: publicID}, nil
}

// Delete removes every object stored for publicID, with any extension or
// none. Nothing matching is not an error.
func (store *S3Store) Delete(context context.Context, publicID string, kind Kind) error {
	bare := objectKey(kind, publicID, "")
	listing, err := store.client.ListObjectsV2(context, &s3.ListObjectsV2Input{
		Bucket: aws.String(store.bucket),
		Prefix: aws.String(bare),
	})
	if err != nil {
		return fmt.Errorf("assetstore: list %s: %w", publicID, err)
	}

	objects := make([]types.ObjectIdentifier, 0, len(listing.Contents))
	for _, object := range listing.Contents {
		// The prefix also matches longer ids such as "{id}_2".
		if key := aws.ToString(object.Key); key == bare || strings.HasPrefix(key, bare+".") {
			objects = append(objects, types.ObjectIdentifier{Key: object.Key})
		}
	}

	if len(objects) == 0 {
		store.logger.Debug("asset_already_gone", slog.String("public_id", publicID))
		return nil
	}

	output, err := store.client.DeleteObjects(context, &s3.DeleteObjectsInput{
		Bucket: aws.String(store.bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("assetstore: delete %s: %w", publicID, err)
	}
	if len(output.Errors) > 0 {
		return fmt.Errorf("assetstore: delete %s: %s", publicID, aws.ToString(output.Errors[0].Message))
	}

	return nil
}

func objectKey(kind Kind, publicID, extension string) string {
	if extension == "" {
		return fmt.Sprintf("%s/upload/%s", kind, publicID)
	}
	return fmt.Sprintf("%s/upload/%s.%s", kind, publicID, extension)
}
