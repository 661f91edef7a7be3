package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/imglab/moderation/pkg/imglab"
)

// Config options for the S3 backend
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UseSSL          bool   // Use SSL for connections (default: true)
	UsePathStyle    bool   // Use path-style addressing (default: false)

	// MinIO/S3-compatible service options
	CreateBucketIfNotExist bool // Create bucket if it doesn't exist
}

var _ imglab.BlobStore = (*Backend)(nil)

// Backend is an S3-compatible implementation of the imglab.BlobStore interface
type Backend struct {
	client        *s3.Client
	bucket        string
	presignClient *s3.PresignClient
}

// New creates a new S3-compatible storage backend
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	// Set up AWS config
	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		// Use provided credentials
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		// Use default credential chain
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Configure S3 client options
	var s3Options []func(*s3.Options)

	// Custom endpoint for S3-compatible services (MinIO, etc.)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	backend := &Backend{
		client:        client,
		bucket:        config.Bucket,
		presignClient: s3.NewPresignClient(client),
	}

	// Create bucket if requested
	if config.CreateBucketIfNotExist {
		if err := backend.createBucketIfNotExists(context.Background(), config.Region); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return backend, nil
}

// createBucketIfNotExists creates the bucket if it doesn't exist
func (b *Backend) createBucketIfNotExists(ctx context.Context, region string) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.bucket),
	})

	if err == nil {
		// Bucket exists
		return nil
	}

	// Handle multiple error shapes for MinIO compatibility
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket

	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) &&
		!strings.Contains(err.Error(), "BadRequest") &&
		!strings.Contains(err.Error(), "NoSuchBucket") {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	createInput := &s3.CreateBucketInput{
		Bucket: aws.String(b.bucket),
	}

	// Add location constraint for regions other than us-east-1
	if region != "us-east-1" {
		createInput.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	_, err = b.client.CreateBucket(ctx, createInput)
	if err != nil {
		if strings.Contains(err.Error(), "BucketAlreadyExists") ||
			strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// ListPage returns one page of objects under prefix via ListObjectsV2.
func (b *Backend) ListPage(ctx context.Context, prefix, continuationToken string, maxKeys int32) (*imglab.ObjectPage, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(prefix),
	}
	if continuationToken != "" {
		input.ContinuationToken = aws.String(continuationToken)
	}
	if maxKeys > 0 {
		input.MaxKeys = aws.Int32(maxKeys)
	}

	out, err := b.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, b.wrapErr("list", prefix, err)
	}

	page := &imglab.ObjectPage{
		Truncated: aws.ToBool(out.IsTruncated),
		NextToken: aws.ToString(out.NextContinuationToken),
	}
	for _, obj := range out.Contents {
		page.Objects = append(page.Objects, imglab.ObjectMeta{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         strings.Trim(aws.ToString(obj.ETag), "\""),
		})
	}

	return page, nil
}

// PresignGet returns a presigned GET URL for one object.
func (b *Backend) PresignGet(ctx context.Context, objectKey string, ttl time.Duration) (*imglab.ReadGrant, error) {
	result, err := b.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return nil, b.wrapErr("presign_get", objectKey, err)
	}

	return &imglab.ReadGrant{
		URL:       result.URL,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// PresignPost returns a presigned POST policy scoped to exactly one key and
// one content-type value, with a content-length-range condition and a
// starts-with condition on the declared Content-Type.
func (b *Backend) PresignPost(ctx context.Context, objectKey string, policy imglab.PostPolicy) (*imglab.WriteGrant, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	}
	if policy.ContentType != "" {
		input.ContentType = aws.String(policy.ContentType)
	}

	result, err := b.presignClient.PresignPostObject(ctx, input, func(opts *s3.PresignPostOptions) {
		opts.Expires = policy.TTL
		conditions := []interface{}{
			[]interface{}{"content-length-range", 1, policy.MaxBytes},
		}
		if policy.ContentTypePrefix != "" {
			conditions = append(conditions, []interface{}{"starts-with", "$Content-Type", policy.ContentTypePrefix})
		}
		opts.Conditions = conditions
	})
	if err != nil {
		return nil, b.wrapErr("presign_post", objectKey, err)
	}

	return &imglab.WriteGrant{
		URL:         result.URL,
		Fields:      result.Values,
		Key:         objectKey,
		ContentType: policy.ContentType,
		MaxBytes:    policy.MaxBytes,
		ExpiresAt:   time.Now().Add(policy.TTL),
	}, nil
}

// Copy duplicates the object at srcKey under dstKey within the bucket.
func (b *Backend) Copy(ctx context.Context, srcKey, dstKey string) error {
	_, err := b.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(b.bucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(url.PathEscape(b.bucket + "/" + srcKey)),
	})
	if err != nil {
		return b.wrapErr("copy", srcKey, err)
	}
	return nil
}

// Delete removes the object at objectKey.
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return b.wrapErr("delete", objectKey, err)
	}
	return nil
}

// Upload uploads content directly to S3
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	uploader := manager.NewUploader(b.client)

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return b.wrapErr("upload", objectKey, err)
	}
	return nil
}

// GetObjectMeta retrieves metadata for an object in S3
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*imglab.ObjectMeta, error) {
	result, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, b.wrapErr("head", objectKey, err)
	}

	return &imglab.ObjectMeta{
		Key:          objectKey,
		Size:         aws.ToInt64(result.ContentLength),
		LastModified: aws.ToTime(result.LastModified),
		ETag:         strings.Trim(aws.ToString(result.ETag), "\""),
	}, nil
}

// wrapErr classifies an SDK error and wraps it as an imglab.StorageError.
func (b *Backend) wrapErr(op, key string, err error) error {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		err = fmt.Errorf("%w: %v", imglab.ErrObjectNotFound, err)
	} else {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound") {
			err = fmt.Errorf("%w: %v", imglab.ErrObjectNotFound, err)
		}
	}
	return &imglab.StorageError{Backend: "s3", Key: key, Op: op, Err: err}
}
