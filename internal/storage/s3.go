package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go/logging"

	"github.com/mauc/audioguide-backend/internal/config"
)

// S3Backend stores assets in an S3-compatible bucket. Objects are
// uploaded with a public-read ACL and served via their public URL.
type S3Backend struct {
	client *s3.Client
	cfg    *config.Config
}

func NewS3Backend(cfg *config.Config) (*S3Backend, error) {
	client, err := buildClient(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretAccessKey, cfg.S3UsePathStyle)
	if err != nil {
		return nil, err
	}
	return &S3Backend{client: client, cfg: cfg}, nil
}

func buildClient(endpoint, region, key, secret string, pathStyle bool) (*s3.Client, error) {
	resolver := awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
		func(service, rgn string, options ...interface{}) (aws.Endpoint, error) {
			if endpoint != "" {
				return aws.Endpoint{URL: endpoint, SigningRegion: region}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}))
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		resolver,
		awsconfig.WithLogger(logging.NewStandardLogger(nil)),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = pathStyle
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
		}
	})
	return client, nil
}

func (b *S3Backend) Name() string { return "s3" }

// Write uploads the stream to {dir}/{filename} in the media bucket.
func (b *S3Backend) Write(ctx context.Context, dir, filename string, r io.Reader, contentType string) (*StoredFile, error) {
	key := dir + "/" + filename
	uploader := manager.NewUploader(b.client)
	in := &s3.PutObjectInput{
		Bucket:      &b.cfg.S3Bucket,
		Key:         &key,
		Body:        r,
		ContentType: &contentType,
		ACL:         s3types.ObjectCannedACLPublicRead,
	}
	if _, err := uploader.Upload(ctx, in, func(u *manager.Uploader) { u.PartSize = 10 * 1024 * 1024 }); err != nil {
		return nil, err
	}

	return &StoredFile{
		Path: key,
		Key:  filename,
		URL:  b.ResolveURL(dir, filename),
	}, nil
}

// Delete removes the given object keys. S3 treats deleting a missing
// object as success, which matches the idempotency contract; transport
// errors are logged and the first one returned.
func (b *S3Backend) Delete(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		key := p
		_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: &b.cfg.S3Bucket,
			Key:    &key,
		})
		if err != nil {
			log.Printf("storage: failed to delete s3 object %s: %v", p, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (b *S3Backend) ResolveURL(dir, filename string) string {
	key := url.PathEscape(dir) + "/" + url.PathEscape(filename)
	key = strings.ReplaceAll(key, "%2F", "/")
	if b.cfg.S3Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(b.cfg.S3Endpoint, "/"), b.cfg.S3Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.cfg.S3Bucket, b.cfg.S3Region, key)
}
