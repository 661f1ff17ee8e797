package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"genfs/internal/config"
	"genfs/internal/snapshot"
)

// versionMetadataKey is the S3 user metadata entry carrying the snapshot version.
const versionMetadataKey = "genfs-version"

// S3API is the subset of the S3 client the vault uses. *s3.Client satisfies it.
type S3API interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Vault stores snapshots as objects <prefix>/snapshots/<storeID>.db with
// the version in object metadata.
type S3Vault struct {
	name     string
	bucket   string
	prefix   string
	client   S3API
	uploader *manager.Uploader
}

var _ snapshot.Vault = (*S3Vault)(nil)

// NewS3Vault builds an S3 client from the default AWS credential chain.
// GENFS_S3_ACCESS_KEY_ID and GENFS_S3_SECRET_ACCESS_KEY, when both set,
// take precedence. A custom endpoint switches to path-style addressing for
// S3 compatible stores.
func NewS3Vault(ctx context.Context, cfg config.VaultConfig) (*S3Vault, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 vault requires s3_bucket to be set")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	keyID, secret := os.Getenv("GENFS_S3_ACCESS_KEY_ID"), os.Getenv("GENFS_S3_SECRET_ACCESS_KEY")
	if keyID != "" && secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(keyID, secret, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3VaultWithClient(cfg.Name, cfg.S3Bucket, cfg.S3Prefix, client), nil
}

// NewS3VaultWithClient wraps an existing client.
func NewS3VaultWithClient(name, bucket, prefix string, client S3API) *S3Vault {
	return &S3Vault{
		name:     name,
		bucket:   bucket,
		prefix:   prefix,
		client:   client,
		uploader: manager.NewUploader(client),
	}
}

func (v *S3Vault) PutSnapshot(ctx context.Context, storeID string, r io.Reader, size int64, version int64) error {
	counted := &countingReader{r: r}
	_, err := v.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:   aws.String(v.bucket),
		Key:      aws.String(v.key(storeID)),
		Body:     counted,
		Metadata: map[string]string{versionMetadataKey: strconv.FormatInt(version, 10)},
	})
	if err != nil {
		return fmt.Errorf("uploading snapshot to s3://%s/%s: %w", v.bucket, v.key(storeID), err)
	}
	if counted.n != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, counted.n)
	}
	return nil
}

func (v *S3Vault) GetSnapshot(ctx context.Context, storeID string, w io.Writer) error {
	out, err := v.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key(storeID)),
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("snapshot not found for store: %s", storeID)
		}
		return fmt.Errorf("downloading snapshot: %w", err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	return nil
}

// GetSnapshotVersion returns 0 if the object does not exist.
func (v *S3Vault) GetSnapshotVersion(ctx context.Context, storeID string) (int64, error) {
	out, err := v.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key(storeID)),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading snapshot metadata: %w", err)
	}

	raw, ok := out.Metadata[versionMetadataKey]
	if !ok {
		return 0, fmt.Errorf("snapshot object has no %s metadata", versionMetadataKey)
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing version: %w", err)
	}
	return version, nil
}

// ValidateSetup verifies that the bucket exists and is reachable.
func (v *S3Vault) ValidateSetup(ctx context.Context) error {
	if _, err := v.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(v.bucket)}); err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", v.bucket, err)
	}
	return nil
}

func (v *S3Vault) key(storeID string) string {
	return path.Join(v.prefix, "snapshots", storeID+".db")
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}
	// HeadObject reports a missing key as a bare 404 API error.
	var apiErr interface{ ErrorCode() string }
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound"
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
