package vault

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeS3 keeps objects in a map. Only single-part uploads are supported,
// which is all the uploader issues for bodies below the part size.
type fakeS3 struct {
	mu        sync.Mutex
	objects   map[string][]byte
	metadata  map[string]map[string]string
	bucketErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		objects:  make(map[string][]byte),
		metadata: make(map[string]map[string]string),
	}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(in.Key)
	f.objects[key] = data
	f.metadata[key] = in.Metadata
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) UploadPart(context.Context, *s3.UploadPartInput, ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errors.New("multipart upload not supported by fake")
}

func (f *fakeS3) CreateMultipartUpload(context.Context, *s3.CreateMultipartUploadInput, ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errors.New("multipart upload not supported by fake")
}

func (f *fakeS3) CompleteMultipartUpload(context.Context, *s3.CompleteMultipartUploadInput, ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errors.New("multipart upload not supported by fake")
}

func (f *fakeS3) AbortMultipartUpload(context.Context, *s3.AbortMultipartUploadInput, ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return &s3.AbortMultipartUploadOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(in.Key)
	if _, ok := f.objects[key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{Metadata: f.metadata[key]}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.bucketErr != nil {
		return nil, f.bucketErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestS3Vault(t *testing.T) {
	testVaultContract(t, NewS3VaultWithClient("remote", "bucket", "genfs", newFakeS3()))
}

func TestS3Vault_ObjectLayout(t *testing.T) {
	client := newFakeS3()
	v := NewS3VaultWithClient("remote", "bucket", "team/a", client)

	if err := v.PutSnapshot(context.Background(), "store-9", strings.NewReader("db"), 2, 7); err != nil {
		t.Fatalf("PutSnapshot() error = %v", err)
	}

	const want = "team/a/snapshots/store-9.db"
	if _, ok := client.objects[want]; !ok {
		t.Fatalf("object %q not written; have %v", want, client.objects)
	}
	if got := client.metadata[want][versionMetadataKey]; got != "7" {
		t.Errorf("version metadata = %q, want 7", got)
	}
}

func TestS3Vault_MissingVersionMetadata(t *testing.T) {
	client := newFakeS3()
	client.objects["snapshots/s.db"] = []byte("x")
	v := NewS3VaultWithClient("remote", "bucket", "", client)

	if _, err := v.GetSnapshotVersion(context.Background(), "s"); err == nil {
		t.Error("GetSnapshotVersion() expected error for object without metadata")
	}
}

func TestS3Vault_ValidateSetupBucketError(t *testing.T) {
	client := newFakeS3()
	client.bucketErr = errors.New("access denied")
	v := NewS3VaultWithClient("remote", "bucket", "", client)

	if err := v.ValidateSetup(context.Background()); err == nil {
		t.Error("ValidateSetup() expected error")
	}
}
