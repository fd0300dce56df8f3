package s3

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeClient struct {
	putInput  *s3.PutObjectInput
	getErr    error
	getBody   string
	headErr   error
	lastKey   string
	putCalled bool
}

func (f *fakeClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putCalled = true
	f.putInput = params
	f.lastKey = aws.ToString(params.Key)
	if params.Body != nil {
		if _, err := io.Copy(io.Discard, params.Body); err != nil {
			return nil, err
		}
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastKey = aws.ToString(params.Key)
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.getBody))}, nil
}

func (f *fakeClient) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.lastKey = aws.ToString(params.Key)
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestOpenMissingObjectReportsNotExist(t *testing.T) {
	client := &fakeClient{getErr: &s3types.NoSuchKey{}}
	store := NewWithClient(client, "bucket", "", "")

	_, err := store.Open(context.Background(), "123-missing.pdf")
	if err == nil {
		t.Fatal("expected error for missing object")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestOpenOtherErrorIsNotNotExist(t *testing.T) {
	client := &fakeClient{getErr: errors.New("throttled")}
	store := NewWithClient(client, "bucket", "", "")

	_, err := store.Open(context.Background(), "123-doc.pdf")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("non-missing error must not map to fs.ErrNotExist: %v", err)
	}
}

func TestOpenReturnsBody(t *testing.T) {
	client := &fakeClient{getBody: "stored bytes"}
	store := NewWithClient(client, "bucket", "docs", "")

	rc, err := store.Open(context.Background(), "123-doc.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(got) != "stored bytes" {
		t.Fatalf("body = %q", got)
	}
	if client.lastKey != "docs/123-doc.pdf" {
		t.Fatalf("key = %q, want prefix applied", client.lastKey)
	}
}

func TestExistsMissingObject(t *testing.T) {
	client := &fakeClient{headErr: &s3types.NotFound{}}
	store := NewWithClient(client, "bucket", "", "")

	ok, err := store.Exists(context.Background(), "123-missing.pdf")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("expected false for missing object")
	}
}

func TestExistsPresentObject(t *testing.T) {
	client := &fakeClient{}
	store := NewWithClient(client, "bucket", "", "")

	ok, err := store.Exists(context.Background(), "123-doc.pdf")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Fatal("expected true for present object")
	}
}

func TestSaveSetsKeyEncryptionAndSize(t *testing.T) {
	client := &fakeClient{}
	store := NewWithClient(client, "bucket", "docs/", "")

	key, size, err := store.Save(context.Background(), "report.pdf", strings.NewReader("0123456789"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != 10 {
		t.Fatalf("size = %d, want 10", size)
	}
	if !strings.HasSuffix(key, "-report.pdf") {
		t.Fatalf("key = %q, want timestamp-prefixed name", key)
	}
	if !client.putCalled {
		t.Fatal("PutObject not called")
	}
	if client.lastKey != "docs/"+key {
		t.Fatalf("stored key = %q, want %q", client.lastKey, "docs/"+key)
	}
	if client.putInput.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("encryption = %v, want AES256 default", client.putInput.ServerSideEncryption)
	}
}

func TestSaveUsesKMSWhenConfigured(t *testing.T) {
	client := &fakeClient{}
	store := NewWithClient(client, "bucket", "", "kms-key-1")

	if _, _, err := store.Save(context.Background(), "report.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if client.putInput.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms {
		t.Fatalf("encryption = %v, want aws:kms", client.putInput.ServerSideEncryption)
	}
	if aws.ToString(client.putInput.SSEKMSKeyId) != "kms-key-1" {
		t.Fatalf("kms key = %q", aws.ToString(client.putInput.SSEKMSKeyId))
	}
}
