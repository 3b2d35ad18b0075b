package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	objects map[string]string
	gotKey  string
	gotBkt  string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotBkt, f.gotKey = *params.Bucket, *params.Key
	body, ok := f.objects[*params.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestFetchReadsObject(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"menus/luigis.json": `{"version":1}`}}
	r := &R2Client{client: fake, bucket: "menus"}

	data, err := r.Fetch(context.Background(), "menus/luigis.json")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Fatalf("unexpected body %s", data)
	}
	if fake.gotBkt != "menus" || fake.gotKey != "menus/luigis.json" {
		t.Fatalf("wrong object requested %s/%s", fake.gotBkt, fake.gotKey)
	}
}

func TestFetchWrapsErrors(t *testing.T) {
	r := &R2Client{client: &fakeS3{}, bucket: "menus"}

	_, err := r.Fetch(context.Background(), "missing.json")
	if err == nil || !strings.Contains(err.Error(), "menus/missing.json") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
