package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/feature/account/usecase"
)

type mockPutObject struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (m *mockPutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.input = params
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		m.body = string(b)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newTestStore(client putObjectAPI, cfg Config) *S3Store {
	s := newS3Store(client, cfg)
	s.newKey = func() string { return "fixed-key" }
	return s
}

func TestS3Store_Upload(t *testing.T) {
	t.Parallel()

	client := &mockPutObject{}
	store := newTestStore(client, Config{Bucket: "jobportal", Region: "us-east-1"})

	url, err := store.Upload(context.Background(), "resumes", usecase.File{
		Filename:    "My CV.PDF",
		ContentType: "application/pdf",
		Size:        9,
		Body:        strings.NewReader("%PDF-1.7\n"),
	})

	require.NoError(t, err)
	assert.Equal(t, "https://jobportal.s3.us-east-1.amazonaws.com/resumes/fixed-key.pdf", url)
	assert.Equal(t, "jobportal", aws.ToString(client.input.Bucket))
	assert.Equal(t, "resumes/fixed-key.pdf", aws.ToString(client.input.Key))
	assert.Equal(t, "application/pdf", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(9), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, "%PDF-1.7\n", client.body)
}

func TestS3Store_Upload_DefaultContentType(t *testing.T) {
	t.Parallel()

	client := &mockPutObject{}
	store := newTestStore(client, Config{Bucket: "b"})

	_, err := store.Upload(context.Background(), "profile-photos", usecase.File{Filename: "noext", Body: strings.NewReader("\x00\x01\x02")})

	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", aws.ToString(client.input.ContentType))
	assert.Equal(t, "profile-photos/fixed-key", aws.ToString(client.input.Key))
	assert.Nil(t, client.input.ContentLength)
}

func TestS3Store_Upload_DetectsTypeFromBody(t *testing.T) {
	t.Parallel()

	png := "\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 16)
	tests := []struct {
		name     string
		declared string
		body     string
		expected string
	}{
		{"png declared as html", "text/html", png, "image/png"},
		{"png without declared type", "", png, "image/png"},
		{"html declared as png", "image/png", "<!DOCTYPE html><html><script>alert(1)</script></html>", "application/octet-stream"},
		{"svg declared as png", "image/png", `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`, "application/octet-stream"},
		{"empty body", "text/html", "", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &mockPutObject{}
			store := newTestStore(client, Config{Bucket: "b"})

			_, err := store.Upload(context.Background(), "profile-photos", usecase.File{
				Filename:    "me.png",
				ContentType: tt.declared,
				Body:        strings.NewReader(tt.body),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, aws.ToString(client.input.ContentType))
			assert.Equal(t, tt.body, client.body, "body must be forwarded intact")
		})
	}
}

func TestS3Store_Upload_LargeBodyForwardedIntact(t *testing.T) {
	t.Parallel()

	client := &mockPutObject{}
	store := newTestStore(client, Config{Bucket: "b"})
	body := "%PDF-1.7\n" + strings.Repeat("a", 3*sniffLen)

	_, err := store.Upload(context.Background(), "resumes", usecase.File{Filename: "cv.pdf", Body: strings.NewReader(body)})

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", aws.ToString(client.input.ContentType))
	assert.Equal(t, body, client.body)
}

func TestS3Store_Upload_Error(t *testing.T) {
	t.Parallel()

	putErr := errors.New("access denied")
	store := newTestStore(&mockPutObject{err: putErr}, Config{Bucket: "b"})

	_, err := store.Upload(context.Background(), "resumes", usecase.File{Filename: "cv.pdf", Body: strings.NewReader("x")})

	assert.ErrorIs(t, err, putErr)
	assert.Contains(t, err.Error(), "resumes/fixed-key.pdf")
}

func TestS3Store_Upload_NilBody(t *testing.T) {
	t.Parallel()

	client := &mockPutObject{}
	store := newTestStore(client, Config{Bucket: "b"})

	_, err := store.Upload(context.Background(), "resumes", usecase.File{Filename: "cv.pdf"})

	assert.Error(t, err)
	assert.Nil(t, client.input, "PutObject should not be called")
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	t.Parallel()

	_, err := NewS3Store(context.Background(), Config{Region: "us-east-1"}, nil)

	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestConfig_PublicBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit public url", Config{PublicURL: "https://cdn.example.com/", Bucket: "b"}, "https://cdn.example.com"},
		{"custom endpoint uses path style", Config{Endpoint: "http://127.0.0.1:9000", Bucket: "b"}, "http://127.0.0.1:9000/b"},
		{"aws virtual host", Config{Bucket: "b", Region: "eu-west-1"}, "https://b.s3.eu-west-1.amazonaws.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.publicBaseURL())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("S3_REGION", "")
	t.Setenv("S3_BUCKET", "uploads")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")

	cfg := LoadConfig()

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "uploads", cfg.Bucket)
	assert.Equal(t, "http://minio:9000", cfg.Endpoint)
}
