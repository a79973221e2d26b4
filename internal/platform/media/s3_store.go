package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"jobportal_backend/internal/feature/account/usecase"
)

// ErrNoBucket is returned when the store is used without a bucket configured.
var ErrNoBucket = errors.New("media bucket is not configured")

// sniffLen is how much of the body is read to detect its type.
const sniffLen = 3072

// activeTypes are detected types a browser would render or execute on the
// bucket origin. They are stored as opaque binary.
var activeTypes = []string{
	"text/html",
	"application/xhtml+xml",
	"image/svg+xml",
	"text/xml",
	"application/xml",
	"text/javascript",
}

// putObjectAPI is the subset of *s3.Client used by S3Store.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store implements usecase.MediaStore on top of S3.
type S3Store struct {
	client  putObjectAPI
	bucket  string
	baseURL string
	newKey  func() string
}

var _ usecase.MediaStore = (*S3Store)(nil)

// NewS3Store builds an S3 client from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, cfg Config, httpClient *http.Client) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if httpClient != nil {
		opts = append(opts, awsconfig.WithHTTPClient(httpClient))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Store(client, cfg), nil
}

func newS3Store(client putObjectAPI, cfg Config) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: cfg.publicBaseURL(),
		newKey:  uuid.NewString,
	}
}

// Upload stores file under folder and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, folder string, file usecase.File) (string, error) {
	if file.Body == nil {
		return "", errors.New("empty upload body")
	}

	key := s.objectKey(folder, file.Filename)
	contentType, body, err := sniff(file.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload %q: %w", key, err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to put object %q: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// objectKey returns "<folder>/<uuid><ext>". The original filename is not
// used in the key.
func (s *S3Store) objectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return strings.Trim(folder, "/") + "/" + s.newKey() + ext
}

// sniff detects the content type from the first bytes of r. The declared
// type of the upload is ignored. The returned reader yields all of r.
func sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	head = head[:n]

	contentType := "application/octet-stream"
	if n > 0 {
		detected := mimetype.Detect(head)
		contentType = detected.String()
		for _, t := range activeTypes {
			if detected.Is(t) {
				contentType = "application/octet-stream"
				break
			}
		}
	}
	return contentType, io.MultiReader(bytes.NewReader(head), r), nil
}
