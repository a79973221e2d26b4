package di

import (
	"context"

	infrahttp "jobportal_backend/internal/platform/http"
	"jobportal_backend/internal/platform/media"
)

// NewMediaStore creates an S3Store backed by a timeout-bounded HTTP client.
func NewMediaStore(ctx context.Context, cfg media.Config) (*media.S3Store, error) {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return media.NewS3Store(ctx, cfg, httpClient)
}
