// Package media uploads user files to an S3-compatible object store.
package media

import (
	"os"
	"strings"
	"time"
)

// Config holds configuration for the object store.
type Config struct {
	Region    string        // e.g. "us-east-1"
	Bucket    string        // Bucket receiving uploads
	AccessKey string        // Static access key id
	SecretKey string        // Static secret access key
	Endpoint  string        // Custom endpoint for MinIO/R2; empty for AWS
	PublicURL string        // Base URL objects are served from; derived when empty
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads media store configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Region:    envOr("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		PublicURL: os.Getenv("S3_PUBLIC_URL"),
		Timeout:   30 * time.Second,
	}
}

// publicBaseURL returns the prefix for object URLs, without a trailing slash.
func (c Config) publicBaseURL() string {
	switch {
	case c.PublicURL != "":
		return strings.TrimRight(c.PublicURL, "/")
	case c.Endpoint != "":
		// path-style addressing
		return strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket
	default:
		return "https://" + c.Bucket + ".s3." + c.Region + ".amazonaws.com"
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
