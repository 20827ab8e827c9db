package transfer

import (
	"context"
	"errors"

	localdriver "pipestage/internal/infra/transfer/local"
	memorydriver "pipestage/internal/infra/transfer/memory"
	s3driver "pipestage/internal/infra/transfer/s3"
)

var errS3Unconfigured = errors.New("s3 driver not configured")

// Options selects and configures the drivers behind a Service.
type Options struct {
	// Mock routes every call to the in-memory mock driver.
	Mock bool

	// S3 settings; all optional. Credentials fall back to the default
	// AWS chain when unset. Endpoint/PathStyle support MinIO-compatible
	// stores.
	S3Region          string
	S3Endpoint        string
	S3PathStyle       bool
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3SessionToken    string
}

// Open constructs a Service from Options. Storage roots are never global
// state: every remote location is carried on the paths themselves.
func Open(ctx context.Context, opts Options) (*Service, error) {
	if opts.Mock {
		return NewMockService(memorydriver.New()), nil
	}
	s3store, err := s3driver.New(ctx, s3driver.Config{
		Region:          opts.S3Region,
		Endpoint:        opts.S3Endpoint,
		PathStyle:       opts.S3PathStyle,
		AccessKeyID:     opts.S3AccessKeyID,
		SecretAccessKey: opts.S3SecretAccessKey,
		SessionToken:    opts.S3SessionToken,
	})
	if err != nil {
		return nil, err
	}
	return NewService(localdriver.New(), s3store), nil
}
