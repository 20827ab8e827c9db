// Package s3 implements the transfer Store against an S3-compatible
// object store (AWS S3 or MinIO). Remote paths are full "s3://bucket/key"
// URLs; the bucket is parsed per call rather than fixed at construction.
package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"pipestage/internal/transfer/core"
)

// Store implements core.Store over the AWS SDK v2 S3 client.
type Store struct {
	client *s3.Client
}

// Config holds explicit construction parameters. Credentials are optional
// and fall back to the default chain; Endpoint/PathStyle enable
// MinIO-compatible stores.
type Config struct {
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// New creates an S3 transfer store from Config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Store{client: client}, nil
}

// NewWithClient wraps an existing client (tests).
func NewWithClient(client *s3.Client) *Store { return &Store{client: client} }

func (s *Store) Driver() core.Driver { return core.DriverS3 }

// splitPath parses "s3://bucket/key" into bucket and key.
func splitPath(path string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(path, "s3://")
	if trimmed == path {
		return "", "", fmt.Errorf("not an s3 path: %s", path)
	}
	bucket, key, _ = strings.Cut(trimmed, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %s", path)
	}
	return bucket, key, nil
}

func (s *Store) DownloadFiles(ctx context.Context, remote []string, destDir string) ([]string, error) {
	local := make([]string, 0, len(remote))
	for _, r := range remote {
		bucket, key, err := splitPath(r)
		if err != nil {
			return nil, err
		}
		dest := filepath.Join(destDir, filepath.Base(key))
		if err := s.fetchObject(ctx, bucket, key, dest); err != nil {
			return nil, err
		}
		local = append(local, dest)
	}
	return local, nil
}

func (s *Store) DownloadFolder(ctx context.Context, remoteFolder, destDir string) (string, error) {
	bucket, prefix, err := splitPath(strings.TrimRight(remoteFolder, "/") + "/")
	if err != nil {
		return "", err
	}
	keys, err := s.listKeys(ctx, bucket, prefix, "")
	if err != nil {
		return "", err
	}
	for _, key := range keys {
		rel := strings.TrimPrefix(key, prefix)
		if rel == "" {
			continue
		}
		dest := filepath.Join(destDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return "", err
		}
		if err := s.fetchObject(ctx, bucket, key, dest); err != nil {
			return "", err
		}
	}
	return destDir, nil
}

func (s *Store) UploadFolder(ctx context.Context, localDir, remoteFolder string) (string, error) {
	bucket, prefix, err := splitPath(strings.TrimRight(remoteFolder, "/") + "/")
	if err != nil {
		return "", err
	}
	err = filepath.WalkDir(localDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(localDir, path)
		if err != nil {
			return err
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = file.Close() }()
		key := prefix + filepath.ToSlash(rel)
		_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:               &bucket,
			Key:                  &key,
			Body:                 file,
			ServerSideEncryption: s3types.ServerSideEncryptionAes256,
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return remoteFolder, nil
}

func (s *Store) ListFiles(ctx context.Context, folder string, include, exclude []core.Pattern) ([]string, error) {
	bucket, prefix, err := splitPath(strings.TrimRight(folder, "/") + "/")
	if err != nil {
		return nil, err
	}
	// Delimiter keeps the listing to immediate children.
	keys, err := s.listKeys(ctx, bucket, prefix, "/")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, key := range keys {
		name := strings.TrimPrefix(key, prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		if core.Selected(name, include, exclude) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// listKeys pages through ListObjectsV2 and returns all object keys under
// prefix.
func (s *Store) listKeys(ctx context.Context, bucket, prefix, delimiter string) ([]string, error) {
	var keys []string
	var token *string
	for {
		input := &s3.ListObjectsV2Input{Bucket: &bucket, Prefix: &prefix, ContinuationToken: token}
		if delimiter != "" {
			input.Delimiter = &delimiter
		}
		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if out.IsTruncated != nil && *out.IsTruncated && out.NextContinuationToken != nil {
			token = out.NextContinuationToken
			continue
		}
		break
	}
	return keys, nil
}

// fetchObject streams one object to a local file via temp + rename.
func (s *Store) fetchObject(ctx context.Context, bucket, key, dest string) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return err
	}
	defer func() { _ = out.Body.Close() }()
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := io.Copy(tmp, out.Body); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
