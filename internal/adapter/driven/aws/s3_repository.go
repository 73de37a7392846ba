package aws

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/datamart-reports/internal/domain/repository"
)

// putObjectAPI is the part of the S3 client the uploader needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3RepositoryImpl implementa o UploadRepository com cache do cliente S3.
type S3RepositoryImpl struct {
	profile string
	client  putObjectAPI
	mu      sync.Mutex
}

// NewS3Repository cria um uploader que usa o perfil AWS informado
// (vazio usa a cadeia padrão de credenciais).
func NewS3Repository(profile string) repository.UploadRepository {
	return &S3RepositoryImpl{profile: profile}
}

func (r *S3RepositoryImpl) getClient(ctx context.Context) (putObjectAPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %q: %w", r.profile, err)
	}

	r.client = s3.NewFromConfig(cfg)
	return r.client, nil
}

// Upload envia o arquivo local para s3://bucket/prefix/<nome do arquivo>.
func (r *S3RepositoryImpl) Upload(ctx context.Context, bucket, prefix, localPath string) (string, error) {
	client, err := r.getClient(ctx)
	if err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening %s for upload: %w", localPath, err)
	}
	defer file.Close()

	key := ObjectKey(prefix, localPath)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading %s to bucket %s: %w", localPath, bucket, err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

// ObjectKey joins the prefix and the file's base name into an S3 key.
func ObjectKey(prefix, localPath string) string {
	base := filepath.Base(localPath)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return base
	}
	return path.Join(prefix, base)
}
