package repository

import "context"

// UploadRepository copies a produced artifact to remote storage.
type UploadRepository interface {
	// Upload sends the local file and returns the remote URI.
	Upload(ctx context.Context, bucket, prefix, localPath string) (string, error)
}

// UploadRepositoryProvider builds an uploader for an AWS profile.
type UploadRepositoryProvider func(profile string) UploadRepository
