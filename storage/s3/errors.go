package s3

import "errors"

var (
	// ErrClientRequired is returned when an S3 client is not provided.
	ErrClientRequired = errors.New("s3 client required")

	// ErrBucketRequired is returned when a bucket name is not provided.
	ErrBucketRequired = errors.New("bucket required")
)
