package storage

// NewS3ServiceWithClient exposes the client seam to tests.
func NewS3ServiceWithClient(client s3API, cfg S3Config) Service {
	return newS3Service(client, cfg)
}
