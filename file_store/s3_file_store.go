package file_store

import (
	"context"
	"io"
	"strings"

	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

type S3FileStore struct {
	bucket    string
	keyPrefix string
	publicUrl string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

// NewS3FileStore creates a store on bucket. publicUrl is the url prefix
// objects are served from, without trailing slash.
func NewS3FileStore(bucket, region, keyPrefix, publicUrl string) (*S3FileStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to create aws session")
	}

	return &S3FileStore{
		bucket:    bucket,
		keyPrefix: keyPrefix,
		publicUrl: strings.TrimSuffix(publicUrl, "/"),
		uploader:  s3manager.NewUploader(sess),
		svc:       s3.New(sess),
	}, nil
}

func (s *S3FileStore) Store(ctx context.Context, fileName string, contentType string, body io.Reader) (string, error) {
	key := GenerateKey(s.keyPrefix, fileName)
	input := &s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return "", errors.Wrapf(err, "fail to upload %s", fileName)
	}
	return s.GetUrlFromKey(key), nil
}

func (s *S3FileStore) Delete(ctx context.Context, url string) error {
	key, ok := KeyFromUrl(s.publicUrl, url)
	if !ok {
		return nil
	}
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.Wrapf(err, "fail to delete %s", key)
	}
	Logger.Log.WithField("key", key).Info("media deleted")
	return nil
}

func (s *S3FileStore) Owns(url string) bool {
	_, ok := KeyFromUrl(s.publicUrl, url)
	return ok
}

func (s *S3FileStore) GetUrlFromKey(key string) string {
	return s.publicUrl + "/" + key
}
