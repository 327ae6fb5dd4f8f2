package assets

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

var (
	s3Session       *session.Session
	s3Bucket        string
	s3Region        string
	cloudFrontURL   string
	useLocalStorage = true // Toggle: true = local, false = S3
)

// InitS3 initializes the S3 session and switches uploads to S3 mode.
func InitS3(bucket, region, cdnURL string) error {
	s3Bucket = bucket
	s3Region = region
	cloudFrontURL = cdnURL

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return err
	}

	s3Session = sess
	useLocalStorage = false
	return nil
}

// Store writes an uploaded file through whichever storage mode is active.
// Either way the key is the verbatim original filename: check-file dedup
// relies on filenames never being rewritten at write time.
func (m *Manager) Store(src io.Reader, filename, contentType string) (string, error) {
	if useLocalStorage {
		return m.StoreLocal(src, filename)
	}
	return storeToS3(src, filename, contentType)
}

func storeToS3(src io.Reader, filename, contentType string) (string, error) {
	if s3Session == nil {
		return "", fmt.Errorf("S3 not initialized, using local storage instead")
	}

	body, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	svc := s3.New(s3Session)
	_, err = svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(filename),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", err
	}

	if cloudFrontURL != "" {
		return cloudFrontURL + "/" + filename, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s3Bucket, s3Region, filename), nil
}

func GetStorageMode() string {
	if useLocalStorage {
		return "local"
	}
	return "s3"
}

func SetStorageMode(useLocal bool) {
	useLocalStorage = useLocal
}
