package utils

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// StorageClient uploads listing images to an S3-compatible object store.
type StorageClient struct {
	bucket        string
	publicBaseURL string
	s3            *s3.S3
}

func NewStorageClient(endpoint, region, bucket, accessKey, secretKey, publicBaseURL string) *StorageClient {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(
			accessKey, secretKey, "",
		),
	}))
	return &StorageClient{
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		s3:            s3.New(sess),
	}
}

// UploadFile stores the file under folder/fileName with public-read access
// and returns the publicly resolvable URL.
func (c *StorageClient) UploadFile(file []byte, fileName, folder, contentType string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := c.s3.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s", c.publicBaseURL, filePath), nil
}
