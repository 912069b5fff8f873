package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"recetario-backend/internal/utils"
)

var (
	AllowImage = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

	ErrExtensionNotAllowed = errors.New("file extension not allowed")
)

type (
	AwsS3 interface {
		UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedExts ...string) (string, error)
		UpdateFile(objectKey string, file *multipart.FileHeader, allowedExts ...string) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		panic(fmt.Sprintf("unable to load AWS config: %v", err))
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
	}
}

func extensionAllowed(fileName string, allowedExts []string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if len(allowedExts) == 0 {
		return ext, true
	}
	for _, allowed := range allowedExts {
		if ext == allowed {
			return ext, true
		}
	}
	return ext, false
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}

func (a *awsS3) putObject(objectKey string, file *multipart.FileHeader, ext string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeForExt(ext)
	}

	_, err = a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:       aws.String(a.bucket),
		Key:          aws.String(objectKey),
		Body:         src,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	return err
}

func (a *awsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedExts ...string) (string, error) {
	ext, ok := extensionAllowed(file.Filename, allowedExts)
	if !ok {
		return "", ErrExtensionNotAllowed
	}

	objectKey := fmt.Sprintf("%s/%s%s", folder, fileName, ext)
	if err := a.putObject(objectKey, file, ext); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedExts ...string) (string, error) {
	ext, ok := extensionAllowed(file.Filename, allowedExts)
	if !ok {
		return "", ErrExtensionNotAllowed
	}

	if err := a.putObject(objectKey, file, ext); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(objectKey string) error {
	_, err := a.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
