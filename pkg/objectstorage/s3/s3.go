package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/corpora-ai/corpora/pkg/objectstorage"
)

type S3 struct {
	Endpoint  string
	Region    string
	Bucket    string
	ak        string
	sk        string
	pathStyle bool
	cli       *s3.Client
}

type Option func(*S3)

// WithPathStyle forces endpoint/bucket URLs instead of bucket.endpoint.
// MinIO and most self-hosted gateways need it.
func WithPathStyle(enable bool) Option {
	return func(s *S3) {
		s.pathStyle = enable
	}
}

func NewS3Client(endpoint, region, bucket, ak, sk string, opts ...Option) *S3 {
	cli := &S3{
		Endpoint: endpoint,
		Region:   region,
		Bucket:   bucket,
		ak:       ak,
		sk:       sk,
	}

	for _, opt := range opts {
		opt(cli)
	}

	if err := cli.setup(context.Background()); err != nil {
		panic(err)
	}

	return cli
}

func (s *S3) setup(ctx context.Context) error {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID: s.ak, SecretAccessKey: s.sk,
			},
		}),
		config.WithRegion(s.Region),
	)
	if err != nil {
		return err
	}

	s.cli = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
		}
		o.UsePathStyle = s.pathStyle
	})
	return nil
}

func (s *S3) Upload(ctx context.Context, key string, data []byte) error {
	uploader := manager.NewUploader(s.cli)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(strings.TrimPrefix(key, "/")),
		Body:   bytes.NewReader(data),
	})
	return err
}

func (s *S3) GetObject(ctx context.Context, key string) (*objectstorage.Object, error) {
	resp, err := s.cli.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(strings.TrimPrefix(key, "/")),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, objectstorage.ErrNotFound
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &objectstorage.Object{
		Data: data,
		Mime: detectMime(data),
	}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.cli.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(strings.TrimPrefix(key, "/")),
	})
	return err
}

func detectMime(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}
