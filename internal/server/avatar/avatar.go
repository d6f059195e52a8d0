// Package avatar выдает presigned URL для загрузки аватаров пользователей напрямую в S3.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/iudanet/learnhub/internal/server/config"
)

// DefaultExpiry срок действия presigned URL
const DefaultExpiry = 15 * time.Minute

// ErrUnsupportedType возвращается для content type, который нельзя загрузить как аватар
var ErrUnsupportedType = errors.New("unsupported avatar content type")

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// Upload describes one presigned PUT.
type Upload struct {
	ExpiresAt time.Time
	URL       string // куда клиент делает PUT
	Key       string
	PublicURL string // адрес объекта после загрузки
}

type putPresigner interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Presigner signs avatar uploads for a single bucket.
type Presigner struct {
	client    putPresigner
	now       func() time.Time
	bucket    string
	publicURL string
	expiry    time.Duration
}

// NewPresigner создает клиент S3 со статическими ключами. Endpoint задается для
// S3-совместимых хранилищ (MinIO); в этом случае используется path-style адресация.
func NewPresigner(ctx context.Context, cfg config.S3) (*Presigner, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newPresigner(s3.NewPresignClient(client), cfg.Bucket, cfg.PublicURL), nil
}

func newPresigner(client putPresigner, bucket, publicURL string) *Presigner {
	return &Presigner{
		client:    client,
		now:       time.Now,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		expiry:    DefaultExpiry,
	}
}

// PresignUpload returns a PUT URL for a new avatar object of the user.
func (p *Presigner) PresignUpload(ctx context.Context, userID, contentType string) (*Upload, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.NewString(), ext)

	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign avatar upload: %w", err)
	}

	return &Upload{
		URL:       req.URL,
		Key:       key,
		PublicURL: p.publicURL + "/" + key,
		ExpiresAt: p.now().Add(p.expiry),
	}, nil
}
