package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/ericfrick132/beauty-salon-sub003/internal/config"
)

const maxLogoWidth = 512

// Uploader reencoda imagens para webp e publica no S3.
type Uploader struct {
	client *s3.Client
	bucket string
	region string
}

func NewUploader(cfg *config.Config) *Uploader {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	})

	return &Uploader{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
	}
}

// UploadLogo limita a largura, converte para webp e envia. Devolve a URL
// pública do objeto.
func (u *Uploader) UploadLogo(
	ctx context.Context,
	salonID uint,
	r io.Reader,
) (string, error) {

	src, _, err := image.Decode(r)
	if err != nil {
		return "", err
	}

	img := src
	b := src.Bounds()
	if b.Dx() > maxLogoWidth {
		h := b.Dy() * maxLogoWidth / b.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, maxLogoWidth, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("salons/%d/logo.webp", salonID)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
