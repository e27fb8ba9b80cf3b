package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

const s3Scheme = "s3"

// Opener resolves an extract location to a readable stream. Locations are
// local paths or s3://bucket/key URIs.
type Opener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// ObjectGetter is the subset of the S3 client used to fetch extracts.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type opener struct {
	client ObjectGetter
}

// NewOpener returns an Opener backed by client. A nil client is created
// lazily from the default AWS configuration the first time an s3 location
// is opened.
func NewOpener(client ObjectGetter) Opener {
	return &opener{client: client}
}

func (o *opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, ok, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}
	if !ok {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", location, err)
		}
		return f, nil
	}

	client, err := o.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("bucket", bucket).
		Str("key", key).
		Msg("fetching extract from s3")

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3 object %s: %w", location, err)
	}
	return out.Body, nil
}

func (o *opener) s3Client(ctx context.Context) (ObjectGetter, error) {
	if o.client != nil {
		return o.client, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	o.client = s3.NewFromConfig(cfg)
	return o.client, nil
}

// ParseS3Location splits an s3://bucket/key URI. ok is false for any other
// location.
func ParseS3Location(location string) (bucket, key string, ok bool, err error) {
	if !strings.HasPrefix(location, s3Scheme+"://") {
		return "", "", false, nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", "", true, fmt.Errorf("parse s3 location %q: %w", location, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", true, fmt.Errorf("s3 location %q must be s3://bucket/key", location)
	}
	return u.Host, key, true, nil
}
