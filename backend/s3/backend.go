package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/shuttlefs/shuttle"
	"github.com/shuttlefs/shuttle/backend"
	"github.com/shuttlefs/shuttle/utils"
)

// Scheme defines the backend type.
const Scheme = "s3"

// Backend implements backend.SourceOpener for AWS S3.
type Backend struct {
	client  Client
	options Options
}

// NewBackend returns an S3 source backend with default options.
func NewBackend() *Backend {
	return &Backend{}
}

// WithOptions sets options for the client and returns the backend (chainable)
func (b *Backend) WithOptions(opts Options) *Backend {
	b.options = opts
	// client is reset so that a new one is created from the new options
	b.client = nil
	return b
}

// WithClient passes in an s3 client and returns the backend (chainable)
func (b *Backend) WithClient(client Client) *Backend {
	b.client = client
	return b
}

// Client returns the underlying aws s3 client, creating it lazily if necessary.
// See package docs for authentication resolution.
func (b *Backend) Client(ctx context.Context) (Client, error) {
	if b.client == nil {
		var err error
		b.client, err = getClient(ctx, b.options)
		if err != nil {
			return nil, err
		}
	}
	return b.client, nil
}

// OpenSource resolves an s3://bucket/key URI into a ready-to-read source. The
// object's total length is fixed at open time via HeadObject.
func (b *Backend) OpenSource(ctx context.Context, uri string) (shuttle.Source, error) {
	scheme, auth, p, err := utils.ParseURI(uri)
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}
	if scheme != Scheme {
		return nil, utils.WrapOpenError(fmt.Errorf("expected %s uri, got %q", Scheme, uri))
	}

	bucket := auth.Host()
	key := utils.RemoveLeadingSlash(p)
	if bucket == "" || key == "" {
		return nil, utils.WrapOpenError(fmt.Errorf("uri %q must name a bucket and an object key", uri))
	}

	client, err := b.Client(ctx)
	if err != nil {
		return nil, utils.WrapOpenError(err)
	}

	head, err := client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: s3://%s/%s", shuttle.ErrNotExist, bucket, key)
		}
		return nil, utils.WrapOpenError(err)
	}

	return &Source{
		client: client,
		bucket: bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
		ctx:    ctx,
	}, nil
}

func init() {
	// registers a default backend
	backend.RegisterSource(Scheme, NewBackend())
}
