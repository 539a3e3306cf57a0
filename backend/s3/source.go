package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source implements shuttle.Source for a single S3 object. Reads are served
// with ranged GetObject calls and advance a sequential offset; the object is
// never buffered whole.
type Source struct {
	client Client
	bucket string
	key    string
	size   int64
	offset int64
	ctx    context.Context
}

// Size returns the object's ContentLength as resolved at open time.
func (s *Source) Size() (int64, error) {
	return s.size, nil
}

// Read fills p from the object at the current offset using a ranged GetObject.
// It returns io.EOF once the offset reaches the object's length.
func (s *Source) Read(p []byte) (int, error) {
	if s.offset >= s.size {
		return 0, io.EOF
	}
	if remaining := s.size - s.offset; remaining < int64(len(p)) {
		p = p[:remaining]
	}
	if len(p) == 0 {
		return 0, nil
	}

	// range end is inclusive
	rng := fmt.Sprintf("bytes=%d-%d", s.offset, s.offset+int64(len(p))-1)
	out, err := s.client.GetObject(s.ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
		Range:  aws.String(rng),
	})
	if err != nil {
		return 0, err
	}
	defer func() { _ = out.Body.Close() }()

	n, err := io.ReadFull(out.Body, p)
	s.offset += int64(n)
	if err != nil {
		// the service returned fewer bytes than the range asked for
		return n, fmt.Errorf("ranged read %s returned %d bytes: %w", rng, n, err)
	}

	return n, nil
}

// Close is a no-op; ranged reads hold no persistent stream.
func (s *Source) Close() error {
	return nil
}

// String implements fmt.Stringer, returning the object's URI.
func (s *Source) String() string {
	return fmt.Sprintf("%s://%s/%s", Scheme, s.bucket, s.key)
}
