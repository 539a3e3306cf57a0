package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shuttlefs/shuttle"
)

const (
	kibibyte = 1 << 10
	mebibyte = 1 << 20
	gibibyte = 1 << 30
)

// ParseWriteSize resolves a human-readable write-size specification to a byte
// count. A bare number is taken as bytes; "KB", "MB", and "GB" suffixes are
// recognized case-insensitively and use a base of 1024. The numeric portion
// must be a positive integer.
//
// Errors wrap shuttle.ErrInvalidWriteSize so callers can detect a bad
// specification before any connection is opened.
func ParseWriteSize(spec string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(spec))
	if s == "" {
		return 0, fmt.Errorf("%w: empty specification", shuttle.ErrInvalidWriteSize)
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "KB"):
		multiplier = kibibyte
		s = strings.TrimSpace(strings.TrimSuffix(s, "KB"))
	case strings.HasSuffix(s, "MB"):
		multiplier = mebibyte
		s = strings.TrimSpace(strings.TrimSuffix(s, "MB"))
	case strings.HasSuffix(s, "GB"):
		multiplier = gibibyte
		s = strings.TrimSpace(strings.TrimSuffix(s, "GB"))
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", shuttle.ErrInvalidWriteSize, spec)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %q resolves to a non-positive size", shuttle.ErrInvalidWriteSize, spec)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("%w: %q overflows", shuttle.ErrInvalidWriteSize, spec)
	}

	return n * multiplier, nil
}
