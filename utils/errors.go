package utils

import (
	"fmt"

	"github.com/shuttlefs/shuttle"
)

// WrapSourceReadError chains a source transport failure to shuttle.ErrSourceRead
func WrapSourceReadError(err error) error {
	return fmt.Errorf("%w: %w", shuttle.ErrSourceRead, err)
}

// WrapSinkWriteError chains a sink transport failure to shuttle.ErrSinkWrite
func WrapSinkWriteError(err error) error {
	return fmt.Errorf("%w: %w", shuttle.ErrSinkWrite, err)
}

// WrapOpenError returns a wrapped open error
func WrapOpenError(err error) error {
	return fmt.Errorf("open error: %w", err)
}

// WrapCloseError returns a wrapped close error
func WrapCloseError(err error) error {
	return fmt.Errorf("close error: %w", err)
}
