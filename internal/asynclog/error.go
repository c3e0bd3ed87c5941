package asynclog

import (
	"errors"
	"fmt"
)

// ErrSingleByteWrite occurs when writing a single byte to a [Writer].
var ErrSingleByteWrite = fmt.Errorf("single-byte writes: %w", errors.ErrUnsupported)
