package simulate

import (
	"errors"
)

// Sentinel error kinds for this package.
var (
	ErrBadConfig = errors.New("invalid simulation config")
)
