package scheduler

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrBadCronSpec = errors.New("invalid cron spec")
	ErrRunFailed   = errors.New("digest run failed")
)
