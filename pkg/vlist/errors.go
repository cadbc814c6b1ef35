package vlist

import (
	"errors"
	"fmt"
)

// ErrTornDown is returned by every operation invoked after Teardown.
var ErrTornDown = errors.New("vlist: controller is torn down")

// ErrNoSurface is returned at construction when no display surface is
// supplied. Without one there is nothing to render into, so the
// component refuses to start instead of failing operation by
// operation later.
var ErrNoSurface = errors.New("vlist: no display surface")

// ConfigError reports an invalid geometry value. The call that
// produced it makes no state change.
type ConfigError struct {
	Field string
	Value int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vlist: invalid %s: %d", e.Field, e.Value)
}
