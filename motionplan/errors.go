package motionplan

import (
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// ErrPathNotFound is returned by Search when no vertex of the tree sits exactly on the finish position.
var ErrPathNotFound = errors.New("no path to finish found")

func newInvalidOptionError(path, field string, value interface{}, reason string) error {
	return utils.NewConfigValidationError(path, errors.Errorf("%s must be %s, got %v", field, reason, value))
}

func newBadEndpointError(name string, p interface{}) error {
	return errors.Errorf("%s position must be finite, got %v", name, p)
}
