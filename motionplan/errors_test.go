package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func TestInvalidOptionError(t *testing.T) {
	err := newInvalidOptionError("planner", "growth_limit", -1., "positive")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "planner")
	test.That(t, err.Error(), test.ShouldContainSubstring, "growth_limit must be positive, got -1")
}
