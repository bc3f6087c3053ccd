package logging

import (
	"testing"

	"go.viam.com/test"
)

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"Info", INFO},
		{"WARN", WARN},
		{"warning", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
	}
	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestObservedLevels(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)

	logger.Debugw("built hierarchy", "spheres", 3)
	logger.Infof("grew %d vertices", 10)
	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logs.All()[0].Message, test.ShouldEqual, "built hierarchy")
	test.That(t, logs.All()[0].ContextMap()["spheres"], test.ShouldEqual, int64(3))
	test.That(t, logs.All()[1].Message, test.ShouldEqual, "grew 10 vertices")

	logger.SetLevel(WARN)
	logger.Info("dropped")
	logger.Warn("kept")
	test.That(t, logs.FilterMessage("dropped").Len(), test.ShouldEqual, 0)
	test.That(t, logs.FilterMessage("kept").Len(), test.ShouldEqual, 1)
}

func TestSublogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("bsh")
	test.That(t, sub.Sublogger("build"), test.ShouldEqual, sub.Sublogger("build"))

	sub.Errorw("bad obstacle", "index", 2)
	test.That(t, logs.FilterLoggerName("bsh").Len(), test.ShouldEqual, 1)

	// sublogger levels are independent of the parent once created
	sub.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
}
