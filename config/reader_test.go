package config

import (
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/planningsim/logging"
)

func TestRead(t *testing.T) {
	t.Setenv("PLANNINGSIM_ALGORITHM", "rrtstar")
	logger := logging.NewBlankLogger("planningsim")
	scenario, err := Read("data/pillars.json", logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, scenario.Name, test.ShouldEqual, "pillars")
	test.That(t, scenario.ConfigFilePath, test.ShouldEqual, "data/pillars.json")
	test.That(t, scenario.Agent.Start, test.ShouldResemble, r3.Vector{X: -50})
	test.That(t, scenario.Obstacles, test.ShouldHaveLength, 3)
	test.That(t, scenario.Obstacles[0].Label, test.ShouldEqual, "blocker")
	test.That(t, scenario.Planner.Algorithm, test.ShouldEqual, AlgorithmRRTStar)
	test.That(t, *scenario.ConfigurationSpace.CompressionSlack, test.ShouldEqual, 50.)

	opts, err := scenario.PlannerOptions()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts.GrowthLimit, test.ShouldEqual, 15.)
	test.That(t, opts.NeighborRadius, test.ShouldEqual, 10.)

	// log patterns apply to the loggers the scenario's components create
	test.That(t, logger.Sublogger("bsh").GetLevel(), test.ShouldEqual, logging.WARN)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read("data/missing.json", logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFromReaderDefaults(t *testing.T) {
	input := `{
		"agent": {"radius": 0.5, "finish": {"x": 10}},
		"scene": {"kind": "zigzag"},
		"bounds": {"max": {"x": 10, "y": 10}}
	}`
	scenario, err := FromReader("", strings.NewReader(input), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scenario.Planner.Algorithm, test.ShouldEqual, AlgorithmRRT)
	test.That(t, scenario.ConfigurationSpace.Type, test.ShouldEqual, SpaceBSH)
	test.That(t, scenario.ConfigurationSpace.CompressionSlack, test.ShouldBeNil)
}

func TestFromReaderErrors(t *testing.T) {
	logger := logging.NewTestLogger(t)

	t.Run("malformed json", func(t *testing.T) {
		_, err := FromReader("", strings.NewReader(`{"agent": `), logger)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode Scenario from json")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := FromReader("", strings.NewReader(`{"agnet": {}}`), logger)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("invalid scenario", func(t *testing.T) {
		input := `{
			"agent": {"radius": -1},
			"obstacles": [{"center": {}, "radius": 1}, {"center": {}, "radius": -3}],
			"planner": {"algorithm": "prm"}
		}`
		_, err := FromReader("", strings.NewReader(input), logger)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "invalid scenario")
		test.That(t, err.Error(), test.ShouldContainSubstring, "radius must be a finite, non-negative number")
		test.That(t, err.Error(), test.ShouldContainSubstring, "obstacles.1")
		test.That(t, err.Error(), test.ShouldNotContainSubstring, "obstacles.0")
		test.That(t, err.Error(), test.ShouldContainSubstring, `unknown algorithm "prm"`)
	})
}
