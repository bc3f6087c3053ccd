package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

const openScenario = `{
  "name": "open",
  "agent": {"radius": 0.5, "start": {"x": 0, "y": 0, "z": 0}, "finish": {"x": 10, "y": 0, "z": 0}},
  "obstacles": [{"center": {"x": 0, "y": 15, "z": 0}, "radius": 2}],
  "bounds": {"min": {"x": -20, "y": -20, "z": 0}, "max": {"x": 20, "y": 20, "z": 0}},
  "planner": {"seed": 7, "attributes": {"plan_iter": 3000}}
}`

const blockedStartScenario = `{
  "name": "blocked",
  "agent": {"radius": 1, "start": {"x": 0, "y": 0, "z": 0}, "finish": {"x": 50, "y": 0, "z": 0}},
  "obstacles": [
    {"center": {"x": 1, "y": 0, "z": 0}, "radius": 3, "label": "wall"},
    {"center": {"x": 0, "y": 30, "z": 0}, "radius": 3}
  ],
  "bounds": {"min": {"x": -20, "y": -20, "z": -20}, "max": {"x": 20, "y": 20, "z": 20}}
}`

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.json")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func runApp(args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	err := NewApp(out, errOut).Run(append([]string{"planningsim"}, args...))
	return out.String(), errOut.String(), err
}

func TestPlanAction(t *testing.T) {
	path := writeScenario(t, openScenario)

	t.Run("single run", func(t *testing.T) {
		out, _, err := runApp("plan", "--scenario", path)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "Scenario open: rrt over a bsh configuration space")
		test.That(t, out, test.ShouldContainSubstring, "Found 1/1 paths")
		test.That(t, out, test.ShouldContainSubstring, "Best path (run 0): (0.000, 0.000, 0.000) -> ")
		test.That(t, out, test.ShouldContainSubstring, "(10.000, 0.000, 0.000)")
	})

	t.Run("parallel runs with overrides", func(t *testing.T) {
		out, _, err := runApp("plan", "--scenario", path, "--runs", "3", "--algorithm", "rrtstar", "--space", "indexed")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "rrtstar over a indexed configuration space")
		test.That(t, out, test.ShouldContainSubstring, "REWIRED")
		test.That(t, out, test.ShouldContainSubstring, "Found 3/3 paths")
	})

	t.Run("generated scene", func(t *testing.T) {
		out, _, err := runApp("plan", "--scene", "zigzag", "--seed", "3", "--runs", "2")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "Scenario zigzag")
	})
}

func TestPlanActionErrors(t *testing.T) {
	path := writeScenario(t, openScenario)

	_, _, err := runApp("plan")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "one of --scenario or --scene is required")

	_, _, err = runApp("plan", "--scenario", path, "--scene", "band")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "only one of --scenario and --scene")

	_, _, err = runApp("plan", "--scenario", path, "--runs", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "--runs must be at least 1")

	_, _, err = runApp("plan", "--scenario", path, "--algorithm", "prm")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid scenario")

	_, _, err = runApp("plan", "--scenario", filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "could not read scenario")
}

func TestBenchAction(t *testing.T) {
	plotPath := filepath.Join(t.TempDir(), "bench.png")
	out, _, err := runApp("bench", "--scene", "band", "--count", "60", "--seed", "2",
		"--queries", "500", "--workers", "3", "--plot", plotPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "Scenario band: 60 obstacles, 500 segment queries")
	for _, space := range benchSpaces {
		test.That(t, out, test.ShouldContainSubstring, space)
	}
	test.That(t, out, test.ShouldContainSubstring, "SPEEDUP")
	test.That(t, out, test.ShouldContainSubstring, "saved plot to "+plotPath)

	info, err := os.Stat(plotPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)

	_, _, err = runApp("bench", "--scene", "band", "--workers", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "--workers must be at least 1")
}

func TestValidateAction(t *testing.T) {
	t.Run("free endpoints", func(t *testing.T) {
		out, _, err := runApp("validate", "--scenario", writeScenario(t, openScenario))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "start (0.000, 0.000, 0.000): free")
		test.That(t, out, test.ShouldContainSubstring, "finish (10.000, 0.000, 0.000): free")
		test.That(t, out, test.ShouldContainSubstring, "Hierarchy depth")
	})

	for _, space := range []string{"bsh", "indexed"} {
		t.Run("blocked start "+space, func(t *testing.T) {
			out, _, err := runApp("validate", "--scenario", writeScenario(t, blockedStartScenario), "--space", space)
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, "scenario blocked has 2 invalid endpoints")
			test.That(t, out, test.ShouldContainSubstring, "Warning: start (0.000, 0.000, 0.000) collides with obstacle 0 (wall: ")
			test.That(t, out, test.ShouldContainSubstring, "Warning: finish (50.000, 0.000, 0.000) lies outside the sampling bounds")
		})
	}
}

func TestSchemaAction(t *testing.T) {
	out, _, err := runApp("schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"configuration_space"`)

	out, _, err = runApp("schema", "planner_attributes")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"stop_on_path"`)

	_, _, err = runApp("schema", "robot")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected one of planner_attributes, scenario")
}

func TestVersionAction(t *testing.T) {
	out, _, err := runApp("version")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "Version ")
}
