package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/planningsim/config"
	"go.viam.com/planningsim/logging"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message prefixed with a bold cyan "Info: ".
func infof(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgCyan).Fprint(w, "Info: ")
	printf(w, format, a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: ")
	printf(w, format, a...)
}

func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(debugFlag) {
		return logging.NewDebugLogger("planningsim")
	}
	return logging.NewLogger("planningsim")
}

// loadScenario reads the scenario named by --scenario or generates the one described by --scene, then applies
// the command line overrides.
func loadScenario(c *cli.Context, logger logging.Logger) (*config.Scenario, error) {
	path := c.Path(scenarioFlag)
	kind := c.String(sceneFlag)

	var scenario *config.Scenario
	switch {
	case path != "" && kind != "":
		return nil, errors.Errorf("only one of --%s and --%s may be given", scenarioFlag, sceneFlag)
	case path != "":
		var err error
		scenario, err = config.Read(path, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read scenario %q", path)
		}
		if c.IsSet(seedFlag) {
			scenario.Planner.Seed = c.Uint64(seedFlag)
		}
	case kind != "":
		scenario = config.NewSceneScenario(config.SceneConfig{
			Kind:  kind,
			Count: c.Int(countFlag),
			Side:  c.Float64(sideFlag),
			Seed:  c.Uint64(seedFlag),
		})
	default:
		return nil, errors.Errorf("one of --%s or --%s is required", scenarioFlag, sceneFlag)
	}

	if c.IsSet(algorithmFlag) {
		scenario.Planner.Algorithm = c.String(algorithmFlag)
	}
	if c.IsSet(spaceFlag) {
		scenario.ConfigurationSpace.Type = c.String(spaceFlag)
	}
	if err := scenario.Ensure(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	return scenario, nil
}

func scenarioName(scenario *config.Scenario) string {
	switch {
	case scenario.Name != "":
		return scenario.Name
	case scenario.ConfigFilePath != "":
		return scenario.ConfigFilePath
	default:
		return "(unnamed)"
	}
}
