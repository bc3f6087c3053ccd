package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/planningsim/collision"
	"go.viam.com/planningsim/config"
	"go.viam.com/planningsim/spatialmath"
)

// collisionExplainer lists the obstacles the agent overlaps at a point.
type collisionExplainer interface {
	CollidingObstacles(p r3.Vector) []int
}

// ValidateAction is the corresponding Action for 'validate'.
func ValidateAction(c *cli.Context) error {
	logger := newLogger(c)
	scenario, err := loadScenario(c, logger)
	if err != nil {
		return err
	}
	obstacles, err := scenario.AllObstacles()
	if err != nil {
		return err
	}
	cs, err := scenario.BuildConfigurationSpace(logger)
	if err != nil {
		return errors.Wrap(err, "could not build configuration space")
	}

	w := c.App.Writer
	printScenarioSummary(w, scenario, len(obstacles), cs)

	explainer, ok := cs.(collisionExplainer)
	if !ok {
		plain, err := collision.NewPlainConfigurationSpace(obstacles, scenario.Agent.Radius)
		if err != nil {
			return err
		}
		explainer = plain
	}

	problems := 0
	for _, endpoint := range []struct {
		name  string
		point r3.Vector
	}{
		{"start", scenario.Agent.Start},
		{"finish", scenario.Agent.Finish},
	} {
		ok := true
		point := spatialmath.FormatR3Vector(endpoint.point)
		if !scenario.Bounds.Contains(endpoint.point) {
			ok = false
			warningf(w, "%s %s lies outside the sampling bounds %s to %s", endpoint.name, point,
				spatialmath.FormatR3Vector(scenario.Bounds.Min), spatialmath.FormatR3Vector(scenario.Bounds.Max))
		}
		if cs.CollidesAtPoint(endpoint.point) {
			ok = false
			warningf(w, "%s %s collides with %s", endpoint.name, point,
				describeObstacles(obstacles, explainer.CollidingObstacles(endpoint.point)))
		}
		if ok {
			printf(w, "%s %s: %s", endpoint.name, point, color.GreenString("free"))
		} else {
			problems++
		}
	}
	if problems > 0 {
		return errors.Errorf("scenario %s has %d invalid endpoints", scenarioName(scenario), problems)
	}
	return nil
}

func printScenarioSummary(w io.Writer, scenario *config.Scenario, obstacles int, cs collision.ConfigurationSpace) {
	t := table.NewWriter()
	t.AppendRow(table.Row{"Scenario", scenarioName(scenario)})
	t.AppendRow(table.Row{"Obstacles", obstacles})
	t.AppendRow(table.Row{"Agent radius", scenario.Agent.Radius})
	t.AppendRow(table.Row{"Bounds", spatialmath.FormatR3Vector(scenario.Bounds.Min) + " to " +
		spatialmath.FormatR3Vector(scenario.Bounds.Max)})
	t.AppendRow(table.Row{"Algorithm", scenario.Planner.Algorithm})
	t.AppendRow(table.Row{"Configuration space", scenario.ConfigurationSpace.Type})
	if bsh, ok := cs.(*collision.BoundingSphereHierarchy); ok {
		stats := bsh.Stats()
		t.AppendRow(table.Row{"Synthetic spheres", stats.SyntheticSpheres})
		t.AppendRow(table.Row{"Biggest group", stats.BiggestGroup})
		t.AppendRow(table.Row{"Hierarchy depth", stats.Depth})
	}
	printf(w, "%s", t.Render())
}

func describeObstacles(obstacles []collision.Obstacle, indices []int) string {
	descriptions := make([]string, 0, len(indices))
	for _, idx := range indices {
		descriptions = append(descriptions, fmt.Sprintf("obstacle %d (%v)", idx, obstacles[idx]))
	}
	return strings.Join(descriptions, ", ")
}
