package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"go.viam.com/planningsim/collision"
	"go.viam.com/planningsim/config"
	"go.viam.com/planningsim/logging"
	"go.viam.com/planningsim/motionplan"
)

type planOutcome int

const (
	outcomeFound planOutcome = iota
	outcomeNotFound
	outcomeTimedOut
)

func (o planOutcome) String() string {
	switch o {
	case outcomeFound:
		return color.GreenString("found")
	case outcomeTimedOut:
		return color.YellowString("timed out")
	default:
		return color.RedString("not found")
	}
}

type planResult struct {
	run      int
	outcome  planOutcome
	path     motionplan.Path
	vertices int
	stats    motionplan.GrowthStats
	elapsed  time.Duration
}

// PlanAction is the corresponding Action for 'plan'.
func PlanAction(c *cli.Context) error {
	logger := newLogger(c)
	scenario, err := loadScenario(c, logger)
	if err != nil {
		return err
	}
	runs := c.Int(runsFlag)
	if runs < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", runsFlag, runs)
	}

	cs, err := scenario.BuildConfigurationSpace(logger)
	if err != nil {
		return errors.Wrap(err, "could not build configuration space")
	}

	ctx := c.Context
	if timeout := c.Duration(timeoutFlag); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// the configuration space is shared, every run owns its tree and sampler
	results := make([]planResult, runs)
	g, gctx := errgroup.WithContext(ctx)
	for run := 0; run < runs; run++ {
		g.Go(func() error {
			res, err := planRun(gctx, scenario, run, cs, logger)
			if err != nil {
				return errors.Wrapf(err, "run %d", run)
			}
			results[run] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printPlanResults(c.App.Writer, scenario, results)
	return nil
}

func planRun(
	ctx context.Context,
	scenario *config.Scenario,
	run int,
	cs collision.ConfigurationSpace,
	logger logging.Logger,
) (planResult, error) {
	planner, opts, err := scenario.NewPlanner(run, logger)
	if err != nil {
		return planResult{}, err
	}
	sampler, err := scenario.NewSampler(run)
	if err != nil {
		return planResult{}, err
	}

	start := time.Now()
	path, err := motionplan.GrowUntil(ctx, planner, sampler, cs, opts, logger)
	res := planResult{
		run:      run,
		path:     path,
		vertices: planner.Len(),
		stats:    planner.Stats(),
		elapsed:  time.Since(start),
	}
	switch {
	case err == nil:
		res.outcome = outcomeFound
	case errors.Is(err, motionplan.ErrPathNotFound):
		res.outcome = outcomeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		res.outcome = outcomeTimedOut
	default:
		return planResult{}, err
	}
	return res, nil
}

func printPlanResults(w io.Writer, scenario *config.Scenario, results []planResult) {
	printf(w, "Scenario %s: %s over a %s configuration space", scenarioName(scenario),
		scenario.Planner.Algorithm, scenario.ConfigurationSpace.Type)

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Run", "Result", "Cost", "Waypoints", "Vertices", "Added", "Rejected", "Discarded", "Rewired", "Time"})
	var (
		costs []float64
		times []float64
		best  *planResult
	)
	for i, res := range results {
		cost := "-"
		if res.outcome == outcomeFound {
			costs = append(costs, res.path.Cost())
			cost = fmt.Sprintf("%.3f", res.path.Cost())
			if best == nil || res.path.Cost() < best.path.Cost() {
				best = &results[i]
			}
		}
		times = append(times, res.elapsed.Seconds())
		t.AppendRow(table.Row{
			res.run, res.outcome, cost, len(res.path), res.vertices,
			res.stats.Added, res.stats.Rejected, res.stats.Discarded, res.stats.Rewired,
			res.elapsed.Round(time.Microsecond),
		})
	}
	printf(w, "%s", t.Render())

	medianTime, _ := stats.Median(times)
	if len(costs) == 0 {
		warningf(w, "no path found in %d runs (median time %.3fs)", len(results), medianTime)
		return
	}
	minCost, _ := stats.Min(costs)
	medianCost, _ := stats.Median(costs)
	maxCost, _ := stats.Max(costs)
	printf(w, "Found %d/%d paths: cost min %.3f, median %.3f, max %.3f; median time %.3fs",
		len(costs), len(results), minCost, medianCost, maxCost, medianTime)
	printf(w, "Best path (run %d): %s", best.run, best.path)
}
