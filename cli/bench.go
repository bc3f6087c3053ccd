package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	// formats accepted by --plot
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"go.viam.com/planningsim/collision"
	"go.viam.com/planningsim/config"
	"go.viam.com/planningsim/logging"
)

// Oracles in the order they are benchmarked. The brute force oracle comes first as the reference.
var benchSpaces = []string{config.SpacePlain, config.SpaceBSH, config.SpaceIndexed}

type segmentQuery struct {
	from, to r3.Vector
}

type benchResult struct {
	space string
	build time.Duration
	// per query times in microseconds
	times []float64
	hits  []bool
}

func (res *benchResult) hitCount() int {
	n := 0
	for _, hit := range res.hits {
		if hit {
			n++
		}
	}
	return n
}

// BenchAction is the corresponding Action for 'bench'.
func BenchAction(c *cli.Context) error {
	logger := newLogger(c)
	scenario, err := loadScenario(c, logger)
	if err != nil {
		return err
	}
	n := c.Int(queriesFlag)
	if n < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", queriesFlag, n)
	}
	workers := c.Int(workersFlag)
	if workers < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", workersFlag, workers)
	}

	queries, err := benchQueries(scenario, n)
	if err != nil {
		return err
	}

	results := make([]*benchResult, 0, len(benchSpaces))
	for _, space := range benchSpaces {
		res, err := benchSpace(c.Context, scenario, space, queries, workers, logger)
		if err != nil {
			return errors.Wrapf(err, "could not benchmark %s configuration space", space)
		}
		results = append(results, res)
	}

	reference := results[0]
	for _, res := range results[1:] {
		disagreements := 0
		for i := range queries {
			if res.hits[i] != reference.hits[i] {
				disagreements++
			}
		}
		if disagreements > 0 {
			return errors.Errorf("%s configuration space disagrees with %s on %d of %d queries",
				res.space, reference.space, disagreements, len(queries))
		}
	}

	medians, err := printBenchResults(c.App.Writer, scenario, results)
	if err != nil {
		return err
	}

	if plotPath := c.Path(plotFlag); plotPath != "" {
		if err := saveBenchPlot(plotPath, scenarioName(scenario), medians); err != nil {
			return errors.Wrapf(err, "could not save plot to %q", plotPath)
		}
		infof(c.App.Writer, "saved plot to %s", plotPath)
	}
	return nil
}

// benchQueries draws n random segments from the scenario bounds.
func benchQueries(scenario *config.Scenario, n int) ([]segmentQuery, error) {
	sampler, err := scenario.NewSampler(0)
	if err != nil {
		return nil, err
	}
	queries := make([]segmentQuery, n)
	for i := range queries {
		queries[i] = segmentQuery{from: sampler.Sample(), to: sampler.Sample()}
	}
	return queries, nil
}

// benchSpace builds one configuration space and answers every query with it, spreading the queries over the
// given number of goroutines.
func benchSpace(
	ctx context.Context,
	scenario *config.Scenario,
	space string,
	queries []segmentQuery,
	workers int,
	logger logging.Logger,
) (*benchResult, error) {
	start := time.Now()
	cs, err := scenario.BuildConfigurationSpaceOfType(space, logger)
	if err != nil {
		return nil, err
	}
	res := &benchResult{
		space: space,
		build: time.Since(start),
		times: make([]float64, len(queries)),
		hits:  make([]bool, len(queries)),
	}

	chunk := (len(queries) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(queries); lo += chunk {
		hi := min(lo+chunk, len(queries))
		g.Go(func() error {
			return runQueries(gctx, cs, queries, res, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debugw("benchmarked configuration space", "type", space, "queries", len(queries), "build", res.build)
	return res, nil
}

// runQueries answers queries[lo:hi], writing only to that range of res.
func runQueries(ctx context.Context, cs collision.ConfigurationSpace, queries []segmentQuery, res *benchResult, lo, hi int) error {
	for i := lo; i < hi; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		start := time.Now()
		res.hits[i] = cs.CollidesOnSegment(queries[i].from, queries[i].to)
		res.times[i] = float64(time.Since(start).Nanoseconds()) / 1e3
	}
	return nil
}

// printBenchResults renders the timing table and returns the median query time of each oracle.
func printBenchResults(w io.Writer, scenario *config.Scenario, results []*benchResult) ([]namedMedian, error) {
	obstacles, err := scenario.AllObstacles()
	if err != nil {
		return nil, err
	}
	printf(w, "Scenario %s: %d obstacles, %d segment queries, %d colliding",
		scenarioName(scenario), len(obstacles), len(results[0].hits), results[0].hitCount())

	referenceTotal := floats.Sum(results[0].times)
	medians := make([]namedMedian, 0, len(results))

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Configuration space", "Build", "Median (µs)", "P95 (µs)", "Total (ms)", "Speedup"})
	for _, res := range results {
		median, err := stats.Median(res.times)
		if err != nil {
			return nil, err
		}
		p95, err := stats.Percentile(res.times, 95)
		if err != nil {
			return nil, err
		}
		total := floats.Sum(res.times)
		speedup := "-"
		if total > 0 {
			speedup = fmt.Sprintf("%.2fx", referenceTotal/total)
		}
		t.AppendRow(table.Row{
			res.space, res.build.Round(time.Microsecond),
			fmt.Sprintf("%.3f", median), fmt.Sprintf("%.3f", p95), fmt.Sprintf("%.3f", total/1e3), speedup,
		})
		medians = append(medians, namedMedian{name: res.space, median: median})
	}
	printf(w, "%s", t.Render())
	return medians, nil
}

type namedMedian struct {
	name   string
	median float64
}

// saveBenchPlot writes a bar chart of median query times. The file extension picks the format.
func saveBenchPlot(path, title string, medians []namedMedian) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Median segment query time: %s", title)
	p.Y.Label.Text = "µs"

	values := make(plotter.Values, 0, len(medians))
	names := make([]string, 0, len(medians))
	for _, m := range medians {
		values = append(values, m.median)
		names = append(names, m.name)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(names...)

	return p.Save(4*vg.Inch, 4*vg.Inch, path)
}
