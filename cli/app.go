// Package cli contains the planningsim command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// CLI flags.
const (
	debugFlag = "debug"

	scenarioFlag  = "scenario"
	sceneFlag     = "scene"
	countFlag     = "count"
	sideFlag      = "side"
	seedFlag      = "seed"
	algorithmFlag = "algorithm"
	spaceFlag     = "space"
	runsFlag      = "runs"
	timeoutFlag   = "timeout"

	queriesFlag = "queries"
	workersFlag = "workers"
	plotFlag    = "plot"
)

// scenarioFlags select the planning problem. Either a scenario file or a generated scene.
var scenarioFlags = []cli.Flag{
	&cli.PathFlag{
		Name:    scenarioFlag,
		Aliases: []string{"c"},
		Usage:   "load the scenario from `FILE`",
	},
	&cli.StringFlag{
		Name:  sceneFlag,
		Usage: "generate a scene of the given kind (band|zigzag) instead of loading a scenario file",
	},
	&cli.IntFlag{
		Name:  countFlag,
		Usage: "number of obstacles in a generated band scene",
		Value: 200,
	},
	&cli.Float64Flag{
		Name:  sideFlag,
		Usage: "half width of a generated scene",
	},
	&cli.Uint64Flag{
		Name:  seedFlag,
		Usage: "random seed for scene generation and planning",
	},
	&cli.StringFlag{
		Name:  spaceFlag,
		Usage: "override the configuration space type (bsh|plain|indexed)",
	},
}

var app = &cli.App{
	Name:            "planningsim",
	Usage:           "plan paths for a spherical agent through a field of spherical obstacles",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "plan",
			Usage:     "grow planning trees over a scenario and report the paths found",
			UsageText: "planningsim plan (--scenario <file> | --scene <kind>) [other options]",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:  algorithmFlag,
					Usage: "override the planning algorithm (rrt|rrtstar)",
				},
				&cli.IntFlag{
					Name:  runsFlag,
					Usage: "number of independently seeded runs, planned in parallel",
					Value: 1,
				},
				&cli.DurationFlag{
					Name:  timeoutFlag,
					Usage: "give up on runs that take longer than this",
				},
			}, scenarioFlags...),
			Action: PlanAction,
		},
		{
			Name:      "bench",
			Usage:     "compare collision query times of the bounding sphere hierarchy, R-tree and brute force oracles",
			UsageText: "planningsim bench (--scenario <file> | --scene <kind>) [other options]",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  queriesFlag,
					Usage: "number of random segment queries per oracle",
					Value: 10000,
				},
				&cli.IntFlag{
					Name:  workersFlag,
					Usage: "number of goroutines issuing queries",
					Value: 4,
				},
				&cli.PathFlag{
					Name:  plotFlag,
					Usage: "save a bar chart of median query times to `FILE` (.png, .svg or .pdf)",
				},
			}, scenarioFlags...),
			Action: BenchAction,
		},
		{
			Name:      "validate",
			Usage:     "check a scenario and report whether its start and finish are free",
			UsageText: "planningsim validate (--scenario <file> | --scene <kind>)",
			Flags:     scenarioFlags,
			Action:    ValidateAction,
		},
		{
			Name:      "schema",
			Usage:     "print the JSON schema of scenario files or of planner attributes",
			UsageText: "planningsim schema [scenario|planner_attributes]",
			Action:    SchemaAction,
		},
		{
			Name:   "version",
			Usage:  "print version info for this program",
			Action: VersionAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
