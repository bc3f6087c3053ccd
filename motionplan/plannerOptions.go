package motionplan

import (
	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/multierr"

	"go.viam.com/planningsim/utils"
)

// default values for planning options.
const (
	// Max edge length added to an RRT tree in one growth step.
	defaultBasicGrowthLimit = 20.

	// Max edge length added to an RRT* tree in one growth step.
	defaultOptimalGrowthLimit = 10.

	// Vertices closer than this to a new vertex are candidate parents and rewiring targets.
	defaultNeighborRadius = 10.

	// Probability of growing toward the finish before each sample.
	defaultGoalBias = 0.01

	// Number of samples to draw before giving up.
	defaultPlanIter = 20000

	// Number of samples handed to a tree per growth call.
	defaultSampleBatch = 100

	// Fraction of PlanIter after which progress is logged.
	defaultLoggingInterval = 0.1
)

// PlannerOptions are a set of options to be passed to a planning tree which will specify how it grows. Every
// field is an explicit value, so trees with different tuning can coexist.
type PlannerOptions struct {
	// Max length of a single edge
	GrowthLimit float64 `json:"growth_limit"`

	// Radius of the near-set used for parent selection and rewiring. Unused by RRT.
	NeighborRadius float64 `json:"neighbor_radius"`

	// Probability in [0, 1] of growing toward the finish before each sample. A step is taken when a uniform
	// draw from [0, 1) is strictly below GoalBias, so 0 never biases and 1 always does.
	GoalBias float64 `json:"goal_bias"`

	// Recompute the cost of every descendant of a rewired vertex. When false, descendant costs stay stale until
	// they are rewired themselves.
	CascadeRewire bool `json:"cascade_rewire"`

	// Number of samples GrowUntil draws before giving up
	PlanIter int `json:"plan_iter"`

	// Number of samples per GrowTree call
	SampleBatch int `json:"sample_batch"`

	// Percentage interval of max iterations after which to print debug logs
	LoggingInterval float64 `json:"logging_interval"`

	// Return from GrowUntil as soon as the finish is reached
	StopOnPath bool `json:"stop_on_path"`
}

// NewBasicPlannerOptions returns the default options for an RRT.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		GrowthLimit:     defaultBasicGrowthLimit,
		NeighborRadius:  defaultNeighborRadius,
		GoalBias:        defaultGoalBias,
		PlanIter:        defaultPlanIter,
		SampleBatch:     defaultSampleBatch,
		LoggingInterval: defaultLoggingInterval,
		StopOnPath:      true,
	}
}

// NewOptimalPlannerOptions returns the default options for an RRT*. Growth continues after the finish is
// reached so that rewiring can keep shortening the path.
func NewOptimalPlannerOptions() *PlannerOptions {
	opt := NewBasicPlannerOptions()
	opt.GrowthLimit = defaultOptimalGrowthLimit
	opt.StopOnPath = false
	return opt
}

// UpdateFromAttributes overwrites the options named in attrs, keyed by their json names.
func (p *PlannerOptions) UpdateFromAttributes(attrs map[string]interface{}) error {
	if len(attrs) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           p,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(attrs)
}

// Validate ensures all parts of the options are valid. Every problem is reported.
func (p *PlannerOptions) Validate(path string) error {
	var errs error
	if p.GrowthLimit <= 0 || !utils.Float64IsFinite(p.GrowthLimit) {
		errs = multierr.Append(errs, newInvalidOptionError(path, "growth_limit", p.GrowthLimit, "positive and finite"))
	}
	if p.NeighborRadius <= 0 || !utils.Float64IsFinite(p.NeighborRadius) {
		errs = multierr.Append(errs, newInvalidOptionError(path, "neighbor_radius", p.NeighborRadius, "positive and finite"))
	}
	if p.GoalBias < 0 || p.GoalBias > 1 {
		errs = multierr.Append(errs, newInvalidOptionError(path, "goal_bias", p.GoalBias, "in [0, 1]"))
	}
	if p.PlanIter <= 0 {
		errs = multierr.Append(errs, newInvalidOptionError(path, "plan_iter", p.PlanIter, "positive"))
	}
	if p.SampleBatch <= 0 {
		errs = multierr.Append(errs, newInvalidOptionError(path, "sample_batch", p.SampleBatch, "positive"))
	}
	if p.LoggingInterval < 0 || p.LoggingInterval > 1 {
		errs = multierr.Append(errs, newInvalidOptionError(path, "logging_interval", p.LoggingInterval, "in [0, 1]"))
	}
	return errs
}
