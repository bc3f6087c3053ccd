// Package config defines the scenario files that describe a planning problem and converts them into
// configuration spaces, planners and samplers.
package config

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/planningsim/collision"
	"go.viam.com/planningsim/logging"
	"go.viam.com/planningsim/spatialmath"
	rutils "go.viam.com/planningsim/utils"
)

// Supported planning algorithms.
const (
	AlgorithmRRT     = "rrt"
	AlgorithmRRTStar = "rrtstar"
)

// Supported configuration space types.
const (
	SpaceBSH     = "bsh"
	SpacePlain   = "plain"
	SpaceIndexed = "indexed"
)

// A Scenario describes a single planning problem: the agent, the obstacles it must avoid, the region samples
// are drawn from, and how to plan.
type Scenario struct {
	Name               string                        `json:"name,omitempty"`
	Agent              AgentConfig                   `json:"agent"`
	Obstacles          []collision.Obstacle          `json:"obstacles,omitempty"`
	Scene              *SceneConfig                  `json:"scene,omitempty"`
	Bounds             BoundsConfig                  `json:"bounds"`
	Planner            PlannerConfig                 `json:"planner"`
	ConfigurationSpace ConfigurationSpaceConfig      `json:"configuration_space"`
	LogConfig          []logging.LoggerPatternConfig `json:"log,omitempty"`

	// ConfigFilePath is the path the scenario was read from, if any.
	ConfigFilePath string `json:"-"`
}

// AgentConfig describes the spherical agent and where it travels.
type AgentConfig struct {
	Radius float64   `json:"radius"`
	Start  r3.Vector `json:"start"`
	Finish r3.Vector `json:"finish"`
}

// Validate ensures all parts of the config are valid.
func (config *AgentConfig) Validate(path string) error {
	var errs error
	if config.Radius < 0 || !rutils.Float64IsFinite(config.Radius) {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.Errorf("radius must be a finite, non-negative number, got %v", config.Radius)))
	}
	if !spatialmath.R3VectorIsFinite(config.Start) {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, errors.Errorf("start must be finite, got %v", config.Start)))
	}
	if !spatialmath.R3VectorIsFinite(config.Finish) {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, errors.Errorf("finish must be finite, got %v", config.Finish)))
	}
	return errs
}

// BoundsConfig is the axis-aligned box samples are drawn from. Min and Max may coincide on an axis to keep
// planning in a plane.
type BoundsConfig struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// Validate ensures all parts of the config are valid.
func (config *BoundsConfig) Validate(path string) error {
	if !spatialmath.R3VectorIsFinite(config.Min) || !spatialmath.R3VectorIsFinite(config.Max) {
		return utils.NewConfigValidationError(path, errors.New("min and max must be finite"))
	}
	if config.Min.X > config.Max.X || config.Min.Y > config.Max.Y || config.Min.Z > config.Max.Z {
		return utils.NewConfigValidationError(path, errors.Errorf("min %v exceeds max %v", config.Min, config.Max))
	}
	return nil
}

// Contains returns whether p lies within the bounds.
func (config *BoundsConfig) Contains(p r3.Vector) bool {
	return p.X >= config.Min.X && p.X <= config.Max.X &&
		p.Y >= config.Min.Y && p.Y <= config.Max.Y &&
		p.Z >= config.Min.Z && p.Z <= config.Max.Z
}

// PlannerConfig selects and tunes the planning tree.
type PlannerConfig struct {
	Algorithm string `json:"algorithm,omitempty"`
	// Seed of the random sources used for sampling and goal biasing. Run i of a scenario uses Seed+i.
	Seed uint64 `json:"seed,omitempty"`
	// Attributes override fields of the algorithm's default motionplan.PlannerOptions, keyed by json name.
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (config *PlannerConfig) Validate(path string) error {
	switch config.Algorithm {
	case AlgorithmRRT, AlgorithmRRTStar:
	case "":
		return utils.NewConfigValidationFieldRequiredError(path, "algorithm")
	default:
		return utils.NewConfigValidationError(path, errors.Errorf("unknown algorithm %q", config.Algorithm))
	}
	if _, err := config.options(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}

// ConfigurationSpaceConfig selects the collision oracle.
type ConfigurationSpaceConfig struct {
	Type string `json:"type,omitempty"`
	// CompressionSlack overrides the BSH construction default.
	CompressionSlack *float64 `json:"compression_slack,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (config *ConfigurationSpaceConfig) Validate(path string) error {
	switch config.Type {
	case SpaceBSH, SpacePlain, SpaceIndexed:
	case "":
		return utils.NewConfigValidationFieldRequiredError(path, "type")
	default:
		return utils.NewConfigValidationError(path, errors.Errorf("unknown configuration space type %q", config.Type))
	}
	if config.CompressionSlack != nil && (*config.CompressionSlack < 0 || !rutils.Float64IsFinite(*config.CompressionSlack)) {
		return utils.NewConfigValidationError(path,
			errors.Errorf("compression_slack must be a finite, non-negative number, got %v", *config.CompressionSlack))
	}
	return nil
}

// Ensure fills in defaults and ensures all parts of the scenario are valid. Every problem found is reported.
func (s *Scenario) Ensure() error {
	if s.Planner.Algorithm == "" {
		s.Planner.Algorithm = AlgorithmRRT
	}
	if s.ConfigurationSpace.Type == "" {
		s.ConfigurationSpace.Type = SpaceBSH
	}

	errs := multierr.Combine(
		s.Agent.Validate("agent"),
		s.Bounds.Validate("bounds"),
		s.Planner.Validate("planner"),
		s.ConfigurationSpace.Validate("configuration_space"),
	)
	if len(s.Obstacles) == 0 && s.Scene == nil {
		errs = multierr.Append(errs, errors.New("scenario must list obstacles or generate a scene"))
	}
	for idx, o := range s.Obstacles {
		if _, err := spatialmath.NewSphere(o.Center, o.Radius); err != nil {
			errs = multierr.Append(errs, utils.NewConfigValidationError(indexedPath("obstacles", idx), err))
		}
	}
	if s.Scene != nil {
		errs = multierr.Append(errs, s.Scene.Validate("scene"))
	}
	for idx, lc := range s.LogConfig {
		if !logging.ValidatePattern(lc.Pattern) {
			errs = multierr.Append(errs, utils.NewConfigValidationError(indexedPath("log", idx),
				errors.Errorf("invalid logger pattern %q", lc.Pattern)))
		}
		if _, err := logging.LevelFromString(lc.Level); err != nil {
			errs = multierr.Append(errs, utils.NewConfigValidationError(indexedPath("log", idx), err))
		}
	}
	return errs
}

func indexedPath(field string, idx int) string {
	return fmt.Sprintf("%s.%d", field, idx)
}
