package config

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"go.viam.com/planningsim/collision"
	"go.viam.com/planningsim/logging"
	"go.viam.com/planningsim/motionplan"
)

// AllObstacles returns the listed obstacles followed by the generated scene, if any.
func (s *Scenario) AllObstacles() ([]collision.Obstacle, error) {
	obstacles := append([]collision.Obstacle(nil), s.Obstacles...)
	if s.Scene != nil {
		generated, err := GenerateScene(*s.Scene)
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, generated...)
	}
	return obstacles, nil
}

// BuildConfigurationSpace builds the configured collision oracle over every obstacle of the scenario.
func (s *Scenario) BuildConfigurationSpace(logger logging.Logger) (collision.ConfigurationSpace, error) {
	obstacles, err := s.AllObstacles()
	if err != nil {
		return nil, err
	}
	return s.buildConfigurationSpace(s.ConfigurationSpace.Type, obstacles, logger)
}

// BuildConfigurationSpaceOfType is like BuildConfigurationSpace but ignores the configured type.
func (s *Scenario) BuildConfigurationSpaceOfType(spaceType string, logger logging.Logger) (collision.ConfigurationSpace, error) {
	obstacles, err := s.AllObstacles()
	if err != nil {
		return nil, err
	}
	return s.buildConfigurationSpace(spaceType, obstacles, logger)
}

func (s *Scenario) buildConfigurationSpace(
	spaceType string,
	obstacles []collision.Obstacle,
	logger logging.Logger,
) (collision.ConfigurationSpace, error) {
	var (
		cs  collision.ConfigurationSpace
		err error
	)
	switch spaceType {
	case SpaceBSH:
		opts := collision.NewBSHOptions()
		if s.ConfigurationSpace.CompressionSlack != nil {
			opts.CompressionSlack = *s.ConfigurationSpace.CompressionSlack
		}
		cs, err = collision.NewBoundingSphereHierarchy(obstacles, s.Agent.Radius, opts, logger.Sublogger("bsh"))
	case SpacePlain:
		cs, err = collision.NewPlainConfigurationSpace(obstacles, s.Agent.Radius)
	case SpaceIndexed:
		cs, err = collision.NewIndexedConfigurationSpace(obstacles, s.Agent.Radius)
	default:
		err = errors.Errorf("unknown configuration space type %q", spaceType)
	}
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// PlannerOptions returns the algorithm's default options with the configured attributes applied.
func (s *Scenario) PlannerOptions() (*motionplan.PlannerOptions, error) {
	return s.Planner.options()
}

func (config *PlannerConfig) options() (*motionplan.PlannerOptions, error) {
	var opts *motionplan.PlannerOptions
	switch config.Algorithm {
	case AlgorithmRRTStar:
		opts = motionplan.NewOptimalPlannerOptions()
	default:
		opts = motionplan.NewBasicPlannerOptions()
	}
	if err := opts.UpdateFromAttributes(config.Attributes); err != nil {
		return nil, errors.Wrap(err, "invalid attributes")
	}
	if err := opts.Validate("attributes"); err != nil {
		return nil, err
	}
	return opts, nil
}

// runSource returns the random source of the given run. Distinct runs of one scenario use distinct sources.
func (s *Scenario) runSource(run int, stream uint64) *rand.PCG {
	return rand.NewPCG(s.Planner.Seed+uint64(run), stream)
}

// NewPlanner creates the configured planning tree for the given run.
func (s *Scenario) NewPlanner(run int, logger logging.Logger) (motionplan.Planner, *motionplan.PlannerOptions, error) {
	opts, err := s.PlannerOptions()
	if err != nil {
		return nil, nil, err
	}
	//nolint:gosec
	seed := rand.New(s.runSource(run, 1))
	var mp motionplan.Planner
	switch s.Planner.Algorithm {
	case AlgorithmRRTStar:
		mp, err = motionplan.NewOptimalRapidlyExploringRandomTreeWithSeed(
			s.Agent.Start, s.Agent.Finish, opts, seed, logger.Sublogger("rrtstar"))
	case AlgorithmRRT:
		mp, err = motionplan.NewRapidlyExploringRandomTreeWithSeed(
			s.Agent.Start, s.Agent.Finish, opts, seed, logger.Sublogger("rrt"))
	default:
		err = errors.Errorf("unknown algorithm %q", s.Planner.Algorithm)
	}
	if err != nil {
		return nil, nil, err
	}
	return mp, opts, nil
}

// NewSampler creates a sampler over the scenario bounds for the given run.
func (s *Scenario) NewSampler(run int) (*motionplan.UniformSampler, error) {
	return motionplan.NewUniformSampler(s.Bounds.Min, s.Bounds.Max, s.runSource(run, 2))
}
