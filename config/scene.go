package config

import (
	"math/rand/v2"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/planningsim/collision"
	rutils "go.viam.com/planningsim/utils"
)

// Kinds of generated obstacle scenes.
const (
	// SceneBand scatters count small obstacles along a noisy diagonal band of the x = 0 plane.
	SceneBand = "band"
	// SceneZigZag lays out rows of obstacles that leave alternating gaps at the top and bottom of the x = 0
	// plane, forcing a zig-zag path.
	SceneZigZag = "zigzag"
)

const (
	defaultSceneSide = 100.

	bandRadiusFactor = 0.1 / 20

	zigZagRadiusFactor = 0.04
	zigZagRows         = 4
	zigZagRowLength    = 15
	zigZagRowSpacing   = 30.
	zigZagRowOffset    = 30.

	// Agent radius used by generated scenarios, relative to the side.
	sceneAgentRadiusFactor = 0.5 / 20
)

// SceneConfig describes a generated obstacle scene. Generated scenes live in the x = 0 plane within
// [-Side, Side] on y and z.
type SceneConfig struct {
	Kind  string  `json:"kind"`
	Count int     `json:"count,omitempty"`
	Side  float64 `json:"side,omitempty"`
	Seed  uint64  `json:"seed,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (config *SceneConfig) Validate(path string) error {
	switch config.Kind {
	case SceneBand:
		if config.Count <= 0 {
			return utils.NewConfigValidationError(path, errors.Errorf("count must be positive, got %d", config.Count))
		}
	case SceneZigZag:
	case "":
		return utils.NewConfigValidationFieldRequiredError(path, "kind")
	default:
		return utils.NewConfigValidationError(path, errors.Errorf("unknown scene kind %q", config.Kind))
	}
	if config.Side < 0 || !rutils.Float64IsFinite(config.Side) {
		return utils.NewConfigValidationError(path, errors.Errorf("side must be a finite, non-negative number, got %v", config.Side))
	}
	return nil
}

func (config *SceneConfig) side() float64 {
	if config.Side == 0 {
		return defaultSceneSide
	}
	return config.Side
}

// GenerateScene returns the obstacles of a generated scene. The same config always yields the same obstacles.
func GenerateScene(config SceneConfig) ([]collision.Obstacle, error) {
	if err := config.Validate("scene"); err != nil {
		return nil, err
	}
	side := config.side()
	switch config.Kind {
	case SceneBand:
		//nolint:gosec
		rng := rand.New(rand.NewPCG(config.Seed, uint64(config.Count)))
		n := float64(config.Count)
		obstacles := make([]collision.Obstacle, 0, config.Count)
		for i := 0; i < config.Count; i++ {
			fi := float64(i)
			center := r3.Vector{
				Y: -side + fi*side*rng.Float64()*1.7/n,
				Z: -side + fi*side*rng.Float64()/n,
			}
			obstacles = append(obstacles, collision.Obstacle{Center: center, Radius: side * bandRadiusFactor})
		}
		return obstacles, nil
	default:
		r := side * zigZagRadiusFactor
		obstacles := make([]collision.Obstacle, 0, zigZagRows*zigZagRowLength)
		for i := 0; i < zigZagRowLength; i++ {
			for j := 0; j < zigZagRows; j++ {
				z := side - 2*r*float64(i)
				if j%2 == 1 {
					z = -z
				}
				center := r3.Vector{Y: -side + zigZagRowSpacing*float64(j) + zigZagRowOffset, Z: z}
				obstacles = append(obstacles, collision.Obstacle{Center: center, Radius: r})
			}
		}
		return obstacles, nil
	}
}

// NewSceneScenario returns a complete scenario around a generated scene: the agent crosses the x = 0 plane
// from (0, 0.9 side, -0.9 side) to (0, -0.9 side, 0.9 side) and samples are drawn from that plane.
func NewSceneScenario(scene SceneConfig) *Scenario {
	side := scene.side()
	return &Scenario{
		Name: scene.Kind,
		Agent: AgentConfig{
			Radius: side * sceneAgentRadiusFactor,
			Start:  r3.Vector{Y: side * 0.9, Z: -side * 0.9},
			Finish: r3.Vector{Y: -side * 0.9, Z: side * 0.9},
		},
		Scene: &scene,
		Bounds: BoundsConfig{
			Min: r3.Vector{Y: -side, Z: -side},
			Max: r3.Vector{Y: side, Z: side},
		},
		Planner:            PlannerConfig{Algorithm: AlgorithmRRT, Seed: scene.Seed},
		ConfigurationSpace: ConfigurationSpaceConfig{Type: SpaceBSH},
	}
}
