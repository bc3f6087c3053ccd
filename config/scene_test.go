package config

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/planningsim/collision"
	"go.viam.com/planningsim/logging"
)

func TestGenerateZigZag(t *testing.T) {
	obstacles, err := GenerateScene(SceneConfig{Kind: SceneZigZag})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, obstacles, test.ShouldHaveLength, 60)

	test.That(t, obstacles[0].Center, test.ShouldResemble, r3.Vector{Y: -70, Z: 100})
	test.That(t, obstacles[1].Center, test.ShouldResemble, r3.Vector{Y: -40, Z: -100})
	test.That(t, obstacles[0].Radius, test.ShouldAlmostEqual, 4.)
	for _, o := range obstacles {
		test.That(t, o.Center.X, test.ShouldEqual, 0.)
		test.That(t, o.Center.Y, test.ShouldBeBetweenOrEqual, -70., 20.)
	}

	scaled, err := GenerateScene(SceneConfig{Kind: SceneZigZag, Side: 200})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scaled[0].Radius, test.ShouldAlmostEqual, 8.)
}

func TestGenerateBand(t *testing.T) {
	config := SceneConfig{Kind: SceneBand, Count: 500, Seed: 42}
	obstacles, err := GenerateScene(config)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, obstacles, test.ShouldHaveLength, 500)
	test.That(t, obstacles[0].Center, test.ShouldResemble, r3.Vector{Y: -100, Z: -100})
	for _, o := range obstacles {
		test.That(t, o.Radius, test.ShouldAlmostEqual, 0.5)
		test.That(t, o.Center.Y, test.ShouldBeBetweenOrEqual, -100., 70.)
		test.That(t, o.Center.Z, test.ShouldBeBetweenOrEqual, -100., 0.)
	}

	again, err := GenerateScene(config)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, again, test.ShouldResemble, obstacles)

	config.Seed = 43
	other, err := GenerateScene(config)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, other, test.ShouldNotResemble, obstacles)
}

func TestGenerateSceneInvalid(t *testing.T) {
	_, err := GenerateScene(SceneConfig{Kind: SceneBand})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "count must be positive")

	_, err = GenerateScene(SceneConfig{Kind: "spiral"})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = GenerateScene(SceneConfig{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "kind")
}

func TestGeneratedScenesBuild(t *testing.T) {
	for _, scene := range []SceneConfig{
		{Kind: SceneZigZag},
		{Kind: SceneBand, Count: 300, Seed: 1},
	} {
		t.Run(scene.Kind, func(t *testing.T) {
			scenario := NewSceneScenario(scene)
			test.That(t, scenario.Ensure(), test.ShouldBeNil)

			cs, err := scenario.BuildConfigurationSpace(logging.NewTestLogger(t))
			test.That(t, err, test.ShouldBeNil)
			bsh, ok := cs.(*collision.BoundingSphereHierarchy)
			test.That(t, ok, test.ShouldBeTrue)
			test.That(t, bsh.Stats().Obstacles, test.ShouldBeGreaterThan, 0)

			test.That(t, cs.CollidesAtPoint(scenario.Agent.Start), test.ShouldBeFalse)
			test.That(t, cs.CollidesAtPoint(scenario.Agent.Finish), test.ShouldBeFalse)
			test.That(t, scenario.Bounds.Contains(scenario.Agent.Start), test.ShouldBeTrue)
			test.That(t, scenario.Bounds.Contains(scenario.Agent.Finish), test.ShouldBeTrue)
		})
	}
}
