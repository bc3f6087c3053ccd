package motionplan

import (
	"testing"

	"go.viam.com/test"
)

func TestPlannerOptionsDefaults(t *testing.T) {
	basic := NewBasicPlannerOptions()
	test.That(t, basic.GrowthLimit, test.ShouldEqual, 20.)
	test.That(t, basic.GoalBias, test.ShouldEqual, 0.01)
	test.That(t, basic.StopOnPath, test.ShouldBeTrue)
	test.That(t, basic.Validate("planner"), test.ShouldBeNil)

	optimal := NewOptimalPlannerOptions()
	test.That(t, optimal.GrowthLimit, test.ShouldEqual, 10.)
	test.That(t, optimal.NeighborRadius, test.ShouldEqual, 10.)
	test.That(t, optimal.CascadeRewire, test.ShouldBeFalse)
	test.That(t, optimal.StopOnPath, test.ShouldBeFalse)
	test.That(t, optimal.Validate("planner"), test.ShouldBeNil)
}

func TestPlannerOptionsUpdateFromAttributes(t *testing.T) {
	opts := NewOptimalPlannerOptions()
	err := opts.UpdateFromAttributes(map[string]interface{}{
		"growth_limit":   5,
		"cascade_rewire": true,
		"plan_iter":      "500",
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts.GrowthLimit, test.ShouldEqual, 5.)
	test.That(t, opts.CascadeRewire, test.ShouldBeTrue)
	test.That(t, opts.PlanIter, test.ShouldEqual, 500)
	test.That(t, opts.NeighborRadius, test.ShouldEqual, 10.)

	err = opts.UpdateFromAttributes(map[string]interface{}{"growth_limt": 5})
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, opts.UpdateFromAttributes(nil), test.ShouldBeNil)
}

func TestPlannerOptionsValidate(t *testing.T) {
	opts := NewBasicPlannerOptions()
	opts.GrowthLimit = 0
	opts.GoalBias = 1.5
	opts.SampleBatch = -1
	err := opts.Validate("planner")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "growth_limit")
	test.That(t, err.Error(), test.ShouldContainSubstring, "goal_bias")
	test.That(t, err.Error(), test.ShouldContainSubstring, "sample_batch")
	test.That(t, err.Error(), test.ShouldNotContainSubstring, "plan_iter")
}
