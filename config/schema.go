package config

import (
	"github.com/invopop/jsonschema"

	"go.viam.com/planningsim/motionplan"
)

// Names of the documented inputs.
const (
	SchemaScenario          = "scenario"
	SchemaPlannerAttributes = "planner_attributes"
)

// Schemas maps the documented inputs to their JSON schemas. Planner attributes are the fields of
// motionplan.PlannerOptions a scenario may override.
var Schemas = map[string]*jsonschema.Schema{
	SchemaScenario:          jsonschema.Reflect(&Scenario{}),
	SchemaPlannerAttributes: jsonschema.Reflect(&motionplan.PlannerOptions{}),
}
