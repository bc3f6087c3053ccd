package cli

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/planningsim/config"
)

// SchemaAction is the corresponding Action for 'schema'.
func SchemaAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		name = config.SchemaScenario
	}
	schema, ok := config.Schemas[name]
	if !ok {
		names := lo.Keys(config.Schemas)
		slices.Sort(names)
		return errors.Errorf("unknown schema %q, expected one of %s", name, strings.Join(names, ", "))
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}
