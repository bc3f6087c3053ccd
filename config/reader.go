package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/planningsim/logging"
)

// Read reads a scenario from the given file, substituting environment variables first.
func Read(filePath string, logger logging.Logger) (*Scenario, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a scenario from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Scenario, error) {
	scenario := Scenario{
		ConfigFilePath: originalPath,
	}
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&scenario); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Scenario from json")
	}
	if err := scenario.Ensure(); err != nil {
		return nil, errors.Wrapf(err, "invalid scenario")
	}
	if len(scenario.LogConfig) > 0 {
		if err := logger.Registry().UpdateConfig(scenario.LogConfig); err != nil {
			return nil, err
		}
	}
	logger.Debugw("scenario read", "path", originalPath, "name", scenario.Name,
		"algorithm", scenario.Planner.Algorithm, "configuration_space", scenario.ConfigurationSpace.Type)
	return &scenario, nil
}
