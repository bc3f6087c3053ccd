package logging

import (
	"regexp"
	"sync"

	"github.com/pkg/errors"
)

// Registry tracks every logger derived from a root logger so that pattern configs can adjust their levels.
type Registry struct {
	mu        sync.RWMutex
	loggers   map[string]Logger
	logConfig []LoggerPatternConfig
}

func newRegistry() *Registry {
	return &Registry{
		loggers: make(map[string]Logger),
	}
}

func (lr *Registry) loggerNamed(name string) (logger Logger, ok bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok = lr.loggers[name]
	return
}

// matchingLevel returns the level of the last pattern in the config that matches name.
func matchingLevel(logConfig []LoggerPatternConfig, name string) (Level, bool, error) {
	var (
		level   Level
		matched bool
	)
	for _, lpc := range logConfig {
		r, err := regexp.Compile(buildRegexFromPattern(lpc.Pattern))
		if err != nil {
			return level, false, err
		}
		if !r.MatchString(name) {
			continue
		}
		level, err = LevelFromString(lpc.Level)
		if err != nil {
			return level, false, err
		}
		matched = true
	}
	return level, matched, nil
}

// UpdateConfig stores the pattern config and applies it to every registered logger. Loggers no pattern
// matches keep their current level.
func (lr *Registry) UpdateConfig(logConfig []LoggerPatternConfig) error {
	for _, lpc := range logConfig {
		if !ValidatePattern(lpc.Pattern) {
			return errors.Errorf("invalid logger pattern %q", lpc.Pattern)
		}
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.logConfig = logConfig
	for name, logger := range lr.loggers {
		level, ok, err := matchingLevel(logConfig, name)
		if err != nil {
			return err
		}
		if ok {
			logger.SetLevel(level)
		}
	}
	return nil
}

// getOrRegister will either:
//   - return an existing logger for the input logger `name` or
//   - register the input `logger` for the given logger `name` and configure it based on the
//     existing patterns.
func (lr *Registry) getOrRegister(name string, logger Logger) Logger {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if existingLogger, ok := lr.loggers[name]; ok {
		return existingLogger
	}

	lr.loggers[name] = logger
	if level, ok, err := matchingLevel(lr.logConfig, name); err == nil && ok {
		logger.SetLevel(level)
	}
	return logger
}
