package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "stderr", "stdout", "file".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptOffsetSize sets the file offset size, 4 or 8.
func OptOffsetSize(i int) Option {
	return func(c *Config) {
		if i == 4 || i == 8 {
			c.Codec.OffsetSize = i
			return
		}
		gn.Warn("<em>Codec.OffsetSize</em> has to be 4 or 8, ignoring %d", i)
	}
}

// OptHistory sets the history attribute of written files.
func OptHistory(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Codec.History", s) {
			c.Codec.History = s
		}
	}
}

// OptDescriptionFile sets the file of extra type descriptions.
func OptDescriptionFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Types.DescriptionFile", s) {
			c.Types.DescriptionFile = s
		}
	}
}

// OptJobsNumber sets the number of files ingested concurrently.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptOutputDir sets the directory of ingested files.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.OutputDir = s
		}
	}
}

// Update applies opts to the Config in order.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the non-empty fields of the Config to options.
func (c *Config) ToOptions() []Option {
	var res []Option
	strs := []struct {
		val string
		opt func(string) Option
	}{
		{c.Log.Format, OptLogFormat},
		{c.Log.Level, OptLogLevel},
		{c.Log.Destination, OptLogDestination},
		{c.Codec.History, OptHistory},
		{c.Types.DescriptionFile, OptDescriptionFile},
		{c.OutputDir, OptOutputDir},
	}
	for _, s := range strs {
		if s.val != "" {
			res = append(res, s.opt(s.val))
		}
	}
	if c.Codec.OffsetSize > 0 {
		res = append(res, OptOffsetSize(c.Codec.OffsetSize))
	}
	if c.JobsNumber > 0 {
		res = append(res, OptJobsNumber(c.JobsNumber))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"stderr": s, "stdout": s, "file": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	var lines []string
	for _, v := range slices.Sorted(maps.Keys(data[name])) {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
