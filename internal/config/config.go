// Package config provides configuration for the dsgtool command and the
// ingest pipeline.
//
// Precedence (highest to lowest): CLI flags > env vars > config file >
// defaults. The default config from New is always valid, and every
// change goes through an Option that rejects invalid values with a
// warning.
//
// Environment variables use the DSG_ prefix with underscores for
// nesting:
//
//	DSG_LOG_LEVEL=debug
//	DSG_CODEC_OFFSET_SIZE=8
//	DSG_JOBS_NUMBER=4
package config

import (
	"runtime"
)

// Config is the complete configuration.
type Config struct {
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Codec contains settings for writing DSG files.
	Codec CodecConfig `mapstructure:"codec" yaml:"codec"`

	// Types points to extra data type descriptions.
	Types TypesConfig `mapstructure:"types" yaml:"types"`

	// JobsNumber is the number of files ingested concurrently.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// OutputDir is where ingested DSG files are written.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be 'stderr', 'stdout' or 'file'.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// CodecConfig contains settings for writing DSG files.
type CodecConfig struct {
	// OffsetSize is 4 for classic files or 8 for 64-bit offset files.
	OffsetSize int `mapstructure:"offset_size" yaml:"offset_size"`

	// History is written to the history attribute. Empty means the
	// codec default.
	History string `mapstructure:"history" yaml:"history"`
}

// TypesConfig points to data type descriptions added to the standard
// user types.
type TypesConfig struct {
	// DescriptionFile holds lines of name=JSON type descriptions.
	DescriptionFile string `mapstructure:"description_file" yaml:"description_file"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Format:      "text",
			Level:       "info",
			Destination: "stderr",
		},
		Codec: CodecConfig{
			OffsetSize: 4,
		},
		JobsNumber: runtime.NumCPU(),
		OutputDir:  ".",
	}
}
