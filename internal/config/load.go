package config

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/robert-malhotra/go-dsg/internal/errcode"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "DSG"

// Load returns the default Config updated from the YAML file at path and
// from DSG_ environment variables. An empty path reads the environment
// only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	initEnvVars(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, ReadError(path, err)
		}
	}

	var fromViper Config
	if err := v.Unmarshal(&fromViper); err != nil {
		return nil, ReadError(path, err)
	}

	res := New()
	res.Update(fromViper.ToOptions())
	return res, nil
}

// initEnvVars binds the environment variables allowed to override the
// config file, one per persistent field.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("log.level", "DSG_LOG_LEVEL")
	_ = v.BindEnv("log.format", "DSG_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "DSG_LOG_DESTINATION")

	_ = v.BindEnv("codec.offset_size", "DSG_CODEC_OFFSET_SIZE")
	_ = v.BindEnv("codec.history", "DSG_CODEC_HISTORY")

	_ = v.BindEnv("types.description_file", "DSG_TYPES_DESCRIPTION_FILE")

	_ = v.BindEnv("jobs_number", "DSG_JOBS_NUMBER")
	_ = v.BindEnv("output_dir", "DSG_OUTPUT_DIR")

	v.AutomaticEnv()
}

// ReadError creates an error for when a config file cannot be read.
func ReadError(path string, err error) error {
	msg := "Cannot read config file <em>%s</em>"
	return &gn.Error{
		Code: errcode.ConfigReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("reading config %s: %w", path, err),
	}
}
