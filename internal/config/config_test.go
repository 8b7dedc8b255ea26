package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/gn"
	"github.com/robert-malhotra/go-dsg/internal/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := New()
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "stderr", cfg.Log.Destination)
	assert.Equal(t, 4, cfg.Codec.OffsetSize)
	assert.Empty(t, cfg.Codec.History)
	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	assert.Equal(t, ".", cfg.OutputDir)
}

func TestOptions(t *testing.T) {
	tests := []struct {
		msg  string
		opt  Option
		test func(*Config) bool
	}{
		{"level", OptLogLevel(" DEBUG "), func(c *Config) bool { return c.Log.Level == "debug" }},
		{"bad level", OptLogLevel("verbose"), func(c *Config) bool { return c.Log.Level == "info" }},
		{"format", OptLogFormat("json"), func(c *Config) bool { return c.Log.Format == "json" }},
		{"bad format", OptLogFormat("tint"), func(c *Config) bool { return c.Log.Format == "text" }},
		{"destination", OptLogDestination("file"), func(c *Config) bool { return c.Log.Destination == "file" }},
		{"offset", OptOffsetSize(8), func(c *Config) bool { return c.Codec.OffsetSize == 8 }},
		{"bad offset", OptOffsetSize(6), func(c *Config) bool { return c.Codec.OffsetSize == 4 }},
		{"history", OptHistory("cruise 7"), func(c *Config) bool { return c.Codec.History == "cruise 7" }},
		{"empty history", OptHistory("  "), func(c *Config) bool { return c.Codec.History == "" }},
		{"jobs", OptJobsNumber(3), func(c *Config) bool { return c.JobsNumber == 3 }},
		{"bad jobs", OptJobsNumber(0), func(c *Config) bool { return c.JobsNumber == runtime.NumCPU() }},
		{"output", OptOutputDir("/tmp/out"), func(c *Config) bool { return c.OutputDir == "/tmp/out" }},
		{"types", OptDescriptionFile("types.properties"), func(c *Config) bool {
			return c.Types.DescriptionFile == "types.properties"
		}},
	}

	for _, v := range tests {
		cfg := New()
		cfg.Update([]Option{v.opt})
		assert.True(t, v.test(cfg), v.msg)
	}
}

func TestToOptions(t *testing.T) {
	src := New()
	src.Update([]Option{
		OptLogLevel("warn"), OptOffsetSize(8), OptHistory("h"),
		OptJobsNumber(2), OptOutputDir("out"),
	})
	dst := New()
	dst.Update(src.ToOptions())
	assert.Equal(t, src, dst)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dsg.yaml")
	data := `log:
  level: debug
codec:
  offset_size: 8
jobs_number: 2
output_dir: nc
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	t.Setenv("DSG_JOBS_NUMBER", "5")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Codec.OffsetSize)
	assert.Equal(t, 5, cfg.JobsNumber)
	assert.Equal(t, "nc", cfg.OutputDir)
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("DSG_LOG_FORMAT", "json")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Codec.OffsetSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ConfigReadError, gnErr.Code)
}
