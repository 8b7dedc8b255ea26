package main

import (
	"io"

	"github.com/gnames/gn"
	"github.com/robert-malhotra/go-dsg/dsg"
	"github.com/robert-malhotra/go-dsg/internal/config"
	"github.com/robert-malhotra/go-dsg/internal/logger"
	"github.com/spf13/cobra"
)

// logFile is the log written when the log destination is "file".
const logFile = "dsgtool.log"

var (
	cfgFile   string
	cfg       *config.Config
	logCloser io.Closer
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dsgtool",
		Short: "dsgtool converts and inspects trajectory DSG files",
		Long: `dsgtool converts CSV data of moving platforms into CF-1.6
trajectory DSG files (NetCDF3 classic) and inspects existing files.

Commands:
  - ingest: standardize CSV files and write DSG files
  - dump: print the metadata and data summary of a DSG file
  - types: list the standard data types

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (DSG_*)
  3. Config file (--config)
  4. Built-in defaults

  Examples:
    DSG_LOG_LEVEL                 Log level (debug/info/warn/error)
    DSG_CODEC_OFFSET_SIZE         4 for classic, 8 for 64-bit offsets
    DSG_JOBS_NUMBER               Files ingested concurrently`,
		Version:           dsg.Version,
		PersistentPreRunE: bootstrap,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"YAML config file (default: built-in defaults)")
	rootCmd.Flags().BoolP("version", "V", false, "version for dsgtool")

	rootCmd.AddCommand(getIngestCmd())
	rootCmd.AddCommand(getDumpCmd())
	rootCmd.AddCommand(getTypesCmd())
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(cfgFile); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if logCloser, err = logger.Init(cfg.Log, logFile); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
