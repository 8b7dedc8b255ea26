package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/robert-malhotra/go-dsg/dsg"
	"github.com/robert-malhotra/go-dsg/internal/config"
	"github.com/robert-malhotra/go-dsg/internal/ingest"
	"github.com/robert-malhotra/go-dsg/stdarray"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func getIngestCmd() *cobra.Command {
	var (
		columnsFile  string
		metadataFile string
		outDir       string
		jobs         int
		verbose      bool
	)

	ingestCmd := &cobra.Command{
		Use:   "ingest file.csv...",
		Short: "Convert CSV files to trajectory DSG files",
		Long: `Standardize CSV data files and write one DSG file per input.

Columns are typed by the mapping file (--columns); columns it does not
name are typed by their header when it names a standard type and are
ignored otherwise. Dataset metadata come from the metadata file
(--metadata) and from metadata columns of the data.

Each DSG file is named after the dataset expocode, or after the input
file when the data have no expocode.

Examples:
  dsgtool ingest --columns cols.yaml leg1.csv leg2.csv
  dsgtool ingest -c cols.yaml -m md.yaml -o nc/ -j 4 *.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cmd.Flags().Changed("out") {
				opts = append(opts, config.OptOutputDir(outDir))
			}
			if cmd.Flags().Changed("jobs") {
				opts = append(opts, config.OptJobsNumber(jobs))
			}
			cfg.Update(opts)

			err := runIngest(cmd, columnsFile, metadataFile, verbose, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	ingestCmd.Flags().StringVarP(&columnsFile, "columns", "c", "",
		"YAML column mapping file")
	ingestCmd.Flags().StringVarP(&metadataFile, "metadata", "m", "",
		"YAML metadata file")
	ingestCmd.Flags().StringVarP(&outDir, "out", "o", "",
		"output directory (default from config)")
	ingestCmd.Flags().IntVarP(&jobs, "jobs", "j", 0,
		"number of files ingested concurrently")
	ingestCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"print every diagnostic message")
	_ = ingestCmd.MarkFlagRequired("columns")

	return ingestCmd
}

func runIngest(cmd *cobra.Command, columnsFile, metadataFile string, verbose bool, files []string) error {
	start := time.Now()
	mapping, err := ingest.LoadMapping(columnsFile)
	if err != nil {
		return err
	}
	meta, err := ingest.LoadMetadata(metadataFile)
	if err != nil {
		return err
	}
	in, err := ingest.New(cfg, mapping, meta)
	if errors.Is(err, dsg.ErrUnknownType) {
		return ingest.MetadataError(metadataFile, err)
	}
	if err != nil {
		return err
	}

	results := make([]*ingest.Result, len(files))
	bar := pb.Full.Start(len(files))
	bar.Set("prefix", "Ingesting: ")
	bar.Set(pb.CleanOnFinish, true)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.JobsNumber)
	for i, path := range files {
		g.Go(func() error {
			res, err := in.Ingest(ctx, path)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			bar.Increment()
			return nil
		})
	}
	err = g.Wait()
	bar.Finish()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var samples int
	for _, res := range results {
		samples += res.Samples
		report(out, res, verbose)
	}
	gn.Info("Ingested <em>%d</em> files, <em>%s</em> samples in %s",
		len(files), humanize.Comma(int64(samples)),
		gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}

// report prints the outcome of one ingested file.
func report(w io.Writer, res *ingest.Result, verbose bool) {
	counts := stdarray.CountBySeverity(res.Messages)
	fmt.Fprintf(w, "%s -> %s: %s samples, %d columns, %s; %d critical, %d errors, %d warnings\n",
		res.Input, res.Output,
		humanize.Comma(int64(res.Samples)), res.Columns,
		humanize.Bytes(uint64(res.Size)),
		counts[datatype.SeverityCritical], counts[datatype.SeverityError],
		counts[datatype.SeverityWarning],
	)
	if !verbose {
		return
	}
	for _, m := range res.Messages {
		fmt.Fprintf(w, "  %s\n", m)
	}
}
