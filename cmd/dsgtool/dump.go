package main

import (
	"fmt"
	"io"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/robert-malhotra/go-dsg/dsg"
	"github.com/spf13/cobra"
)

// dumpOutput is the summary of a DSG file.
type dumpOutput struct {
	Path     string            `json:"path"`
	Samples  int               `json:"samples"`
	Metadata map[string]string `json:"metadata"`
	Columns  []columnSummary   `json:"columns"`
}

// columnSummary describes one data variable.
type columnSummary struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Units   string `json:"units,omitempty"`
	Present int    `json:"present"`
	Min     string `json:"min,omitempty"`
	Max     string `json:"max,omitempty"`
}

func getDumpCmd() *cobra.Command {
	var asJSON bool

	dumpCmd := &cobra.Command{
		Use:   "dump file.nc",
		Short: "Print the metadata and a data summary of a DSG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDump(cmd.OutOrStdout(), args[0], asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	dumpCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return dumpCmd
}

func runDump(w io.Writer, path string, asJSON bool) error {
	out, err := summarize(path)
	if err != nil {
		return err
	}

	if asJSON {
		enc := gnfmt.GNjson{Pretty: true}
		data, err := enc.Encode(out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "=== %s ===\n\n", out.Path)
	fmt.Fprintf(w, "Samples: %d\n\nMetadata:\n", out.Samples)
	metaTypes, _ := datatype.MetadataTypes()
	for _, dt := range metaTypes.Types() {
		if v, ok := out.Metadata[dt.VarName()]; ok {
			fmt.Fprintf(w, "  %-20s %s\n", dt.VarName(), v)
		}
	}
	fmt.Fprintf(w, "\nColumns:\n")
	for _, c := range out.Columns {
		fmt.Fprintf(w, "  %-16s %-9s %-14s present %d", c.Name, c.Kind, c.Units, c.Present)
		if c.Min != "" {
			fmt.Fprintf(w, ", range %s .. %s", c.Min, c.Max)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// summarize reads the file with the standard metadata and data types.
func summarize(path string) (*dumpOutput, error) {
	metaTypes, err := datatype.MetadataTypes()
	if err != nil {
		return nil, err
	}
	dataTypes, err := datatype.DataTypes()
	if err != nil {
		return nil, err
	}

	f := dsg.New(path)
	if _, err = f.ReadMetadata(metaTypes); err != nil {
		return nil, err
	}
	if _, err = f.ReadData(dataTypes); err != nil {
		return nil, err
	}

	meta, data := f.Metadata(), f.Data()
	res := &dumpOutput{
		Path:     path,
		Samples:  data.NumSamples(),
		Metadata: make(map[string]string),
	}
	for _, dt := range meta.Types() {
		if meta.IsSet(dt) {
			res.Metadata[dt.VarName()] = meta.Get(dt).String()
		}
	}

	for col, dt := range data.Types() {
		c := columnSummary{
			Name:  dt.VarName(),
			Kind:  dt.Kind().String(),
			Units: dt.FileStdUnit(),
		}
		var lo, hi datatype.Value
		for _, v := range data.Column(col) {
			if v.IsMissing() {
				continue
			}
			c.Present++
			if lo.IsMissing() || v.Compare(lo) < 0 {
				lo = v
			}
			if hi.IsMissing() || v.Compare(hi) > 0 {
				hi = v
			}
		}
		if c.Present > 0 && dt.Kind() != datatype.KindChar {
			c.Min, c.Max = lo.String(), hi.String()
		}
		res.Columns = append(res.Columns, c)
	}
	return res, nil
}
