package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/spf13/cobra"
)

func getTypesCmd() *cobra.Command {
	var (
		kind         string
		descriptions bool
	)

	typesCmd := &cobra.Command{
		Use:   "types",
		Short: "List the standard data types",
		Long: `List one of the standard type catalogs:
  users     types that CSV columns can be assigned
  metadata  types stored as dataset metadata in DSG files
  data      types stored as sample data in DSG files

With --descriptions the catalog is printed as name=JSON lines, the
format read from the types description file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTypes(cmd.OutOrStdout(), kind, descriptions)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	typesCmd.Flags().StringVarP(&kind, "kind", "k", "users",
		"catalog: users, metadata or data")
	typesCmd.Flags().BoolVarP(&descriptions, "descriptions", "d", false,
		"print type descriptions")
	return typesCmd
}

func runTypes(w io.Writer, kind string, descriptions bool) error {
	var reg *datatype.Registry
	var err error
	switch strings.ToLower(kind) {
	case "users", "user":
		reg, err = datatype.UserTypes()
	case "metadata":
		reg, err = datatype.MetadataTypes()
	case "data":
		reg, err = datatype.DataTypes()
	default:
		return fmt.Errorf("unknown catalog %q, use users, metadata or data", kind)
	}
	if err != nil {
		return err
	}

	if descriptions {
		return datatype.WriteDescriptions(w, reg.Types())
	}
	for _, dt := range reg.Types() {
		fmt.Fprintf(w, "%-22s %-9s %-28s %s\n",
			dt.VarName(), dt.Kind(), dt.DisplayName(), strings.Join(dt.Units(), ", "))
	}
	return nil
}
