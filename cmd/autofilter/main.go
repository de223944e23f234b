// Command autofilter builds comparison predicates from YAML filter
// descriptors and prints them as SQL or JSON.
//
//	autofilter sql --schema people.yaml --filters filters.yaml --dialect postgres
//	autofilter json --schema people.yaml --filters filters.yaml
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/autofilter-go/filter"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := newRootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "autofilter",
		Short:        "Build comparison predicates from filter descriptors",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("schema", "", "YAML file declaring the filterable columns (required)")
	rootCmd.PersistentFlags().String("filters", "", "YAML file with filter descriptors (required)")
	_ = rootCmd.MarkPersistentFlagRequired("schema")
	_ = rootCmd.MarkPersistentFlagRequired("filters")

	rootCmd.AddCommand(newSQLCmd(logger), newJSONCmd())
	return rootCmd
}

func newSQLCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Print one SQL condition per descriptor",
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, _ := cmd.Flags().GetString("dialect")
			params, _ := cmd.Flags().GetBool("params")

			var enc filter.Encoder
			switch dialect {
			case "duckdb":
				enc = filter.NewDuckDBEncoder(nil)
			case "postgres":
				enc = filter.NewPostgresEncoder(nil)
			default:
				return fmt.Errorf("unknown dialect %q (want duckdb or postgres)", dialect)
			}

			preds, err := buildPredicates(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, pred := range preds {
				if !params {
					sql := enc.Encode(pred)
					if sql == "" {
						logger.Warn("Skipping predicate without SQL form", "predicate", filter.Format(pred))
						continue
					}
					fmt.Fprintln(out, sql)
					continue
				}

				sql, args := enc.EncodeParams(pred)
				if sql == "" {
					logger.Warn("Skipping predicate without SQL form", "predicate", filter.Format(pred))
					continue
				}
				fmt.Fprintf(out, "%s\t%v\n", sql, args)
			}
			return nil
		},
	}

	cmd.Flags().String("dialect", "duckdb", "SQL dialect: duckdb or postgres")
	cmd.Flags().Bool("params", false, "print placeholders followed by their arguments")
	return cmd
}

func newJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json",
		Short: "Print one JSON predicate per descriptor",
		RunE: func(cmd *cobra.Command, args []string) error {
			preds, err := buildPredicates(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, pred := range preds {
				data, err := filter.Marshal(pred)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			}
			return nil
		},
	}
}

func buildPredicates(cmd *cobra.Command) ([]filter.Expression, error) {
	schemaPath, _ := cmd.Flags().GetString("schema")
	filtersPath, _ := cmd.Flags().GetString("filters")

	schema, err := readSchema(schemaPath)
	if err != nil {
		return nil, err
	}
	descriptors, err := readDescriptors(filtersPath)
	if err != nil {
		return nil, err
	}

	target := filter.NewTarget(schema.Name(), schema)
	preds := make([]filter.Expression, 0, len(descriptors))
	for _, d := range descriptors {
		pred, err := filter.BuildDescriptor(target, d)
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
	}
	return preds, nil
}
