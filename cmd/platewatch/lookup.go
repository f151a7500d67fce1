// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openplates/platewatch/internal/pipeline"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [tokens...]",
	Short: "Look up violations for one or more plates",
	Long: `Lookup runs the full pipeline for every plate referenced in its
arguments, using the same syntax as inbound messages:

  platewatch lookup ny:abc1234
  platewatch lookup ny:t605162c:omt
  platewatch lookup plate:abc1234 state:ny

With --file, plates are read from a YAML batch file instead and results
can be written back out with --out. Batch lookups are stored as
non-countable so they never disturb repeat-lookup narratives.`,
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	out, _ := cmd.Flags().GetString("out")

	if file == "" && len(args) == 0 {
		return fmt.Errorf("no plates given: pass tokens like ny:abc1234 or use --file")
	}

	log := newLogger(cmd)
	p, store, err := newPipeline(log)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if file != "" {
		bf, err := pipeline.ReadBatchFile(file)
		if err != nil {
			return err
		}
		results, errs := p.RunBatch(ctx, bf)
		for _, msg := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", msg)
		}
		if out != "" {
			if err := pipeline.WriteBatchResults(out, results, errs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d result(s) to %s\n", len(results), out)
			return nil
		}
		for _, agg := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%s  %d ticket(s)\n", agg.State, agg.Plate, agg.TotalCount)
		}
		return nil
	}

	resp := p.Process(ctx, pipeline.NewCLIRequest(args))
	for i, part := range resp.Parts {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		for _, chunk := range part {
			fmt.Fprintln(cmd.OutOrStdout(), chunk)
		}
	}
	if resp.HadError {
		return fmt.Errorf("one or more lookups failed")
	}
	return nil
}

func init() {
	lookupCmd.Flags().String("file", "", "YAML batch file of plates to look up")
	lookupCmd.Flags().String("out", "", "write batch results to this YAML file")

	rootCmd.AddCommand(lookupCmd)
}
