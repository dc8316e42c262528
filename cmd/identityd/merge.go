package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dtroode/identity-merge/internal/model"
)

func newMergeCommand() *cobra.Command {
	var (
		target     string
		source     string
		collectAll bool
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge the source account into the target account",
		Long: `Moves roles, logins, email records and claims of the source account to the
target account, then deletes the source. Runs in a single transaction.`,
		Example: "  identityd merge --target 7c1e... --source 0f4a...",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetID, err := uuid.Parse(target)
			if err != nil {
				return fmt.Errorf("invalid --target: %w", err)
			}
			sourceID, err := uuid.Parse(source)
			if err != nil {
				return fmt.Errorf("invalid --source: %w", err)
			}

			cfg, logger, err := loadConfig(os.Stderr, "merge")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("collect-all") {
				cfg.Merge.CollectAllFailures = collectAll
			}

			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.merger.Merge(cmd.Context(), targetID, sourceID)
			if err != nil {
				return err
			}
			printMergeResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "account that receives the merged data")
	cmd.Flags().StringVar(&source, "source", "", "account that is merged and deleted")
	cmd.Flags().BoolVar(&collectAll, "collect-all", false, "run every step and report all failures")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func printMergeResult(w io.Writer, result model.MergeResult) {
	fmt.Fprintf(w, "%s: %s <- %s\n", result.Status, result.TargetID, result.SourceID)
	for _, step := range result.Steps {
		if step.Failed() {
			fmt.Fprintf(w, "  %-14s failed: %v\n", step.Step, step.Err)
			continue
		}
		fmt.Fprintf(w, "  %-14s ok\n", step.Step)
	}
	if result.HookErr != nil {
		fmt.Fprintf(w, "hook: %v\n", result.HookErr)
	}
}
