package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"archibald/internal/common/logger"
	"archibald/internal/knowledge"
)

var (
	kbJSON   bool
	kbStrict bool
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Knowledge base tools",
}

var kbValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Load a knowledge base and report skipped entries",
	Long: `Load a knowledge base document and print what was kept and skipped.
Without a file argument the configured source (file or postgres) is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKBValidate,
}

func init() {
	kbValidateCmd.Flags().BoolVar(&kbJSON, "json", false, "print the report as JSON")
	kbValidateCmd.Flags().BoolVar(&kbStrict, "strict", false, "fail when any entry was skipped")
	kbCmd.AddCommand(kbValidateCmd)
	rootCmd.AddCommand(kbCmd)
}

func runKBValidate(cmd *cobra.Command, args []string) error {
	var report *knowledge.Report
	if len(args) == 1 {
		src := knowledge.NewFileSource(args[0])
		_, r, err := knowledge.Load(cmd.Context(), src, logger.NewNoOpLogger())
		if err != nil {
			return err
		}
		report = r
	} else {
		a, err := newApp(cmd.Context(), "stderr")
		if err != nil {
			return err
		}
		defer a.Close()
		report = a.report
	}

	out := cmd.OutOrStdout()
	if kbJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "schedule entries:    %d\n", report.ScheduleCount)
		fmt.Fprintf(out, "general information: %d\n", report.InfoCount)
		fmt.Fprintf(out, "faq entries:         %d\n", report.FAQCount)
		if report.DefaultPricing {
			fmt.Fprintln(out, "pricing:             default")
		} else {
			fmt.Fprintln(out, "pricing:             configured")
		}
		for _, w := range report.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
	}

	if kbStrict && len(report.Warnings) > 0 {
		return fmt.Errorf("%d knowledge base entries skipped", len(report.Warnings))
	}
	return nil
}
