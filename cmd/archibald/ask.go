package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	chatreply "archibald/internal/workers/faq-chat/chat-reply"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Answer one message and print the reply",
	Example: `  archibald ask "C'est ouvert demain ?"
  archibald ask --json "How much for 2 adults and a 4 year old?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full pipeline output as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), "stderr")
	if err != nil {
		return err
	}
	defer a.Close()

	handler, err := a.pipeline()
	if err != nil {
		return err
	}

	out, err := handler.Execute(cmd.Context(), &chatreply.Input{Message: strings.Join(args, " ")})
	if err != nil {
		return err
	}

	if askJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.Response)
	return nil
}
