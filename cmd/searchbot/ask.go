package main

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"searchbot/internal/domain"
	"searchbot/internal/service"
)

var (
	askMode   string
	askFilter string
	askJSON   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Answer a single query",
	Long: `Answers one query and exits. Candidates whose response matches
--filter are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askMode, "mode", "m", string(domain.ModeQA), "answer mode: qa or cr")
	askCmd.Flags().StringVarP(&askFilter, "filter", "f", "", "skip responses matching this regular expression")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the response as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(askMode)
	if err != nil {
		return err
	}
	var filter domain.Filter
	if askFilter != "" {
		re, err := regexp.Compile(askFilter)
		if err != nil {
			return fmt.Errorf("%w: invalid filter: %v", domain.ErrConfiguration, err)
		}
		filter = re
	}

	bot, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	resp := bot.Answer(context.Background(), args[0], mode, filter)
	if askJSON {
		return outputAskJSON(cmd, resp)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, resp.Text)
	fmt.Fprintf(out, "(%s, score %.3f)\n", resp.Source, resp.Score)
	return nil
}

func outputAskJSON(cmd *cobra.Command, resp service.Response) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
