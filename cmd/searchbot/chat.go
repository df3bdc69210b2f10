package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"searchbot/internal/tui"
)

var chatMode string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat",
	Long: `Start the interactive terminal chat.

Controls:
  Enter          - Send message
  Tab            - Switch between qa and cr mode
  /filter REGEX  - Skip answers matching REGEX (no argument clears it)
  /history       - Show recent history
  Ctrl+C         - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatMode, "mode", "m", "qa", "initial answer mode: qa or cr")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(chatMode)
	if err != nil {
		return err
	}
	bot, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	_, err = tea.NewProgram(tui.New(bot, mode), tea.WithAltScreen()).Run()
	return err
}
