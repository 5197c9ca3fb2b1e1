package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/csheth/textcraft/internal/clock"
	"github.com/csheth/textcraft/internal/config"
	"github.com/csheth/textcraft/internal/llm"
	"github.com/csheth/textcraft/internal/tui"
)

type uiOptions struct {
	NoAltScreen bool
}

func addUIArgs(cmd *cobra.Command, v *viper.Viper, o *uiOptions) {
	cmd.Flags().BoolVar(&o.NoAltScreen, "no-alt-screen", false,
		"Render inline instead of using the alternate screen buffer.")
	cmd.Flags().StringP("file", "f", "", "Load this text or PDF file into the editor on start.")
	bindFlag(v, "file", cmd.Flags().Lookup("file"))
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func runUI(cmd *cobra.Command, cfg config.Config, o *uiOptions) error {
	client, err := llm.New(cfg.LLM)
	if err != nil {
		return err
	}

	loop := clock.NewLoop()
	defer loop.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !o.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			LLM:          client,
			Clock:        loop,
			Subtitle:     cfg.SubtitleConfig(),
			CopyFeedback: cfg.CopyFeedback,
			File:         cfg.File,
			Context:      ctx,
		}),
		opts...,
	)

	_, err = program.Run()
	return err
}
