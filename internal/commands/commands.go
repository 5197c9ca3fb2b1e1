// Package commands wires the textcraft command line.
package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/csheth/textcraft/internal/config"
)

// New returns the root command. Without a subcommand it opens the interface.
func New() *cobra.Command {
	a := &app{v: config.New()}
	ui := &uiOptions{}

	cmd := &cobra.Command{
		Use:   "textcraft",
		Short: "Refine, restyle and summarize text in the terminal.",
		Example: `
textcraft
textcraft --file draft.md --provider ollama
TEXTCRAFT_LOG_FILE=/tmp/textcraft.log textcraft
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cleanup, err := a.prepare()
			if err != nil {
				return err
			}
			defer cleanup()
			return runUI(cmd, a.cfg, ui)
		},
	}

	addUIArgs(cmd, a.v, ui)
	addLLMArgs(cmd, a.v)
	AddCommands(cmd, a)
	return cmd
}

func AddCommands(topLevel *cobra.Command, a *app) {
	addProcess(topLevel, a)
	addModes(topLevel)
	addVersion(topLevel)
}

// app carries the configuration shared by the commands that need it.
type app struct {
	v   *viper.Viper
	cfg config.Config
}

// prepare loads the configuration and routes the standard logger. The
// returned func restores logging.
func (a *app) prepare() (func(), error) {
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	restore, err := setupLogging(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	if cfg.ConfigFile != "" {
		log.Printf("[config] loaded %s", cfg.ConfigFile)
	}
	log.Printf("[config] provider=%s", cfg.LLM.Provider)
	return restore, nil
}

// setupLogging sends log output to path, or drops it when path is empty so
// nothing is written over the interface.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}
	f, err := tea.LogToFile(path, "textcraft")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() {
		_ = f.Close()
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	}, nil
}

func addLLMArgs(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.String("provider", "", "LLM provider: simulate, ollama or openai.")
	flags.String("model", "", "Model name for the selected provider.")
	flags.String("endpoint", "", "Base URL of the provider, eg. http://localhost:11434.")
	flags.String("log-file", "", "Append logs to this file instead of discarding them.")
	bindFlag(v, "llm.provider", flags.Lookup("provider"))
	bindFlag(v, "llm.model", flags.Lookup("model"))
	bindFlag(v, "llm.endpoint", flags.Lookup("endpoint"))
	bindFlag(v, "log_file", flags.Lookup("log-file"))
}
