package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csheth/textcraft/internal/llm"
	"github.com/csheth/textcraft/internal/selection"
	"github.com/csheth/textcraft/internal/source"
	"github.com/csheth/textcraft/internal/textmode"
)

// ProcessOptions selects the text and modes for a headless run.
type ProcessOptions struct {
	Modes []string
	Style string
	Text  string
	File  string
	JSON  bool
}

func addProcess(topLevel *cobra.Command, a *app) {
	o := &ProcessOptions{}
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Transform text without opening the interface.",
		Example: `
textcraft process --mode summarize --style casual --file notes.txt
echo "helo wrld" | textcraft process --mode correct --style simple
textcraft process -m summarize -m correct -t "some text" --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cleanup, err := a.prepare()
			if err != nil {
				return err
			}
			defer cleanup()
			client, err := llm.New(a.cfg.LLM)
			if err != nil {
				return err
			}
			p := &Process{
				Options: *o,
				Client:  client,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return p.Do(ctx)
		},
	}

	cmd.Flags().StringSliceVarP(&o.Modes, "mode", "m", []string{textmode.DefaultProcessingMode},
		"Processing mode, repeatable: summarize, correct.")
	cmd.Flags().StringVarP(&o.Style, "style", "s", textmode.DefaultStyleMode,
		"Style mode: formal, casual, professional, creative or simple.")
	cmd.Flags().StringVarP(&o.Text, "text", "t", "", "Text to transform.")
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "Read the text from a file (plain text or PDF).")
	cmd.Flags().BoolVar(&o.JSON, "json", false, "Print a JSON object instead of plain text.")

	topLevel.AddCommand(cmd)
}

// Process runs one transformation outside the interface.
type Process struct {
	Options ProcessOptions
	Client  llm.Client
	In      io.Reader
	Out     io.Writer
}

type processResult struct {
	Provider   string   `json:"provider"`
	Processing []string `json:"processing"`
	Style      string   `json:"style"`
	Input      string   `json:"input"`
	Output     string   `json:"output"`
}

// Do resolves the input, checks the selection and prints the result.
func (p *Process) Do(ctx context.Context) error {
	text, err := p.input()
	if err != nil {
		return err
	}

	state := selection.New()
	for _, mode := range p.Options.Modes {
		state.SetProcessingMode(strings.ToLower(strings.TrimSpace(mode)), true)
	}
	state.SetStyleMode(strings.ToLower(strings.TrimSpace(p.Options.Style)))
	state.SetInputText(text)

	if err := textmode.Validate(state.ProcessingModes(), state.StyleMode()); err != nil {
		return fmt.Errorf("%w: %v", llm.ErrUnknownMode, err)
	}
	if !state.CanProcess() {
		return errors.New("nothing to process: provide non-blank text, at least one --mode and a --style")
	}

	snap := state.Selection()
	output, err := p.Client.Transform(ctx, llm.Request{
		Text:       snap.Text,
		Processing: snap.ProcessingModes,
		Style:      snap.StyleMode,
	})
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	state.SetOutputText(output)
	state.CommitSnapshot(snap)
	log.Printf("[process] %s %v/%s (%d -> %d chars)", p.Client.Name(), snap.ProcessingModes, snap.StyleMode, len(snap.Text), len(output))

	if !p.Options.JSON {
		_, err = fmt.Fprintln(p.Out, state.OutputText())
		return err
	}
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(processResult{
		Provider:   p.Client.Name(),
		Processing: snap.ProcessingModes,
		Style:      snap.StyleMode,
		Input:      snap.Text,
		Output:     state.OutputText(),
	})
}

func (p *Process) input() (string, error) {
	switch {
	case p.Options.Text != "" && p.Options.File != "":
		return "", errors.New("use either --text or --file, not both")
	case p.Options.Text != "":
		return p.Options.Text, nil
	case p.Options.File != "":
		return source.Load(p.Options.File)
	case p.In != nil:
		text, err := source.ReadText(p.In, "stdin")
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return text, nil
	default:
		return "", nil
	}
}
