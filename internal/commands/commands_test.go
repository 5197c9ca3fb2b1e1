package commands

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/csheth/textcraft/internal/config"
	"github.com/csheth/textcraft/internal/llm"
	"github.com/csheth/textcraft/internal/source"
)

// isolate keeps the developer's config files and provider variables out of
// the command under test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("TEXTCRAFT_CONFIG_PATH", t.TempDir())
	t.Setenv("TEXTCRAFT_LLM_PROVIDER", "simulate")
	t.Setenv("TEXTCRAFT_LLM_SIMULATION_DELAY", "0s")
	t.Setenv("TEXTCRAFT_LOG_FILE", "")
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProcessCommandPrintsResult(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "process", "--mode", "correct", "--style", "simple", "--text", "  hello world.  ")
	require.NoError(t, err)
	require.Equal(t, "hello world\n", out)
}

func TestProcessCommandReadsStdin(t *testing.T) {
	isolate(t)
	out, err := execute(t, "hello world.", "process", "-m", "correct", "-s", "simple")
	require.NoError(t, err)
	require.Equal(t, "hello world\n", out)
}

func TestProcessCommandRejectsOversizedStdin(t *testing.T) {
	isolate(t)
	_, err := execute(t, strings.Repeat("x", source.MaxBytes+1), "process")
	require.ErrorIs(t, err, source.ErrTooLarge)
}

func TestProcessCommandReadsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world."), 0o644))

	out, err := execute(t, "", "process", "-m", "correct", "-s", "simple", "--file", path)
	require.NoError(t, err)
	require.Equal(t, "hello world\n", out)
}

func TestProcessCommandJSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "process", "-m", "summarize,correct", "-s", "formal", "-t", "Some text.", "--json")
	require.NoError(t, err)
	require.True(t, gjson.Valid(out), "output is not JSON: %s", out)

	doc := gjson.Parse(out)
	require.Equal(t, "Simulation", doc.Get("provider").String())
	require.Equal(t, int64(2), doc.Get("processing.#").Int())
	require.Equal(t, "correct", doc.Get("processing.0").String())
	require.Equal(t, "summarize", doc.Get("processing.1").String())
	require.Equal(t, "formal", doc.Get("style").String())
	require.Equal(t, "Some text.", doc.Get("input").String())
	require.NotEmpty(t, doc.Get("output").String())
}

func TestProcessCommandErrors(t *testing.T) {
	isolate(t)
	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown mode", args: []string{"process", "-m", "translate", "-t", "x"}, want: "unknown mode"},
		{name: "unknown style", args: []string{"process", "-s", "pirate", "-t", "x"}, want: "unknown mode"},
		{name: "blank text", args: []string{"process", "-t", "   "}, want: "nothing to process"},
		{name: "text and file", args: []string{"process", "-t", "x", "-f", "y.txt"}, want: "either --text or --file"},
		{name: "bad provider", args: []string{"process", "--provider", "telepathy", "-t", "x"}, want: "unknown llm provider"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, "", tc.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestProcessRejectsUnknownProviderWithSentinel(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "process", "--provider", "telepathy", "-t", "x")
	require.True(t, errors.Is(err, config.ErrUnknownProvider), "got %v", err)
}

type recordingClient struct {
	got llm.Request
}

func (c *recordingClient) Transform(_ context.Context, req llm.Request) (string, error) {
	c.got = req
	return "ok", nil
}

func (c *recordingClient) Name() string { return "recording" }

func TestProcessNormalizesModes(t *testing.T) {
	client := &recordingClient{}
	var out bytes.Buffer
	p := &Process{
		Options: ProcessOptions{Modes: []string{" Summarize", "correct", "summarize"}, Style: "Casual", Text: "text"},
		Client:  client,
		Out:     &out,
	}
	require.NoError(t, p.Do(context.Background()))
	require.Equal(t, llm.Request{Text: "text", Processing: []string{"correct", "summarize"}, Style: "casual"}, client.got)
	require.Equal(t, "ok\n", out.String())
}

func TestModesCommandListsCatalogue(t *testing.T) {
	out, err := execute(t, "", "modes", "--prompts")
	require.NoError(t, err)
	for _, want := range []string{"Processing modes", "Style modes", "summarize", "Friendly", "professional", "Summarize the following text"} {
		require.Contains(t, out, want)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	require.Contains(t, out, "dev")
}

func TestSetupLoggingToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textcraft.log")
	restore, err := setupLogging(path)
	require.NoError(t, err)
	log.Printf("[jobs] transform-1 transform succeeded")
	restore()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "[jobs] transform-1 transform succeeded")
}
