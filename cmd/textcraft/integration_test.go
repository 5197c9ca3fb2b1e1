package main

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/csheth/textcraft/internal/tuitest"
)

func TestTextCraftProcessesTypedText(t *testing.T) {
	t.Parallel()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen"},
		Dir:     cmdDir,
		Env: []string{
			"TEXTCRAFT_CONFIG_PATH=" + t.TempDir(),
			"TEXTCRAFT_LLM_PROVIDER=simulate",
			"TEXTCRAFT_LLM_SIMULATION_DELAY=0s",
			"TEXTCRAFT_TYPING_INITIAL_DELAY=0s",
			"TEXTCRAFT_TYPING_SPEED=1ms",
		},
		Width:  100,
		Height: 40,
		Steps: []tuitest.Step{
			{WaitFor: "summarize your text.", Input: []byte("i")},
			tuitest.Type(200*time.Millisecond, "hello world."),
			{WaitFor: "12 characters", Input: tuitest.KeyCtrlR},
			{WaitFor: "Subject:", Input: tuitest.KeyCtrlC},
		},
		Timeout:        10 * time.Second,
		AllowInterrupt: true,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}

	frame, ok := rec.LastFrameContaining("Subject:")
	if !ok {
		t.Fatalf("no frame showed the result")
	}
	if !strings.Contains(frame.Plain, "Hello World.") {
		t.Fatalf("result frame missing corrected text:\n%s", frame.Plain)
	}
	if _, ok := rec.FrameContaining("Refine, restyle and summarize"); !ok {
		t.Fatalf("subtitle never rendered")
	}
}

func TestTextCraftProcessCommand(t *testing.T) {
	t.Parallel()

	binary := buildBinary(t, moduleDir(t))
	cmd := exec.Command(binary, "process", "-m", "correct", "-s", "simple", "-t", "hello world.")
	cmd.Env = append(cmd.Environ(),
		"TEXTCRAFT_CONFIG_PATH="+t.TempDir(),
		"TEXTCRAFT_LLM_PROVIDER=simulate",
		"TEXTCRAFT_LLM_SIMULATION_DELAY=0s",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("process: %v\n%s", err, out)
	}
	if got := strings.TrimSpace(string(out)); got != "hello world" {
		t.Fatalf("process output = %q, want %q", got, "hello world")
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	name := "textcraft-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
