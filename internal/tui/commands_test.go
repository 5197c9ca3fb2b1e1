package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/csheth/textcraft/internal/clock"
	"github.com/csheth/textcraft/internal/llm"
	"github.com/csheth/textcraft/internal/selection"
)

var errBoom = errors.New("boom")

type fakeLLM struct {
	output string
	err    error
}

func (f fakeLLM) Transform(ctx context.Context, req llm.Request) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output + ":" + req.Style, nil
}

func (fakeLLM) Name() string { return "fake" }

func TestTransformJobCarriesSnapshot(t *testing.T) {
	snap := selection.Snapshot{Text: "Hello", ProcessingModes: []string{"correct", "summarize"}, StyleMode: "formal"}
	msg, err := transformJob(fakeLLM{output: "done"}, snap)(context.Background())
	require.NoError(t, err)

	result, ok := msg.(transformResultMsg)
	require.True(t, ok, "unexpected message %T", msg)
	require.Equal(t, "done:formal", result.output)
	require.Equal(t, snap, result.snapshot)
	require.Equal(t, llm.Request{Text: "Hello", Processing: []string{"correct", "summarize"}, Style: "formal"}, result.request)
}

func TestTransformJobReportsErrors(t *testing.T) {
	msg, err := transformJob(fakeLLM{err: errBoom}, selection.Snapshot{Text: "x"})(context.Background())
	require.ErrorIs(t, err, errBoom)
	require.ErrorIs(t, msg.(transformResultMsg).err, errBoom)
}

func TestCopyJobWritesClipboard(t *testing.T) {
	var copied string
	msg, err := copyJob(func(text string) error {
		copied = text
		return nil
	}, "result")(context.Background())
	require.NoError(t, err)
	require.Equal(t, copyResultMsg{}, msg)
	require.Equal(t, "result", copied)

	_, err = copyJob(func(string) error { return errBoom }, "result")(context.Background())
	require.ErrorIs(t, err, errBoom)
}

func TestImportJobLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("draft text"), 0o644))

	msg, err := importJob(path)(context.Background())
	require.NoError(t, err)
	require.Equal(t, importResultMsg{path: path, text: "draft text"}, msg)

	_, err = importJob(filepath.Join(t.TempDir(), "missing.txt"))(context.Background())
	require.Error(t, err)
}

func TestWaitForTimerDeliversFiredHandles(t *testing.T) {
	loop := clock.NewLoop()
	defer loop.Close()

	m, ok := New(Config{Clock: loop}).(*model)
	require.True(t, ok)

	ran := false
	h := loop.Schedule(time.Millisecond, func() { ran = true })

	msg := waitForTimer(loop)()
	require.Equal(t, timerFiredMsg{handle: h}, msg)
	require.False(t, ran, "callbacks only run on the update loop")

	_, next := m.Update(msg)
	require.True(t, ran)
	require.NotNil(t, next, "the timer wait must be re-armed")
}

func TestWaitForTimerStopsWhenClosed(t *testing.T) {
	loop := clock.NewLoop()
	loop.Close()
	require.Nil(t, waitForTimer(loop)())
}

func TestJobBusIDsAndBadges(t *testing.T) {
	bus := newJobBus(nil)
	first, second := bus.nextID(jobKindTransform), bus.nextID(jobKindTransform)
	require.True(t, strings.HasPrefix(first, "transform-"))
	require.NotEqual(t, first, second)

	require.Equal(t, "copy…", jobSnapshot{Kind: jobKindCopy, Status: jobStatusRunning}.badge())
	require.Equal(t, "import failed", jobSnapshot{Kind: jobKindImport, Status: jobStatusFailed}.badge())
	require.Equal(t, "transform 2s", jobSnapshot{Kind: jobKindTransform, Status: jobStatusSucceeded, Duration: 2 * time.Second}.badge())
	require.Empty(t, jobSnapshot{}.badge())
}

func TestTrimmedName(t *testing.T) {
	require.Equal(t, "draft.txt", trimmedName(" /tmp/notes/draft.txt "))
	long := strings.Repeat("a", 50) + ".txt"
	got := trimmedName(long)
	require.LessOrEqual(t, len([]rune(got)), 40)
	require.True(t, strings.HasPrefix(got, "aaaa"))
	require.True(t, strings.HasSuffix(got, "…"))
}
