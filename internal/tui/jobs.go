package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type jobKind string

type jobStatus string

const (
	jobKindTransform jobKind = "transform"
	jobKindCopy      jobKind = "copy"
	jobKindImport    jobKind = "import"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	ctx context.Context
}

func newJobBus(ctx context.Context) *jobBus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &jobBus{ctx: ctx}
}

func (b *jobBus) nextID(kind jobKind) string {
	return fmt.Sprintf("%s-%s", kind, uuid.NewString()[:8])
}

// Start emits a running snapshot right away, then runs runner off the update
// loop and wraps its payload in a jobResultEnvelope.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		payload, err := runner(b.ctx)
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		log.Printf("[jobs] %s %s %s (duration=%s, err=%v)", id, kind, snapshot.Status, snapshot.Duration, err)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}

func (s jobSnapshot) badge() string {
	switch s.Status {
	case jobStatusRunning:
		return fmt.Sprintf("%s…", s.Kind)
	case jobStatusFailed:
		return fmt.Sprintf("%s failed", s.Kind)
	case jobStatusSucceeded:
		return fmt.Sprintf("%s %s", s.Kind, s.Duration.Round(time.Millisecond))
	default:
		return ""
	}
}
