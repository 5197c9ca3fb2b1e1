package selection

import (
	"sort"
	"strings"
)

// Snapshot is the comparison point recorded by Commit. ProcessingModes is
// always sorted and free of duplicates.
type Snapshot struct {
	Text            string
	ProcessingModes []string
	StyleMode       string
}

// State tracks the editor text plus the processing/style mode selection and
// decides whether a process action is currently permitted.
//
// The zero value is ready to use. State is not safe for concurrent use; the
// TUI only touches it from its update loop.
type State struct {
	processing map[string]struct{}
	style      string
	input      string
	output     string
	committed  *Snapshot
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// SetProcessingMode adds or removes mode from the multi-select processing set.
// Empty modes are ignored.
func (s *State) SetProcessingMode(mode string, selected bool) {
	if mode == "" {
		return
	}
	if selected {
		if s.processing == nil {
			s.processing = map[string]struct{}{}
		}
		s.processing[mode] = struct{}{}
		return
	}
	delete(s.processing, mode)
}

// ToggleProcessingMode flips mode and reports whether it is now selected.
func (s *State) ToggleProcessingMode(mode string) bool {
	next := !s.HasProcessingMode(mode)
	s.SetProcessingMode(mode, next)
	return next && mode != ""
}

// SetStyleMode replaces the single-select style mode. An empty mode unsets it.
func (s *State) SetStyleMode(mode string) {
	s.style = mode
}

// SetInputText stores text verbatim.
func (s *State) SetInputText(text string) {
	s.input = text
}

// SetOutputText records the most recent transformation result.
func (s *State) SetOutputText(text string) {
	s.output = text
}

// HasProcessingMode reports whether mode is part of the live selection.
func (s *State) HasProcessingMode(mode string) bool {
	_, ok := s.processing[mode]
	return ok
}

// ProcessingModes returns the live processing selection, sorted.
func (s *State) ProcessingModes() []string {
	modes := make([]string, 0, len(s.processing))
	for mode := range s.processing {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return modes
}

// StyleMode returns the selected style, empty when none is set.
func (s *State) StyleMode() string { return s.style }

// InputText returns the editor text as last set.
func (s *State) InputText() string { return s.input }

// OutputText returns the most recent transformation result.
func (s *State) OutputText() string { return s.output }

// LastCommitted returns a copy of the recorded snapshot. The boolean is false
// before the first Commit and after Reset.
func (s *State) LastCommitted() (Snapshot, bool) {
	if s.committed == nil {
		return Snapshot{}, false
	}
	snap := *s.committed
	snap.ProcessingModes = append([]string(nil), s.committed.ProcessingModes...)
	return snap, true
}

// Selection returns the live selection in canonical form.
func (s *State) Selection() Snapshot {
	return Snapshot{
		Text:            s.input,
		ProcessingModes: s.ProcessingModes(),
		StyleMode:       s.style,
	}
}

// Commit records the current text and selection as the comparison snapshot.
func (s *State) Commit() {
	s.CommitSnapshot(s.Selection())
}

// CommitSnapshot records snap, typically taken when a process action started,
// as the comparison snapshot.
func (s *State) CommitSnapshot(snap Snapshot) {
	modes := append([]string(nil), snap.ProcessingModes...)
	sort.Strings(modes)
	snap.ProcessingModes = modes
	s.committed = &snap
}

// CanProcess reports whether a process action is allowed right now.
func (s *State) CanProcess() bool {
	if strings.TrimSpace(s.input) == "" {
		return false
	}
	if len(s.processing) == 0 || s.style == "" {
		return false
	}
	if s.committed == nil {
		return true
	}
	if s.input != s.committed.Text {
		return true
	}
	return !s.selectionMatches(*s.committed)
}

func (s *State) selectionMatches(snap Snapshot) bool {
	if s.style != snap.StyleMode {
		return false
	}
	current := s.ProcessingModes()
	if len(current) != len(snap.ProcessingModes) {
		return false
	}
	for i := range current {
		if current[i] != snap.ProcessingModes[i] {
			return false
		}
	}
	return true
}

// Reset clears every field back to its initial state.
func (s *State) Reset() {
	*s = State{}
}
