package subtitle

import (
	"log"
	"time"

	"github.com/csheth/textcraft/internal/clock"
)

// Visibility is the state callers see; transient phases collapse into it.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
)

func (v Visibility) String() string {
	if v == Hidden {
		return "hidden"
	}
	return "visible"
}

// HiddenReason tells "hidden by an explicit action" apart from "never shown".
type HiddenReason int

const (
	ReasonNone HiddenReason = iota
	ReasonFocus
)

// Phase is the full controller state including the in-flight slides.
type Phase int

const (
	PhaseVisible Phase = iota
	PhaseHiding
	PhaseHidden
	PhaseShowing
)

func (p Phase) String() string {
	switch p {
	case PhaseHiding:
		return "hiding"
	case PhaseHidden:
		return "hidden"
	case PhaseShowing:
		return "showing"
	default:
		return "visible"
	}
}

// allowedTransitions is the complete set of legal phase changes.
var allowedTransitions = map[Phase][]Phase{
	PhaseVisible: {PhaseHiding, PhaseHidden},
	PhaseHiding:  {PhaseHidden},
	PhaseHidden:  {PhaseShowing},
	PhaseShowing: {PhaseVisible},
}

func canTransition(from, to Phase) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Config carries the subtitle text and every delay the Controller uses.
type Config struct {
	Text              string
	Timing            Timing
	AnimationDuration time.Duration
	ScrollCheckDelay  time.Duration
}

// Controller slides the subtitle out and back in. A slide holds the
// controller busy for its whole duration; requests arriving meanwhile are
// dropped.
type Controller struct {
	clock   clock.Clock
	surface Surface
	page    Page
	reveal  *Reveal
	cfg     Config

	phase  Phase
	reason HiddenReason
	height int

	scrollCheck clock.Handle
	scrollArmed bool
}

// NewController wires a Controller around reveal. The subtitle starts Visible.
func NewController(c clock.Clock, surface Surface, page Page, reveal *Reveal, cfg Config) *Controller {
	return &Controller{
		clock:   c,
		surface: surface,
		page:    page,
		reveal:  reveal,
		cfg:     cfg,
	}
}

func (c *Controller) transition(to Phase) bool {
	if !canTransition(c.phase, to) {
		return false
	}
	log.Printf("[subtitle] %s -> %s", c.phase, to)
	c.phase = to
	return true
}

// Init settles the starting state: hidden straight away when the page is
// scrolled and the editor has focus, otherwise the reveal plays.
func (c *Controller) Init() {
	if c.phase != PhaseVisible {
		return
	}
	if !c.page.AtTop() && c.page.InputFocused() {
		c.transition(PhaseHidden)
		c.reason = ReasonFocus
		c.surface.SetElementHidden(true)
		return
	}
	c.reveal.Start(c.cfg.Text, c.cfg.Timing)
}

// Hide slides the subtitle out. No-op unless Visible and idle.
func (c *Controller) Hide() {
	if !c.transition(PhaseHiding) {
		return
	}
	c.reveal.Stop()
	c.reason = ReasonFocus
	c.height = c.surface.ElementHeight()
	c.surface.ApplyTransientTransform(-c.height)
	c.clock.Schedule(c.cfg.AnimationDuration, func() {
		c.transition(PhaseHidden)
		c.surface.SetElementHidden(true)
		c.surface.ClearTransientTransform()
	})
}

// Show slides the subtitle back in and replays the reveal. No-op unless
// Hidden and idle.
func (c *Controller) Show() {
	if !c.transition(PhaseShowing) {
		return
	}
	c.reveal.Stop()
	c.reason = ReasonNone
	height := c.height
	if height <= 0 {
		height = c.surface.ElementHeight()
	}
	c.surface.SetElementHidden(false)
	c.surface.ApplyTransientTransform(height)
	c.clock.Schedule(c.cfg.AnimationDuration, func() {
		c.transition(PhaseVisible)
		c.surface.ClearTransientTransform()
		c.reveal.Start(c.cfg.Text, c.cfg.Timing)
	})
}

// HandleScroll shows the subtitle again once the page settles at the top.
// The position is re-checked after ScrollCheckDelay so a scroll that only
// passes through the top does not trigger a slide.
func (c *Controller) HandleScroll() {
	if c.Busy() || !c.scrolledBackToTop() {
		return
	}
	if c.scrollArmed {
		c.clock.Cancel(c.scrollCheck)
	}
	c.scrollArmed = true
	c.scrollCheck = c.clock.Schedule(c.cfg.ScrollCheckDelay, func() {
		c.scrollArmed = false
		if c.scrolledBackToTop() {
			c.Show()
		}
	})
}

func (c *Controller) scrolledBackToTop() bool {
	return c.page.AtTop() && c.phase == PhaseHidden && c.reason == ReasonFocus
}

// HandleExternalActivation reacts to a click outside the interactive
// controls. It only shows the subtitle when nothing can be scrolled, leaving
// scrollable pages to HandleScroll.
func (c *Controller) HandleExternalActivation() {
	if c.phase != PhaseHidden || c.page.Scrollable() {
		return
	}
	c.Show()
}

// Visibility reports the settled state. It changes only when a slide completes.
func (c *Controller) Visibility() Visibility {
	if c.phase == PhaseHidden || c.phase == PhaseShowing {
		return Hidden
	}
	return Visible
}

// HiddenReason reports why the subtitle was last hidden.
func (c *Controller) HiddenReason() HiddenReason { return c.reason }

// Phase reports the current step of the visibility machine.
func (c *Controller) Phase() Phase { return c.phase }

// Busy reports whether a slide is in flight.
func (c *Controller) Busy() bool {
	return c.phase == PhaseHiding || c.phase == PhaseShowing
}

// ScrollCheckPending reports whether a scroll confirmation is armed.
func (c *Controller) ScrollCheckPending() bool { return c.scrollArmed }
