// Package subtitle animates the decorative subtitle: a character-by-character
// reveal and a slide in/out state machine reacting to focus, scroll and
// clicks.
//
// Nothing here is safe for concurrent use. Drive a Controller and its Reveal
// from the goroutine that runs the clock callbacks.
package subtitle

// Surface is where the subtitle is drawn.
type Surface interface {
	SetRevealedText(text string)
	ClearRevealedText()
	SetElementHidden(hidden bool)
	// ApplyTransientTransform shifts the element by offset rows while a slide
	// is in flight. Negative values slide out, positive values slide in.
	ApplyTransientTransform(offset int)
	ClearTransientTransform()
	ElementHeight() int
}

// Page answers the scroll and focus questions the Controller asks.
type Page interface {
	AtTop() bool
	InputFocused() bool
	// Scrollable reports whether the content currently needs scrolling.
	Scrollable() bool
}
