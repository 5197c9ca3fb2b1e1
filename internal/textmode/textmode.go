package textmode

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind separates the multi-select processing tabs from the single-select
// style tabs.
type Kind string

const (
	KindProcessing Kind = "processing"
	KindStyle      Kind = "style"
)

// Mode describes one tab: its identifier, label and instruction prompt.
type Mode struct {
	ID     string
	Name   string
	Kind   Kind
	Prompt string
}

// SystemPrompt frames every transformation request.
const SystemPrompt = "You are a professional text optimization assistant. You help users improve, " +
	"optimize and restyle their texts. Always answer with the optimized text only, without extra explanations or comments."

// DefaultProcessingMode and DefaultStyleMode are preselected on start.
const (
	DefaultProcessingMode = "correct"
	DefaultStyleMode      = "professional"
)

var catalog = []Mode{
	{ID: "summarize", Name: "Summarize", Kind: KindProcessing, Prompt: "Summarize the following text concisely and keep the most important information:"},
	{ID: "correct", Name: "Correct", Kind: KindProcessing, Prompt: "Correct spelling, grammar and style of the following text. Improve the wording but keep the original meaning:"},
	{ID: "formal", Name: "Formal", Kind: KindStyle, Prompt: "Rewrite the following text in a formal, polite style using professional language:"},
	{ID: "casual", Name: "Friendly", Kind: KindStyle, Prompt: "Rewrite the following text in a relaxed, friendly and approachable style:"},
	{ID: "professional", Name: "Professional", Kind: KindStyle, Prompt: "Rewrite the following text in a professional business style using clear, precise language:"},
	{ID: "creative", Name: "Creative", Kind: KindStyle, Prompt: "Rewrite the following text in a creative, vivid and expressive style:"},
	{ID: "simple", Name: "Simple", Kind: KindStyle, Prompt: "Rewrite the following text in simple, easy to understand words. Use short sentences and avoid jargon:"},
}

// All returns every mode in display order.
func All() []Mode {
	return append([]Mode(nil), catalog...)
}

// OfKind returns the modes of one tab row in display order.
func OfKind(kind Kind) []Mode {
	var modes []Mode
	for _, mode := range catalog {
		if mode.Kind == kind {
			modes = append(modes, mode)
		}
	}
	return modes
}

// Lookup finds a mode by identifier.
func Lookup(id string) (Mode, bool) {
	for _, mode := range catalog {
		if mode.ID == id {
			return mode, true
		}
	}
	return Mode{}, false
}

// Validate checks that processing only names processing modes and style names
// a style mode.
func Validate(processing []string, style string) error {
	for _, id := range processing {
		mode, ok := Lookup(id)
		if !ok {
			return fmt.Errorf("unknown processing mode %q", id)
		}
		if mode.Kind != KindProcessing {
			return fmt.Errorf("%q is a %s mode, not a processing mode", id, mode.Kind)
		}
	}
	if style == "" {
		return nil
	}
	mode, ok := Lookup(style)
	if !ok {
		return fmt.Errorf("unknown style mode %q", style)
	}
	if mode.Kind != KindStyle {
		return fmt.Errorf("%q is a %s mode, not a style mode", style, mode.Kind)
	}
	return nil
}

// BuildPrompt joins the instructions for the selected modes ahead of text.
func BuildPrompt(processing []string, style, text string) string {
	var b strings.Builder
	for _, id := range append(append([]string(nil), processing...), style) {
		mode, ok := Lookup(id)
		if !ok {
			continue
		}
		b.WriteString(mode.Prompt)
		b.WriteRune('\n')
	}
	b.WriteRune('\n')
	b.WriteString(text)
	return b.String()
}

var simplePunctuation = regexp.MustCompile(`[.,!?]`)

// Simulate produces the canned demo output for one mode.
func Simulate(id, text string) string {
	switch id {
	case "summarize":
		return "Summary: " + prefixRunes(text, 100) + "..."
	case "correct":
		words := strings.Split(text, " ")
		for i, word := range words {
			words[i] = capitalize(word)
		}
		return strings.Join(words, " ")
	case "formal":
		return "Dear Sir or Madam,\n\n" + text + "\n\nKind regards"
	case "casual":
		return "Hey! 👋\n\n" + text + "\n\nCheers! 😊"
	case "professional":
		return "Subject: " + prefixRunes(text, 50) + "...\n\n" + text
	case "creative":
		runes := []rune(text)
		for i, r := range runes {
			if i%2 == 0 {
				runes[i] = unicode.ToUpper(r)
			}
		}
		return "✨ " + string(runes) + " ✨"
	case "simple":
		return simplePunctuation.ReplaceAllString(strings.ToLower(text), "")
	default:
		return text
	}
}

// SimulateAll applies the processing modes in order, then the style mode.
func SimulateAll(processing []string, style, text string) string {
	out := text
	for _, id := range processing {
		out = Simulate(id, out)
	}
	if style != "" {
		out = Simulate(style, out)
	}
	return out
}

func prefixRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}
