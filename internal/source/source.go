// Package source loads editor text from files on disk.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxBytes caps how much text is imported into the editor.
const MaxBytes = 1 << 20

var (
	// ErrUnsupported is returned for binary files that are not PDFs.
	ErrUnsupported = errors.New("unsupported file type")
	// ErrTooLarge is returned when the text exceeds MaxBytes.
	ErrTooLarge = errors.New("text too large")
)

var extraneousWhitespace = regexp.MustCompile(`[ \t]+`)

// Load returns the text of path. PDFs are converted to plain text; anything
// else must be valid UTF-8.
func Load(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return ReadText(f, filepath.Base(path))
}

// ReadText reads at most MaxBytes of UTF-8 text from r. name labels errors.
// Longer input fails with ErrTooLarge rather than being cut short.
func ReadText(r io.Reader, name string) (string, error) {
	raw, err := readBounded(r, name)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %s is not UTF-8 text", ErrUnsupported, name)
	}
	return strings.ReplaceAll(string(raw), "\r\n", "\n"), nil
}

func readBounded(r io.Reader, name string) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxBytes {
		return nil, fmt.Errorf("%w: %s is over %d KiB", ErrTooLarge, name, MaxBytes>>10)
	}
	return raw, nil
}

func loadPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	raw, err := readBounded(content, filepath.Base(path))
	if err != nil {
		return "", err
	}

	text := extraneousWhitespace.ReplaceAllString(string(raw), " ")
	return strings.TrimSpace(text), nil
}
