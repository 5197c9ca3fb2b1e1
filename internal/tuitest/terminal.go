package tuitest

import (
	"bytes"
	"io"
)

// terminalQuery is a request a TUI sends to probe the terminal, paired with a
// canned answer.
type terminalQuery struct {
	pattern  []byte
	response []byte
}

// Programs block on these during startup when nothing answers.
var terminalQueries = []terminalQuery{
	{pattern: []byte("\x1b[6n"), response: []byte("\x1b[1;1R")},
	{pattern: []byte("\x1b]10;?\x07"), response: []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{pattern: []byte("\x1b]10;?\x1b\\"), response: []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{pattern: []byte("\x1b]11;?\x07"), response: []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{pattern: []byte("\x1b]11;?\x1b\\"), response: []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderMaxBuffer = 256
	responderTail      = 64
)

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

// Process scans chunk for terminal queries and writes their answers. A short
// tail is kept so queries split across reads are still seen.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerNext() {
	}
	if len(tr.buf) > responderMaxBuffer {
		tr.buf = tr.buf[len(tr.buf)-responderTail:]
	}
}

// answerNext answers the earliest query in the buffer and drops everything up
// to its end.
func (tr *terminalResponder) answerNext() bool {
	first, end := -1, 0
	var answer []byte
	for _, q := range terminalQueries {
		idx := bytes.Index(tr.buf, q.pattern)
		if idx < 0 || (first >= 0 && idx >= first) {
			continue
		}
		first, end, answer = idx, idx+len(q.pattern), q.response
	}
	if first < 0 {
		return false
	}
	tr.buf = tr.buf[end:]
	_, _ = tr.w.Write(answer)
	return true
}
