package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name         string
		width        int
		height       int
		contentWidth int
		editorHeight int
		outputHeight int
	}{
		{name: "narrow", width: 80, height: 24, contentWidth: 76, editorHeight: 4, outputHeight: 3},
		{name: "wide", width: 200, height: 40, contentWidth: 196, editorHeight: 6, outputHeight: 17},
		{name: "tiny", width: 20, height: 10, contentWidth: 40, editorHeight: 4, outputHeight: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			if layout.contentWidth != tc.contentWidth {
				t.Fatalf("content width mismatch: got %d want %d", layout.contentWidth, tc.contentWidth)
			}
			if layout.editorHeight != tc.editorHeight {
				t.Fatalf("editor height mismatch: got %d want %d", layout.editorHeight, tc.editorHeight)
			}
			if layout.outputHeight != tc.outputHeight {
				t.Fatalf("output height mismatch: got %d want %d", layout.outputHeight, tc.outputHeight)
			}
		})
	}
}

func TestStackSectionsRecordsZones(t *testing.T) {
	body, zones := stackSections([]section{
		{name: "a", body: "one\ntwo"},
		{name: "skipped", body: ""},
		{name: "b", body: "three"},
	})
	if body != "one\ntwo\nthree" {
		t.Fatalf("unexpected body %q", body)
	}
	if zones["a"] != (hitZone{top: 0, bottom: 2}) || zones["b"] != (hitZone{top: 2, bottom: 3}) {
		t.Fatalf("unexpected zones %+v", zones)
	}
	if _, ok := zones["skipped"]; ok {
		t.Fatal("empty sections should not get a zone")
	}
	if !zones["a"].contains(1) || zones["a"].contains(2) {
		t.Fatal("zones are half-open")
	}
}

func TestTabAt(t *testing.T) {
	zones := []tabZone{
		{row: 0, start: 10, end: 20, index: 0},
		{row: 1, start: 10, end: 20, index: 3},
	}
	if idx, ok := tabAt(zones, 1, 15); !ok || idx != 3 {
		t.Fatalf("expected tab 3, got %d (%v)", idx, ok)
	}
	if _, ok := tabAt(zones, 0, 20); ok {
		t.Fatal("end column is exclusive")
	}
}
