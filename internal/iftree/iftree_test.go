package iftree

import (
	"fmt"
	"strings"
)

// Test fixtures shared across this package's tests.

func text(s string) *ContentNode {
	return &ContentNode{Content: s}
}

func region(segs ...Segment) *RegionNode {
	return &RegionNode{Segments: segs}
}

func choice(name string, kind Kind, then, els *RegionNode) *ChoiceNode {
	return &ChoiceNode{Name: name, Kind: kind, Then: then, Else: els}
}

// stubBuffer is a LiveBuffer over a fixed string, for operations that
// re-read text at edit time.
type stubBuffer struct {
	lines []string
}

func newStubBuffer(s string) *stubBuffer {
	return &stubBuffer{lines: strings.Split(s, "\n")}
}

func (b *stubBuffer) TextInRange(sp Span) (string, error) {
	if sp.Start.Row < 0 || sp.End.Row >= len(b.lines) || sp.End.Before(sp.Start) {
		return "", fmt.Errorf("bad range %s", sp)
	}
	if sp.Start.Row == sp.End.Row {
		return b.lines[sp.Start.Row][sp.Start.Col:sp.End.Col], nil
	}
	parts := []string{b.lines[sp.Start.Row][sp.Start.Col:]}
	for row := sp.Start.Row + 1; row < sp.End.Row; row++ {
		parts = append(parts, b.lines[row])
	}
	parts = append(parts, b.lines[sp.End.Row][:sp.End.Col])
	return strings.Join(parts, "\n"), nil
}

// stubRange is a fixed LiveRange for sync tests.
type stubRange struct {
	sp Span
}

func (r stubRange) CurrentSpan() Span {
	return r.sp
}
