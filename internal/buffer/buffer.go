package buffer

import (
	"fmt"
	"strings"

	"github.com/dgallion1/ifedit/internal/iftree"
)

// Buffer is an in-memory live text buffer: the mutable text that tree
// spans refer to. The tree core only ever reads it, through
// iftree.LiveBuffer; edits come from the editing surface.
type Buffer struct {
	lines   []string
	markers []*Marker
}

// New creates a buffer holding text.
func New(text string) *Buffer {
	return &Buffer{lines: strings.Split(text, "\n")}
}

// Text returns the whole buffer contents.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// SetText replaces the buffer contents wholesale. Existing markers are
// detached: they keep their last span but no longer follow edits.
func (b *Buffer) SetText(text string) {
	b.lines = strings.Split(text, "\n")
	b.markers = nil
}

// TextInRange reads the text in a start-inclusive, end-exclusive span.
// It is queried at the moment of use: the buffer, not any node's cached
// content, is the source of truth for literal text at edit time.
func (b *Buffer) TextInRange(sp iftree.Span) (string, error) {
	if err := b.checkPos(sp.Start); err != nil {
		return "", err
	}
	if err := b.checkPos(sp.End); err != nil {
		return "", err
	}
	if sp.End.Before(sp.Start) {
		return "", fmt.Errorf("inverted range %s", sp)
	}
	if sp.Start.Row == sp.End.Row {
		return b.lines[sp.Start.Row][sp.Start.Col:sp.End.Col], nil
	}
	var out strings.Builder
	out.WriteString(b.lines[sp.Start.Row][sp.Start.Col:])
	for row := sp.Start.Row + 1; row < sp.End.Row; row++ {
		out.WriteByte('\n')
		out.WriteString(b.lines[row])
	}
	out.WriteByte('\n')
	out.WriteString(b.lines[sp.End.Row][:sp.End.Col])
	return out.String(), nil
}

func (b *Buffer) checkPos(p iftree.Pos) error {
	if p.Row < 0 || p.Row >= len(b.lines) {
		return fmt.Errorf("row %d out of range (buffer has %d lines)", p.Row, len(b.lines))
	}
	if p.Col < 0 || p.Col > len(b.lines[p.Row]) {
		return fmt.Errorf("col %d out of range on row %d (line is %d bytes)", p.Col, p.Row, len(b.lines[p.Row]))
	}
	return nil
}

// Insert splices text at a position and shifts markers after it.
func (b *Buffer) Insert(at iftree.Pos, text string) error {
	if err := b.checkPos(at); err != nil {
		return err
	}
	line := b.lines[at.Row]
	spliced := line[:at.Col] + text + line[at.Col:]
	parts := strings.Split(spliced, "\n")
	b.lines = append(b.lines[:at.Row], append(parts, b.lines[at.Row+1:]...)...)

	delta := posDelta(text)
	for _, m := range b.markers {
		m.sp.Start = shiftAfterInsert(m.sp.Start, at, delta)
		m.sp.End = shiftAfterInsert(m.sp.End, at, delta)
	}
	return nil
}

// Delete removes the text in a span and shifts markers accordingly.
// Marker endpoints inside the deleted span clamp to its start.
func (b *Buffer) Delete(sp iftree.Span) error {
	if _, err := b.TextInRange(sp); err != nil {
		return err
	}
	head := b.lines[sp.Start.Row][:sp.Start.Col]
	tail := b.lines[sp.End.Row][sp.End.Col:]
	merged := head + tail
	b.lines = append(b.lines[:sp.Start.Row], append([]string{merged}, b.lines[sp.End.Row+1:]...)...)

	for _, m := range b.markers {
		m.sp.Start = shiftAfterDelete(m.sp.Start, sp)
		m.sp.End = shiftAfterDelete(m.sp.End, sp)
	}
	return nil
}

// Replace is a delete followed by an insert at the span start.
func (b *Buffer) Replace(sp iftree.Span, text string) error {
	if err := b.Delete(sp); err != nil {
		return err
	}
	return b.Insert(sp.Start, text)
}

// posDelta describes how far an inserted string pushes following text.
type delta struct {
	rows    int
	lastLen int // bytes after the last newline, or total length if none
}

func posDelta(text string) delta {
	n := strings.Count(text, "\n")
	if n == 0 {
		return delta{rows: 0, lastLen: len(text)}
	}
	last := strings.LastIndexByte(text, '\n')
	return delta{rows: n, lastLen: len(text) - last - 1}
}

func shiftAfterInsert(p, at iftree.Pos, d delta) iftree.Pos {
	if p.Before(at) {
		return p
	}
	if p.Row == at.Row {
		if d.rows == 0 {
			return iftree.Pos{Row: p.Row, Col: p.Col + d.lastLen}
		}
		return iftree.Pos{Row: p.Row + d.rows, Col: p.Col - at.Col + d.lastLen}
	}
	return iftree.Pos{Row: p.Row + d.rows, Col: p.Col}
}

func shiftAfterDelete(p iftree.Pos, sp iftree.Span) iftree.Pos {
	if p.Before(sp.Start) {
		return p
	}
	if p.Before(sp.End) {
		return sp.Start
	}
	if p.Row == sp.End.Row {
		return iftree.Pos{Row: sp.Start.Row, Col: sp.Start.Col + p.Col - sp.End.Col}
	}
	return iftree.Pos{Row: p.Row - (sp.End.Row - sp.Start.Row), Col: p.Col}
}
