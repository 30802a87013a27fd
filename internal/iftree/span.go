package iftree

import (
	"fmt"
	"strings"
)

// Pos is a zero-based coordinate in rendered text. Row counts
// newline-separated lines; Col counts bytes since the last newline.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Compare returns -1 if p < q, 0 if equal, 1 if p > q.
func (p Pos) Compare(q Pos) int {
	if p.Row != q.Row {
		if p.Row < q.Row {
			return -1
		}
		return 1
	}
	if p.Col != q.Col {
		if p.Col < q.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether p comes before q.
func (p Pos) Before(q Pos) bool {
	return p.Compare(q) < 0
}

// advance returns the position after appending text at p.
func (p Pos) advance(text string) Pos {
	n := strings.Count(text, "\n")
	if n == 0 {
		return Pos{Row: p.Row, Col: p.Col + len(text)}
	}
	last := strings.LastIndexByte(text, '\n')
	return Pos{Row: p.Row + n, Col: len(text) - last - 1}
}

// Span is a coordinate range in the currently rendered text, valid only
// until the next structural or filter change. End-boundary handling
// differs per consumer; see contains and containsAtEnd.
type Span struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("[%s-%s]", s.Start, s.End)
}

// contains reports whether p lies strictly inside s: exclusive at both
// the start and the end boundary. A point exactly on either boundary
// belongs to neither side.
func (s Span) contains(p Pos) bool {
	return s.Start.Before(p) && p.Before(s.End)
}

// containsAtEnd is like contains but inclusive at the end boundary, so
// a point sitting exactly at the end of a span still resolves into it.
func (s Span) containsAtEnd(p Pos) bool {
	return s.Start.Before(p) && !s.End.Before(p)
}
