package iftree

import "strings"

// RenderVisible produces the text of the current view: leaf content in
// order, hidden regions omitted. For a choice, each visible non-empty
// branch is prefixed by one newline and one trailing newline always
// follows, mirroring exactly how Annotate consumes positions so text
// and spans stay consistent.
func RenderVisible(r *RegionNode) string {
	var b strings.Builder
	visibleRegion(&b, r)
	return b.String()
}

func visibleRegion(b *strings.Builder, r *RegionNode) {
	if r.Hidden {
		return
	}
	for _, seg := range r.Segments {
		switch n := seg.(type) {
		case *ContentNode:
			b.WriteString(n.Content)
		case *ChoiceNode:
			visibleBranch(b, n.Then)
			visibleBranch(b, n.Else)
			b.WriteByte('\n')
		default:
			panic("iftree: unknown segment type")
		}
	}
}

func visibleBranch(b *strings.Builder, r *RegionNode) {
	if r.Hidden || len(r.Segments) == 0 {
		return
	}
	b.WriteByte('\n')
	visibleRegion(b, r)
}

// RenderCanonical reconstructs concrete conditional syntax for the
// whole tree, ignoring hidden flags. Used for persistence and export
// regardless of any active view filter.
//
// A choice renders as a newline, its #ifdef or #ifndef marker line, the
// then branch, an #else line plus the else branch only when the else
// branch has segments, and a closing #endif line. A non-empty branch
// emits the newline that terminates the marker line before it, unless
// its first segment is itself a choice, whose own leading newline
// serves. An empty branch contributes nothing, which is what lets
// "#ifdef X\n#endif" round-trip byte for byte.
func RenderCanonical(r *RegionNode) string {
	var b strings.Builder
	canonicalRegion(&b, r)
	return b.String()
}

func canonicalRegion(b *strings.Builder, r *RegionNode) {
	for _, seg := range r.Segments {
		switch n := seg.(type) {
		case *ContentNode:
			b.WriteString(n.Content)
		case *ChoiceNode:
			canonicalChoice(b, n)
		default:
			panic("iftree: unknown segment type")
		}
	}
}

func canonicalChoice(b *strings.Builder, c *ChoiceNode) {
	if c.Kind == Contrapositive {
		b.WriteString("\n#ifndef ")
	} else {
		b.WriteString("\n#ifdef ")
	}
	b.WriteString(c.Name)
	canonicalBranch(b, c.Then)
	if len(c.Else.Segments) > 0 {
		b.WriteString("\n#else")
		canonicalBranch(b, c.Else)
	}
	b.WriteString("\n#endif")
}

func canonicalBranch(b *strings.Builder, r *RegionNode) {
	if len(r.Segments) == 0 {
		return
	}
	if _, ok := r.Segments[0].(*ChoiceNode); !ok {
		b.WriteByte('\n')
	}
	canonicalRegion(b, r)
}
