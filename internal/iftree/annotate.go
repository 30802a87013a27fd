package iftree

// Annotate assigns every visible node the span it occupies in the
// rendered text, depth-first and left-to-right. Hidden regions are left
// unpositioned and do not advance the position. Spans are derived
// state: re-run this after every structural or filter change.
//
// A choice consumes one synthesized newline before each visible,
// non-empty branch and one final newline after both, modeling the
// marker lines that occupy a line each in rendered text without being
// content nodes themselves.
func Annotate(doc *RegionNode) {
	annotateRegion(doc, Pos{})
}

func annotateRegion(r *RegionNode, at Pos) Pos {
	if r.Hidden {
		clearSpans(r)
		return at
	}
	start := at
	for _, seg := range r.Segments {
		switch n := seg.(type) {
		case *ContentNode:
			end := at.advance(n.Content)
			n.setSpan(Span{Start: at, End: end})
			at = end
		case *ChoiceNode:
			at = annotateChoice(n, at)
		default:
			panic("iftree: unknown segment type")
		}
	}
	r.setSpan(Span{Start: start, End: at})
	return at
}

func annotateChoice(c *ChoiceNode, at Pos) Pos {
	start := at
	at = annotateBranch(c.Then, at)
	at = annotateBranch(c.Else, at)
	at = at.advance("\n")
	c.setSpan(Span{Start: start, End: at})
	return at
}

func annotateBranch(b *RegionNode, at Pos) Pos {
	if b.Hidden {
		clearSpans(b)
		return at
	}
	if len(b.Segments) > 0 {
		at = at.advance("\n")
	}
	return annotateRegion(b, at)
}

// clearSpans marks a subtree unpositioned. Hidden content has no place
// in the rendered coordinate space; a stale span must not survive.
func clearSpans(r *RegionNode) {
	r.clearSpan()
	for _, seg := range r.Segments {
		switch n := seg.(type) {
		case *ContentNode:
			n.clearSpan()
		case *ChoiceNode:
			n.clearSpan()
			clearSpans(n.Then)
			clearSpans(n.Else)
		default:
			panic("iftree: unknown segment type")
		}
	}
}
