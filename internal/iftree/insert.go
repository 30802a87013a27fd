package iftree

// InsertAt inserts seg into the leaf whose span strictly contains at,
// splitting the leaf in three: the text from the leaf's start to the
// point with one synthesized trailing newline, the new segment, and the
// text from the point to the leaf's end. Both fragments are re-read
// from buf at the moment of the edit; the leaf's content field may be
// stale. A point matching no span leaves the tree unchanged apart from
// recomputed spans.
//
// Containment is exclusive at both span boundaries, so a point sitting
// exactly where two leaves meet belongs to neither and falls through.
func InsertAt(doc *RegionNode, at Pos, seg Segment, buf LiveBuffer) (*RegionNode, error) {
	Annotate(doc)
	rw := &rewriter{}
	rw.content = func(n *ContentNode) ([]Segment, error) {
		sp, ok := n.Span()
		if !ok || !sp.contains(at) {
			return []Segment{&ContentNode{Content: n.Content, Live: n.Live}}, nil
		}
		head, err := buf.TextInRange(Span{Start: sp.Start, End: at})
		if err != nil {
			return nil, err
		}
		tail, err := buf.TextInRange(Span{Start: at, End: sp.End})
		if err != nil {
			return nil, err
		}
		return []Segment{
			&ContentNode{Content: head + "\n"},
			seg,
			&ContentNode{Content: tail},
		}, nil
	}
	rw.choice = func(c *ChoiceNode) ([]Segment, error) {
		// Descend only into the branch that strictly contains the
		// point; the other side is copied untouched.
		then, els := c.Then, c.Else
		if sp, ok := then.Span(); ok && sp.contains(at) {
			var err error
			if then, err = rw.region(then); err != nil {
				return nil, err
			}
			els = els.clone()
		} else if sp, ok := els.Span(); ok && sp.contains(at) {
			var err error
			if els, err = rw.region(els); err != nil {
				return nil, err
			}
			then = then.clone()
		} else {
			then = then.clone()
			els = els.clone()
		}
		return []Segment{&ChoiceNode{Name: c.Name, Kind: c.Kind, Then: then, Else: els}}, nil
	}
	return rw.document(doc)
}
