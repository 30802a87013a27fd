package iftree

import "errors"

// ErrAlternativeExists is returned when alternative insertion targets a
// branch that already holds content. Existing content is never silently
// overwritten.
var ErrAlternativeExists = errors.New("alternative already exists")

// InsertAlternative populates the named branch of the choice for
// dimension name whose branch ends exactly at the given point. The
// branch becomes a region holding only seg; if it already has any
// segments the operation fails with ErrAlternativeExists and the input
// tree is returned content-unchanged.
//
// Point resolution here is inclusive at span ends, unlike InsertAt: a
// point sitting exactly at a branch's end boundary still resolves into
// the enclosing region, which is precisely how an empty branch (whose
// span is a single point) is addressed at all.
func InsertAlternative(doc *RegionNode, at Pos, seg Segment, branch Branch, name string) (*RegionNode, error) {
	Annotate(doc)
	rw := &rewriter{}
	rw.choice = func(c *ChoiceNode) ([]Segment, error) {
		if c.Name == name {
			target, other := c.Then, c.Else
			if branch == ElseBranch {
				target, other = c.Else, c.Then
			}
			if sp, ok := target.Span(); ok && sp.End == at {
				if len(target.Segments) > 0 {
					return nil, ErrAlternativeExists
				}
				filled := &RegionNode{Segments: []Segment{seg}}
				rewritten, err := rw.region(other)
				if err != nil {
					return nil, err
				}
				if branch == ElseBranch {
					return []Segment{&ChoiceNode{Name: c.Name, Kind: c.Kind, Then: rewritten, Else: filled}}, nil
				}
				return []Segment{&ChoiceNode{Name: c.Name, Kind: c.Kind, Then: filled, Else: rewritten}}, nil
			}
		}
		// Not the spot: search on, but skip subtrees that cannot
		// resolve the point.
		then, els := c.Then, c.Else
		if sp, ok := then.Span(); ok && sp.containsAtEnd(at) {
			var err error
			if then, err = rw.region(then); err != nil {
				return nil, err
			}
			els = els.clone()
		} else if sp, ok := els.Span(); ok && sp.containsAtEnd(at) {
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
	out, err := rw.document(doc)
	if err != nil {
		return doc, err
	}
	return out, nil
}
