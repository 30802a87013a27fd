package iftree

// DeleteDimension removes the conditional markup for one named
// dimension, splicing the contents of whichever branch(es) sel makes
// active into the parent region. Under DEF or NDEF exactly one branch
// survives; under BOTH, both do, then-branch first. Each surviving
// branch contributes its own segments. Nested choices guarding the same
// dimension collapse too; choices for other dimensions are kept and
// only recursed into.
func DeleteDimension(doc *RegionNode, sel Selector) *RegionNode {
	rw := &rewriter{}
	rw.choice = func(c *ChoiceNode) ([]Segment, error) {
		if c.Name != sel.Name {
			return rw.passChoice(c)
		}
		var out []Segment
		if branchActive(sel.Status, c.Kind, ThenBranch) {
			then, err := rw.region(c.Then)
			if err != nil {
				return nil, err
			}
			out = append(out, then.Segments...)
		}
		if branchActive(sel.Status, c.Kind, ElseBranch) {
			els, err := rw.region(c.Else)
			if err != nil {
				return nil, err
			}
			out = append(out, els.Segments...)
		}
		return out, nil
	}
	out, err := rw.document(doc)
	if err != nil {
		// No step in this rewrite can fail.
		panic("iftree: delete dimension failed: " + err.Error())
	}
	return out
}
