package iftree

// Filter returns a copy of the tree with every branch not selected by
// sels hidden. Filtering is branch-local: leaf content and choice
// name/kind are never altered, only hidden flags and derived spans.
// Exactly one replacement choice is produced per input choice.
func Filter(doc *RegionNode, sels []Selector) *RegionNode {
	rw := &rewriter{}
	rw.choice = func(c *ChoiceNode) ([]Segment, error) {
		st := statusFor(sels, c.Name)
		then, err := filterBranch(rw, c.Then, branchActive(st, c.Kind, ThenBranch))
		if err != nil {
			return nil, err
		}
		els, err := filterBranch(rw, c.Else, branchActive(st, c.Kind, ElseBranch))
		if err != nil {
			return nil, err
		}
		return []Segment{&ChoiceNode{Name: c.Name, Kind: c.Kind, Then: then, Else: els}}, nil
	}
	out, err := rw.document(doc)
	if err != nil {
		// No step in this rewrite can fail.
		panic("iftree: filter failed: " + err.Error())
	}
	return out
}

// filterBranch recursively filters an active branch. An inactive branch
// is copied, not aliased, before the hidden flag is set: the input tree
// stays intact.
func filterBranch(rw *rewriter, b *RegionNode, active bool) (*RegionNode, error) {
	if !active {
		hidden := b.clone()
		hidden.Hidden = true
		return hidden, nil
	}
	out, err := rw.region(b)
	if err != nil {
		return nil, err
	}
	out.Hidden = false
	return out, nil
}
