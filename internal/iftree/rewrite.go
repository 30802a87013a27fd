package iftree

// rewriter is the generic tree-to-tree transform every structural
// operation is built on. An operation overrides the step(s) it cares
// about; nil steps get the pass-through default. Rewrites build a new
// tree; the input is never mutated.
type rewriter struct {
	// content maps one leaf to its ordered replacements. Default: a
	// copy of the leaf.
	content func(*ContentNode) ([]Segment, error)
	// choice maps one choice to its ordered replacements. Default:
	// passChoice.
	choice func(*ChoiceNode) ([]Segment, error)
	// assemble post-processes a region's concatenated replacement
	// list before it is wrapped. Default: identity.
	assemble func([]Segment) []Segment
}

// region rewrites each segment in order, concatenates the replacement
// lists, and wraps them in a fresh region.
func (rw *rewriter) region(r *RegionNode) (*RegionNode, error) {
	out := &RegionNode{Hidden: r.Hidden}
	for _, seg := range r.Segments {
		var repl []Segment
		var err error
		switch n := seg.(type) {
		case *ContentNode:
			if rw.content != nil {
				repl, err = rw.content(n)
			} else {
				repl = []Segment{&ContentNode{Content: n.Content, Live: n.Live}}
			}
		case *ChoiceNode:
			if rw.choice != nil {
				repl, err = rw.choice(n)
			} else {
				repl, err = rw.passChoice(n)
			}
		default:
			panic("iftree: unknown segment type")
		}
		if err != nil {
			return nil, err
		}
		out.Segments = append(out.Segments, repl...)
	}
	if rw.assemble != nil {
		out.Segments = rw.assemble(out.Segments)
	}
	return out, nil
}

// passChoice is the default choice step: rewrite both branches, keep
// name and kind, return the one updated node.
func (rw *rewriter) passChoice(c *ChoiceNode) ([]Segment, error) {
	then, err := rw.region(c.Then)
	if err != nil {
		return nil, err
	}
	els, err := rw.region(c.Else)
	if err != nil {
		return nil, err
	}
	return []Segment{&ChoiceNode{Name: c.Name, Kind: c.Kind, Then: then, Else: els}}, nil
}

// document rewrites a whole tree and re-annotates the result, so every
// operation yields a correctly positioned tree.
func (rw *rewriter) document(doc *RegionNode) (*RegionNode, error) {
	out, err := rw.region(doc)
	if err != nil {
		return nil, err
	}
	Annotate(out)
	return out, nil
}
