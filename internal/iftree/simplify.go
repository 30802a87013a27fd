package iftree

// Simplify merges runs of consecutive literal-text siblings within each
// region into single nodes. Choices are merge barriers. Run after edits
// likely to have produced adjacent fragments; applying it twice is the
// same as applying it once.
func Simplify(doc *RegionNode) *RegionNode {
	rw := &rewriter{assemble: mergeContent}
	out, err := rw.document(doc)
	if err != nil {
		// No step in this rewrite can fail.
		panic("iftree: simplify failed: " + err.Error())
	}
	return out
}

// mergeContent concatenates adjacent content nodes. The merged node
// keeps the first fragment's live handle; the rest are dropped with
// their nodes.
func mergeContent(segs []Segment) []Segment {
	var out []Segment
	for _, seg := range segs {
		if c, ok := seg.(*ContentNode); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*ContentNode); ok {
				prev.Content += c.Content
				continue
			}
		}
		out = append(out, seg)
	}
	return out
}
