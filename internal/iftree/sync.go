package iftree

// Sync pulls edited text back from the live buffer into leaf content.
// It changes neither structure nor spans. Only branches the selectors
// make active, and that are not hidden, are visited: everything else
// keeps its last known content until a future selection reactivates it.
// Leaves without a live handle are skipped.
func Sync(doc *RegionNode, sels []Selector, buf LiveBuffer) error {
	return syncRegion(doc, sels, buf)
}

func syncRegion(r *RegionNode, sels []Selector, buf LiveBuffer) error {
	if r.Hidden {
		return nil
	}
	for _, seg := range r.Segments {
		switch n := seg.(type) {
		case *ContentNode:
			if n.Live == nil {
				continue
			}
			text, err := buf.TextInRange(n.Live.CurrentSpan())
			if err != nil {
				return err
			}
			n.Content = text
		case *ChoiceNode:
			st := statusFor(sels, n.Name)
			if branchActive(st, n.Kind, ThenBranch) {
				if err := syncRegion(n.Then, sels, buf); err != nil {
					return err
				}
			}
			if branchActive(st, n.Kind, ElseBranch) {
				if err := syncRegion(n.Else, sels, buf); err != nil {
					return err
				}
			}
		default:
			panic("iftree: unknown segment type")
		}
	}
	return nil
}
