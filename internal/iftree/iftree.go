// Package iftree models source text containing nested conditional
// regions (#ifdef/#else/#endif style) as a tree, tracks each node's
// coordinates in the rendered text, and rewrites the tree structurally:
// filtering a view, inserting at a point, populating an alternative,
// deleting a dimension.
package iftree

// Kind records which branch of a choice corresponds to the dimension
// being defined in concrete syntax: Positive for #ifdef, Contrapositive
// for #ifndef. Immutable once the choice exists.
type Kind int

const (
	Positive Kind = iota
	Contrapositive
)

// Branch identifies one side of a choice.
type Branch string

const (
	ThenBranch Branch = "then"
	ElseBranch Branch = "else"
)

// Status is a caller's visibility directive for one dimension.
type Status string

const (
	StatusBoth Status = "BOTH"
	StatusDef  Status = "DEF"
	StatusNdef Status = "NDEF"
)

// Valid reports whether s is one of the three recognized statuses.
func (s Status) Valid() bool {
	return s == StatusBoth || s == StatusDef || s == StatusNdef
}

// Selector picks which branches of a named dimension are visible.
type Selector struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
}

// statusFor returns the effective status for a dimension. A dimension
// absent from the list behaves as BOTH.
func statusFor(sels []Selector, name string) Status {
	for _, sel := range sels {
		if sel.Name == name {
			return sel.Status
		}
	}
	return StatusBoth
}

// branchActive reports whether a branch is active under a status, given
// the kind of its choice. DEF activates the branch that corresponds to
// the dimension being defined, NDEF the other one.
func branchActive(st Status, k Kind, b Branch) bool {
	switch st {
	case StatusDef:
		if b == ThenBranch {
			return k == Positive
		}
		return k == Contrapositive
	case StatusNdef:
		if b == ThenBranch {
			return k == Contrapositive
		}
		return k == Positive
	default:
		return true
	}
}

// LiveBuffer is the external text buffer the tree's coordinates refer
// to. The core reads it at the moment of use and never writes it.
type LiveBuffer interface {
	TextInRange(Span) (string, error)
}

// LiveRange is an externally owned handle that follows a piece of text
// through buffer edits. The tree never closes or invalidates one.
type LiveRange interface {
	CurrentSpan() Span
}

// Segment is one element of a region: literal text or a conditional
// choice. The set of implementations is closed; traversals type-switch
// over it and treat any other shape as corruption.
type Segment interface {
	segment()
}

// spanCell is the optional span annotation shared by all node shapes.
// nil is the unpositioned state: hidden, or not yet annotated.
type spanCell struct {
	sp *Span
}

// Span returns the node's rendered-text coordinates, if annotated.
func (c *spanCell) Span() (Span, bool) {
	if c.sp == nil {
		return Span{}, false
	}
	return *c.sp, true
}

func (c *spanCell) setSpan(s Span) {
	c.sp = &s
}

func (c *spanCell) clearSpan() {
	c.sp = nil
}

// ContentNode is literal text. Live, when set, points at the same text
// in the external buffer.
type ContentNode struct {
	spanCell
	Content string
	Live    LiveRange
}

func (*ContentNode) segment() {}

// ChoiceNode is a two-way conditional guarded by a named dimension.
// Both branches are always present; either may hold zero segments.
type ChoiceNode struct {
	spanCell
	Name string
	Kind Kind
	Then *RegionNode
	Else *RegionNode
}

func (*ChoiceNode) segment() {}

// RegionNode is an ordered run of segments. A hidden region keeps its
// segments but occupies no space in the rendered text.
type RegionNode struct {
	spanCell
	Segments []Segment
	Hidden   bool
}

// clone deep-copies a region without span annotations. Live handles are
// shared: they are references to externally owned state.
func (r *RegionNode) clone() *RegionNode {
	out := &RegionNode{Hidden: r.Hidden}
	for _, seg := range r.Segments {
		switch n := seg.(type) {
		case *ContentNode:
			out.Segments = append(out.Segments, &ContentNode{Content: n.Content, Live: n.Live})
		case *ChoiceNode:
			out.Segments = append(out.Segments, &ChoiceNode{
				Name: n.Name,
				Kind: n.Kind,
				Then: n.Then.clone(),
				Else: n.Else.clone(),
			})
		default:
			panic("iftree: unknown segment type")
		}
	}
	return out
}

// Dimensions lists the distinct dimension names in the tree, in
// first-appearance order. Hidden branches count: their choices are
// still part of the document.
func Dimensions(r *RegionNode) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(*RegionNode)
	walk = func(r *RegionNode) {
		for _, seg := range r.Segments {
			if c, ok := seg.(*ChoiceNode); ok {
				if !seen[c.Name] {
					seen[c.Name] = true
					names = append(names, c.Name)
				}
				walk(c.Then)
				walk(c.Else)
			}
		}
	}
	walk(r)
	return names
}

// VisibleLeaves returns the content nodes that contribute to the
// rendered view, in order. Leaves inside hidden regions are skipped.
func VisibleLeaves(r *RegionNode) []*ContentNode {
	var leaves []*ContentNode
	var walk func(*RegionNode)
	walk = func(r *RegionNode) {
		if r.Hidden {
			return
		}
		for _, seg := range r.Segments {
			switch n := seg.(type) {
			case *ContentNode:
				leaves = append(leaves, n)
			case *ChoiceNode:
				walk(n.Then)
				walk(n.Else)
			default:
				panic("iftree: unknown segment type")
			}
		}
	}
	walk(r)
	return leaves
}
