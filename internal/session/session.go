package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/ifedit/internal/buffer"
	"github.com/dgallion1/ifedit/internal/iftree"
	"github.com/dgallion1/ifedit/internal/parser"
)

// Session is one open document: the tree, the live buffer its
// coordinates refer to, and the active view selectors. Core operations
// are synchronous, bounded tree walks; the mutex serializes callers so
// the core itself needs no locking.
type Session struct {
	mu sync.Mutex

	ID       string
	Filename string

	tree      *iftree.RegionNode
	buf       *buffer.Buffer
	selectors []iftree.Selector

	CreatedAt time.Time
	updatedAt time.Time
}

// Info is a read-only, JSON-safe snapshot of session state.
type Info struct {
	ID         string            `json:"session_id"`
	Filename   string            `json:"filename"`
	Dimensions []string          `json:"dimensions"`
	Selectors  []iftree.Selector `json:"selectors"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// New parses src and opens a session on the resulting tree.
func New(filename, src string) (*Session, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	now := time.Now()
	s := &Session{
		ID:        newID(),
		Filename:  filename,
		tree:      tree,
		buf:       buffer.New(""),
		CreatedAt: now,
		updatedAt: now,
	}
	s.refresh()
	return s, nil
}

// refresh re-annotates the tree, rewrites the buffer to the current
// visible render, and attaches a fresh marker to every visible leaf so
// later buffer edits stay traceable back to their nodes.
func (s *Session) refresh() {
	iftree.Annotate(s.tree)
	s.buf.SetText(iftree.RenderVisible(s.tree))
	for _, leaf := range iftree.VisibleLeaves(s.tree) {
		if sp, ok := leaf.Span(); ok {
			leaf.Live = s.buf.NewMarker(sp)
		}
	}
	s.updatedAt = time.Now()
}

// Snapshot returns the session's current metadata.
func (s *Session) Snapshot() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	sels := s.selectors
	if sels == nil {
		sels = []iftree.Selector{}
	}
	return Info{
		ID:         s.ID,
		Filename:   s.Filename,
		Dimensions: iftree.Dimensions(s.tree),
		Selectors:  sels,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.updatedAt,
	}
}

// SetView applies a view filter and returns the resulting visible text.
func (s *Session) SetView(sels []iftree.Selector) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectors = sels
	s.tree = iftree.Filter(s.tree, sels)
	s.refresh()
	return s.buf.Text()
}

// RenderVisible returns the current view's text.
func (s *Session) RenderVisible() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return iftree.RenderVisible(s.tree)
}

// RenderCanonical reconstructs the full concrete syntax, ignoring the
// active view filter. This is the persistence/export form.
func (s *Session) RenderCanonical() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return iftree.RenderCanonical(s.tree)
}

// Insert places a new segment at a point in the current view, then
// merges any adjacent text fragments the split produced.
func (s *Session) Insert(at iftree.Pos, seg iftree.Segment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tree, err := iftree.InsertAt(s.tree, at, seg, s.buf)
	if err != nil {
		return err
	}
	s.tree = iftree.Simplify(tree)
	s.refresh()
	return nil
}

// InsertAlternative populates the empty branch of the named dimension
// ending at the given point. Fails with iftree.ErrAlternativeExists if
// that branch already has content; the session is left untouched then.
func (s *Session) InsertAlternative(at iftree.Pos, seg iftree.Segment, branch iftree.Branch, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tree, err := iftree.InsertAlternative(s.tree, at, seg, branch, name)
	if err != nil {
		return err
	}
	s.tree = iftree.Simplify(tree)
	s.refresh()
	return nil
}

// DeleteDimension collapses the named dimension, keeping the branches
// sel makes active.
func (s *Session) DeleteDimension(sel iftree.Selector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = iftree.Simplify(iftree.DeleteDimension(s.tree, sel))
	s.refresh()
}

// Sync pulls buffer edits back into the tree's visible leaves, then
// realigns the buffer and spans with the updated content.
func (s *Session) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := iftree.Sync(s.tree, s.selectors, s.buf); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// BufferInsert edits the live buffer directly, as an editing surface
// would. The tree is not consulted; call Sync to fold the edit in.
func (s *Session) BufferInsert(at iftree.Pos, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.buf.Insert(at, text)
}

// BufferDelete removes a span from the live buffer.
func (s *Session) BufferDelete(sp iftree.Span) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.buf.Delete(sp)
}

// BufferReplace replaces a span of the live buffer with new text.
func (s *Session) BufferReplace(sp iftree.Span, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.buf.Replace(sp, text)
}

// BufferText returns the live buffer contents, which may have drifted
// from the tree since the last Sync.
func (s *Session) BufferText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Text()
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}

// UpdatedAt returns the time of the last state change.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
