package session

import (
	"errors"
	"testing"

	"github.com/dgallion1/ifedit/internal/iftree"
)

func mustNew(t *testing.T, src string) *Session {
	t.Helper()
	s, err := New("test.txt", src)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := mustNew(t, "intro\n#ifdef FOO\nfoo text\n#else\nbar text\n#endif\noutro")
	if s.ID == "" {
		t.Error("expected a session id")
	}
	info := s.Snapshot()
	if len(info.Dimensions) != 1 || info.Dimensions[0] != "FOO" {
		t.Errorf("expected dimensions [FOO], got %v", info.Dimensions)
	}
	if len(info.Selectors) != 0 {
		t.Errorf("expected no selectors, got %v", info.Selectors)
	}
	if got := s.RenderVisible(); got != "intro\nfoo text\nbar text\n\noutro" {
		t.Errorf("unexpected initial view: %q", got)
	}
}

func TestNew_ParseError(t *testing.T) {
	if _, err := New("bad.txt", "#ifdef FOO\nnever closed"); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestSetView(t *testing.T) {
	s := mustNew(t, "intro\n#ifdef FOO\nfoo text\n#else\nbar text\n#endif\noutro")
	got := s.SetView([]iftree.Selector{{Name: "FOO", Status: iftree.StatusDef}})
	if got != "intro\nfoo text\n\noutro" {
		t.Errorf("unexpected filtered view: %q", got)
	}
	// The canonical form keeps both branches regardless of the view.
	want := "intro\n#ifdef FOO\nfoo text\n#else\nbar text\n#endif\noutro"
	if got := s.RenderCanonical(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBufferEditThenSync(t *testing.T) {
	s := mustNew(t, "intro\n#ifdef FOO\nfoo text\n#else\nbar text\n#endif\noutro")
	s.SetView([]iftree.Selector{{Name: "FOO", Status: iftree.StatusDef}})

	// Append to the then-branch leaf, which sits on row 1 of the view.
	if err := s.BufferInsert(iftree.Pos{Row: 1, Col: 8}, " indeed"); err != nil {
		t.Fatalf("buffer insert: %v", err)
	}
	if got := s.BufferText(); got != "intro\nfoo text indeed\n\noutro" {
		t.Fatalf("unexpected buffer text: %q", got)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	want := "intro\n#ifdef FOO\nfoo text indeed\n#else\nbar text\n#endif\noutro"
	if got := s.RenderCanonical(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBufferEditWithoutSyncLeavesTreeAlone(t *testing.T) {
	s := mustNew(t, "hello world")
	if err := s.BufferInsert(iftree.Pos{Row: 0, Col: 5}, "!!"); err != nil {
		t.Fatalf("buffer insert: %v", err)
	}
	if got := s.RenderCanonical(); got != "hello world" {
		t.Errorf("tree changed without sync: %q", got)
	}
}

func TestInsert(t *testing.T) {
	s := mustNew(t, "alphabet")
	seg := &iftree.ChoiceNode{
		Name: "NEW",
		Kind: iftree.Positive,
		Then: &iftree.RegionNode{Segments: []iftree.Segment{&iftree.ContentNode{Content: "new text"}}},
		Else: &iftree.RegionNode{},
	}
	if err := s.Insert(iftree.Pos{Row: 0, Col: 4}, seg); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := s.RenderVisible(); got != "alph\n\nnew text\nabet" {
		t.Errorf("unexpected view after insert: %q", got)
	}
	info := s.Snapshot()
	if len(info.Dimensions) != 1 || info.Dimensions[0] != "NEW" {
		t.Errorf("expected dimensions [NEW], got %v", info.Dimensions)
	}
}

func TestInsertAlternative(t *testing.T) {
	s := mustNew(t, "a\n#ifdef FOO\nfoo\n#endif")
	// In the unfiltered view the empty else branch sits as a point at
	// the end of the then text, row 1 col 3.
	at := iftree.Pos{Row: 1, Col: 3}
	seg := &iftree.ContentNode{Content: "bar"}
	if err := s.InsertAlternative(at, seg, iftree.ElseBranch, "FOO"); err != nil {
		t.Fatalf("insert alternative: %v", err)
	}
	want := "a\n#ifdef FOO\nfoo\n#else\nbar\n#endif"
	if got := s.RenderCanonical(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestInsertAlternative_Occupied(t *testing.T) {
	s := mustNew(t, "a\n#ifdef FOO\nfoo\n#endif")
	seg := &iftree.ContentNode{Content: "dup"}
	err := s.InsertAlternative(iftree.Pos{Row: 1, Col: 3}, seg, iftree.ThenBranch, "FOO")
	if !errors.Is(err, iftree.ErrAlternativeExists) {
		t.Fatalf("expected ErrAlternativeExists, got %v", err)
	}
	if got := s.RenderCanonical(); got != "a\n#ifdef FOO\nfoo\n#endif" {
		t.Errorf("session changed on failed insert: %q", got)
	}
}

func TestDeleteDimension(t *testing.T) {
	s := mustNew(t, "a\n#ifdef FOO\nx\n#else\ny\n#endif\nz")
	s.DeleteDimension(iftree.Selector{Name: "FOO", Status: iftree.StatusDef})
	if got := s.RenderCanonical(); got != "ax\nz" {
		t.Errorf("expected %q, got %q", "ax\nz", got)
	}
	if dims := s.Snapshot().Dimensions; len(dims) != 0 {
		t.Errorf("expected no dimensions left, got %v", dims)
	}
}
