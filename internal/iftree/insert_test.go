package iftree

import "testing"

func TestInsertAt_SplitsLeafInThree(t *testing.T) {
	doc := region(text("abcdef"))
	buf := newStubBuffer("abcdef")

	out, err := InsertAt(doc, Pos{0, 3}, choice("FOO", Positive, region(text("new")), region()), buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(out.Segments))
	}
	head := out.Segments[0].(*ContentNode)
	if head.Content != "abc\n" {
		t.Errorf("head: expected %q, got %q", "abc\n", head.Content)
	}
	if _, ok := out.Segments[1].(*ChoiceNode); !ok {
		t.Error("middle segment is not the inserted choice")
	}
	tail := out.Segments[2].(*ContentNode)
	if tail.Content != "def" {
		t.Errorf("tail: expected %q, got %q", "def", tail.Content)
	}
}

func TestInsertAt_ReadsFragmentsFromBufferNotNode(t *testing.T) {
	// The node's content field is stale; the buffer is the source of
	// truth at edit time.
	doc := region(text("stale!"))
	buf := newStubBuffer("abcdef")

	out, err := InsertAt(doc, Pos{0, 3}, text("X"), buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	head := out.Segments[0].(*ContentNode)
	tail := out.Segments[2].(*ContentNode)
	if head.Content != "abc\n" || tail.Content != "def" {
		t.Errorf("fragments %q / %q not read from buffer", head.Content, tail.Content)
	}
}

func TestInsertAt_ExclusiveBoundaries(t *testing.T) {
	// A point exactly at a span boundary belongs to neither side.
	for _, at := range []Pos{{0, 0}, {0, 5}} {
		doc := region(text("abcde"))
		buf := newStubBuffer("abcde")
		out, err := InsertAt(doc, at, text("X"), buf)
		if err != nil {
			t.Fatalf("unexpected error at %s: %v", at, err)
		}
		if len(out.Segments) != 1 {
			t.Errorf("point %s must not match: got %d segments", at, len(out.Segments))
		}
		if got := out.Segments[0].(*ContentNode).Content; got != "abcde" {
			t.Errorf("point %s: content changed to %q", at, got)
		}
	}
}

func TestInsertAt_DescendsIntoContainingBranchOnly(t *testing.T) {
	doc := region(
		text("head"),
		choice("FOO", Positive, region(text("AAAA")), region(text("BBBB"))),
	)
	// Rendered: "head\nAAAA\nBBBB\n"; row 1 is the then branch.
	buf := newStubBuffer("head\nAAAA\nBBBB\n")

	out, err := InsertAt(doc, Pos{1, 2}, text("X"), buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := out.Segments[1].(*ChoiceNode)
	if len(c.Then.Segments) != 3 {
		t.Fatalf("expected then branch split in 3, got %d", len(c.Then.Segments))
	}
	if got := c.Then.Segments[0].(*ContentNode).Content; got != "AA\n" {
		t.Errorf("then head: expected %q, got %q", "AA\n", got)
	}
	if got := c.Then.Segments[2].(*ContentNode).Content; got != "AA" {
		t.Errorf("then tail: expected %q, got %q", "AA", got)
	}
	if len(c.Else.Segments) != 1 {
		t.Errorf("else branch must be untouched, got %d segments", len(c.Else.Segments))
	}
}

func TestInsertAt_NoMatchLeavesTreeUnchanged(t *testing.T) {
	doc := region(text("ab"), choice("FOO", Positive, region(text("A")), region()))
	Annotate(doc)
	buf := newStubBuffer(RenderVisible(doc))
	before := RenderCanonical(doc)

	// 0:2 is the boundary between the leaf and the choice.
	out, err := InsertAt(doc, Pos{0, 2}, text("X"), buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := RenderCanonical(out); got != before {
		t.Errorf("unmatched point changed the tree: %q -> %q", before, got)
	}
}

func TestInsertAt_ResultIsAnnotated(t *testing.T) {
	doc := region(text("abcdef"))
	buf := newStubBuffer("abcdef")
	out, err := InsertAt(doc, Pos{0, 3}, text("mid"), buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContiguous(t, out)
}
