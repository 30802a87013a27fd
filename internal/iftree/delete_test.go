package iftree

import "testing"

func TestDeleteDimension_KeepsActiveBranchContent(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		status Status
		want   string
	}{
		// Each surviving branch must contribute its own segments: the
		// else-active cases keep "B", never "A".
		{"def on positive keeps then", Positive, StatusDef, "A"},
		{"ndef on positive keeps else", Positive, StatusNdef, "B"},
		{"def on contrapositive keeps else", Contrapositive, StatusDef, "B"},
		{"ndef on contrapositive keeps then", Contrapositive, StatusNdef, "A"},
		{"both keeps both then first", Positive, StatusBoth, "AB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := region(choice("FOO", tt.kind, region(text("A")), region(text("B"))))
			out := DeleteDimension(doc, Selector{Name: "FOO", Status: tt.status})
			if got := RenderCanonical(out); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDeleteDimension_OtherDimensionsPassThrough(t *testing.T) {
	doc := region(
		choice("FOO", Positive, region(text("A")), region()),
		choice("BAR", Positive, region(text("C")), region(text("D"))),
	)
	out := DeleteDimension(doc, Selector{Name: "FOO", Status: StatusDef})

	if len(out.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out.Segments))
	}
	if _, ok := out.Segments[0].(*ContentNode); !ok {
		t.Error("FOO must collapse to its then content")
	}
	c, ok := out.Segments[1].(*ChoiceNode)
	if !ok {
		t.Fatal("BAR must survive")
	}
	if c.Name != "BAR" || len(c.Then.Segments) != 1 || len(c.Else.Segments) != 1 {
		t.Error("BAR must pass through intact")
	}
}

func TestDeleteDimension_NestedSameNameCollapses(t *testing.T) {
	doc := region(choice("FOO", Positive,
		region(text("a"), choice("FOO", Positive, region(text("b")), region(text("c")))),
		region(text("z")),
	))
	out := DeleteDimension(doc, Selector{Name: "FOO", Status: StatusDef})
	if got := RenderCanonical(out); got != "ab" {
		t.Errorf("expected %q, got %q", "ab", got)
	}
}

func TestDeleteDimension_NestedOtherNameKeptInsideSurvivor(t *testing.T) {
	doc := region(choice("FOO", Positive,
		region(text("a"), choice("BAR", Positive, region(text("b")), region())),
		region(text("z")),
	))
	out := DeleteDimension(doc, Selector{Name: "FOO", Status: StatusDef})
	want := "a\n#ifdef BAR\nb\n#endif"
	if got := RenderCanonical(out); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDeleteDimension_ElseSurvivorKeepsOwnNestedContent(t *testing.T) {
	// Regression: when the else branch survives, the spliced segments
	// must come from the else branch itself, including its own nested
	// structure, not from the then branch.
	doc := region(choice("FOO", Positive,
		region(text("then-only")),
		region(text("e1"), choice("BAR", Positive, region(text("e2")), region()), text("\ne3")),
	))
	out := DeleteDimension(doc, Selector{Name: "FOO", Status: StatusNdef})
	want := "e1\n#ifdef BAR\ne2\n#endif\ne3"
	if got := RenderCanonical(out); got != want {
		t.Errorf("else survivor must contribute its own segments: expected %q, got %q", want, got)
	}
}

func TestDeleteDimension_ResultIsAnnotated(t *testing.T) {
	doc := region(text("x"), choice("FOO", Positive, region(text("A")), region(text("B"))), text("y"))
	out := DeleteDimension(doc, Selector{Name: "FOO", Status: StatusBoth})
	assertContiguous(t, out)
}
