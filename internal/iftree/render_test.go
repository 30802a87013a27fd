package iftree

import "testing"

func TestRenderCanonical_ChoiceSynthesizesMarkers(t *testing.T) {
	doc := region(choice("FOO", Positive, region(text("A")), region(text("B"))))
	got := RenderCanonical(doc)
	want := "\n#ifdef FOO\nA\n#else\nB\n#endif"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderCanonical_Forms(t *testing.T) {
	tests := []struct {
		name string
		doc  *RegionNode
		want string
	}{
		{
			"ifndef marker",
			region(choice("BAR", Contrapositive, region(text("x")), region())),
			"\n#ifndef BAR\nx\n#endif",
		},
		{
			"empty else omitted",
			region(choice("FOO", Positive, region(text("A")), region())),
			"\n#ifdef FOO\nA\n#endif",
		},
		{
			"both branches empty",
			region(choice("FOO", Positive, region(), region())),
			"\n#ifdef FOO\n#endif",
		},
		{
			"branch with empty content forces its newline",
			region(choice("FOO", Positive, region(text("")), region())),
			"\n#ifdef FOO\n\n#endif",
		},
		{
			"content leading newline kept as a blank line",
			region(choice("FOO", Positive, region(text("\nA")), region())),
			"\n#ifdef FOO\n\nA\n#endif",
		},
		{
			"nested choice first in branch",
			region(choice("OUTER", Positive,
				region(choice("INNER", Positive, region(text("deep")), region())),
				region(),
			)),
			"\n#ifdef OUTER\n#ifdef INNER\ndeep\n#endif\n#endif",
		},
		{
			"content around a choice",
			region(
				text("before"),
				choice("FOO", Positive, region(text("A")), region()),
				text("\nafter"),
			),
			"before\n#ifdef FOO\nA\n#endif\nafter",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderCanonical(tt.doc); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderCanonical_IgnoresHidden(t *testing.T) {
	doc := region(choice("FOO", Positive, region(text("A")), region(text("B"))))
	filtered := Filter(doc, []Selector{{Name: "FOO", Status: StatusDef}})
	got := RenderCanonical(filtered)
	want := "\n#ifdef FOO\nA\n#else\nB\n#endif"
	if got != want {
		t.Errorf("canonical render must ignore the view filter: expected %q, got %q", want, got)
	}
}

func TestRenderVisible_FilteredChoice(t *testing.T) {
	// The end-to-end shape: DEF on a positive choice hides the else
	// branch; what remains is marker newlines around the then text.
	doc := region(choice("FOO", Positive, region(text("A")), region(text("B"))))
	filtered := Filter(doc, []Selector{{Name: "FOO", Status: StatusDef}})
	got := RenderVisible(filtered)
	if got != "\nA\n" {
		t.Errorf("expected %q, got %q", "\nA\n", got)
	}
}

func TestRenderVisible_MirrorsAnnotatePositions(t *testing.T) {
	tests := []struct {
		name string
		doc  *RegionNode
	}{
		{"both visible", region(text("h"), choice("F", Positive, region(text("A")), region(text("B"))), text("t"))},
		{"empty then", region(choice("F", Positive, region(), region(text("B"))))},
		{"nested", region(choice("F", Positive, region(text("x"), choice("G", Positive, region(text("y")), region())), region()))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Annotate(tt.doc)
			sp, _ := tt.doc.Span()
			got := Pos{}.advance(RenderVisible(tt.doc))
			if got != sp.End {
				t.Errorf("rendered text ends at %s but root span ends at %s", got, sp.End)
			}
		})
	}
}

func TestRenderVisible_HiddenRegionOmitted(t *testing.T) {
	hidden := region(text("secret"))
	hidden.Hidden = true
	doc := region(text("a"), choice("F", Positive, region(text("b")), hidden))
	got := RenderVisible(doc)
	if got != "a\nb\n" {
		t.Errorf("expected %q, got %q", "a\nb\n", got)
	}
}
