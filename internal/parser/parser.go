package parser

import (
	"fmt"
	"strings"

	"github.com/dgallion1/ifedit/internal/iftree"
)

// Parse converts concrete conditional-compilation syntax into an
// unannotated region tree. Marker lines are whole lines reading exactly
// "#ifdef NAME", "#ifndef NAME", "#else" or "#endif"; everything else
// is literal content. Parse is the inverse of iftree.RenderCanonical:
// rendering a freshly parsed tree reproduces the input byte for byte,
// provided the input does not open a marker on its very first byte.
//
// The newline preceding a marker line belongs to the choice, not to the
// content before it; the newline after an #endif line belongs to the
// content that follows. Keeping that ownership straight is what makes
// the round trip exact.
func Parse(src string) (*iftree.RegionNode, error) {
	p := &parser{lines: strings.Split(src, "\n")}
	region, term, err := p.region(false)
	if err != nil {
		return nil, err
	}
	if term != lineEOF {
		// region(false) rejects stray #else/#endif itself.
		panic("parser: top-level region ended on a marker")
	}
	return region, nil
}

type parser struct {
	lines []string
	i     int
}

type lineKind int

const (
	lineEOF lineKind = iota
	lineContent
	lineIfdef
	lineIfndef
	lineElse
	lineEndif
)

// classify decides what a line is. Malformed open markers (a missing or
// whitespace-embedded name would not survive a round trip) are errors
// rather than content.
func (p *parser) classify(line string) (lineKind, string, error) {
	switch {
	case line == "#else":
		return lineElse, "", nil
	case line == "#endif":
		return lineEndif, "", nil
	case line == "#ifdef" || line == "#ifndef":
		return 0, "", fmt.Errorf("line %d: %s is missing a name", p.i+1, line)
	case strings.HasPrefix(line, "#ifdef "):
		return lineIfdef, line[len("#ifdef "):], nil
	case strings.HasPrefix(line, "#ifndef "):
		return lineIfndef, line[len("#ifndef "):], nil
	default:
		return lineContent, "", nil
	}
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t")
}

// region parses segments until #else/#endif (when inside a choice) or
// end of input. It leaves the terminating marker line unconsumed and
// reports which one stopped it.
func (p *parser) region(inChoice bool) (*iftree.RegionNode, lineKind, error) {
	r := &iftree.RegionNode{}
	var chunk []string
	afterChoice := false

	flush := func() {
		if len(chunk) == 0 {
			return
		}
		text := strings.Join(chunk, "\n")
		if afterChoice {
			// The newline separating an #endif line from the text
			// after it is not emitted by the choice; the content
			// carries it.
			text = "\n" + text
		}
		r.Segments = append(r.Segments, &iftree.ContentNode{Content: text})
		chunk = nil
		afterChoice = false
	}

	for p.i < len(p.lines) {
		line := p.lines[p.i]
		kind, name, err := p.classify(line)
		if err != nil {
			return nil, 0, err
		}
		switch kind {
		case lineContent:
			chunk = append(chunk, line)
			p.i++
		case lineIfdef, lineIfndef:
			if !validName(name) {
				return nil, 0, fmt.Errorf("line %d: malformed marker %q", p.i+1, line)
			}
			flush()
			choice, err := p.choice(kind == lineIfndef, name)
			if err != nil {
				return nil, 0, err
			}
			r.Segments = append(r.Segments, choice)
			afterChoice = true
		case lineElse, lineEndif:
			if !inChoice {
				return nil, 0, fmt.Errorf("line %d: %s without an open #ifdef", p.i+1, line)
			}
			flush()
			return r, kind, nil
		}
	}
	flush()
	return r, lineEOF, nil
}

// choice parses one whole conditional starting at its open marker line.
func (p *parser) choice(contra bool, name string) (*iftree.ChoiceNode, error) {
	marker := "#ifdef"
	kind := iftree.Positive
	if contra {
		marker = "#ifndef"
		kind = iftree.Contrapositive
	}
	openLine := p.i
	p.i++

	then, term, err := p.region(true)
	if err != nil {
		return nil, err
	}
	els := &iftree.RegionNode{}
	if term == lineElse {
		p.i++
		els, term, err = p.region(true)
		if err != nil {
			return nil, err
		}
		if term == lineElse {
			return nil, fmt.Errorf("line %d: duplicate #else for %s %s", p.i+1, marker, name)
		}
	}
	if term != lineEndif {
		return nil, fmt.Errorf("line %d: unterminated %s %s", openLine+1, marker, name)
	}
	p.i++

	return &iftree.ChoiceNode{Name: name, Kind: kind, Then: then, Else: els}, nil
}
