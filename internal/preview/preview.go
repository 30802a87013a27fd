package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML renders a visible view as a sanitized HTML fragment, treating
// the text as markdown. Meant for documents that are markdown with
// conditional regions: the preview shows only the branches the current
// view selects.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return sanitize(buf.String())
}

// sanitize strips script-capable elements and event-handler attributes
// from an HTML fragment.
func sanitize(fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var out bytes.Buffer
	for _, n := range nodes {
		if n.Type == html.ElementNode && blockedElements[n.Data] {
			continue
		}
		clean(n)
		if err := html.Render(&out, n); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return out.String(), nil
}

var blockedElements = map[string]bool{
	"script": true,
	"style":  true,
	"iframe": true,
	"object": true,
	"embed":  true,
}

func clean(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && blockedElements[c.Data] {
			n.RemoveChild(c)
			continue
		}
		clean(c)
	}
	if n.Type != html.ElementNode {
		return
	}
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if strings.HasPrefix(strings.ToLower(a.Key), "on") {
			continue
		}
		if a.Key == "href" || a.Key == "src" {
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
				continue
			}
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}
