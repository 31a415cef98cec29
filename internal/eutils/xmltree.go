// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// element is a minimal in-memory XML tree. efetch documents are queried by
// element path at arbitrary depth, which fixed struct mappings cannot
// express for both PubmedArticle and PubmedBookArticle layouts.
type element struct {
	name     string
	text     strings.Builder // character data of the element and its descendants
	children []*element
}

// parseTree decodes data into a tree and returns its document element.
// Documents with no element, with more than one top-level element, or with
// stray text after the document element are rejected.
func parseTree(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("junk after document element: <%s>", t.Name.Local)
			}
			e := &element{name: t.Name.Local}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, e)
			} else {
				root = e
			}
			stack = append(stack, e)
		case xml.EndElement:
			e := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				stack[len(stack)-1].text.WriteString(e.text.String())
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			} else if root != nil && len(bytes.TrimSpace(t)) > 0 {
				return nil, errors.New("junk after document element")
			}
		}
	}

	if root == nil {
		return nil, errors.New("no element found")
	}
	return root, nil
}

// Text returns the element's trimmed character data.
func (e *element) Text() string {
	return strings.TrimSpace(e.text.String())
}

// descendants returns all elements below e named name, in document order.
func (e *element) descendants(name string) []*element {
	var out []*element
	var walk func(*element)
	walk = func(n *element) {
		for _, c := range n.children {
			if c.name == name {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// child returns the first direct child named name, or nil.
func (e *element) child(name string) *element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// find returns the first element matching path, where path[0] may sit at
// any depth below e and each following step is a direct child of the
// previous one. Candidates are tried in document order.
func (e *element) find(path ...string) *element {
	if len(path) == 0 {
		return nil
	}
	for _, d := range e.descendants(path[0]) {
		if m := d.follow(path[1:]); m != nil {
			return m
		}
	}
	return nil
}

// follow walks direct children along path, trying every same-named child.
func (e *element) follow(path []string) *element {
	if len(path) == 0 {
		return e
	}
	for _, c := range e.children {
		if c.name != path[0] {
			continue
		}
		if m := c.follow(path[1:]); m != nil {
			return m
		}
	}
	return nil
}

// findText returns the text of find(path...) and whether it was found.
func (e *element) findText(path ...string) (string, bool) {
	m := e.find(path...)
	if m == nil {
		return "", false
	}
	return m.Text(), true
}

// childText returns the text of the first direct child named name, or "".
func (e *element) childText(name string) string {
	if c := e.child(name); c != nil {
		return c.Text()
	}
	return ""
}
