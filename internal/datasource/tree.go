package datasource

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kamusis/credscan/internal/textenc"
)

// Element is one node of a parsed descriptor.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Text     string
	Children []*Element
}

// Tag returns the element's local name, without namespace.
func (e *Element) Tag() string {
	return e.Name.Local
}

// Attr returns the value of the unqualified attribute name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value, true
		}
	}
	return "", false
}

// Walk visits e and its descendants depth-first in document order.
// Returning false from fn stops the walk.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first element in e's subtree, e included, satisfying match.
func (e *Element) Find(match func(*Element) bool) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if match(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// Parse reads a whole XML document into an element tree and returns its root.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = textenc.CharsetReader

	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("failed to parse xml: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			// Only text ahead of the first child counts as the element's own text.
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("failed to parse xml: no root element")
	}
	root.Walk(func(el *Element) bool {
		el.Text = strings.TrimSpace(el.Text)
		return true
	})
	return root, nil
}

// ParseFile opens and parses the descriptor at path.
func ParseFile(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open descriptor: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
