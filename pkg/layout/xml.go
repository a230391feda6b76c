package layout

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// FromXML builds a node tree from an XML document. Every element becomes a
// node; a "key" attribute names it and a "style" attribute carries the
// node's inline style. Element names and other attributes are ignored, so
// any vocabulary works.
func FromXML(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing layout tree: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parsing layout tree: document has no root element")
	}
	return nodeFromElement(root)
}

func nodeFromElement(el *etree.Element) (*Node, error) {
	var opts []NodeOption
	if key := el.SelectAttrValue("key", ""); key != "" {
		opts = append(opts, WithKey(key))
	}
	if inline := el.SelectAttrValue("style", ""); inline != "" {
		opts = append(opts, WithStyleString(inline))
	}
	n, err := NewNode(opts...)
	if err != nil {
		return nil, fmt.Errorf("element <%s>: %w", el.Tag, err)
	}
	for _, childEl := range el.ChildElements() {
		child, err := nodeFromElement(childEl)
		if err != nil {
			return nil, err
		}
		if err := n.Add(child); err != nil {
			return nil, err
		}
	}
	return n, nil
}
