// Package layout owns the node tree and the layout algorithms that compute
// concrete geometry from styles. A caller builds a tree of Nodes, calls
// ComputeLayout on the root with an available-space constraint, and reads the
// results back through the box query interface.
package layout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mortencombat/stretchable/pkg/geometry"
	"github.com/mortencombat/stretchable/pkg/style"
)

var logger = zap.NewNop()

// SetLogger installs a logger for the package. Layout passes trace at debug
// level only.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// MeasureFunc measures leaf content during layout. known carries dimensions
// already fixed by the algorithm (indefinite axes are NaN); available is the
// space constraint per axis. The callback must not mutate the tree being
// measured.
type MeasureFunc func(known geometry.FloatSize, available geometry.AvailSize) geometry.FloatSize

// Layout is the computed geometry of one node: border-box position relative
// to the parent's border box, border-box size, the extent of the content, and
// the resolved box-model edges the layout used.
type Layout struct {
	X      float64
	Y      float64
	Width  float64
	Height float64

	// ContentWidth/Height measure how far content (including overflow)
	// extends inside the border box.
	ContentWidth  float64
	ContentHeight float64

	// ScrollbarWidth/Height are the gutters reserved for scrollbars when
	// overflow is scroll.
	ScrollbarWidth  float64
	ScrollbarHeight float64

	// Order is the node's position in its parent's paint order.
	Order int

	Margin  geometry.Edges
	Border  geometry.Edges
	Padding geometry.Edges
}

// Node keys may use a restricted character set and must contain at least one
// letter, so a key is never mistaken for a child index in an address.
var validKey = regexp.MustCompile(`^[-_!:;()\][a-zA-Z0-9]*[a-zA-Z]+[-_!:;()\][a-zA-Z0-9]*$`)

// Node is one box in the layout tree. It owns its children exclusively: a
// node belongs to at most one parent, and re-parenting without detaching
// first is a structural error.
type Node struct {
	key      string
	styleRec *style.Style
	measure  MeasureFunc

	parent   *Node
	children []*Node

	layout Layout
	dirty  bool
}

// NodeOption configures a node at construction.
type NodeOption func(*Node) error

// WithKey assigns a node identifier usable in tree addresses.
func WithKey(key string) NodeOption {
	return func(n *Node) error {
		if !validKey.MatchString(key) {
			return fmt.Errorf("%w: invalid node key %q", style.ErrInvalidValue, key)
		}
		n.key = key
		return nil
	}
}

// WithStyle assigns the node's style.
func WithStyle(s *style.Style) NodeOption {
	return func(n *Node) error {
		if err := s.Validate(); err != nil {
			return err
		}
		n.styleRec = s
		return nil
	}
}

// WithStyleString parses an inline style string and assigns it.
func WithStyleString(inline string) NodeOption {
	return func(n *Node) error {
		s, err := style.ParseInline(inline)
		if err != nil {
			return err
		}
		n.styleRec = s
		return nil
	}
}

// WithMeasure assigns a content-measurement callback. Only meaningful on
// leaf nodes; children take precedence over the callback if both exist.
func WithMeasure(m MeasureFunc) NodeOption {
	return func(n *Node) error {
		n.measure = m
		return nil
	}
}

// WithChildren appends the given children.
func WithChildren(children ...*Node) NodeOption {
	return func(n *Node) error {
		return n.Add(children...)
	}
}

// NewNode builds a node. Without options it has default style and no
// children, and is dirty until a layout computation covers it.
func NewNode(opts ...NodeOption) (*Node, error) {
	n := &Node{styleRec: style.New(), dirty: true}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// MustNode is NewNode for statically-known arguments; it panics on error.
func MustNode(opts ...NodeOption) *Node {
	n, err := NewNode(opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// Key returns the node identifier, or the empty string.
func (n *Node) Key() string { return n.key }

// Style returns the node's style record. Treat it as read-only; use SetStyle
// to change it.
func (n *Node) Style() *style.Style { return n.styleRec }

// SetStyle replaces the node's style and marks the node and its ancestors
// dirty.
func (n *Node) SetStyle(s *style.Style) error {
	if err := s.Validate(); err != nil {
		return err
	}
	n.styleRec = s
	n.MarkDirty()
	return nil
}

// SetMeasure replaces the measurement callback and marks the node dirty.
func (n *Node) SetMeasure(m MeasureFunc) {
	n.measure = m
	n.MarkDirty()
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the root of the tree this node belongs to.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the child at index i.
func (n *Node) Child(i int) (*Node, error) {
	if i < 0 || i >= len(n.children) {
		return nil, fmt.Errorf("%w: child index %d out of range [0, %d)", ErrStructural, i, len(n.children))
	}
	return n.children[i], nil
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Add appends one or more children. Each child must be parentless.
func (n *Node) Add(children ...*Node) error {
	for _, c := range children {
		if err := n.InsertChild(len(n.children), c); err != nil {
			return err
		}
	}
	return nil
}

// InsertChild inserts a child at index i.
func (n *Node) InsertChild(i int, c *Node) error {
	if c == nil {
		return fmt.Errorf("%w: nil child", ErrStructural)
	}
	if c.parent != nil {
		return fmt.Errorf("%w: node is already attached to a parent", ErrStructural)
	}
	if c == n || n.isDescendantOf(c) {
		return fmt.Errorf("%w: node cannot contain itself", ErrStructural)
	}
	if i < 0 || i > len(n.children) {
		return fmt.Errorf("%w: child index %d out of range [0, %d]", ErrStructural, i, len(n.children))
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.parent = n
	n.MarkDirty()
	return nil
}

// RemoveChildAt detaches and returns the child at index i. The detached
// subtree's cached layout is invalidated; ownership passes back to the
// caller.
func (n *Node) RemoveChildAt(i int) (*Node, error) {
	if i < 0 || i >= len(n.children) {
		return nil, fmt.Errorf("%w: child index %d out of range [0, %d)", ErrStructural, i, len(n.children))
	}
	c := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	c.parent = nil
	c.invalidate()
	n.MarkDirty()
	return c, nil
}

// RemoveChild detaches the given child.
func (n *Node) RemoveChild(c *Node) error {
	for i, child := range n.children {
		if child == c {
			_, err := n.RemoveChildAt(i)
			return err
		}
	}
	return fmt.Errorf("%w: node is not a child of this parent", ErrStructural)
}

// ReplaceChildAt swaps in a new child at index i, returning the detached old
// child.
func (n *Node) ReplaceChildAt(i int, c *Node) (*Node, error) {
	old, err := n.RemoveChildAt(i)
	if err != nil {
		return nil, err
	}
	if err := n.InsertChild(i, c); err != nil {
		// Restore the old child so a failed replace leaves the tree intact.
		_ = n.InsertChild(i, old)
		return nil, err
	}
	return old, nil
}

func (n *Node) isDescendantOf(ancestor *Node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Dirty reports whether the node's cached layout is stale.
func (n *Node) Dirty() bool { return n.dirty }

// MarkDirty marks this node and every ancestor dirty: an ancestor's size may
// depend on any descendant, so the next computation must start from the root.
func (n *Node) MarkDirty() {
	for p := n; p != nil; p = p.parent {
		p.dirty = true
	}
}

// invalidate marks the whole subtree dirty. Used when a subtree is detached.
func (n *Node) invalidate() {
	n.dirty = true
	for _, c := range n.children {
		c.invalidate()
	}
}

func (n *Node) markSubtreeClean() {
	n.dirty = false
	for _, c := range n.children {
		c.markSubtreeClean()
	}
}

// Address returns the node's path from the root, using keys where present
// and child indices otherwise, e.g. "/header/0/logo".
func (n *Node) Address() string {
	if n.parent == nil {
		return "/"
	}
	prefix := n.parent.Address()
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if n.key != "" {
		return prefix + n.key
	}
	for i, c := range n.parent.children {
		if c == n {
			return prefix + strconv.Itoa(i)
		}
	}
	return prefix + "?"
}

// Find resolves a path-style address relative to this node. A leading "/"
// starts from the root, "./" is the current node and "../" steps up one
// level. Path segments are node keys or 0-based child indices.
func (n *Node) Find(address string) (*Node, error) {
	addr := strings.TrimSpace(address)
	switch {
	case strings.HasPrefix(addr, "./"):
		return n.Find(addr[2:])
	case strings.HasPrefix(addr, "../"):
		if n.parent == nil {
			return nil, fmt.Errorf("%w: %q from a root node", ErrStructural, address)
		}
		return n.parent.Find(addr[3:])
	case strings.HasPrefix(addr, "/"):
		return n.Root().Find(addr[1:])
	case addr == "":
		return n, nil
	}

	seg, rest, _ := strings.Cut(addr, "/")
	var next *Node
	if idx, err := strconv.Atoi(seg); err == nil {
		if idx < 0 || idx >= len(n.children) {
			return nil, fmt.Errorf("%w: no child at index %d", ErrStructural, idx)
		}
		next = n.children[idx]
	} else {
		for _, c := range n.children {
			if c.key == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: no child with key %q", ErrStructural, seg)
		}
	}
	if rest == "" {
		return next, nil
	}
	return next.Find(rest)
}

// IsVisible reports whether the node occupies space in the computed layout:
// it and its ancestors are not display:none, and its border box has a
// positive extent (root nodes and nodes with children count as visible even
// when zero-sized).
func (n *Node) IsVisible() (bool, error) {
	if n.styleRec.Display == style.DisplayNone {
		return false, nil
	}
	if n.parent != nil {
		visible, err := n.parent.IsVisible()
		if err != nil || !visible {
			return false, err
		}
	}
	if n.dirty {
		return false, fmt.Errorf("%w: cannot determine visibility", ErrNotComputed)
	}
	if (n.layout.Width <= 0 || n.layout.Height <= 0) && len(n.children) == 0 && n.parent != nil {
		return false, nil
	}
	return true, nil
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(%q, children: %d, dirty: %v)", n.Address(), len(n.children), n.dirty)
}
