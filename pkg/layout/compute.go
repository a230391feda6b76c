package layout

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/mortencombat/stretchable/pkg/geometry"
	"github.com/mortencombat/stretchable/pkg/style"
)

// passMode distinguishes the two ways a subtree is entered: a sizing probe
// (measure only, no layout published) and the final layout pass.
type passMode uint8

const (
	sizePass passMode = iota
	layoutPass
)

// sizingMode selects which inputs a computation may size from. Inherent
// sizing consults the node's own size/min/max style properties; content
// sizing ignores them and sizes purely from known dimensions and content, the
// mode intrinsic probes use (a node's styled width must not masquerade as its
// min-content size).
type sizingMode uint8

const (
	inherentSizing sizingMode = iota
	contentSizing
)

// layoutInput bundles the constraints a parent hands to a child computation.
// known carries dimensions the parent has already fixed (NaN when free),
// parent is the containing-block size for percentage resolution, and avail
// is the space constraint per axis.
type layoutInput struct {
	known  geometry.FloatSize
	parent geometry.FloatSize
	avail  geometry.AvailSize
	sizing sizingMode
}

type computeConfig struct {
	rounding bool
}

// ComputeOption configures one layout computation.
type ComputeOption func(*computeConfig)

// WithRounding toggles the pixel-rounding pass. Rounding is off by default
// so snapshot tests can assert exact fractional values.
func WithRounding(enabled bool) ComputeOption {
	return func(c *computeConfig) {
		c.rounding = enabled
	}
}

// ComputeLayout computes the layout of this node and all descendants within
// the given available space. The node is treated as the root of the
// computation; positions in the result are relative to each node's parent.
//
// The whole subtree's styles are validated before any geometry is touched:
// a validation failure leaves previously cached layouts stale and dirty
// rather than publishing partial results.
func (n *Node) ComputeLayout(avail geometry.AvailSize, opts ...ComputeOption) error {
	var cfg computeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := n.validateTree(); err != nil {
		return err
	}

	// Containing size for the root. When an axis is indefinite, the root's
	// own definite width is resolved first so root-level percentage padding
	// and borders have something to resolve against (the scheduled two-pass
	// dependency).
	parent := avail.OrIndefinite()
	if !geometry.IsDefinite(parent.Width) {
		if w := n.styleRec.Size.Width.Resolve(geometry.Indefinite()); geometry.IsDefinite(w) {
			parent.Width = w
		}
	}
	if !geometry.IsDefinite(parent.Height) {
		if h := n.styleRec.Size.Height.Resolve(geometry.Indefinite()); geometry.IsDefinite(h) {
			parent.Height = h
		}
	}

	logger.Debug("compute layout",
		zap.String("root", n.Address()),
		zap.Stringer("available", avail))

	size := n.compute(layoutInput{
		known:  geometry.IndefiniteSize(),
		parent: parent,
		avail:  avail,
	}, layoutPass)

	edges := resolveEdges(n.styleRec, parent.Width)
	margin := edges.marginOrZero()
	n.layout.X = margin.Left
	n.layout.Y = margin.Top
	n.layout.Order = 0
	n.markSubtreeClean()

	if cfg.rounding {
		roundTree(n, 0, 0)
	}

	logger.Debug("layout complete",
		zap.String("root", n.Address()),
		zap.Float64("width", size.Width),
		zap.Float64("height", size.Height))
	return nil
}

func (n *Node) validateTree() error {
	if err := n.styleRec.Validate(); err != nil {
		return fmt.Errorf("node %s: %w", n.Address(), err)
	}
	for _, c := range n.children {
		if err := c.validateTree(); err != nil {
			return err
		}
	}
	return nil
}

// compute dispatches to the algorithm selected by the node's display mode
// and returns the node's border-box size. In layoutPass mode it also
// publishes size, edges and children geometry into the layout caches; the
// caller remains responsible for this node's X/Y and Order.
func (n *Node) compute(in layoutInput, mode passMode) geometry.FloatSize {
	switch {
	case n.styleRec.Display == style.DisplayNone:
		if mode == layoutPass {
			n.hideSubtree()
		}
		return geometry.FloatSizeOf(0, 0)
	case len(n.children) == 0:
		return n.computeLeaf(in, mode)
	case n.styleRec.Display == style.DisplayGrid:
		return n.computeGrid(in, mode)
	case n.styleRec.Display == style.DisplayBlock:
		return n.computeBlock(in, mode)
	default:
		return n.computeFlex(in, mode)
	}
}

// hideSubtree zeroes the layout of a display:none subtree.
func (n *Node) hideSubtree() {
	n.layout = Layout{}
	for i, c := range n.children {
		c.hideSubtree()
		c.layout.Order = i
	}
}

// computeLeaf sizes a node with no children: explicit style size when fully
// definite, else the measurement callback, else the collapsed padding/border
// box. The measurement callback works in content-box terms; padding and
// border are added around its result.
func (n *Node) computeLeaf(in layoutInput, mode passMode) geometry.FloatSize {
	s := n.styleRec
	edges := resolveEdges(s, in.parent.Width)
	inset := edges.contentInset().Sum()

	styled := geometry.IndefiniteSize()
	minSize := geometry.IndefiniteSize()
	maxSize := geometry.IndefiniteSize()
	if in.sizing == inherentSizing {
		styled = applyAspectRatio(s.Size.Resolve(in.parent), s.AspectRatio)
		minSize = s.MinSize.Resolve(in.parent)
		maxSize = s.MaxSize.Resolve(in.parent)
	}

	known := applyAspectRatio(in.known.Or(styled), s.AspectRatio)

	var size, content geometry.FloatSize
	switch {
	case known.BothDefinite():
		size = known
	case n.measure != nil:
		knownContent := geometry.FloatSizeOf(known.Width-inset.Width, known.Height-inset.Height)
		avail := in.avail.WithDefinite(known)
		avail.Width = avail.Width.Shrink(inset.Width)
		avail.Height = avail.Height.Shrink(inset.Height)
		content = n.measure(knownContent, avail)
		size = known.Or(geometry.FloatSizeOf(content.Width+inset.Width, content.Height+inset.Height))
		size = applyAspectRatio(size, s.AspectRatio)
	default:
		size = known.Or(geometry.FloatSizeOf(inset.Width, inset.Height))
	}

	size = size.Clamp(minSize, maxSize)
	size.Width = math.Max(size.Width, inset.Width)
	size.Height = math.Max(size.Height, inset.Height)

	if mode == layoutPass {
		n.commitLayout(size, edges, geometry.FloatSizeOf(
			content.Width+edges.padding.Horizontal(),
			content.Height+edges.padding.Vertical()))
	}
	return size
}

// commitLayout publishes a node's computed size and resolved edges. Auto
// margins are recorded as zero unless an algorithm distributed them and
// overwrites the entry afterwards.
func (n *Node) commitLayout(size geometry.FloatSize, edges boxEdges, content geometry.FloatSize) {
	n.layout.Width = size.Width
	n.layout.Height = size.Height
	n.layout.ContentWidth = math.Max(content.Width, size.Width-edges.border.Horizontal())
	n.layout.ContentHeight = math.Max(content.Height, size.Height-edges.border.Vertical())
	n.layout.Margin = edges.marginOrZero()
	n.layout.Border = edges.border
	n.layout.Padding = edges.padding
	n.layout.ScrollbarWidth = 0
	n.layout.ScrollbarHeight = 0
}
