// stretchview loads a layout tree from an XML file, computes it, prints the
// resulting boxes as a tree and optionally renders them to a PNG.
//
//	stretchview --width 800 --height 600 --out boxes.png layout.xml
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mortencombat/stretchable/pkg/geometry"
	"github.com/mortencombat/stretchable/pkg/layout"
	"github.com/mortencombat/stretchable/pkg/style"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "stretchview:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		width   float64
		height  float64
		round   bool
		out     string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "stretchview [flags] <layout.xml>",
		Short: "Compute and inspect a layout tree",
		Long: `stretchview reads a layout tree from an XML document, where each element
is a node with optional "key" and "style" attributes, computes the layout
within the given available space and prints every node's computed box.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
				layout.SetLogger(logger)
				style.SetLogger(logger)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			root, err := layout.FromXML(f)
			if err != nil {
				return err
			}

			avail := geometry.MaxContentAvail()
			if width > 0 {
				avail.Width = geometry.Definite(width)
			}
			if height > 0 {
				avail.Height = geometry.Definite(height)
			}
			if err := root.ComputeLayout(avail, layout.WithRounding(round)); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), root.Dump())
			if out != "" {
				return renderPNG(root, out)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "available width (0 sizes to content)")
	cmd.Flags().Float64Var(&height, "height", 0, "available height (0 sizes to content)")
	cmd.Flags().BoolVar(&round, "round", false, "round the layout to whole pixels")
	cmd.Flags().StringVar(&out, "out", "", "render the computed boxes to this PNG file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log layout passes")
	return cmd
}

// depth-cycled fill colors, light enough that nested boxes stay readable.
var palette = [][3]float64{
	{0.30, 0.50, 0.85},
	{0.85, 0.55, 0.25},
	{0.35, 0.70, 0.45},
	{0.75, 0.40, 0.65},
	{0.55, 0.55, 0.30},
}

func renderPNG(root *layout.Node, path string) error {
	l, err := root.Layout()
	if err != nil {
		return err
	}
	w := int(math.Ceil(l.Width))
	h := int(math.Ceil(l.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if err := drawNode(dc, root, 0); err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func drawNode(dc *gg.Context, n *layout.Node, depth int) error {
	visible, err := n.IsVisible()
	if err != nil {
		return err
	}
	if !visible {
		return nil
	}

	b, err := n.Box(layout.EdgeBorder, false)
	if err != nil {
		return err
	}
	c := palette[depth%len(palette)]
	dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	dc.SetRGBA(c[0], c[1], c[2], 0.25)
	dc.FillPreserve()
	dc.SetRGB(c[0], c[1], c[2])
	dc.SetLineWidth(1)
	dc.Stroke()
	if key := n.Key(); key != "" && b.Width > 12 && b.Height > 12 {
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawString(key, b.X+3, b.Y+11)
	}

	for _, child := range n.Children() {
		if err := drawNode(dc, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
