package layout

import (
	"strings"
	"testing"

	"github.com/mortencombat/stretchable/pkg/geometry"
)

func TestFromXML(t *testing.T) {
	doc := `
<layout key="root" style="width: 200px; height: 100px; column-gap: 10px">
  <item key="sidebar" style="width: 50px"/>
  <item key="content" style="flex-grow: 1"/>
</layout>`
	root, err := FromXML(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if root.Key() != "root" || root.ChildCount() != 2 {
		t.Fatalf("parsed tree: key=%q children=%d", root.Key(), root.ChildCount())
	}

	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	content, err := root.Find("content")
	if err != nil {
		t.Fatal(err)
	}
	l := mustLayout(t, content)
	approx(t, l.X, 60, "content starts after sidebar and gap")
	approx(t, l.Width, 140, "content takes the remaining space")
}

func TestFromXMLErrors(t *testing.T) {
	if _, err := FromXML(strings.NewReader("not xml at all <<<")); err == nil {
		t.Error("malformed document must fail")
	}
	if _, err := FromXML(strings.NewReader(`<n style="width: banana"/>`)); err == nil {
		t.Error("invalid style value must fail")
	}
	if _, err := FromXML(strings.NewReader(`<n key="7"/>`)); err == nil {
		t.Error("invalid key must fail")
	}
}
