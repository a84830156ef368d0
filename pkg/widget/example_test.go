package widget_test

import (
	"fmt"

	"github.com/pagegrid/pagegrid/pkg/grid"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

func ExampleDuplicate() {
	// Duplicate a container: the clone lands right after the original and
	// every node in it gets a fresh id.
	tree := []widget.Instance{
		{ID: "hero", Type: "container", Children: []widget.Instance{
			{ID: "title", Type: "heading"},
		}},
		{ID: "footer", Type: "text"},
	}

	tree, clone, ok := widget.Duplicate(tree, "hero")

	fmt.Println("duplicated:", ok)
	fmt.Println("roots:", len(tree))
	fmt.Println("order:", tree[0].ID, tree[2].ID)
	fmt.Println("fresh ids:", clone.ID != "hero" && clone.Children[0].ID != "title")
	// Output:
	// duplicated: true
	// roots: 3
	// order: hero footer
	// fresh ids: true
}

func ExampleUpdateByID() {
	// Move the heading without touching the rest of the tree; the input tree
	// is never mutated.
	tree := []widget.Instance{
		{ID: "title", Type: "heading", Position: grid.Position{X: 0, Y: 0, Width: 6, Height: 1}},
	}

	updated := widget.UpdateByID(tree, "title", func(w widget.Instance) widget.Instance {
		w.Position.Y = 4
		return w
	})

	fmt.Println("updated y:", updated[0].Position.Y)
	fmt.Println("original y:", tree[0].Position.Y)
	// Output:
	// updated y: 4
	// original y: 0
}

func ExampleFlatten() {
	// Pre-order walk: parents before children.
	tree := []widget.Instance{
		{ID: "hero", Type: "container", Children: []widget.Instance{
			{ID: "title", Type: "heading"},
			{ID: "tagline", Type: "text"},
		}},
		{ID: "footer", Type: "text"},
	}

	for _, w := range widget.Flatten(tree) {
		fmt.Println(w.ID)
	}
	// Output:
	// hero
	// title
	// tagline
	// footer
}
