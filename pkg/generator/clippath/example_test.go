package clippath_test

import (
	"fmt"

	"github.com/matzehuels/blocks/pkg/generator/clippath"
)

func ExampleClipPath_CSS() {
	c := clippath.Default()
	c.Mode = clippath.ModeCircle
	c.Circle = clippath.Circle{Radius: 50, X: 50, Y: 50}

	css, _ := c.CSS()
	fmt.Println(css)
	// Output: clip-path: circle(50% at 50% 50%);
}

func ExampleParsePolygon() {
	points, _ := clippath.ParsePolygon("polygon(50% 0%, 100% 50%, 50% 100%, 0% 50%)")
	fmt.Println(len(points), points[1])
	// Output: 4 {100 50}
}
