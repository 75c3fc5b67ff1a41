package meshpaint_test

import (
	"fmt"

	"github.com/gogpu/meshpaint"
)

// A whole triangle painted with material 3 uses the extension-nibble leaf
// code.
func ExampleEncode() {
	wire := meshpaint.Encode([]meshpaint.LeafRegion{meshpaint.WholeTriangleLeaf(3)})
	fmt.Println(wire)
	// Output: 0C
}

func ExampleDecode() {
	leaves := meshpaint.Decode("48403")
	fmt.Println(len(leaves), "leaves")
	for _, l := range leaves {
		fmt.Printf("color %d depth %d\n", l.Color, l.Depth)
	}
	// Output:
	// 4 leaves
	// color 0 depth 1
	// color 1 depth 1
	// color 2 depth 1
	// color 1 depth 1
}
