// Command meshseg inspects and canonicalizes triangle segmentation strings
// in the multi-material wire format.
//
// Usage:
//
//	meshseg -decode 48403
//	meshseg -decode 48403 -reencode
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/meshpaint"
)

func main() {
	var (
		decode   = flag.String("decode", "", "wire string to decode")
		reencode = flag.Bool("reencode", false, "re-encode the decoded partition and print the canonical string")
	)
	flag.Parse()

	if *decode == "" {
		flag.Usage()
		os.Exit(2)
	}

	leaves := meshpaint.Decode(*decode)
	fmt.Printf("%d leaves\n", len(leaves))
	var total float32
	for i, l := range leaves {
		mask := ""
		if l.Masked {
			mask = " masked"
		}
		fmt.Printf("  [%d] color=%d depth=%d area=%.4f%s\n", i, l.Color, l.Depth, l.Area(), mask)
		total += l.Area()
	}
	fmt.Printf("total area %.4f\n", total)

	if *reencode {
		fmt.Printf("canonical: %s\n", meshpaint.Encode(leaves))
	}
}
