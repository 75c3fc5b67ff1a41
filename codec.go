package meshpaint

import (
	"errors"
	"strings"
)

// Wire format, shared with the external slicing ecosystem:
//
// A triangle's painting is a string of hexadecimal nibbles, logically read
// from the LAST character backward. Each nibble splits into
// [high 2 bits][low 2 bits]:
//
//   - low bits 0: leaf. High bits are the color; the value 3 means "read one
//     more nibble and add 3" for colors >= 3.
//   - low bits 1, 2, 3: a 2-, 3- or 4-way split. High bits select which edge
//     of the parent triangle is the "special" side for 2-/3-way splits and
//     are ignored for the 4-way case. Children follow, each encoded the
//     same way.
//
// The 4-way child layout (midpoints m01, m12, m20 of edges 0-1, 1-2, 2-0):
// child 0 = center (m01,m12,m20); child 1 = corner-2 (m12,v2,m20);
// child 2 = corner-1 (m01,v1,m12); child 3 = corner-0 (v0,m01,m20).
// This exact order is a hard compatibility contract shared with
// [LeafRegion.Subdivide] and with the ecosystem's own decoder.
//
// The encoder only ever emits leaves and 4-way splits; 2-/3-way splits are
// accepted on decode for compatibility with files written by other tools.

// codecMaxDepth is the structural depth cap of the codec tree. Inputs that
// would nest deeper are treated as malformed.
const codecMaxDepth = 12

// maxWireColor is the largest color index the extension nibble can carry.
const maxWireColor = 3 + 15

var errMalformed = errors.New("malformed wire string")

// treeNode is one node of the codec tree: either a leaf with a color, or a
// split with 2-4 children and a special side.
type treeNode struct {
	leaf     bool
	color    int
	special  int
	children []*treeNode
}

// Decode parses a wire string into a leaf partition of the unit triangle.
// Hex digits are case-insensitive and internal whitespace is ignored. Any
// malformed input (non-hex characters, truncated nibbles, over-deep trees)
// yields a single default whole-triangle leaf of color 0 — corrupted
// segmentation data degrades to "unpainted" instead of failing a load.
func Decode(s string) []LeafRegion {
	nibbles, err := parseNibbles(s)
	if err != nil || len(nibbles) == 0 {
		return []LeafRegion{WholeTriangleLeaf(0)}
	}

	pos := len(nibbles) - 1
	root, err := parseNode(nibbles, &pos, 0)
	if err != nil {
		Logger().Warn("malformed segmentation string, dropping paint", "input", s)
		return []LeafRegion{WholeTriangleLeaf(0)}
	}

	var leaves []LeafRegion
	flatten(root, WholeTriangleLeaf(0), &leaves)
	return leaves
}

// Encode serializes a leaf partition into a wire string. Empty, single-leaf
// and uniformly colored lists collapse to a single leaf code. Otherwise a
// tree is reconstructed from the unordered leaf list by recursive 4-way
// bisection of the unit triangle, assigning each leaf to the candidate child
// region with the nearest centroid; sibling leaves of identical color are
// pruned back into one leaf.
//
// The reconstruction is a best-effort heuristic: the format round-trips the
// color partition, not the tree shape, so Decode(Encode(l)) reports the same
// color as l at every point without necessarily reproducing l's exact
// leaves. Encode never fails, whatever the input list looks like.
func Encode(leaves []LeafRegion) string {
	var buf []byte

	if c, uniform := uniformColor(leaves); uniform {
		writeLeaf(&buf, c)
	} else {
		root := buildTree(leaves, WholeTriangleLeaf(0), 0)
		writeNode(&buf, root)
	}

	// Parent-before-children into a forward buffer, then one reversal:
	// a tail-reading decoder sees parents first.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// parseNibbles cleans and converts a wire string to nibble values.
func parseNibbles(s string) ([]byte, error) {
	nibbles := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			continue
		case r >= '0' && r <= '9':
			nibbles = append(nibbles, byte(r-'0'))
		case r >= 'a' && r <= 'f':
			nibbles = append(nibbles, byte(r-'a'+10))
		case r >= 'A' && r <= 'F':
			nibbles = append(nibbles, byte(r-'A'+10))
		default:
			return nil, errMalformed
		}
	}
	return nibbles, nil
}

// parseNode reads one node at *pos, moving backward through the nibbles.
func parseNode(nibbles []byte, pos *int, depth int) (*treeNode, error) {
	if *pos < 0 || depth > codecMaxDepth {
		return nil, errMalformed
	}
	nib := nibbles[*pos]
	*pos--

	split := int(nib & 0x3)
	high := int(nib >> 2)

	if split == 0 {
		color := high
		if color == 3 {
			if *pos < 0 {
				return nil, errMalformed // truncated extension nibble
			}
			color = int(nibbles[*pos]) + 3
			*pos--
		}
		return &treeNode{leaf: true, color: color}, nil
	}

	n := &treeNode{special: high}
	for range split + 1 {
		child, err := parseNode(nibbles, pos, depth+1)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, nil
}

// flatten walks the tree, propagating the fixed child layouts through each
// split, and appends the resulting leaves to out.
func flatten(n *treeNode, region LeafRegion, out *[]LeafRegion) {
	if n.leaf {
		region.Color = n.color
		*out = append(*out, region)
		return
	}
	for i, child := range splitRegions(region, len(n.children), n.special) {
		flatten(n.children[i], child, out)
	}
}

// splitRegions returns the child regions of a 2-, 3- or 4-way split.
//
// The 4-way layout is the shared contract above. For the asymmetric splits,
// side k is the edge from corner k to corner k+1:
//   - 2-way: the special side is bisected and joined to the opposite corner.
//   - 3-way: the special side stays intact; the other two sides are cut at
//     their midpoints.
func splitRegions(region LeafRegion, count, special int) []LeafRegion {
	c := region.Corners
	child := func(a, b, cc Barycentric) LeafRegion {
		return LeafRegion{
			Corners: [3]Barycentric{a, b, cc},
			Color:   region.Color,
			Depth:   region.Depth + 1,
			Masked:  region.Masked,
		}
	}
	k := special % 3
	k1 := (k + 1) % 3
	k2 := (k + 2) % 3

	switch count {
	case 2:
		m := c[k].Mid(c[k1])
		return []LeafRegion{
			child(m, c[k1], c[k2]),
			child(m, c[k2], c[k]),
		}
	case 3:
		m1 := c[k1].Mid(c[k2])
		m2 := c[k2].Mid(c[k])
		return []LeafRegion{
			child(m1, c[k2], m2),
			child(c[k], c[k1], m1),
			child(c[k], m1, m2),
		}
	default:
		s := region.Subdivide()
		return s[:]
	}
}

// uniformColor reports whether every leaf shares one color. Empty lists
// count as uniform color 0 (the default unpainted state).
func uniformColor(leaves []LeafRegion) (int, bool) {
	if len(leaves) == 0 {
		return 0, true
	}
	c := leaves[0].Color
	for _, l := range leaves[1:] {
		if l.Color != c {
			return 0, false
		}
	}
	return c, true
}

// buildTree reconstructs a codec tree for the region from an unordered leaf
// list. Each input leaf is assigned to whichever of the four candidate child
// regions has the nearest centroid (squared barycentric distance). A child
// that receives no leaves inherits the color of the nearest leaf in the
// parent set, and four identically colored leaf children are pruned into
// a single leaf.
func buildTree(leaves []LeafRegion, region LeafRegion, depth int) *treeNode {
	if c, uniform := uniformColor(leaves); uniform {
		return &treeNode{leaf: true, color: c}
	}
	if depth >= codecMaxDepth {
		return &treeNode{leaf: true, color: nearestLeafColor(leaves, region.Centroid())}
	}

	children := region.Subdivide()
	buckets := make([][]LeafRegion, 4)
	for _, l := range leaves {
		lc := l.Centroid()
		best, bestD := 0, lc.DistanceSquared(children[0].Centroid())
		for i := 1; i < 4; i++ {
			if d := lc.DistanceSquared(children[i].Centroid()); d < bestD {
				best, bestD = i, d
			}
		}
		buckets[best] = append(buckets[best], l)
	}

	n := &treeNode{children: make([]*treeNode, 4)}
	for i := range children {
		if len(buckets[i]) == 0 {
			n.children[i] = &treeNode{
				leaf:  true,
				color: nearestLeafColor(leaves, children[i].Centroid()),
			}
			continue
		}
		n.children[i] = buildTree(buckets[i], children[i], depth+1)
	}

	// Prune: four leaf children of identical color collapse to one leaf.
	c0 := n.children[0]
	if c0.leaf {
		same := true
		for _, ch := range n.children[1:] {
			if !ch.leaf || ch.color != c0.color {
				same = false
				break
			}
		}
		if same {
			return &treeNode{leaf: true, color: c0.color}
		}
	}
	return n
}

// nearestLeafColor returns the color of the leaf whose centroid is closest
// to the given coordinate. leaves must be non-empty.
func nearestLeafColor(leaves []LeafRegion, at Barycentric) int {
	best := leaves[0].Color
	bestD := at.DistanceSquared(leaves[0].Centroid())
	for _, l := range leaves[1:] {
		if d := at.DistanceSquared(l.Centroid()); d < bestD {
			best, bestD = l.Color, d
		}
	}
	return best
}

const hexDigits = "0123456789ABCDEF"

// writeNode appends a node pre-order to the forward buffer.
func writeNode(buf *[]byte, n *treeNode) {
	if n.leaf {
		writeLeaf(buf, n.color)
		return
	}
	// The encoder emits 4-way splits only; special is irrelevant and zero.
	*buf = append(*buf, hexDigits[len(n.children)-1])
	for _, child := range n.children {
		writeNode(buf, child)
	}
}

// writeLeaf appends a leaf code: one nibble for colors 0-2, the extension
// form for colors 3 and above. Colors beyond the wire limit are clamped.
func writeLeaf(buf *[]byte, color int) {
	if color < 0 {
		color = 0
	}
	if color > maxWireColor {
		color = maxWireColor
	}
	if color < 3 {
		*buf = append(*buf, hexDigits[color<<2])
		return
	}
	*buf = append(*buf, hexDigits[3<<2], hexDigits[color-3])
}

// DecodeAttribute is a convenience for loaders: it decodes the wire
// attribute of one triangle record, treating an absent (empty) attribute as
// the default unpainted partition.
func DecodeAttribute(attr string) []LeafRegion {
	if strings.TrimSpace(attr) == "" {
		return []LeafRegion{WholeTriangleLeaf(0)}
	}
	return Decode(attr)
}
