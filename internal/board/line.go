package board

// pair records the two line tiles involved in a merge.
type pair struct {
	survivor *Tile
	absorbed *Tile
}

// compact drops empty slots, keeping tile order.
func compact(line []*Tile) []*Tile {
	tiles := make([]*Tile, 0, len(line))
	for _, t := range line {
		if t != nil {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

func canMerge(a, b *Tile, ceiling int) bool {
	return a.Val == b.Val && a.Val < ceiling
}

// mergeForward compacts a line toward its start. The first adjacent pair of
// equal values below ceiling merges: the earlier tile is absorbed and the later
// one survives. At most one merge happens per line. The result is padded with
// empty slots at the end up to length.
func mergeForward(line []*Tile, length, ceiling int) ([]*Tile, *pair) {
	tiles := compact(line)

	var merged *pair
	for i := 0; i+1 < len(tiles); i++ {
		if canMerge(tiles[i], tiles[i+1], ceiling) {
			merged = &pair{survivor: tiles[i+1], absorbed: tiles[i]}
			tiles = append(tiles[:i], tiles[i+1:]...)
			break
		}
	}

	out := make([]*Tile, length)
	copy(out, tiles)
	return out, merged
}

// mergeBackward compacts a line toward its end. The last adjacent pair of equal
// values below ceiling merges: the later tile is absorbed and the earlier one
// survives. Empty slots pad the start of the line.
func mergeBackward(line []*Tile, length, ceiling int) ([]*Tile, *pair) {
	tiles := compact(line)

	var merged *pair
	for i := len(tiles) - 1; i > 0; i-- {
		if canMerge(tiles[i-1], tiles[i], ceiling) {
			merged = &pair{survivor: tiles[i-1], absorbed: tiles[i]}
			tiles = append(tiles[:i], tiles[i+1:]...)
			break
		}
	}

	out := make([]*Tile, length)
	copy(out[length-len(tiles):], tiles)
	return out, merged
}

// hasMergeablePair reports whether two neighbouring tiles would merge under
// ceiling.
func hasMergeablePair(line []*Tile, ceiling int) bool {
	for i := 0; i+1 < len(line); i++ {
		if line[i] != nil && line[i+1] != nil && canMerge(line[i], line[i+1], ceiling) {
			return true
		}
	}
	return false
}

// hasAdjacentPair reports whether two neighbouring tiles share a value.
// Empty slots break adjacency.
func hasAdjacentPair(line []*Tile) bool {
	for i := 0; i+1 < len(line); i++ {
		if line[i] != nil && line[i+1] != nil && line[i].Val == line[i+1].Val {
			return true
		}
	}
	return false
}
