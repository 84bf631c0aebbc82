package coremg

// Perft counts leaf nodes (move sequences) from the position for a given depth.
// Depth 0 counts the position itself. The board is restored before returning.
// Per-depth move lists are reused across siblings to avoid allocations.
func (g *Generator) Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	lists := make([]MoveList, depth+1)
	return g.perftRec(b, depth, lists)
}

func (g *Generator) perftRec(b *Board, depth int, lists []MoveList) uint64 {
	if depth == 0 {
		return 1
	}
	list := &lists[depth]
	g.GenerateMoves(b, list)
	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		saved := *b
		if !g.MakeMove(b, list.At(i), AllMoves) {
			continue
		}
		nodes += g.perftRec(b, depth-1, lists)
		*b = saved
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf nodes
// reachable from that move at the given depth. Useful for debugging.
func (g *Generator) PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	var list MoveList
	g.GenerateMoves(b, &list)
	lists := make([]MoveList, depth)
	for _, m := range list.Moves() {
		saved := *b
		if !g.MakeMove(b, m, AllMoves) {
			continue
		}
		result[m] = g.perftRec(b, depth-1, lists)
		*b = saved
	}
	return result
}
