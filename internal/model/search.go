package model

// MoveSearch walks from start along t and collects empty squares. The walk
// stops before the first occupied square, at the board edge, or after limit
// steps; limit 0 means unbounded.
func (b *Board) MoveSearch(start Position, t Transform, limit int) []Position {
	var results []Position
	pos := start
	for steps := 0; limit == 0 || steps < limit; steps++ {
		pos = t(pos)
		if !pos.OnBoard() || b.Lookup(pos) != nil {
			break
		}
		results = append(results, pos)
	}
	return results
}

// AttackSearch walks like MoveSearch but returns the first enemy piece's
// square it runs into. A friendly piece ends the walk with no result.
func (b *Board) AttackSearch(start Position, color Color, t Transform, limit int) []Position {
	pos := start
	for steps := 0; limit == 0 || steps < limit; steps++ {
		pos = t(pos)
		if !pos.OnBoard() {
			return nil
		}
		occupant := b.Lookup(pos)
		if occupant == nil {
			continue
		}
		if occupant.Color != color {
			return []Position{pos}
		}
		return nil
	}
	return nil
}
