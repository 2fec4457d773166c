package model

import (
	"fmt"
	"slices"
)

// Board is the 8x8 grid, indexed [file][rank]. A nil cell is empty. The
// board owns its pieces; a piece's Position always names the cell holding it.
type Board struct {
	squares [8][8]*Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardBoard returns a board set up for the start of a game.
func NewStandardBoard() *Board {
	b := NewBoard()
	for _, color := range []Color{White, Black} {
		pieceRank, pawnRank := 0, 1
		if color == Black {
			pieceRank, pawnRank = 7, 6
		}
		for file := 0; file < 8; file++ {
			b.Place(NewPiece(backRank[file], color, Position{}), Position{File: file, Rank: pieceRank})
			b.Place(NewPiece(Pawn, color, Position{}), Position{File: file, Rank: pawnRank})
		}
	}
	return b
}

// Lookup returns the piece on pos, or nil if the square is empty or off the
// board.
func (b *Board) Lookup(pos Position) *Piece {
	if !pos.OnBoard() {
		return nil
	}
	return b.squares[pos.File][pos.Rank]
}

// Place puts piece on pos, replacing whatever was there. A nil piece clears
// the square.
func (b *Board) Place(piece *Piece, pos Position) {
	if piece != nil {
		piece.Position = pos
	}
	b.squares[pos.File][pos.Rank] = piece
}

func (b *Board) Clear(pos Position) {
	b.squares[pos.File][pos.Rank] = nil
}

// Move relocates the piece on from to to. It is the only way pieces move
// during play. A king moving two files brings its rook along; a pawn moving
// diagonally onto an empty square captures en passant. Legality is the
// caller's concern: check ValidMoves first.
func (b *Board) Move(from, to Position) (Ply, error) {
	piece := b.Lookup(from)
	if piece == nil {
		return Ply{}, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	ply := Ply{
		Piece:    piece.Type,
		Color:    piece.Color,
		From:     from,
		To:       to,
		Captured: b.Lookup(to),
	}

	if piece.Type == Pawn && from.File != to.File && ply.Captured == nil {
		victim := Position{File: to.File, Rank: from.Rank}
		ply.Captured = b.Lookup(victim)
		ply.EnPassant = true
		b.Clear(victim)
	}
	if piece.Type == King && abs(to.File-from.File) == 2 {
		ply.CastleRookMove = b.castleRook(from, to)
	}

	b.Clear(from)
	b.Place(piece, to)

	if piece.Type == Pawn && abs(to.Rank-from.Rank) == 2 {
		piece.State = DoubleStepped
	} else {
		piece.State = Moved
	}
	b.agePawns(piece.Color.Opponent())

	ply.Notation = ply.baseNotation()
	return ply, nil
}

func (b *Board) castleRook(from, to Position) *CastleRookMove {
	rookFrom := Position{File: 7, Rank: from.Rank}
	rookTo := Position{File: from.File + 1, Rank: from.Rank}
	if to.File < from.File {
		rookFrom = Position{File: 0, Rank: from.Rank}
		rookTo = Position{File: from.File - 1, Rank: from.Rank}
	}
	rook := b.Lookup(rookFrom)
	if rook == nil {
		return nil
	}
	b.Clear(rookFrom)
	b.Place(rook, rookTo)
	rook.State = Moved
	return &CastleRookMove{From: rookFrom, To: rookTo}
}

// agePawns ends the en passant window of color's pawns that double stepped
// on the previous ply.
func (b *Board) agePawns(color Color) {
	rank := doubleStepRank(color)
	for file := 0; file < 8; file++ {
		p := b.squares[file][rank]
		if p != nil && p.Type == Pawn && p.Color == color && p.State == DoubleStepped {
			p.State = Moved
		}
	}
}

// Clone returns a deep copy; no piece is shared with b.
func (b *Board) Clone() *Board {
	c := &Board{}
	for file := range b.squares {
		for rank, p := range b.squares[file] {
			if p != nil {
				c.squares[file][rank] = p.clone()
			}
		}
	}
	return c
}

// Pieces returns color's pieces ordered by file, then rank.
func (b *Board) Pieces(color Color) []*Piece {
	var pieces []*Piece
	for file := range b.squares {
		for _, p := range b.squares[file] {
			if p != nil && p.Color == color {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

func (b *Board) King(color Color) *Piece {
	for file := range b.squares {
		for _, p := range b.squares[file] {
			if p != nil && p.Type == King && p.Color == color {
				return p
			}
		}
	}
	return nil
}

// IsInCheck reports whether any enemy piece attacks color's king.
func (b *Board) IsInCheck(color Color) bool {
	king := b.King(color)
	if king == nil {
		return false
	}
	return b.isAttacked(king.Position, color.Opponent())
}

func (b *Board) isAttacked(pos Position, by Color) bool {
	for _, p := range b.Pieces(by) {
		if slices.Contains(p.Attacks(b), pos) {
			return true
		}
	}
	return false
}

// WouldBeInCheckAfter plays from->to on a copy of the board and reports
// whether the mover's king is attacked afterwards. b is left untouched.
func (b *Board) WouldBeInCheckAfter(from, to Position) bool {
	piece := b.Lookup(from)
	if piece == nil {
		return false
	}
	sim := b.Clone()
	if _, err := sim.Move(from, to); err != nil {
		return false
	}
	return sim.IsInCheck(piece.Color)
}

// ValidMoves returns the squares piece may legally move to: its moves and
// attacks, minus those that would leave its own king in check.
func (b *Board) ValidMoves(piece *Piece) []Position {
	candidates := append(piece.Moves(b), piece.Attacks(b)...)
	sortPositions(candidates)
	valid := make([]Position, 0, len(candidates))
	for _, dest := range candidates {
		if !b.WouldBeInCheckAfter(piece.Position, dest) {
			valid = append(valid, dest)
		}
	}
	return valid
}

// HasAnyLegalMove reports whether color can make at least one move.
func (b *Board) HasAnyLegalMove(color Color) bool {
	for _, p := range b.Pieces(color) {
		for _, dest := range b.ValidMoves(p) {
			if dest != p.Position {
				return true
			}
		}
	}
	return false
}

// ValidPieceSelection reports whether pos holds one of color's pieces.
func (b *Board) ValidPieceSelection(color Color, pos Position) bool {
	p := b.Lookup(pos)
	return p != nil && p.Color == color
}

func (b *Board) CanCastleShort(king *Piece) bool {
	return b.canCastle(king, 7)
}

func (b *Board) CanCastleLong(king *Piece) bool {
	return b.canCastle(king, 0)
}

// canCastle holds when the king has never moved, the rook on rookFile is a
// friendly rook that has never moved, the squares between them are empty and
// the king is not in check. On top of that list the square the king crosses
// must not be attacked, as in standard chess; the landing square is covered
// by the check-safety filter.
func (b *Board) canCastle(king *Piece, rookFile int) bool {
	if king == nil || king.Type != King || king.HasMoved() {
		return false
	}
	rank := king.Position.Rank
	rook := b.Lookup(Position{File: rookFile, Rank: rank})
	if rook == nil || rook.Type != Rook || rook.Color != king.Color || rook.HasMoved() {
		return false
	}
	step := 1
	if rookFile < king.Position.File {
		step = -1
	}
	for file := king.Position.File + step; file != rookFile; file += step {
		if b.Lookup(Position{File: file, Rank: rank}) != nil {
			return false
		}
	}
	if !(Position{File: king.Position.File + 2*step, Rank: rank}).OnBoard() {
		return false
	}
	if b.IsInCheck(king.Color) {
		return false
	}
	crossing := Position{File: king.Position.File + step, Rank: rank}
	return !b.WouldBeInCheckAfter(king.Position, crossing)
}

// NeedsPromotion reports whether moving from->to takes a pawn to its last
// rank.
func (b *Board) NeedsPromotion(from, to Position) bool {
	p := b.Lookup(from)
	return p != nil && p.Type == Pawn && to.Rank == promotionRank(p.Color)
}

// Promote replaces the pawn on pos with a new piece of type t.
func (b *Board) Promote(pos Position, t PieceType) error {
	pawn := b.Lookup(pos)
	if pawn == nil || pawn.Type != Pawn || pos.Rank != promotionRank(pawn.Color) {
		return fmt.Errorf("%w: no pawn to promote on %s", ErrIllegalMove, pos)
	}
	if !t.Promotable() {
		return fmt.Errorf("%w: %q", ErrInvalidPromotion, t)
	}
	promoted := NewPiece(t, pawn.Color, pos)
	promoted.State = Moved
	b.Place(promoted, pos)
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
