package model

import (
	"fmt"
	"strings"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

func (p PieceType) Valid() bool {
	switch p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

// Promotable reports whether a pawn may become p.
func (p PieceType) Promotable() bool {
	return p == Queen || p == Rook || p == Bishop || p == Knight
}

// ParsePromotion accepts a piece letter (q, r, b, n) or a full piece name.
func ParsePromotion(text string) (PieceType, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "q", "queen":
		return Queen, nil
	case "r", "rook":
		return Rook, nil
	case "b", "bishop":
		return Bishop, nil
	case "n", "knight":
		return Knight, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPromotion, text)
}

// MoveState tracks a piece's move history as far as castling and en passant
// care about it.
type MoveState uint8

const (
	Unmoved MoveState = iota
	// DoubleStepped marks a pawn whose only move so far was a two-square
	// advance made on the previous ply.
	DoubleStepped
	Moved
)

var moveStateNames = [...]string{
	Unmoved:       "unmoved",
	DoubleStepped: "double_stepped",
	Moved:         "moved",
}

func (s MoveState) String() string {
	if int(s) < len(moveStateNames) {
		return moveStateNames[s]
	}
	return fmt.Sprintf("MoveState(%d)", s)
}

func (s MoveState) MarshalText() ([]byte, error) {
	if int(s) >= len(moveStateNames) {
		return nil, fmt.Errorf("invalid move state %d", s)
	}
	return []byte(moveStateNames[s]), nil
}

func (s *MoveState) UnmarshalText(text []byte) error {
	for i, name := range moveStateNames {
		if name == string(text) {
			*s = MoveState(i)
			return nil
		}
	}
	return fmt.Errorf("invalid move state %q", text)
}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	State    MoveState `json:"state"`
}

func NewPiece(t PieceType, color Color, pos Position) *Piece {
	return &Piece{Type: t, Color: color, Position: pos, State: Unmoved}
}

// HasMoved reports whether the piece has left its starting square.
func (p *Piece) HasMoved() bool {
	return p.State != Unmoved
}

func (p *Piece) clone() *Piece {
	c := *p
	return &c
}

var (
	orthogonal = []Direction{Up, Down, Left, Right}
	diagonal   = []Direction{UpLeft, UpRight, DownLeft, DownRight}
	royal      = []Direction{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}
	knightJump = []Direction{
		LongLeftUp, LongUpLeft, LongUpRight, LongRightUp,
		LongRightDown, LongDownRight, LongDownLeft, LongLeftDown,
	}
)

// directionTable holds the move directions of every piece except the pawn,
// whose directions depend on its color. For these pieces attack directions
// equal move directions.
var directionTable = map[PieceType][]Direction{
	King:   royal,
	Queen:  royal,
	Rook:   orthogonal,
	Bishop: diagonal,
	Knight: knightJump,
}

func (p *Piece) MoveDirections() []Direction {
	if p.Type == Pawn {
		return []Direction{forward(p.Color)}
	}
	return directionTable[p.Type]
}

func (p *Piece) AttackDirections() []Direction {
	if p.Type == Pawn {
		if p.Color == White {
			return []Direction{UpLeft, UpRight}
		}
		return []Direction{DownLeft, DownRight}
	}
	return directionTable[p.Type]
}

func forward(c Color) Direction {
	if c == White {
		return Up
	}
	return Down
}

// stepLimit is the ray length for p; 0 means the ray runs until blocked.
func (p *Piece) stepLimit() int {
	switch p.Type {
	case King, Knight:
		return 1
	case Pawn:
		if p.State == Unmoved {
			return 2
		}
		return 1
	}
	return 0
}

func (p *Piece) attackLimit() int {
	if p.Type == Pawn {
		return 1
	}
	return p.stepLimit()
}

// Moves returns the empty squares p can reach, castling included, sorted by
// file then rank. Moves that expose p's king are not removed here.
func (p *Piece) Moves(b *Board) []Position {
	var moves []Position
	for _, t := range Transforms(p.MoveDirections()) {
		moves = append(moves, b.MoveSearch(p.Position, t, p.stepLimit())...)
	}
	if p.Type == King {
		if b.CanCastleShort(p) {
			moves = append(moves, CastleShort.Apply(p.Position))
		}
		if b.CanCastleLong(p) {
			moves = append(moves, CastleLong.Apply(p.Position))
		}
	}
	sortPositions(moves)
	return moves
}

// Attacks returns the enemy-occupied squares p can capture on, plus an en
// passant landing square when one is available, sorted by file then rank.
func (p *Piece) Attacks(b *Board) []Position {
	var attacks []Position
	for _, t := range Transforms(p.AttackDirections()) {
		attacks = append(attacks, b.AttackSearch(p.Position, p.Color, t, p.attackLimit())...)
	}
	if p.Type == Pawn {
		attacks = append(attacks, p.enPassantTargets(b)...)
	}
	sortPositions(attacks)
	return attacks
}

func (p *Piece) enPassantTargets(b *Board) []Position {
	if p.Position.Rank != enPassantRank(p.Color) {
		return nil
	}
	var targets []Position
	for _, side := range []Direction{Left, Right} {
		beside := side.Apply(p.Position)
		victim := b.Lookup(beside)
		if victim == nil || victim.Type != Pawn || victim.Color == p.Color || victim.State != DoubleStepped {
			continue
		}
		landing := forward(p.Color).Apply(beside)
		if b.Lookup(landing) == nil {
			targets = append(targets, landing)
		}
	}
	return targets
}

// enPassantRank is the rank a pawn of color must stand on to capture en
// passant.
func enPassantRank(c Color) int {
	if c == White {
		return 4
	}
	return 3
}

// doubleStepRank is the rank a pawn of color lands on after a double step.
func doubleStepRank(c Color) int {
	if c == White {
		return 3
	}
	return 4
}

func promotionRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}
