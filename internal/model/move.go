package model

import "fmt"

// Move is a request to move the piece on From to To. Promotion names the
// piece a pawn becomes when it reaches the last rank.
type Move struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply records one executed move.
type Ply struct {
	Piece          PieceType       `json:"piece"`
	Color          Color           `json:"color"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	Captured       *Piece          `json:"capturedPiece,omitempty"`
	CastleRookMove *CastleRookMove `json:"castleRookMove,omitempty"`
	EnPassant      bool            `json:"enPassant,omitempty"`
	Promotion      PieceType       `json:"promotion,omitempty"`
	Notation       string          `json:"notation"`
}

func (p Ply) baseNotation() string {
	if p.CastleRookMove != nil {
		if p.To.File > p.From.File {
			return "O-O"
		}
		return "O-O-O"
	}
	capture := ""
	if p.Captured != nil {
		capture = "x"
	}
	fileSpecifier := ""
	if p.Piece == Pawn && p.From.File != p.To.File {
		fileSpecifier = p.From.getFileNotation()
	}
	return fmt.Sprintf("%s%s%s%s", p.Piece.getPieceNotation(), fileSpecifier, capture, p.To)
}
