package model

import (
	"fmt"
	"slices"
)

type OutcomeKind string

const (
	OutcomeNone        OutcomeKind = ""
	OutcomeCheckmate   OutcomeKind = "checkmate"
	OutcomeStalemate   OutcomeKind = "stalemate"
	OutcomeDraw        OutcomeKind = "draw"
	OutcomeResignation OutcomeKind = "resignation"
)

// Outcome is how a game ended. Winner is set for checkmate and resignation,
// Loser only for resignation.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Color       `json:"winner,omitempty"`
	Loser  Color       `json:"loser,omitempty"`
}

func (o Outcome) Over() bool {
	return o.Kind != OutcomeNone
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeCheckmate:
		return fmt.Sprintf("checkmate, %s wins", o.Winner)
	case OutcomeStalemate:
		return "stalemate"
	case OutcomeDraw:
		return "draw by agreement"
	case OutcomeResignation:
		return fmt.Sprintf("%s resigns, %s wins", o.Loser, o.Winner)
	}
	return "in progress"
}

// Game is one session's rules state: the board, the side to move and the
// outcome. It is not safe for concurrent use; the server guards each game
// with its session lock.
type Game struct {
	board     *Board
	toMove    Color
	outcome   Outcome
	drawOffer Color
	history   []Ply
}

func NewGame() *Game {
	return &Game{
		board:  NewStandardBoard(),
		toMove: White,
	}
}

func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) ToMove() Color {
	return g.toMove
}

func (g *Game) Outcome() Outcome {
	return g.outcome
}

// DrawOffer returns the color with a pending draw offer, or "".
func (g *Game) DrawOffer() Color {
	return g.drawOffer
}

func (g *Game) History() []Ply {
	return slices.Clone(g.history)
}

func (g *Game) LastMove() *Ply {
	if len(g.history) == 0 {
		return nil
	}
	last := g.history[len(g.history)-1]
	return &last
}

// IsCheck reports whether the side to move is in check.
func (g *Game) IsCheck() bool {
	return g.board.IsInCheck(g.toMove)
}

// ValidMoves returns the legal destinations of the piece on pos.
func (g *Game) ValidMoves(pos Position) ([]Position, error) {
	piece := g.board.Lookup(pos)
	if piece == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, pos)
	}
	return g.board.ValidMoves(piece), nil
}

// NeedsPromotion reports whether m would take a pawn to its last rank.
func (g *Game) NeedsPromotion(m Move) bool {
	return g.board.NeedsPromotion(m.From, m.To)
}

// MakeMove validates and plays m for the side to move, then decides whether
// the game has ended.
func (g *Game) MakeMove(m Move) (Ply, error) {
	if g.outcome.Over() {
		return Ply{}, ErrGameOver
	}
	piece := g.board.Lookup(m.From)
	if piece == nil {
		return Ply{}, fmt.Errorf("%w: %s", ErrNoPiece, m.From)
	}
	if piece.Color != g.toMove {
		return Ply{}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, g.toMove)
	}
	if !slices.Contains(g.board.ValidMoves(piece), m.To) {
		return Ply{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, m.From, m.To)
	}
	promote := g.board.NeedsPromotion(m.From, m.To)
	if promote {
		if m.Promotion == "" {
			return Ply{}, ErrPromotionRequired
		}
		if !m.Promotion.Promotable() {
			return Ply{}, fmt.Errorf("%w: %q", ErrInvalidPromotion, m.Promotion)
		}
	}

	ply, err := g.board.Move(m.From, m.To)
	if err != nil {
		return Ply{}, err
	}
	if promote {
		if err := g.board.Promote(m.To, m.Promotion); err != nil {
			return Ply{}, err
		}
		ply.Promotion = m.Promotion
		ply.Notation += "=" + m.Promotion.getPieceNotation()
	}

	g.drawOffer = ""
	g.toMove = g.toMove.Opponent()
	g.evaluate()

	switch {
	case g.outcome.Kind == OutcomeCheckmate:
		ply.Notation += "#"
	case g.board.IsInCheck(g.toMove):
		ply.Notation += "+"
	}
	g.history = append(g.history, ply)
	return ply, nil
}

// evaluate ends the game when the side to move has no legal move.
func (g *Game) evaluate() {
	if g.outcome.Over() || g.board.HasAnyLegalMove(g.toMove) {
		return
	}
	if g.board.IsInCheck(g.toMove) {
		g.outcome = Outcome{Kind: OutcomeCheckmate, Winner: g.toMove.Opponent()}
		return
	}
	g.outcome = Outcome{Kind: OutcomeStalemate}
}

func (g *Game) Resign(c Color) error {
	if g.outcome.Over() {
		return ErrGameOver
	}
	g.outcome = Outcome{Kind: OutcomeResignation, Winner: c.Opponent(), Loser: c}
	return nil
}

// OfferDraw records c's offer. It stands until the opponent answers or a
// move is made.
func (g *Game) OfferDraw(c Color) error {
	if g.outcome.Over() {
		return ErrGameOver
	}
	g.drawOffer = c
	return nil
}

// AcceptDraw ends the game in a draw if c's opponent has offered one.
func (g *Game) AcceptDraw(c Color) error {
	if g.outcome.Over() {
		return ErrGameOver
	}
	if g.drawOffer != c.Opponent() {
		return ErrNoDrawOffer
	}
	g.drawOffer = ""
	g.outcome = Outcome{Kind: OutcomeDraw}
	return nil
}

func (g *Game) DeclineDraw(c Color) error {
	if g.outcome.Over() {
		return ErrGameOver
	}
	if g.drawOffer != c.Opponent() {
		return ErrNoDrawOffer
	}
	g.drawOffer = ""
	return nil
}
