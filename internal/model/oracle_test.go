package model

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/corentings/chess/v2"
)

var oraclePromotions = map[chess.PieceType]PieceType{
	chess.Queen:  Queen,
	chess.Rook:   Rook,
	chess.Bishop: Bishop,
	chess.Knight: Knight,
}

func fromSquare(sq chess.Square) Position {
	return Position{File: int(sq.File()), Rank: int(sq.Rank())}
}

func fromReference(m *chess.Move) Move {
	return Move{
		From:      fromSquare(m.S1()),
		To:        fromSquare(m.S2()),
		Promotion: oraclePromotions[m.Promo()],
	}
}

// legalMoves lists every legal move of the side to move, promotions
// expanded, sorted for comparison.
func legalMoves(g *Game) []Move {
	var moves []Move
	b := g.Board()
	for _, p := range b.Pieces(g.ToMove()) {
		for _, dest := range b.ValidMoves(p) {
			if b.NeedsPromotion(p.Position, dest) {
				for _, pt := range promotionPieces {
					moves = append(moves, Move{From: p.Position, To: dest, Promotion: pt})
				}
				continue
			}
			moves = append(moves, Move{From: p.Position, To: dest})
		}
	}
	slices.SortFunc(moves, compareMoves)
	return moves
}

func compareMoves(a, b Move) int {
	if c := comparePositions(a.From, b.From); c != 0 {
		return c
	}
	if c := comparePositions(a.To, b.To); c != 0 {
		return c
	}
	switch {
	case a.Promotion < b.Promotion:
		return -1
	case a.Promotion > b.Promotion:
		return 1
	}
	return 0
}

// TestAgainstReferenceEngine plays seeded random games and checks that every
// position offers exactly the moves a reference move generator offers, and
// that both agree on how the game ends.
func TestAgainstReferenceEngine(t *testing.T) {
	games := 40
	if testing.Short() {
		games = 5
	}
	rng := rand.New(rand.NewSource(20240917))

	for n := 0; n < games; n++ {
		ours := NewGame()
		ref := chess.NewGame()

		for ply := 0; ply < 200; ply++ {
			refMoves := ref.ValidMoves()
			want := make([]Move, 0, len(refMoves))
			for i := range refMoves {
				want = append(want, fromReference(&refMoves[i]))
			}
			slices.SortFunc(want, compareMoves)

			got := legalMoves(ours)
			if !slices.Equal(got, want) {
				t.Fatalf("game %d ply %d: move lists differ\nours: %v\nref:  %v\nfen:  %s",
					n, ply, got, want, ref.FEN())
			}
			if len(refMoves) == 0 || ref.Outcome() != chess.NoOutcome {
				break
			}

			pick := rng.Intn(len(refMoves))
			san := chess.AlgebraicNotation{}.Encode(ref.Position(), &refMoves[pick])
			if err := ref.PushMove(san, nil); err != nil {
				t.Fatalf("game %d ply %d: reference rejected %s: %v", n, ply, san, err)
			}
			if _, err := ours.MakeMove(fromReference(&refMoves[pick])); err != nil {
				t.Fatalf("game %d ply %d: %s: %v", n, ply, san, err)
			}

			switch ref.Method() {
			case chess.Checkmate:
				if ours.Outcome().Kind != OutcomeCheckmate {
					t.Fatalf("game %d: reference saw mate after %s, ours %+v", n, san, ours.Outcome())
				}
			case chess.Stalemate:
				if ours.Outcome().Kind != OutcomeStalemate {
					t.Fatalf("game %d: reference saw stalemate after %s, ours %+v", n, san, ours.Outcome())
				}
			case chess.NoMethod:
				if ours.Outcome().Over() {
					t.Fatalf("game %d: ours ended %+v after %s, reference did not", n, ours.Outcome(), san)
				}
			}
		}
	}
}
