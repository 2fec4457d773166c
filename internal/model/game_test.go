package model

import (
	"errors"
	"testing"
)

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	mustMove(t, g, "f2", "f3")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "g2", "g4")
	ply := mustMove(t, g, "d8", "h4")

	if got := g.Outcome(); got.Kind != OutcomeCheckmate || got.Winner != Black {
		t.Fatalf("outcome = %+v", got)
	}
	if ply.Notation != "Qh4#" {
		t.Errorf("notation = %q", ply.Notation)
	}
	if _, err := g.MakeMove(Move{From: pos(t, "a2"), To: pos(t, "a3")}); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after mate: %v", err)
	}
	if len(g.History()) != 4 {
		t.Errorf("history has %d plies", len(g.History()))
	}
}

func TestBackRankMate(t *testing.T) {
	b := boardFromDiagram(t,
		"......k.",
		".....ppp",
		"........",
		"........",
		"........",
		"........",
		"r.....PP",
		".......K",
	)
	g := gameWith(t, b, Black)
	ply := mustMove(t, g, "a2", "a1")
	if got := g.Outcome(); got.Kind != OutcomeCheckmate || got.Winner != Black {
		t.Fatalf("outcome = %+v", got)
	}
	if ply.Notation != "Ra1#" {
		t.Errorf("notation = %q", ply.Notation)
	}
}

func TestStalemate(t *testing.T) {
	b := boardFromDiagram(t,
		"k.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"..Q.K...",
	)
	g := gameWith(t, b, White)
	ply := mustMove(t, g, "c1", "c7")
	if got := g.Outcome(); got.Kind != OutcomeStalemate || got.Winner != "" {
		t.Fatalf("outcome = %+v", got)
	}
	if ply.Notation != "Qc7" {
		t.Errorf("notation = %q", ply.Notation)
	}
	if g.IsCheck() {
		t.Error("stalemated side is not in check")
	}
}

func TestCheckAnnotation(t *testing.T) {
	b := boardFromDiagram(t,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K...",
	)
	g := gameWith(t, b, White)
	ply := mustMove(t, g, "a1", "a8")
	if ply.Notation != "Ra8+" {
		t.Errorf("notation = %q", ply.Notation)
	}
	if !g.IsCheck() || g.Outcome().Over() {
		t.Errorf("check = %v, outcome = %+v", g.IsCheck(), g.Outcome())
	}
}

func TestPromotionThroughGame(t *testing.T) {
	b := boardFromDiagram(t,
		"........",
		"P.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K..k",
	)
	g := gameWith(t, b, White)
	m := Move{From: pos(t, "a7"), To: pos(t, "a8")}
	if !g.NeedsPromotion(m) {
		t.Fatal("a7-a8 should need promotion")
	}
	if _, err := g.MakeMove(m); !errors.Is(err, ErrPromotionRequired) {
		t.Fatalf("err = %v, want ErrPromotionRequired", err)
	}
	m.Promotion = King
	if _, err := g.MakeMove(m); !errors.Is(err, ErrInvalidPromotion) {
		t.Fatalf("err = %v, want ErrInvalidPromotion", err)
	}
	if g.Board().Lookup(pos(t, "a7")) == nil || g.ToMove() != White {
		t.Fatal("rejected promotion changed the game")
	}

	m.Promotion = Queen
	ply, err := g.MakeMove(m)
	if err != nil {
		t.Fatal(err)
	}
	if ply.Notation != "a8=Q+" || ply.Promotion != Queen {
		t.Errorf("ply = %+v", ply)
	}
	if p := g.Board().Lookup(pos(t, "a8")); p == nil || p.Type != Queen {
		t.Errorf("a8 = %+v", p)
	}
}

func TestPromotionIgnoredOnOrdinaryMove(t *testing.T) {
	g := NewGame()
	ply, err := g.MakeMove(Move{From: pos(t, "e2"), To: pos(t, "e4"), Promotion: Queen})
	if err != nil {
		t.Fatal(err)
	}
	if ply.Promotion != "" || g.Board().Lookup(pos(t, "e4")).Type != Pawn {
		t.Errorf("ply = %+v", ply)
	}
}

func TestMakeMoveRejects(t *testing.T) {
	tests := []struct {
		name string
		move Move
		want error
	}{
		{"empty square", Move{From: Position{4, 4}, To: Position{4, 5}}, ErrNoPiece},
		{"opponent's piece", Move{From: Position{4, 6}, To: Position{4, 4}}, ErrNotYourTurn},
		{"illegal destination", Move{From: Position{4, 1}, To: Position{4, 4}}, ErrIllegalMove},
		{"staying put", Move{From: Position{6, 0}, To: Position{6, 0}}, ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			if _, err := g.MakeMove(tt.move); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if g.ToMove() != White || len(g.History()) != 0 {
				t.Error("rejected move changed the game")
			}
		})
	}
}

func TestResign(t *testing.T) {
	g := NewGame()
	if err := g.Resign(White); err != nil {
		t.Fatal(err)
	}
	want := Outcome{Kind: OutcomeResignation, Winner: Black, Loser: White}
	if g.Outcome() != want {
		t.Errorf("outcome = %+v", g.Outcome())
	}
	if err := g.Resign(Black); !errors.Is(err, ErrGameOver) {
		t.Errorf("second resignation: %v", err)
	}
	if g.Outcome() != want {
		t.Error("outcome overwritten")
	}
}

func TestDrawOffers(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		g := NewGame()
		if err := g.OfferDraw(White); err != nil {
			t.Fatal(err)
		}
		if g.DrawOffer() != White {
			t.Fatalf("offer = %q", g.DrawOffer())
		}
		if err := g.AcceptDraw(White); !errors.Is(err, ErrNoDrawOffer) {
			t.Errorf("accepting own offer: %v", err)
		}
		if err := g.AcceptDraw(Black); err != nil {
			t.Fatal(err)
		}
		if g.Outcome().Kind != OutcomeDraw {
			t.Errorf("outcome = %+v", g.Outcome())
		}
		if err := g.OfferDraw(Black); !errors.Is(err, ErrGameOver) {
			t.Errorf("offer after the end: %v", err)
		}
	})

	t.Run("declined", func(t *testing.T) {
		g := NewGame()
		if err := g.DeclineDraw(Black); !errors.Is(err, ErrNoDrawOffer) {
			t.Errorf("declining nothing: %v", err)
		}
		_ = g.OfferDraw(White)
		if err := g.DeclineDraw(Black); err != nil {
			t.Fatal(err)
		}
		if g.DrawOffer() != "" || g.Outcome().Over() {
			t.Errorf("offer = %q, outcome = %+v", g.DrawOffer(), g.Outcome())
		}
	})

	t.Run("cleared by a move", func(t *testing.T) {
		g := NewGame()
		_ = g.OfferDraw(Black)
		mustMove(t, g, "e2", "e4")
		if g.DrawOffer() != "" {
			t.Error("offer survived a move")
		}
		if err := g.AcceptDraw(White); !errors.Is(err, ErrNoDrawOffer) {
			t.Errorf("accepting a stale offer: %v", err)
		}
	})
}

func TestValidMovesFromGame(t *testing.T) {
	g := NewGame()
	got, err := g.ValidMoves(pos(t, "g1"))
	if err != nil {
		t.Fatal(err)
	}
	assertPositions(t, got, squares(t, "f3", "h3"))
	if _, err := g.ValidMoves(pos(t, "e4")); !errors.Is(err, ErrNoPiece) {
		t.Errorf("empty square: %v", err)
	}
	if g.LastMove() != nil {
		t.Error("fresh game has no last move")
	}
	mustMove(t, g, "g1", "f3")
	if last := g.LastMove(); last == nil || last.Notation != "Nf3" {
		t.Errorf("last move = %+v", last)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Outcome{}, "in progress"},
		{Outcome{Kind: OutcomeCheckmate, Winner: White}, "checkmate, white wins"},
		{Outcome{Kind: OutcomeStalemate}, "stalemate"},
		{Outcome{Kind: OutcomeDraw}, "draw by agreement"},
		{Outcome{Kind: OutcomeResignation, Winner: Black, Loser: White}, "white resigns, black wins"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
