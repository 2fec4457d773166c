package model

import "errors"

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrNoPiece           = errors.New("no piece at square")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrIllegalMove       = errors.New("illegal move")
	ErrPromotionRequired = errors.New("promotion piece required")
	ErrInvalidPromotion  = errors.New("invalid promotion piece")
	ErrGameOver          = errors.New("game is over")
	ErrNoDrawOffer       = errors.New("no draw offer to answer")
	ErrInvalidSnapshot   = errors.New("invalid snapshot")
	ErrAlreadyQueued     = errors.New("player already in queue")
)
