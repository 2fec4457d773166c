package service

import "errors"

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameExists    = errors.New("game already exists")
	ErrGameFull      = errors.New("game is full")
	ErrNotAPlayer    = errors.New("not a player in this game")
	ErrSavesDisabled = errors.New("saving is not configured")

	ErrAlreadyConnected = errors.New("player already connected to this game")
)
