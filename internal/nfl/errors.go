package nfl

import "errors"

var (
	ErrDataNotLoaded     = errors.New("stat tables not loaded")
	ErrPlayerNotFound    = errors.New("player not found in any stat table")
	ErrInvalidPlayerName = errors.New("player name must be given as \"First Last\"")
	ErrMissingFile       = errors.New("game log file missing")
)
