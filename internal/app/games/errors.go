package games

import "errors"

var (
	ErrMatchNotFound    = errors.New("match_not_found")
	ErrMatchUnavailable = errors.New("match_unavailable")
	ErrOwnMatch         = errors.New("own_match")
)
