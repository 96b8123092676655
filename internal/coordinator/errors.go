package coordinator

import "errors"

var (
	ErrMatchNotFound    = errors.New("match_not_found")
	ErrNotAParticipant  = errors.New("not_a_participant")
	ErrStoreUnavailable = errors.New("store_unavailable")
	ErrAmbiguousWinner  = errors.New("ambiguous_winner")
	ErrInvalidStatus    = errors.New("invalid_status")
)

// ErrorCode maps a coordinator error to its wire error code.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMatchNotFound):
		return "match_not_found"
	case errors.Is(err, ErrNotAParticipant):
		return "not_a_participant"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrAmbiguousWinner):
		return "ambiguous_winner"
	case errors.Is(err, ErrInvalidStatus):
		return "invalid_status"
	}
	return "internal_error"
}
