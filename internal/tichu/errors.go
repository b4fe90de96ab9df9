package tichu

import "errors"

// Error kinds returned by the core. Every operation is total: it returns
// a value or one of these, and never mutates state on the error path.
var (
	ErrNotFound        = errors.New("game or player not found")
	ErrWrongPhase      = errors.New("operation not valid in current phase")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrIllegalTrick    = errors.New("cards do not form a valid combination")
	ErrIllegalBeat     = errors.New("combination does not beat the current trick")
	ErrNotYourCards    = errors.New("card is not in your hand")
	ErrTeamFull        = errors.New("team already has two players")
	ErrExchangeInvalid = errors.New("invalid exchange")
)

// ErrorCode maps a core error to a stable wire code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrWrongPhase):
		return "wrong_phase"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrIllegalTrick):
		return "illegal_trick"
	case errors.Is(err, ErrIllegalBeat):
		return "illegal_beat"
	case errors.Is(err, ErrNotYourCards):
		return "not_your_cards"
	case errors.Is(err, ErrTeamFull):
		return "team_full"
	case errors.Is(err, ErrExchangeInvalid):
		return "exchange_invalid"
	default:
		return "internal"
	}
}
