package session

import "fmt"

// State is the session manager's current state.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// transitions lists the allowed target states per source state. Nothing
// returns to Loading.
var transitions = map[State][]State{
	StateLoading:       {StateAuthenticated, StateAnonymous},
	StateAuthenticated: {StateAuthenticated, StateAnonymous},
	StateAnonymous:     {StateAuthenticated, StateAnonymous},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
