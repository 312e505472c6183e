package navigation

import "fmt"

// State is a navigation state of the application.
type State int

const (
	Unauthenticated State = iota
	AuthenticatedRoot
	ProjectList
	ProjectDashboard
	FileExplorer
	Viewer
	Settings
	Sandbox
	NotFound

	numStates
)

var stateNames = [...]string{
	Unauthenticated:   "unauthenticated",
	AuthenticatedRoot: "authenticated-root",
	ProjectList:       "project-list",
	ProjectDashboard:  "project-dashboard",
	FileExplorer:      "file-explorer",
	Viewer:            "viewer",
	Settings:          "settings",
	Sandbox:           "sandbox",
	NotFound:          "not-found",
}

var _ [len(stateNames) - int(numStates)]struct{}
var _ [int(numStates) - len(stateNames)]struct{}

// String returns the state's name, e.g. "file-explorer".
func (s State) String() string {
	if s < 0 || s >= numStates {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	st, ok := ParseState(string(text))
	if !ok {
		return fmt.Errorf("unknown navigation state %q", text)
	}
	*s = st
	return nil
}

// ParseState returns the state with the given name.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return 0, false
}

// States returns every state in declaration order.
func States() []State {
	out := make([]State, numStates)
	for i := range out {
		out[i] = State(i)
	}
	return out
}
