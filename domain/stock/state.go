package stock

import (
	"fmt"

	"gostock/domain/core"
)

// State is the position of a user session in the load/append/save/export flow
type State string

const (
	StateNoFileChecked   State = "no_file_checked"
	StateFileAbsent      State = "file_absent"
	StateFileEmptyExists State = "file_empty_exists"
	StateFileExists      State = "file_exists"
	StateLoaded          State = "loaded"
	StateAppended        State = "appended"
	StateSavedExported   State = "saved_exported"
)

var transitions = map[State][]State{
	StateNoFileChecked: {StateFileAbsent, StateFileExists},
	StateFileAbsent:    {StateFileEmptyExists},
	StateFileExists:    {StateLoaded},
	StateLoaded:        {StateAppended},
	StateAppended:      {StateSavedExported},
	StateSavedExported: {StateAppended},
}

// CanTransition reports whether from -> to is allowed.
// Every state may go back to StateNoFileChecked on a new page interaction.
func CanTransition(from, to State) bool {
	if to == StateNoFileChecked {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to and returns the new state
func Transition(from, to State) (State, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", core.ErrInvalidTransition, from, to)
	}
	return to, nil
}

// CanSubmit reports whether a new item may be appended from this state
func (s State) CanSubmit() bool {
	return s == StateLoaded || s == StateSavedExported
}

func (s State) String() string {
	return string(s)
}
