package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostock/domain/core"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{StateNoFileChecked, StateFileAbsent, true},
		{StateNoFileChecked, StateFileExists, true},
		{StateFileAbsent, StateFileEmptyExists, true},
		{StateFileExists, StateLoaded, true},
		{StateLoaded, StateAppended, true},
		{StateAppended, StateSavedExported, true},
		{StateSavedExported, StateAppended, true},
		{StateFileEmptyExists, StateNoFileChecked, true},
		{StateSavedExported, StateNoFileChecked, true},

		{StateNoFileChecked, StateLoaded, false},
		{StateFileAbsent, StateLoaded, false},
		{StateFileEmptyExists, StateAppended, false},
		{StateLoaded, StateSavedExported, false},
		{StateAppended, StateLoaded, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			got, err := Transition(tt.from, tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, got)
				return
			}
			assert.ErrorIs(t, err, core.ErrInvalidTransition)
			assert.Equal(t, tt.from, got)
		})
	}
}

func TestCanSubmit(t *testing.T) {
	assert.True(t, StateLoaded.CanSubmit())
	assert.True(t, StateSavedExported.CanSubmit())
	assert.False(t, StateFileAbsent.CanSubmit())
	assert.False(t, StateFileEmptyExists.CanSubmit())
}
