package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("ForwardPath", func(t *testing.T) {
		assert.True(t, CanTransition(StatusPending, StatusConfirmed))
		assert.True(t, CanTransition(StatusConfirmed, StatusInProgress))
		assert.True(t, CanTransition(StatusInProgress, StatusCompleted))
	})

	t.Run("NoSkipping", func(t *testing.T) {
		assert.False(t, CanTransition(StatusPending, StatusInProgress))
		assert.False(t, CanTransition(StatusPending, StatusCompleted))
		assert.False(t, CanTransition(StatusConfirmed, StatusCompleted))
	})

	t.Run("NoBackwardMoves", func(t *testing.T) {
		assert.False(t, CanTransition(StatusConfirmed, StatusPending))
		assert.False(t, CanTransition(StatusInProgress, StatusConfirmed))
		assert.False(t, CanTransition(StatusCompleted, StatusInProgress))
		assert.False(t, CanTransition(StatusCompleted, StatusPending))
	})

	t.Run("CancelFromAnyNonTerminal", func(t *testing.T) {
		assert.True(t, CanTransition(StatusPending, StatusCancelled))
		assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))
		assert.True(t, CanTransition(StatusInProgress, StatusCancelled))
	})

	t.Run("TerminalStatesAreFinal", func(t *testing.T) {
		assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
		assert.False(t, CanTransition(StatusCancelled, StatusCancelled))
		assert.False(t, CanTransition(StatusCancelled, StatusPending))
		assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
	})

	t.Run("SelfTransitionRejected", func(t *testing.T) {
		assert.False(t, CanTransition(StatusPending, StatusPending))
		assert.False(t, CanTransition(StatusConfirmed, StatusConfirmed))
	})

	t.Run("UnknownStatusRejected", func(t *testing.T) {
		assert.False(t, CanTransition("accepted", StatusConfirmed))
		assert.False(t, CanTransition(StatusPending, "done"))
	})
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("paid"))
	assert.False(t, ValidStatus(""))
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(StatusCompleted))
	assert.True(t, Terminal(StatusCancelled))
	assert.False(t, Terminal(StatusPending))
	assert.False(t, Terminal(StatusInProgress))
}
