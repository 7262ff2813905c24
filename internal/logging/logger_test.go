package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("DefaultLevel", func(t *testing.T) {
		logger := New("")
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("ParsesLevel", func(t *testing.T) {
		logger := New("debug")
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	})

	t.Run("UnknownLevelFallsBack", func(t *testing.T) {
		logger := New("chatty")
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}
