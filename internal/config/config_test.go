package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptCost(t *testing.T) {
	t.Run("Default When Unset", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "")

		cost, err := BcryptCost()
		require.NoError(t, err)
		assert.Equal(t, 12, cost)
	})

	t.Run("Reads Override", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "14")

		cost, err := BcryptCost()
		require.NoError(t, err)
		assert.Equal(t, 14, cost)
	})

	t.Run("Rejects Garbage", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "strong")

		_, err := BcryptCost()
		assert.Error(t, err)
	})
}
