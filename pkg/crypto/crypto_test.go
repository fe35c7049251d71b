package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, CheckPassword("Sup3rSecret", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestHashPasswordClampsCost(t *testing.T) {
	// Out-of-range costs fall back to a usable value instead of failing.
	hash, err := HashPassword("Sup3rSecret", 99)
	require.NoError(t, err)
	assert.True(t, CheckPassword("Sup3rSecret", hash))
}
