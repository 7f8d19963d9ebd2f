package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"kuhn", "Leduc", " kuhn "} {
		m, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotNil(t, m)
	}

	_, err := Lookup("holdem")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kuhn, leduc")
}

func TestNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"kuhn", "leduc"}, Names())
}
