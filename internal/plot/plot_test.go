package plot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokercfr/sdk/solver"
)

var samples = []solver.ExploitabilitySample{
	{Iteration: 100, Exploitability: 0.45},
	{Iteration: 200, Exploitability: 0.30},
	{Iteration: 300, Exploitability: 0.21},
}

func TestRenderUsesRequestedSize(t *testing.T) {
	t.Parallel()

	dc, err := Render(samples, Options{Width: 640, Height: 320, Title: "leduc"})
	require.NoError(t, err)
	assert.Equal(t, 640, dc.Width())
	assert.Equal(t, 320, dc.Height())
}

func TestRenderDefaults(t *testing.T) {
	t.Parallel()

	dc, err := Render(samples[:1], Options{})
	require.NoError(t, err)
	assert.Equal(t, 800, dc.Width())
	assert.Equal(t, 500, dc.Height())
}

func TestRenderRejectsEmptySeries(t *testing.T) {
	t.Parallel()

	_, err := Render(nil, Options{})
	assert.ErrorIs(t, err, ErrNoSamples)
	assert.ErrorIs(t, SavePNG(filepath.Join(t.TempDir(), "x.png"), nil, Options{}), ErrNoSamples)
}

func TestSavePNG(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plots", "exploitability.png")
	require.NoError(t, SavePNG(path, samples, Options{Width: 400, Height: 300}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}
