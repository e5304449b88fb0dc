package colouring

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteSeed(t *testing.T) {
	p, err := NewPalette([]string{"#fc5185", "#36486b"}, []string{"#1f77b4", "#36486b", "#ff7f0e", "#1f77b4"})
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 2, p.ReserveLen(), "duplicates of initial or earlier reserve colours are dropped")
	assert.Equal(t, 4, p.Total())
	assert.Equal(t, []uint32{0, 1}, p.Initial())
	assert.Equal(t, []string{"#fc5185", "#36486b"}, p.Names())
}

func TestPaletteIntroducesFromTheEnd(t *testing.T) {
	p := testPalette(t, "r0", "r1", "r2")

	c, err := p.Introduce()
	require.NoError(t, err)
	assert.Equal(t, "r2", p.Name(c))

	c, err = p.Introduce()
	require.NoError(t, err)
	assert.Equal(t, "r1", p.Name(c))

	assert.Equal(t, []string{"A", "B", "r2", "r1"}, p.Names())
	assert.Equal(t, 1, p.ReserveLen())
	assert.Equal(t, p.Total(), p.Len()+p.ReserveLen())
}

func TestPaletteExhaustion(t *testing.T) {
	p := testPalette(t, "r0")
	_, err := p.Introduce()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = p.Introduce()
		assert.True(t, errors.Is(err, ErrReserveExhausted))
	}
	assert.Equal(t, 3, p.Len(), "a failed introduction never changes the used palette")
	assert.Equal(t, 3, p.Exhausted())
}

func TestPaletteInvalid(t *testing.T) {
	_, err := NewPalette(nil, []string{"r0"})
	assert.True(t, errors.Is(err, ErrInvalidPalette))
	_, err = NewPalette([]string{"A", "A"}, nil)
	assert.True(t, errors.Is(err, ErrInvalidPalette))
}

func TestPaletteUsedIsACopy(t *testing.T) {
	p := testPalette(t, "r0")
	used := p.Used()
	used[0] = 99
	assert.Equal(t, []uint32{A, B}, p.Used())
}
