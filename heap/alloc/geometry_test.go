package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLevelForRoundsUp verifies that requests map to the smallest level
// whose block size covers them.
func TestLevelForRoundsUp(t *testing.T) {
	table, err := newLevelTable(GeometryGeneral)
	require.NoError(t, err)

	cases := []struct {
		n     int
		level int
		size  int
	}{
		{1, 0, 32},
		{10, 0, 32},
		{31, 0, 32},
		{32, 0, 32},
		{33, 1, 64},
		{40, 1, 64},
		{64, 1, 64},
		{65, 2, 128},
		{100, 2, 128},
		{129, 3, 256},
		{1024, 5, 1024},
		{2048, 6, 2048},
		{2049, 7, 4096},
		{4095, 7, 4096},
		{4096, 7, 4096},
	}
	for _, tc := range cases {
		lvl, levelErr := table.levelFor(tc.n)
		require.NoError(t, levelErr, "n=%d", tc.n)
		assert.Equal(t, tc.level, lvl, "n=%d: wrong level", tc.n)
		assert.Equal(t, tc.size, table.size(lvl), "n=%d: wrong size", tc.n)
	}
}

// TestLevelForRejectsBadSizes verifies the two boundary policies: zero and
// negative requests are invalid, requests above the top size are rejected
// rather than clamped.
func TestLevelForRejectsBadSizes(t *testing.T) {
	table, err := newLevelTable(GeometryGeneral)
	require.NoError(t, err)

	for _, n := range []int{0, -1, -4096} {
		_, levelErr := table.levelFor(n)
		assert.ErrorIs(t, levelErr, ErrInvalidSize, "n=%d", n)
	}
	for _, n := range []int{4097, 8192, 1 << 30} {
		_, levelErr := table.levelFor(n)
		assert.ErrorIs(t, levelErr, ErrSizeTooLarge, "n=%d", n)
	}
}

// TestLevelOfInvertsSize verifies the release path's exact size-to-level
// mapping.
func TestLevelOfInvertsSize(t *testing.T) {
	table, err := newLevelTable(GeometryGeneral)
	require.NoError(t, err)

	for lvl := range table.numLevels() {
		assert.Equal(t, lvl, table.levelOf(table.size(lvl)))
	}
}

func TestGeometryValidation(t *testing.T) {
	cases := []struct {
		name string
		geo  Geometry
	}{
		{"zero min size", Geometry{Name: "bad", MinBlockSize: 0, LevelCount: 4}},
		{"min size below link word", Geometry{Name: "bad", MinBlockSize: 4, LevelCount: 4}},
		{"min size not a power of two", Geometry{Name: "bad", MinBlockSize: 48, LevelCount: 4}},
		{"negative min size", Geometry{Name: "bad", MinBlockSize: -32, LevelCount: 4}},
		{"zero levels", Geometry{Name: "bad", MinBlockSize: 32, LevelCount: 0}},
		{"too many levels", Geometry{Name: "bad", MinBlockSize: 32, LevelCount: maxLevelCount + 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newLevelTable(tc.geo)
			assert.ErrorIs(t, err, ErrBadGeometry)
		})
	}
}

func TestGeometryPresets(t *testing.T) {
	for _, geo := range []Geometry{GeometryGeneral, GeometryCompact, GeometryPages} {
		table, err := newLevelTable(geo)
		require.NoError(t, err, "preset %s", geo.Name)
		assert.Equal(t, geo.MaxBlockSize(), table.maxSize, "preset %s", geo.Name)
		assert.Equal(t, geo.LevelCount, table.numLevels(), "preset %s", geo.Name)
	}

	assert.Equal(t, 4096, GeometryGeneral.MaxBlockSize())
	assert.Equal(t, 2048, GeometryCompact.MaxBlockSize())
	assert.Equal(t, 1<<20, GeometryPages.MaxBlockSize())
	assert.Equal(t, GeometryGeneral, DefaultGeometry)
}

// TestSingleLevelGeometry verifies the degenerate one-level ladder: every
// request either fits the one size or is too large.
func TestSingleLevelGeometry(t *testing.T) {
	table, err := newLevelTable(Geometry{Name: "flat", MinBlockSize: 64, LevelCount: 1})
	require.NoError(t, err)

	lvl, err := table.levelFor(64)
	require.NoError(t, err)
	assert.Equal(t, 0, lvl)

	lvl, err = table.levelFor(1)
	require.NoError(t, err)
	assert.Equal(t, 0, lvl)

	_, err = table.levelFor(65)
	assert.ErrorIs(t, err, ErrSizeTooLarge)
}
