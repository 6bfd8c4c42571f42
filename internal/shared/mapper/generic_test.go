package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))
}

func TestMapSliceWithError(t *testing.T) {
	out, err := MapSliceWithError([]string{"1", "2"}, strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, out)

	_, err = MapSliceWithError([]string{"1", "x"}, strconv.Atoi)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")

	sentinel := errors.New("nope")
	_, err = MapSliceWithError([]int{1}, func(int) (int, error) { return 0, sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestIndexBy(t *testing.T) {
	type contact struct {
		ID    uint
		Email string
	}
	idx := IndexBy([]contact{{1, "a@x"}, {2, "b@x"}}, func(c contact) uint { return c.ID })
	assert.Equal(t, "b@x", idx[2].Email)
	assert.Len(t, idx, 2)
}
