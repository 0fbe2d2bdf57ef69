package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOffset(t *testing.T) {
	opts := Options{MaterialWidth: 600, Margin: 5}

	assert.Equal(t, 0.0, opts.PageOffset(0))
	assert.Equal(t, 605.0, opts.PageOffset(1))
	assert.Equal(t, 1815.0, opts.PageOffset(3))
}

func TestSortMethod_Valid(t *testing.T) {
	for _, m := range SortMethods {
		assert.True(t, m.Valid(), "%q should be valid", m)
	}
	assert.False(t, SortMethod("biggest_first").Valid())
	assert.False(t, SortMethod("").Valid())
}

func TestOptions_Validate(t *testing.T) {
	opts := DefaultOptions()
	assert.NoError(t, opts.Validate())

	opts.PackSort = "bogus"
	assert.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.MaterialWidth = 0
	assert.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.LaserWidth = -1
	assert.Error(t, opts.Validate())
}
