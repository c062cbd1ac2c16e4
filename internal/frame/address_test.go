// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnLabel(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColumnLabel(tt.col), "col %d", tt.col)

		back, err := ColumnFromLabel(tt.want)
		require.NoError(t, err)
		assert.Equal(t, tt.col, back, "label %s", tt.want)
	}
}

func TestColumnFromLabelInvalid(t *testing.T) {
	_, err := ColumnFromLabel("")
	assert.Error(t, err)
	_, err = ColumnFromLabel("A1")
	assert.Error(t, err)
}

func TestCellAddressRoundTrip(t *testing.T) {
	assert.Equal(t, "A1", CellAddress(0, 0))
	assert.Equal(t, "B7", CellAddress(6, 1))
	assert.Equal(t, "AA100", CellAddress(99, 26))

	row, col, err := ParseAddress("b7")
	require.NoError(t, err)
	assert.Equal(t, 6, row)
	assert.Equal(t, 1, col)

	for _, bad := range []string{"", "7", "B", "B0", "B-1", "7B"} {
		_, _, err := ParseAddress(bad)
		assert.Error(t, err, "address %q", bad)
	}
}
