package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroups(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"2:3,4:1", []int{2, 2, 2, 4}},
		{" 1 : 2 , 3", []int{1, 1, 3}},
		{"2:0", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseGroups(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"x:1", "2:-1", "2:y"} {
		_, err := parseGroups(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseWeights(t *testing.T) {
	got, err := parseWeights("1:0.3, 2:0.5,4:0.2,1:0.1")
	require.NoError(t, err)
	assert.InDelta(t, 0.4, got[1], 1e-12)
	assert.Equal(t, 0.5, got[2])
	assert.Equal(t, 0.2, got[4])
	assert.Len(t, got, 3)

	for _, bad := range []string{"1", "a:1", "1:b"} {
		_, err := parseWeights(bad)
		assert.Error(t, err, bad)
	}
}
