package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forcelab-md/forcelab/array"
)

func TestParseShape(t *testing.T) {
	cases := []struct {
		spec string
		want array.Shape
	}{
		{"", array.Shape{}},
		{"5", array.Shape{5}},
		{"2,3", array.Shape{2, 3}},
		{" 2 , 3 , 4 ", array.Shape{2, 3, 4}},
		{"3,0", array.Shape{3, 0}},
	}

	for _, tc := range cases {
		got, err := parseShape(tc.spec)
		require.NoError(t, err, "spec %q", tc.spec)
		assert.Equal(t, tc.want, got, "spec %q", tc.spec)
	}
}

func TestParseShapeInvalid(t *testing.T) {
	for _, spec := range []string{"a", "2,", "2,-3", "2;3"} {
		_, err := parseShape(spec)
		assert.Error(t, err, "spec %q", spec)
	}
}
