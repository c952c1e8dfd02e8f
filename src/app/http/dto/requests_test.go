package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Bounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		page   PageRequest
		n      int
		lo, hi int
	}{
		{"no page", PageRequest{}, 5, 0, 5},
		{"first page", PageRequest{Page: 1, PerPage: 2}, 5, 0, 2},
		{"last partial page", PageRequest{Page: 3, PerPage: 2}, 5, 4, 5},
		{"past the end", PageRequest{Page: 4, PerPage: 2}, 5, 5, 5},
		{"default size", PageRequest{Page: 2}, 25, 10, 20},
		{"empty list", PageRequest{Page: 1}, 0, 0, 0},
		{"huge page", PageRequest{Page: 1000000000000000001, PerPage: 10}, 3, 3, 3},
		{"max page", PageRequest{Page: math.MaxInt, PerPage: 1000}, 3, 3, 3},
		{"negative page", PageRequest{Page: math.MinInt, PerPage: 10}, 3, 3, 3},
		{"negative size", PageRequest{Page: 1, PerPage: -1}, 15, 0, 10},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			lo, hi := tc.page.Bounds(tc.n)
			assert.Equal(t, tc.lo, lo)
			assert.Equal(t, tc.hi, hi)
		})
	}
}
