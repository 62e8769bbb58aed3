package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"foodcart/foodcart-svc/internal/domain"
)

func TestEligibleRestaurants(t *testing.T) {
	alpha := domain.Restaurant{ID: 1, Name: "Alpha"}
	bravo := domain.Restaurant{ID: 2, Name: "Bravo"}
	charlie := domain.Restaurant{ID: 3, Name: "Charlie"}

	tests := []struct {
		name     string
		lines    []domain.OrderLine
		stocking map[int][]domain.Restaurant
		want     []domain.Restaurant
		wantOK   bool
	}{
		{
			name:     "only the restaurant stocking every product",
			lines:    []domain.OrderLine{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
			stocking: map[int][]domain.Restaurant{1: {alpha, bravo}, 2: {alpha}},
			want:     []domain.Restaurant{alpha},
			wantOK:   true,
		},
		{
			name:     "single line keeps every stocking restaurant sorted by id",
			lines:    []domain.OrderLine{{ProductID: 1, Quantity: 1}},
			stocking: map[int][]domain.Restaurant{1: {charlie, alpha, bravo}},
			want:     []domain.Restaurant{alpha, bravo, charlie},
			wantOK:   true,
		},
		{
			name:     "duplicate product lines",
			lines:    []domain.OrderLine{{ProductID: 1, Quantity: 1}, {ProductID: 1, Quantity: 3}},
			stocking: map[int][]domain.Restaurant{1: {bravo}},
			want:     []domain.Restaurant{bravo},
			wantOK:   true,
		},
		{
			name:     "product nobody stocks",
			lines:    []domain.OrderLine{{ProductID: 1, Quantity: 1}, {ProductID: 7, Quantity: 1}},
			stocking: map[int][]domain.Restaurant{1: {alpha}},
			wantOK:   false,
		},
		{
			name:     "disjoint restaurants",
			lines:    []domain.OrderLine{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}},
			stocking: map[int][]domain.Restaurant{1: {alpha}, 2: {bravo}},
			wantOK:   false,
		},
		{
			name:   "empty order",
			lines:  nil,
			wantOK: false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, ok := EligibleRestaurants(testCase.lines, testCase.stocking)

			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestProductIDs(t *testing.T) {
	lines := []domain.OrderLine{{ProductID: 3}, {ProductID: 1}, {ProductID: 3}}

	assert.Equal(t, []int{3, 1}, productIDs(lines))
}
