package service

import (
	"sort"

	"foodcart/foodcart-svc/internal/domain"
)

// EligibleRestaurants intersects the restaurants stocking each product of the
// order. It reports false when no restaurant can prepare every line.
func EligibleRestaurants(lines []domain.OrderLine, stocking map[int][]domain.Restaurant) ([]domain.Restaurant, bool) {
	if len(lines) == 0 {
		return nil, false
	}

	var eligible map[int]domain.Restaurant
	seen := make(map[int]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}

		next := make(map[int]domain.Restaurant)
		for _, rest := range stocking[line.ProductID] {
			if eligible != nil {
				if _, ok := eligible[rest.ID]; !ok {
					continue
				}
			}
			next[rest.ID] = rest
		}
		if len(next) == 0 {
			return nil, false
		}
		eligible = next
	}

	result := make([]domain.Restaurant, 0, len(eligible))
	for _, rest := range eligible {
		result = append(result, rest)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, true
}

func productIDs(lines []domain.OrderLine) []int {
	seen := make(map[int]struct{}, len(lines))
	ids := make([]int, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
