package service

import (
	"context"
	"fmt"
	"sort"

	"foodcart/foodcart-svc/internal/domain"
	"foodcart/foodcart-svc/internal/geo"
)

type Ranker struct {
	menu   MenuRepository
	places PlaceResolver
}

func NewRanker(menu MenuRepository, places PlaceResolver) *Ranker {
	return &Ranker{menu: menu, places: places}
}

// Rank lists the restaurants able to fulfil the whole order, nearest first.
// A nil result means there is no candidate at all.
func (r *Ranker) Rank(ctx context.Context, order *domain.Order) ([]domain.RestaurantDistance, error) {
	stocking, err := r.menu.ListStockingRestaurants(ctx, productIDs(order.Lines))
	if err != nil {
		return nil, fmt.Errorf("rank order %d: %w", order.ID, err)
	}

	eligible, ok := EligibleRestaurants(order.Lines, stocking)
	if !ok {
		return nil, nil
	}

	addresses := make([]string, 0, len(eligible)+1)
	addresses = append(addresses, order.Address)
	for _, rest := range eligible {
		addresses = append(addresses, rest.Address)
	}

	coords, err := r.places.ResolveMany(ctx, addresses)
	if err != nil {
		return nil, fmt.Errorf("rank order %d: resolve addresses: %w", order.ID, err)
	}

	delivery, deliveryOK := coords[order.Address]
	ranked := make([]domain.RestaurantDistance, 0, len(eligible))
	for _, rest := range eligible {
		candidate := domain.RestaurantDistance{Restaurant: rest}
		if point, ok := coords[rest.Address]; ok && deliveryOK {
			km := geo.DistanceKm(point, delivery)
			candidate.DistanceKm = &km
		}
		ranked = append(ranked, candidate)
	}

	SortByDistance(ranked)
	return ranked, nil
}

// SortByDistance orders resolved candidates by ascending distance and puts
// unresolved ones last. Ties are broken by restaurant name, then id.
func SortByDistance(ranked []domain.RestaurantDistance) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Unresolved() != b.Unresolved() {
			return !a.Unresolved()
		}
		if !a.Unresolved() && *a.DistanceKm != *b.DistanceKm {
			return *a.DistanceKm < *b.DistanceKm
		}
		if a.Restaurant.Name != b.Restaurant.Name {
			return a.Restaurant.Name < b.Restaurant.Name
		}
		return a.Restaurant.ID < b.Restaurant.ID
	})
}
