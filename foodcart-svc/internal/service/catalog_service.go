package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"foodcart/foodcart-svc/internal/domain"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

type CatalogService struct {
	restaurants RestaurantRepository
	products    ProductRepository
	mediaURL    string
}

func NewCatalogService(restaurants RestaurantRepository, products ProductRepository, mediaURL string) *CatalogService {
	return &CatalogService{restaurants: restaurants, products: products, mediaURL: mediaURL}
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	rest.Name = strings.TrimSpace(rest.Name)
	if rest.Name == "" {
		return &ValidationError{Field: "name", Message: "This field may not be blank."}
	}
	return s.restaurants.CreateRestaurant(ctx, rest)
}

func (s *CatalogService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurants.ListRestaurants(ctx)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	rest, err := s.restaurants.GetRestaurant(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

// DeleteRestaurant removes the restaurant; its menu entries go with it.
func (s *CatalogService) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	return s.restaurants.DeleteRestaurant(ctx, id)
}

func (s *CatalogService) SetMenuEntry(ctx context.Context, entry *domain.MenuEntry) error {
	return s.restaurants.SetMenuEntry(ctx, entry)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return &ValidationError{Field: "name", Message: "This field may not be blank."}
	}
	if product.Price.IsNegative() {
		return &ValidationError{Field: "price", Message: "Ensure this value is greater than or equal to 0."}
	}
	product.Price = product.Price.Round(2)
	return s.products.CreateProduct(ctx, product)
}

// ListAvailableProducts returns the products currently on sale somewhere,
// with image paths turned into media URLs.
func (s *CatalogService) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListAvailableProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Image = s.imageURL(products[i].Image)
	}
	return products, nil
}

func (s *CatalogService) imageURL(image string) string {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") || strings.HasPrefix(image, "/") {
		return image
	}
	return strings.TrimSuffix(s.mediaURL, "/") + "/" + image
}
