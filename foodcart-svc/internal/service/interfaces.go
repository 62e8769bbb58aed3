package service

import (
	"context"

	"foodcart/foodcart-svc/internal/domain"
)

type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id int) (int64, error)
	SetMenuEntry(ctx context.Context, entry *domain.MenuEntry) error
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListAvailableProducts(ctx context.Context) ([]domain.Product, error)
	GetProducts(ctx context.Context, ids []int) (map[int]domain.Product, error)
}

type MenuRepository interface {
	ListStockingRestaurants(ctx context.Context, productIDs []int) (map[int][]domain.Restaurant, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) error
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type PlaceResolver interface {
	ResolveMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
}

type CatalogServiceInterface interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id int) (int64, error)
	SetMenuEntry(ctx context.Context, entry *domain.MenuEntry) error
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListAvailableProducts(ctx context.Context) ([]domain.Product, error)
}

type RankerInterface interface {
	Rank(ctx context.Context, order *domain.Order) ([]domain.RestaurantDistance, error)
}

type OrderServiceInterface interface {
	Register(ctx context.Context, input RegisterOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	Update(ctx context.Context, id int, input UpdateOrderInput) (*domain.Order, error)
	Restaurants(ctx context.Context, id int) ([]domain.RestaurantDistance, error)
	QRCode(ctx context.Context, id int) ([]byte, error)
}

var (
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
	_ RankerInterface         = (*Ranker)(nil)
)
