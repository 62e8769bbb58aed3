package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"foodcart/foodcart-svc/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderService struct {
	repo      OrderRepository
	validator *OrderValidator
	ranker    RankerInterface
	publisher OrderPublisher
	qrEncoder QRGenerator
}

func NewOrderService(repo OrderRepository, validator *OrderValidator, ranker RankerInterface, publisher OrderPublisher, qr QRGenerator) *OrderService {
	return &OrderService{
		repo:      repo,
		validator: validator,
		ranker:    ranker,
		publisher: publisher,
		qrEncoder: qr,
	}
}

// Register validates the input and stores the order with its lines atomically.
// Registering the same payload twice creates two orders.
func (s *OrderService) Register(ctx context.Context, input RegisterOrderInput) (*domain.Order, error) {
	order, err := s.validator.Validate(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("register order: %w", err)
	}

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"lines":    len(order.Lines),
		"total":    order.TotalPrice.StringFixed(2),
	}).Info("order registered")

	if s.publisher != nil {
		event := domain.OrderEvent{
			ID:        uuid.NewString(),
			Type:      domain.OrderRegisteredEvent,
			OrderID:   order.ID,
			Address:   order.Address,
			Timestamp: time.Now().UTC(),
		}
		if err := s.publisher.PublishOrder(ctx, event); err != nil {
			log.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order event")
		}
	}

	return order, nil
}

// Get returns the order together with a freshly computed restaurant ranking.
func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	ranking, err := s.ranker.Rank(ctx, order)
	if err != nil {
		return nil, err
	}
	order.Restaurants = ranking
	return order, nil
}

func (s *OrderService) List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx, status)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		ranking, err := s.ranker.Rank(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		orders[i].Restaurants = ranking
	}
	return orders, nil
}

// UpdateOrderInput carries the fields an operator may change. Nil fields are
// left as they are.
type UpdateOrderInput struct {
	Status       *domain.OrderStatus `json:"status"`
	RestaurantID *int                `json:"restaurant_id"`
	CalledAt     *time.Time          `json:"called_at"`
	DeliveredAt  *time.Time          `json:"delivered_at"`
}

// Update applies an operator change. A restaurant can only be assigned when it
// is one of the order's ranked candidates.
func (s *OrderService) Update(ctx context.Context, id int, input UpdateOrderInput) (*domain.Order, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("%q is not a valid choice.", *input.Status)}
		}
		order.Status = *input.Status
	}
	if input.CalledAt != nil {
		order.CalledAt = input.CalledAt
	}
	if input.DeliveredAt != nil {
		order.DeliveredAt = input.DeliveredAt
	}
	if order.CalledAt != nil && order.DeliveredAt != nil && order.DeliveredAt.Before(*order.CalledAt) {
		return nil, &ValidationError{Field: "delivered_at", Message: "Delivery time cannot be earlier than call time."}
	}

	ranking, err := s.ranker.Rank(ctx, order)
	if err != nil {
		return nil, err
	}
	if input.RestaurantID != nil {
		if !isCandidate(ranking, *input.RestaurantID) {
			return nil, &ValidationError{
				Field:   "restaurant_id",
				Message: fmt.Sprintf("Restaurant %d cannot prepare every product of this order.", *input.RestaurantID),
			}
		}
		order.RestaurantID = input.RestaurantID
	}

	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order %d: %w", id, err)
	}

	log.WithFields(log.Fields{
		"order_id":      order.ID,
		"status":        order.Status,
		"restaurant_id": order.RestaurantID,
	}).Info("order updated")

	order.Restaurants = ranking
	return order, nil
}

func isCandidate(ranking []domain.RestaurantDistance, restaurantID int) bool {
	for _, candidate := range ranking {
		if candidate.Restaurant.ID == restaurantID {
			return true
		}
	}
	return false
}

func (s *OrderService) Restaurants(ctx context.Context, id int) ([]domain.RestaurantDistance, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ranker.Rank(ctx, order)
}

func (s *OrderService) QRCode(ctx context.Context, id int) ([]byte, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.qrEncoder.Generate(id)
}

func (s *OrderService) find(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
