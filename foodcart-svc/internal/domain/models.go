package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Address      string `json:"address" db:"address"`
	ContactPhone string `json:"contact_phone" db:"contact_phone"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	SpecialStatus bool            `json:"special_status"`
	Description   string          `json:"description"`
	Category      *Category       `json:"category"`
	Image         string          `json:"image"`
}

// MenuEntry says whether a restaurant currently sells a product.
type MenuEntry struct {
	RestaurantID int  `json:"restaurant_id" db:"restaurant_id"`
	ProductID    int  `json:"product_id" db:"product_id"`
	Availability bool `json:"availability" db:"availability"`
}

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusCompleted OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	return s == OrderStatusNew || s == OrderStatusCompleted
}

type PaymentForm string

const (
	PaymentCash    PaymentForm = "cash"
	PaymentCard    PaymentForm = "card"
	PaymentPrepaid PaymentForm = "prepaid"
)

type Order struct {
	ID           int                  `json:"id" db:"id"`
	Firstname    string               `json:"firstname" db:"firstname"`
	Lastname     string               `json:"lastname" db:"lastname"`
	Phonenumber  string               `json:"phonenumber" db:"phonenumber"`
	Address      string               `json:"address" db:"address"`
	Status       OrderStatus          `json:"status" db:"status"`
	PaymentForm  *PaymentForm         `json:"payment_form" db:"payment_form"`
	Comment      string               `json:"comment" db:"comment"`
	RestaurantID *int                 `json:"restaurant_id" db:"restaurant_id"`
	CreatedAt    time.Time            `json:"created_at" db:"created_at"`
	CalledAt     *time.Time           `json:"called_at" db:"called_at"`
	DeliveredAt  *time.Time           `json:"delivered_at" db:"delivered_at"`
	TotalPrice   decimal.Decimal      `json:"total_price" db:"-"`
	Lines        []OrderLine          `json:"products" db:"-"`
	Restaurants  []RestaurantDistance `json:"restaurants" db:"-"`
}

// OrderLine carries the price frozen at registration time.
type OrderLine struct {
	OrderID     int             `json:"-" db:"order_id"`
	ProductID   int             `json:"product" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Price       decimal.Decimal `json:"price" db:"price"`
}

func (o *Order) CalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Price)
	}
	o.TotalPrice = total
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a cached geocoding result. Lat and Lon are nil while the address is unresolved.
type Place struct {
	Address    string    `db:"address"`
	Lat        *float64  `db:"lat"`
	Lon        *float64  `db:"lon"`
	ResolvedAt time.Time `db:"resolved_at"`
}

func (p Place) Coordinates() (Coordinates, bool) {
	if p.Lat == nil || p.Lon == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *p.Lat, Lon: *p.Lon}, true
}

// RestaurantDistance is one candidate of an order ranking. DistanceKm is nil
// when either the restaurant or the delivery address could not be geocoded.
type RestaurantDistance struct {
	Restaurant Restaurant `json:"restaurant"`
	DistanceKm *float64   `json:"distance_km"`
}

func (d RestaurantDistance) Unresolved() bool {
	return d.DistanceKm == nil
}

type OrderEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	OrderID   int       `json:"order_id"`
	Address   string    `json:"address"`
	Timestamp time.Time `json:"timestamp"`
}

const OrderRegisteredEvent = "order_registered"
