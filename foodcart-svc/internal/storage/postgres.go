package storage

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"foodcart/foodcart-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	err := r.DB.QueryRowxContext(ctx,
		"INSERT INTO restaurants (name, address, contact_phone) VALUES ($1, $2, $3) RETURNING id",
		rest.Name, rest.Address, rest.ContactPhone,
	).Scan(&rest.ID)
	return errors.Wrap(err, "create restaurant")
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	restaurants := []domain.Restaurant{}
	err := r.DB.SelectContext(ctx, &restaurants,
		"SELECT id, name, address, contact_phone FROM restaurants ORDER BY name, id")
	if err != nil {
		return nil, errors.Wrap(err, "list restaurants")
	}
	return restaurants, nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.GetContext(ctx, &rest,
		"SELECT id, name, address, contact_phone FROM restaurants WHERE id = $1", id)
	if err != nil {
		return nil, errors.Wrap(err, "get restaurant")
	}
	return &rest, nil
}

func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM restaurants WHERE id = $1", id)
	if err != nil {
		return 0, errors.Wrap(err, "delete restaurant")
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	var categoryID *int
	if product.Category != nil {
		categoryID = &product.Category.ID
	}
	err := r.DB.QueryRowxContext(ctx, `
		INSERT INTO products (name, category_id, price, image, special_status, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		product.Name, categoryID, product.Price, product.Image, product.SpecialStatus, product.Description,
	).Scan(&product.ID)
	return errors.Wrap(err, "create product")
}

func (r *PostgresRepository) SetMenuEntry(ctx context.Context, entry *domain.MenuEntry) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO restaurant_menu_items (restaurant_id, product_id, availability)
		VALUES ($1, $2, $3)
		ON CONFLICT (restaurant_id, product_id) DO UPDATE SET availability = EXCLUDED.availability`,
		entry.RestaurantID, entry.ProductID, entry.Availability)
	return errors.Wrap(err, "set menu entry")
}

type productRow struct {
	ID            int             `db:"id"`
	Name          string          `db:"name"`
	Price         decimal.Decimal `db:"price"`
	SpecialStatus bool            `db:"special_status"`
	Description   string          `db:"description"`
	Image         string          `db:"image"`
	CategoryID    sql.NullInt64   `db:"category_id"`
	CategoryName  sql.NullString  `db:"category_name"`
}

func (row productRow) toDomain() domain.Product {
	product := domain.Product{
		ID:            row.ID,
		Name:          row.Name,
		Price:         row.Price,
		SpecialStatus: row.SpecialStatus,
		Description:   row.Description,
		Image:         row.Image,
	}
	if row.CategoryID.Valid {
		product.Category = &domain.Category{ID: int(row.CategoryID.Int64), Name: row.CategoryName.String}
	}
	return product
}

const selectProducts = `
	SELECT p.id, p.name, p.price, p.special_status, p.description, p.image,
	       c.id AS category_id, c.name AS category_name
	FROM products p
	LEFT JOIN product_categories c ON c.id = p.category_id`

// ListAvailableProducts returns products that at least one restaurant has on sale.
func (r *PostgresRepository) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	err := r.DB.SelectContext(ctx, &rows, selectProducts+`
	WHERE p.id IN (SELECT product_id FROM restaurant_menu_items WHERE availability)
	ORDER BY p.id`)
	if err != nil {
		return nil, errors.Wrap(err, "list available products")
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}
	return products, nil
}

func (r *PostgresRepository) GetProducts(ctx context.Context, ids []int) (map[int]domain.Product, error) {
	var rows []productRow
	err := r.DB.SelectContext(ctx, &rows, selectProducts+`
	WHERE p.id = ANY($1)`, pq.Array(toInt64s(ids)))
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}

	products := make(map[int]domain.Product, len(rows))
	for _, row := range rows {
		products[row.ID] = row.toDomain()
	}
	return products, nil
}

type stockingRow struct {
	ProductID int `db:"product_id"`
	domain.Restaurant
}

// ListStockingRestaurants maps each product to the restaurants that have it on sale.
// Products nobody sells are absent from the result.
func (r *PostgresRepository) ListStockingRestaurants(ctx context.Context, productIDs []int) (map[int][]domain.Restaurant, error) {
	var rows []stockingRow
	err := r.DB.SelectContext(ctx, &rows, `
		SELECT mi.product_id, r.id, r.name, r.address, r.contact_phone
		FROM restaurant_menu_items mi
		JOIN restaurants r ON r.id = mi.restaurant_id
		WHERE mi.availability AND mi.product_id = ANY($1)
		ORDER BY mi.product_id, r.id`, pq.Array(toInt64s(productIDs)))
	if err != nil {
		return nil, errors.Wrap(err, "list stocking restaurants")
	}

	stocking := make(map[int][]domain.Restaurant)
	for _, row := range rows {
		stocking[row.ProductID] = append(stocking[row.ProductID], row.Restaurant)
	}
	return stocking, nil
}

// CreateOrder stores the order and all of its lines in one transaction.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin order tx")
	}
	defer tx.Rollback()

	if err := tx.QueryRowxContext(ctx, `
		INSERT INTO orders (firstname, lastname, phonenumber, address, status, payment_form, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		order.Firstname, order.Lastname, order.Phonenumber, order.Address,
		order.Status, order.PaymentForm, order.Comment,
	).Scan(&order.ID, &order.CreatedAt); err != nil {
		return errors.Wrap(err, "insert order")
	}

	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
		line := order.Lines[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)`,
			line.OrderID, line.ProductID, line.Quantity, line.Price); err != nil {
			return errors.Wrapf(err, "insert order line for product %d", line.ProductID)
		}
	}

	return errors.Wrap(tx.Commit(), "commit order")
}

const selectOrders = `
	SELECT id, firstname, lastname, phonenumber, address, status, payment_form, comment,
	       restaurant_id, created_at, called_at, delivered_at
	FROM orders`

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := r.DB.GetContext(ctx, &order, selectOrders+" WHERE id = $1", id); err != nil {
		return nil, errors.Wrap(err, "get order")
	}

	lines, err := r.orderLines(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	order.Lines = lines[id]
	order.CalculateTotal()
	return &order, nil
}

// UpdateOrder saves the operator-controlled fields of an order.
func (r *PostgresRepository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, restaurant_id = $2, called_at = $3, delivered_at = $4
		WHERE id = $5`,
		order.Status, order.RestaurantID, order.CalledAt, order.DeliveredAt, order.ID)
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	if rows == 0 {
		return errors.Wrapf(sql.ErrNoRows, "update order %d", order.ID)
	}
	return nil
}

// ListOrders returns orders newest first; an empty status lists every order.
func (r *PostgresRepository) ListOrders(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := r.DB.SelectContext(ctx, &orders, selectOrders+`
	WHERE $1 = '' OR status = $1
	ORDER BY created_at DESC, id DESC`, string(status))
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	lines, err := r.orderLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
		orders[i].CalculateTotal()
	}
	return orders, nil
}

func (r *PostgresRepository) orderLines(ctx context.Context, orderIDs []int) (map[int][]domain.OrderLine, error) {
	var rows []domain.OrderLine
	err := r.DB.SelectContext(ctx, &rows, `
		SELECT ol.order_id, ol.product_id, p.name AS product_name, ol.quantity, ol.price
		FROM order_lines ol
		JOIN products p ON p.id = ol.product_id
		WHERE ol.order_id = ANY($1)
		ORDER BY ol.id`, pq.Array(toInt64s(orderIDs)))
	if err != nil {
		return nil, errors.Wrap(err, "list order lines")
	}

	lines := make(map[int][]domain.OrderLine, len(orderIDs))
	for _, line := range rows {
		lines[line.OrderID] = append(lines[line.OrderID], line)
	}
	return lines, nil
}

// GetPlaces fetches every cached place for addresses in a single round trip.
func (r *PostgresRepository) GetPlaces(ctx context.Context, addresses []string) (map[string]domain.Place, error) {
	var rows []domain.Place
	err := r.DB.SelectContext(ctx, &rows,
		"SELECT address, lat, lon, resolved_at FROM places WHERE address = ANY($1)",
		pq.Array(addresses))
	if err != nil {
		return nil, errors.Wrap(err, "get places")
	}

	places := make(map[string]domain.Place, len(rows))
	for _, place := range rows {
		places[place.Address] = place
	}
	return places, nil
}

// SavePlace inserts a resolved place. An existing row is only overwritten while
// its coordinates are still unknown.
func (r *PostgresRepository) SavePlace(ctx context.Context, place *domain.Place) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO places (address, lat, lon, resolved_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (address) DO UPDATE
		SET lat = EXCLUDED.lat, lon = EXCLUDED.lon, resolved_at = EXCLUDED.resolved_at
		WHERE places.lat IS NULL OR places.lon IS NULL`,
		place.Address, place.Lat, place.Lon, place.ResolvedAt)
	return errors.Wrap(err, "save place")
}

func toInt64s(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
