package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"foodcart/foodcart-svc/internal/domain"
	"foodcart/foodcart-svc/internal/service"
)

type Handler struct {
	Catalog service.CatalogServiceInterface
	Orders  service.OrderServiceInterface
}

func NewHandler(catalog service.CatalogServiceInterface, orders service.OrderServiceInterface) *Handler {
	return &Handler{
		Catalog: catalog,
		Orders:  orders,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/products", h.getProducts).Methods("GET")
	r.HandleFunc("/api/products", h.createProduct).Methods("POST")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id:[0-9]+}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id:[0-9]+}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id:[0-9]+}/menu/{productId:[0-9]+}", h.setMenuEntry).Methods("PUT")

	r.HandleFunc("/api/order", h.registerOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id:[0-9]+}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id:[0-9]+}", h.updateOrder).Methods("PATCH")
	r.HandleFunc("/api/orders/{id:[0-9]+}/restaurants", h.getOrderRestaurants).Methods("GET")
	r.HandleFunc("/api/orders/{id:[0-9]+}/qrcode", h.getOrderQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "foodcart-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.ListAvailableProducts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeBody(r, &product); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Catalog.CreateProduct(r.Context(), &product); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := decodeBody(r, &rest); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Catalog.CreateRestaurant(r.Context(), &rest); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	rest, err := h.Catalog.GetRestaurant(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	rows, err := h.Catalog.DeleteRestaurant(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rows == 0 {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setMenuEntry(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["id"])
	productID, _ := strconv.Atoi(mux.Vars(r)["productId"])

	entry := domain.MenuEntry{Availability: true}
	if err := decodeBody(r, &entry); err != nil {
		writeError(w, r, err)
		return
	}
	entry.RestaurantID = restaurantID
	entry.ProductID = productID

	if err := h.Catalog.SetMenuEntry(r.Context(), &entry); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) registerOrder(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterOrderInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.Orders.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, r, &service.ValidationError{Field: "status", Message: "Unknown order status."})
		return
	}

	orders, err := h.Orders.List(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Orders.Get(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var input service.UpdateOrderInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.Orders.Update(r.Context(), orderID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderRestaurants(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	ranking, err := h.Orders.Restaurants(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	qrCode, err := h.Orders.QRCode(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

// decodeBody turns malformed or mistyped JSON into a ValidationError naming
// the top-level field at fault.
func decodeBody(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &service.ValidationError{
			Field:   strings.SplitN(typeErr.Field, ".", 2)[0],
			Message: fmt.Sprintf("Incorrect type. Expected %s, received %s.", jsonKind(typeErr.Type), typeErr.Value),
		}
	}
	return &service.ValidationError{Field: nonFieldErrors, Message: "Invalid JSON: " + err.Error()}
}

const nonFieldErrors = "non_field_errors"

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Float32, reflect.Float64:
		return "number"
	default:
		return "integer"
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, validationErr)
	case errors.Is(err, service.ErrOrderNotFound):
		http.Error(w, "Order not found", http.StatusNotFound)
	case errors.Is(err, service.ErrRestaurantNotFound):
		http.Error(w, "Restaurant not found", http.StatusNotFound)
	default:
		log.WithError(err).WithField("request_id", RequestID(r.Context())).Error("request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
