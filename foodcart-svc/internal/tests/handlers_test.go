package tests

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "foodcart/foodcart-svc/internal/api/http"
	"foodcart/foodcart-svc/internal/domain"
	"foodcart/foodcart-svc/internal/mocks"
	"foodcart/foodcart-svc/internal/service"
)

type handlerDeps struct {
	restaurants *mocks.RestaurantRepository
	products    *mocks.ProductRepository
	orders      *mocks.OrderRepository
	ranker      *mocks.RankerInterface
	qr          *mocks.QRGenerator
}

func newTestRouter(t *testing.T) (http.Handler, handlerDeps) {
	deps := handlerDeps{
		restaurants: mocks.NewRestaurantRepository(t),
		products:    mocks.NewProductRepository(t),
		orders:      mocks.NewOrderRepository(t),
		ranker:      mocks.NewRankerInterface(t),
		qr:          mocks.NewQRGenerator(t),
	}
	catalogService := service.NewCatalogService(deps.restaurants, deps.products, "/media/")
	validator := service.NewOrderValidator(deps.products, "RU")
	orderService := service.NewOrderService(deps.orders, validator, deps.ranker, nil, deps.qr)
	return httpapi.NewRouter(httpapi.NewHandler(catalogService, orderService)), deps
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, "GET", "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "foodcart-svc", body["service"])
}

func TestRegisterOrderHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(handlerDeps)
		wantCode  int
		wantBody  map[string]string
		wantField string
	}{
		{
			name: "valid request",
			body: `{"firstname":"Ivan","lastname":"Petrov","phonenumber":"+79123456789","address":"Omsk, Lenina 1","products":[{"product":1,"quantity":2}]}`,
			setupMock: func(d handlerDeps) {
				d.products.On("GetProducts", mock.Anything, []int{1}).Return(catalog, nil).Once()
				d.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(nil).Run(assignID(12)).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "invalid JSON",
			body:      `{invalid}`,
			setupMock: func(handlerDeps) {},
			wantCode:  http.StatusBadRequest,
			wantField: "non_field_errors",
		},
		{
			name:      "products is not a list",
			body:      `{"firstname":"Ivan","phonenumber":"+79123456789","address":"Omsk","products":"abc"}`,
			setupMock: func(handlerDeps) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  map[string]string{"field": "products", "error": "Incorrect type. Expected list, received string."},
		},
		{
			name:      "product id is a string",
			body:      `{"firstname":"Ivan","phonenumber":"+79123456789","address":"Omsk","products":[{"product":"1","quantity":1}]}`,
			setupMock: func(handlerDeps) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  map[string]string{"field": "products", "error": "Incorrect type. Expected integer, received string."},
		},
		{
			name:      "firstname is a number",
			body:      `{"firstname":42,"phonenumber":"+79123456789","address":"Omsk","products":[{"product":1,"quantity":1}]}`,
			setupMock: func(handlerDeps) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  map[string]string{"field": "firstname", "error": "Incorrect type. Expected string, received number."},
		},
		{
			name:      "empty body",
			body:      ``,
			setupMock: func(handlerDeps) {},
			wantCode:  http.StatusBadRequest,
			wantField: "non_field_errors",
		},
		{
			name: "unknown product",
			body: `{"firstname":"Ivan","phonenumber":"+79123456789","address":"Omsk","products":[{"product":9999,"quantity":1}]}`,
			setupMock: func(d handlerDeps) {
				d.products.On("GetProducts", mock.Anything, []int{9999}).Return(map[int]domain.Product{}, nil).Once()
			},
			wantCode: http.StatusBadRequest,
			wantBody: map[string]string{"field": "products", "error": `Invalid primary key "9999" - object does not exist.`},
		},
		{
			name:      "empty product list",
			body:      `{"firstname":"Ivan","phonenumber":"+79123456789","address":"Omsk","products":[]}`,
			setupMock: func(handlerDeps) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  map[string]string{"field": "products", "error": "This list may not be empty."},
		},
		{
			name: "database error",
			body: `{"firstname":"Ivan","phonenumber":"+79123456789","address":"Omsk","products":[{"product":1,"quantity":1}]}`,
			setupMock: func(d handlerDeps) {
				d.products.On("GetProducts", mock.Anything, []int{1}).Return(catalog, nil).Once()
				d.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(errors.New("db error")).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, deps := newTestRouter(t)
			testCase.setupMock(deps)

			w := serve(router, "POST", "/api/order", testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantBody != nil || testCase.wantField != "" {
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
				var body map[string]string
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				if testCase.wantBody != nil {
					assert.Equal(t, testCase.wantBody, body)
				} else {
					assert.Equal(t, testCase.wantField, body["field"])
					assert.NotEmpty(t, body["error"])
				}
			}
		})
	}
}

func TestRegisterOrderHandler_ResponseBody(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.products.On("GetProducts", mock.Anything, []int{1}).Return(catalog, nil).Once()
	deps.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Run(assignID(12)).Once()

	w := serve(router, "POST", "/api/order",
		`{"firstname":"Ivan","phonenumber":"+79123456789","address":"Omsk","products":[{"product":1,"quantity":2}]}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		ID       int    `json:"id"`
		Status   string `json:"status"`
		Products []struct {
			Product  int    `json:"product"`
			Quantity int    `json:"quantity"`
			Price    string `json:"price"`
		} `json:"products"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 12, body.ID)
	assert.Equal(t, "new", body.Status)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "901", body.Products[0].Price)
}

func TestGetOrderHandler(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		setup    func(handlerDeps)
		wantCode int
	}{
		{
			name: "order found",
			path: "/api/orders/3",
			setup: func(d handlerDeps) {
				order := &domain.Order{ID: 3, Address: "Omsk"}
				d.orders.On("GetOrder", mock.Anything, 3).Return(order, nil).Once()
				d.ranker.On("Rank", mock.Anything, order).Return(nil, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "order not found",
			path: "/api/orders/999",
			setup: func(d handlerDeps) {
				d.orders.On("GetOrder", mock.Anything, 999).Return(nil, sql.ErrNoRows).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "non numeric id",
			path:     "/api/orders/abc",
			setup:    func(handlerDeps) {},
			wantCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, deps := newTestRouter(t)
			testCase.setup(deps)

			w := serve(router, "GET", testCase.path, "")

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestGetOrdersHandler_StatusFilter(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.orders.On("ListOrders", mock.Anything, domain.OrderStatusNew).Return([]domain.Order{}, nil).Once()

	w := serve(router, "GET", "/api/orders?status=new", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, "GET", "/api/orders?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderRestaurantsHandler(t *testing.T) {
	router, deps := newTestRouter(t)
	order := &domain.Order{ID: 4, Address: "Omsk"}
	distance := 2.78
	deps.orders.On("GetOrder", mock.Anything, 4).Return(order, nil).Once()
	deps.ranker.On("Rank", mock.Anything, order).Return([]domain.RestaurantDistance{
		{Restaurant: domain.Restaurant{ID: 2, Name: "Bravo"}, DistanceKm: &distance},
		{Restaurant: domain.Restaurant{ID: 9, Name: "Zulu"}},
	}, nil).Once()

	w := serve(router, "GET", "/api/orders/4/restaurants", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body []struct {
		Restaurant struct {
			Name string `json:"name"`
		} `json:"restaurant"`
		DistanceKm *float64 `json:"distance_km"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "Bravo", body[0].Restaurant.Name)
	assert.Equal(t, 2.78, *body[0].DistanceKm)
	assert.Nil(t, body[1].DistanceKm)
}

func TestUpdateOrderHandler(t *testing.T) {
	t.Run("assign candidate restaurant", func(t *testing.T) {
		router, deps := newTestRouter(t)
		order := &domain.Order{ID: 6, Address: "Omsk", Status: domain.OrderStatusNew}
		deps.orders.On("GetOrder", mock.Anything, 6).Return(order, nil).Once()
		deps.ranker.On("Rank", mock.Anything, order).Return([]domain.RestaurantDistance{
			{Restaurant: domain.Restaurant{ID: 2, Name: "Bravo"}},
		}, nil).Once()
		deps.orders.On("UpdateOrder", mock.Anything, order).Return(nil).Once()

		w := serve(router, "PATCH", "/api/orders/6",
			`{"status":"completed","restaurant_id":2,"called_at":"2024-05-01T12:00:00Z"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "completed", body["status"])
		assert.EqualValues(t, 2, body["restaurant_id"])
		assert.Equal(t, "2024-05-01T12:00:00Z", body["called_at"])
	})

	t.Run("restaurant that cannot serve the order", func(t *testing.T) {
		router, deps := newTestRouter(t)
		order := &domain.Order{ID: 6, Address: "Omsk"}
		deps.orders.On("GetOrder", mock.Anything, 6).Return(order, nil).Once()
		deps.ranker.On("Rank", mock.Anything, order).Return(nil, nil).Once()

		w := serve(router, "PATCH", "/api/orders/6", `{"restaurant_id":9}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "restaurant_id", body["field"])
	})

	t.Run("wrong type", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := serve(router, "PATCH", "/api/orders/6", `{"restaurant_id":"two"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "restaurant_id", body["field"])
	})

	t.Run("missing order", func(t *testing.T) {
		router, deps := newTestRouter(t)
		deps.orders.On("GetOrder", mock.Anything, 77).Return(nil, sql.ErrNoRows).Once()

		w := serve(router, "PATCH", "/api/orders/77", `{"status":"completed"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCORSPreflightAllowsPatch(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/orders/6", nil)
	req.Header.Set("Origin", "http://operator.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestGetOrderQRCodeHandler(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.orders.On("GetOrder", mock.Anything, 5).Return(&domain.Order{ID: 5}, nil).Once()
	deps.qr.On("Generate", 5).Return([]byte("\x89PNG"), nil).Once()

	w := serve(router, "GET", "/api/orders/5/qrcode", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestGetProductsHandler(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.products.On("ListAvailableProducts", mock.Anything).Return([]domain.Product{{ID: 1, Name: "Pizza", Image: "pizza.png"}}, nil).Once()

	w := serve(router, "GET", "/api/products", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body []map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "/media/pizza.png", body[0]["image"])
}

func TestRestaurantHandlers(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		router, deps := newTestRouter(t)
		deps.restaurants.On("CreateRestaurant", mock.Anything, mock.AnythingOfType("*domain.Restaurant")).Return(nil).Once()

		w := serve(router, "POST", "/api/restaurants", `{"name":"Bravo","address":"Omsk, Mira 10"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("create with blank name", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := serve(router, "POST", "/api/restaurants", `{"name":"  "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		router, deps := newTestRouter(t)
		deps.restaurants.On("GetRestaurant", mock.Anything, 8).Return(nil, sql.ErrNoRows).Once()

		w := serve(router, "GET", "/api/restaurants/8", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		router, deps := newTestRouter(t)
		deps.restaurants.On("DeleteRestaurant", mock.Anything, 1).Return(int64(1), nil).Once()
		deps.restaurants.On("DeleteRestaurant", mock.Anything, 2).Return(int64(0), nil).Once()

		assert.Equal(t, http.StatusNoContent, serve(router, "DELETE", "/api/restaurants/1", "").Code)
		assert.Equal(t, http.StatusNotFound, serve(router, "DELETE", "/api/restaurants/2", "").Code)
	})

	t.Run("set menu entry", func(t *testing.T) {
		router, deps := newTestRouter(t)
		deps.restaurants.On("SetMenuEntry", mock.Anything, &domain.MenuEntry{RestaurantID: 3, ProductID: 1, Availability: false}).
			Return(nil).Once()

		w := serve(router, "PUT", "/api/restaurants/3/menu/1", `{"availability":false}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
