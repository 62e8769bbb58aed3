package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"foodcart/foodcart-svc/internal/domain"
)

// ValidationError points at the first request field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// MaxLineQuantity is the largest quantity order_lines.quantity (SMALLINT) holds.
const MaxLineQuantity = 32767

type OrderItemInput struct {
	Product  int `json:"product"`
	Quantity int `json:"quantity"`
}

type RegisterOrderInput struct {
	Firstname   string              `json:"firstname" validate:"required"`
	Lastname    string              `json:"lastname"`
	Phonenumber string              `json:"phonenumber" validate:"required"`
	Address     string              `json:"address" validate:"required"`
	Products    []OrderItemInput    `json:"products" validate:"required,min=1"`
	PaymentForm *domain.PaymentForm `json:"payment_form"`
	Comment     string              `json:"comment"`
}

type OrderValidator struct {
	products    ProductRepository
	phoneRegion string
	validate    *validator.Validate
}

func NewOrderValidator(products ProductRepository, phoneRegion string) *OrderValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &OrderValidator{products: products, phoneRegion: phoneRegion, validate: validate}
}

// Validate checks the input in a fixed order and stops at the first problem.
// On success it returns an unsaved order whose line prices are snapshotted
// from the current catalog. A non-validation error means the catalog lookup failed.
func (v *OrderValidator) Validate(ctx context.Context, input RegisterOrderInput) (*domain.Order, error) {
	input.Firstname = strings.TrimSpace(input.Firstname)
	input.Lastname = strings.TrimSpace(input.Lastname)
	input.Phonenumber = strings.TrimSpace(input.Phonenumber)
	input.Address = strings.TrimSpace(input.Address)

	if err := v.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, requiredFieldError(fieldErrs[0])
		}
		return nil, err
	}

	phone, err := v.normalizePhone(input.Phonenumber)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(input.Products))
	for _, item := range input.Products {
		ids = append(ids, item.Product)
	}
	catalog, err := v.products.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("validate order products: %w", err)
	}
	for _, item := range input.Products {
		if _, ok := catalog[item.Product]; !ok {
			return nil, &ValidationError{
				Field:   "products",
				Message: fmt.Sprintf("Invalid primary key %q - object does not exist.", fmt.Sprint(item.Product)),
			}
		}
	}

	for _, item := range input.Products {
		if item.Quantity < 1 {
			return nil, &ValidationError{
				Field:   "products",
				Message: fmt.Sprintf("Quantity of product %d must be at least 1.", item.Product),
			}
		}
		if item.Quantity > MaxLineQuantity {
			return nil, &ValidationError{
				Field:   "products",
				Message: fmt.Sprintf("Quantity of product %d must be at most %d.", item.Product, MaxLineQuantity),
			}
		}
	}

	if input.PaymentForm != nil && !validPaymentForm(*input.PaymentForm) {
		return nil, &ValidationError{Field: "payment_form", Message: fmt.Sprintf("%q is not a valid choice.", *input.PaymentForm)}
	}

	order := &domain.Order{
		Firstname:   input.Firstname,
		Lastname:    input.Lastname,
		Phonenumber: phone,
		Address:     input.Address,
		Status:      domain.OrderStatusNew,
		PaymentForm: input.PaymentForm,
		Comment:     input.Comment,
		Lines:       make([]domain.OrderLine, 0, len(input.Products)),
	}
	for _, item := range input.Products {
		product := catalog[item.Product]
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price.Mul(decimalFromInt(item.Quantity)),
		})
	}
	order.CalculateTotal()
	return order, nil
}

func (v *OrderValidator) normalizePhone(raw string) (string, error) {
	invalid := &ValidationError{Field: "phonenumber", Message: "Enter a valid phone number."}

	number, err := phonenumbers.Parse(raw, v.phoneRegion)
	if err != nil {
		return "", invalid
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", invalid
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

func requiredFieldError(fieldErr validator.FieldError) *ValidationError {
	if fieldErr.Kind() == reflect.Slice {
		return &ValidationError{Field: fieldErr.Field(), Message: "This list may not be empty."}
	}
	return &ValidationError{Field: fieldErr.Field(), Message: "This field may not be blank."}
}

func validPaymentForm(form domain.PaymentForm) bool {
	switch form {
	case domain.PaymentCash, domain.PaymentCard, domain.PaymentPrepaid:
		return true
	}
	return false
}
