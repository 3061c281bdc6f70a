package commerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNoCustomerEmail marks a payment payload without any usable email.
// Such events are acknowledged but not processed, so the sender stops
// retrying them.
var ErrNoCustomerEmail = errors.New("payment event carries no customer email")

// PaymentEvent is the normalized input of the provisioning engine,
// independent of the commerce provider's payload shape.
type PaymentEvent struct {
	Email       string
	Name        string
	OrderID     string
	AmountCents int64
	Currency    string
	Provider    string
}

// shopifyOrder mirrors the subset of an orders/paid payload we consume.
type shopifyOrder struct {
	ID          json.Number `json:"id"`
	OrderNumber json.Number `json:"order_number"`
	Email       string      `json:"email"`
	TotalPrice  string      `json:"total_price"`
	Currency    string      `json:"currency"`
	Customer    struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"customer"`
}

// ParsePaymentEvent normalizes a raw orders/paid body into a PaymentEvent.
// The caller must have verified the signature over these exact bytes first.
func ParsePaymentEvent(rawBody []byte) (PaymentEvent, error) {
	var order shopifyOrder
	if err := json.Unmarshal(rawBody, &order); err != nil {
		return PaymentEvent{}, fmt.Errorf("parse payment payload: %w", err)
	}

	email := strings.TrimSpace(order.Customer.Email)
	if email == "" {
		email = strings.TrimSpace(order.Email)
	}
	if email == "" {
		return PaymentEvent{}, ErrNoCustomerEmail
	}

	orderID := order.ID.String()
	if orderID == "" {
		orderID = order.OrderNumber.String()
	}
	if orderID == "" {
		return PaymentEvent{}, errors.New("payment event carries no order id")
	}

	name := strings.TrimSpace(order.Customer.FirstName + " " + order.Customer.LastName)

	amount, err := parseAmountCents(order.TotalPrice)
	if err != nil {
		return PaymentEvent{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(order.Currency))
	if currency == "" {
		currency = "USD"
	}

	return PaymentEvent{
		Email:       strings.ToLower(email),
		Name:        name,
		OrderID:     orderID,
		AmountCents: amount,
		Currency:    currency,
	}, nil
}

// parseAmountCents converts a decimal money string like "10.00" to cents.
// Money never touches floats on the way to storage.
func parseAmountCents(price string) (int64, error) {
	p := strings.TrimSpace(price)
	if p == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return 0, fmt.Errorf("parse total_price %q: %w", price, err)
	}
	return int64(math.Round(f * 100)), nil
}
