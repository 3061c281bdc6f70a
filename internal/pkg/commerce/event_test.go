package commerce

import (
	"errors"
	"testing"
)

func TestParsePaymentEvent(t *testing.T) {
	body := []byte(`{
		"id": 5849220206,
		"email": "fallback@example.com",
		"total_price": "10.00",
		"currency": "eur",
		"customer": {"email": "Jane@Example.com", "first_name": "Jane", "last_name": "Doe"}
	}`)

	event, err := ParsePaymentEvent(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Email != "jane@example.com" {
		t.Fatalf("email = %q, want customer email lowercased", event.Email)
	}
	if event.Name != "Jane Doe" {
		t.Fatalf("name = %q", event.Name)
	}
	if event.OrderID != "5849220206" {
		t.Fatalf("order id = %q", event.OrderID)
	}
	if event.AmountCents != 1000 {
		t.Fatalf("amount = %d, want 1000", event.AmountCents)
	}
	if event.Currency != "EUR" {
		t.Fatalf("currency = %q", event.Currency)
	}
}

func TestParsePaymentEventTopLevelEmailFallback(t *testing.T) {
	body := []byte(`{"id": 1, "email": "buyer@example.com", "total_price": "5.50"}`)

	event, err := ParsePaymentEvent(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Email != "buyer@example.com" {
		t.Fatalf("email = %q", event.Email)
	}
	if event.AmountCents != 550 {
		t.Fatalf("amount = %d, want 550", event.AmountCents)
	}
}

func TestParsePaymentEventNoEmail(t *testing.T) {
	body := []byte(`{"id": 1, "total_price": "10.00"}`)

	_, err := ParsePaymentEvent(body)
	if !errors.Is(err, ErrNoCustomerEmail) {
		t.Fatalf("err = %v, want ErrNoCustomerEmail", err)
	}
}

func TestParsePaymentEventNoOrderID(t *testing.T) {
	body := []byte(`{"email": "a@b.com", "total_price": "10.00"}`)

	if _, err := ParsePaymentEvent(body); err == nil {
		t.Fatal("expected error for missing order id")
	}
}

func TestParsePaymentEventOrderNumberFallback(t *testing.T) {
	body := []byte(`{"order_number": 1042, "email": "a@b.com", "total_price": "10.00"}`)

	event, err := ParsePaymentEvent(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.OrderID != "1042" {
		t.Fatalf("order id = %q, want 1042", event.OrderID)
	}
}

func TestParsePaymentEventInvalidJSON(t *testing.T) {
	if _, err := ParsePaymentEvent([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseAmountCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "10.00", want: 1000},
		{in: "0.99", want: 99},
		{in: "199.95", want: 19995},
		{in: "0", want: 0},
		{in: "", want: 0},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseAmountCents(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseAmountCents(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseAmountCents(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parseAmountCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
