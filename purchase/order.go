// Package purchase composes purchase orders: a masthead with the order
// number and barcode, an info block per page, the line table and a closing
// summary with signatures.
package purchase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ByLCY/ledger/layout"
)

// ErrNoOrders is returned by Load for an empty payload.
var ErrNoOrders = errors.New("purchase: no orders in input")

// Order is a purchase order as received from the ordering system. Totals are
// carried as given and never recomputed here.
type Order struct {
	Number        string    `json:"number"`
	Supplier      string    `json:"supplier"`
	Buyer         string    `json:"buyer"`
	Warehouse     string    `json:"warehouse"`
	OrderDate     time.Time `json:"orderDate"`
	DeliveryDate  time.Time `json:"deliveryDate"`
	Currency      string    `json:"currency"`
	Remarks       string    `json:"remarks"`
	Lines         []Line    `json:"lines"`
	TotalQuantity float64   `json:"totalQuantity"`
	TotalAmount   float64   `json:"totalAmount"`
	// Barcode payload printed in the masthead; empty falls back to Number.
	Barcode string `json:"barcode,omitempty"`
}

// Line is one detail row of an order.
type Line struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Spec      string  `json:"spec"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"remarks,omitempty"`
}

var _ layout.PageEligible = Line{}

func (l Line) Remarks() string { return l.Note }

// ExtraHeightFactor is always 0: lines are printed on a single row.
func (l Line) ExtraHeightFactor() float64 { return 0 }

// Load decodes a single order object or an array of orders.
func Load(r io.Reader) ([]Order, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("purchase: read: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrNoOrders
	}
	var orders []Order
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &orders); err != nil {
			return nil, fmt.Errorf("purchase: decode orders: %w", err)
		}
	} else {
		var o Order
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("purchase: decode order: %w", err)
		}
		orders = append(orders, o)
	}
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}
	return orders, nil
}
