// Package receipt archives a gzipped JSON copy of every created order.
package receipt

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"checkout-kart/internal/model"

	"github.com/google/uuid"
)

// Receipt is the archived record of a created order.
type Receipt struct {
	OrderID          uuid.UUID           `json:"orderId"`
	Buyer            string              `json:"buyer"`
	ShippingData     model.ShippingData  `json:"shippingData"`
	PaymentID        string              `json:"paymentId"`
	PaymentStatus    model.PaymentStatus `json:"paymentStatus"`
	Items            []model.OrderItem   `json:"items"`
	ProductsQuantity int                 `json:"productsQuantity"`
	TotalPrice       float64             `json:"totalPrice"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// New builds the receipt for a persisted order.
func New(order *model.Order, items []model.OrderItem) *Receipt {
	return &Receipt{
		OrderID:          order.ID,
		Buyer:            order.BuyerID,
		ShippingData:     order.ShippingData,
		PaymentID:        order.PaymentID,
		PaymentStatus:    order.PaymentStatus,
		Items:            items,
		ProductsQuantity: order.ProductsQuantity,
		TotalPrice:       order.TotalPrice,
		CreatedAt:        order.CreatedAt,
	}
}

// Key returns the archive key of the receipt, relative to the store root.
func (r *Receipt) Key() string {
	return fmt.Sprintf("%s/%s.json.gz", r.Buyer, r.OrderID)
}

// Store defines the interface for archiving receipts.
type Store interface {
	// Save writes the receipt under key.
	Save(ctx context.Context, key string, r *Receipt) error
}

// Encode writes r to w as gzipped JSON.
func Encode(w io.Writer, r *Receipt) error {
	gzipWriter := gzip.NewWriter(w)
	if err := json.NewEncoder(gzipWriter).Encode(r); err != nil {
		gzipWriter.Close()
		return fmt.Errorf("failed to encode receipt: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush receipt: %w", err)
	}
	return nil
}

// Decode reads a gzipped JSON receipt from rd.
func Decode(rd io.Reader) (*Receipt, error) {
	gzipReader, err := gzip.NewReader(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var r Receipt
	if err := json.NewDecoder(gzipReader).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode receipt: %w", err)
	}
	return &r, nil
}

func encodeBytes(r *Receipt) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
