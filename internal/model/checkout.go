package model

// CheckoutRequest is the payment form as submitted over HTTP.
type CheckoutRequest struct {
	BuyerID        string       `json:"buyerId"`
	ProductID      string       `json:"productId,omitempty"`
	Payment        PaymentInput `json:"payment"`
	CashOnDelivery bool         `json:"cashOnDelivery"`
}

// CheckoutResponse describes an accepted submission. The order itself is
// created asynchronously; poll the status endpoint for the outcome.
type CheckoutResponse struct {
	Mode             OrderMode   `json:"mode"`
	PaymentMethod    string      `json:"paymentMethod"`
	PaymentInfo      PaymentInfo `json:"paymentInfo"`
	ProductsQuantity int         `json:"productsQuantity"`
	TotalPrice       float64     `json:"totalPrice"`
	Status           OrderStatus `json:"status"`
}

// TotalsResponse is a preview of the amounts an order would carry.
type TotalsResponse struct {
	Mode             OrderMode `json:"mode"`
	ProductsQuantity int       `json:"productsQuantity"`
	TotalPrice       float64   `json:"totalPrice"`
}

// ExpiryRequest carries the expiry field as typed.
type ExpiryRequest struct {
	ExpDate string `json:"expDate"`
}

// ExpiryResponse is the live validation result for the expiry field.
type ExpiryResponse struct {
	Expired    bool   `json:"expired"`
	HelperText string `json:"helperText"`
}

// ReactionAction is what the client should do after observing a status.
type ReactionAction string

const (
	ReactionNone     ReactionAction = "none"
	ReactionNavigate ReactionAction = "navigate"
	ReactionPopup    ReactionAction = "popup"
)

// StatusResponse reports the current order status and the one-shot reaction to it.
type StatusResponse struct {
	Status  OrderStatus    `json:"status"`
	Action  ReactionAction `json:"action"`
	Route   string         `json:"route,omitempty"`
	Message string         `json:"message,omitempty"`
}
