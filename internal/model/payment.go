package model

// PaymentStatus is the outcome recorded on an order's payment.
type PaymentStatus string

const (
	PaymentSuccessful     PaymentStatus = "Successful"
	PaymentCashOnDelivery PaymentStatus = "Cash on Delivery"
)

// PaymentInput holds the card fields as typed into the payment form.
type PaymentInput struct {
	CardName   string `json:"cardName" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required,number"`
	ExpDate    string `json:"expDate" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
}

// PaymentInfo is the payment record embedded into an order.
type PaymentInfo struct {
	ID     string        `json:"id"`
	Status PaymentStatus `json:"status"`
}
