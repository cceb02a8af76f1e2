package model

// ShippingData is the delivery address attached to a buyer and copied onto every order.
type ShippingData struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
	PhoneNo string `json:"phoneNo"`
}

// Buyer is the signed-in customer together with the current cart contents.
type Buyer struct {
	ID           string       `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	ShippingData ShippingData `json:"shippingData" db:"shipping_data"`
	Cart         []CartItem   `json:"cartDetails"`
}
