package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"checkout-kart/internal/model"

	"github.com/go-playground/validator/v10"
)

// Field identifies one of the card inputs of the payment form.
type Field string

const (
	FieldCardName   Field = "cardName"
	FieldCardNumber Field = "cardNumber"
	FieldExpDate    Field = "expDate"
	FieldCVV        Field = "cvv"
)

// Payment method labels shown above the form.
const (
	MethodCashOnDelivery = "Cash on Delivery"
	MethodCard           = "RazerPay"
)

// Helper texts for the expiry field.
const (
	ExpiryHelperExpired = "Expired"
	ExpiryHelperDefault = "Expiry date"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Form is the payment form state owned by one checkout attempt.
// It is not safe for concurrent use.
type Form struct {
	input          model.PaymentInput
	cashOnDelivery bool
	expired        bool
	state          State
	now            func() time.Time
}

// NewForm creates an empty form. now defaults to time.Now.
func NewForm(now func() time.Time) *Form {
	if now == nil {
		now = time.Now
	}
	return &Form{
		state: StateIdle,
		now:   now,
	}
}

// NewFormFromRequest fills a form the same way a buyer would: card fields
// first, then the cash-on-delivery toggle.
func NewFormFromRequest(req *model.CheckoutRequest, now func() time.Time) (*Form, error) {
	f := NewForm(now)

	fields := []struct {
		field Field
		value string
	}{
		{FieldCardName, req.Payment.CardName},
		{FieldCardNumber, req.Payment.CardNumber},
		{FieldExpDate, req.Payment.ExpDate},
		{FieldCVV, req.Payment.CVV},
	}
	for _, fv := range fields {
		if _, err := f.SetField(fv.field, fv.value); err != nil {
			return nil, err
		}
	}

	f.SetCashOnDelivery(req.CashOnDelivery)
	return f, nil
}

// SetField updates a card field. Card fields are disabled while cash on
// delivery is selected, in which case the edit is dropped and false is
// returned. Changing the expiry date recomputes the expired flag.
func (f *Form) SetField(field Field, value string) (bool, error) {
	if f.CardFieldsDisabled() {
		return false, nil
	}

	switch field {
	case FieldCardName:
		f.input.CardName = value
	case FieldCardNumber:
		f.input.CardNumber = value
	case FieldExpDate:
		f.input.ExpDate = value
		f.expired = IsExpired(value, f.now())
	case FieldCVV:
		f.input.CVV = value
	default:
		return false, fmt.Errorf("unknown payment field %q", field)
	}

	return true, nil
}

// SetCashOnDelivery toggles cash on delivery, which also disables the card fields.
func (f *Form) SetCashOnDelivery(on bool) {
	f.cashOnDelivery = on
}

// CashOnDelivery reports whether cash on delivery is selected.
func (f *Form) CashOnDelivery() bool {
	return f.cashOnDelivery
}

// CardFieldsDisabled reports whether card inputs accept edits.
func (f *Form) CardFieldsDisabled() bool {
	return f.cashOnDelivery
}

// CardFieldsRequired reports whether card inputs must be filled before submitting.
func (f *Form) CardFieldsRequired() bool {
	return !f.cashOnDelivery
}

// Expired returns the expired flag as of the last expiry field change.
func (f *Form) Expired() bool {
	return f.expired
}

// Input returns a copy of the card fields.
func (f *Form) Input() model.PaymentInput {
	return f.input
}

// State returns the submission state.
func (f *Form) State() State {
	return f.state
}

// PaymentMethod returns the label of the selected payment method.
func (f *Form) PaymentMethod() string {
	if f.cashOnDelivery {
		return MethodCashOnDelivery
	}
	return MethodCard
}

// ExpiryHelperText returns the text shown under the expiry field.
func (f *Form) ExpiryHelperText() string {
	return ExpiryHelper(f.expired)
}

// ExpiryHelper returns the expiry field helper text for an expired flag.
func ExpiryHelper(expired bool) string {
	if expired {
		return ExpiryHelperExpired
	}
	return ExpiryHelperDefault
}

// Validate checks that the required card fields are filled in. Nothing is
// required when cash on delivery is selected.
func (f *Form) Validate() error {
	if !f.CardFieldsRequired() {
		return nil
	}

	err := validate.Struct(f.input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate payment fields: %w", err)
	}

	for _, fe := range verrs {
		if fe.Tag() == "number" {
			return fmt.Errorf("%w: %s", model.ErrInvalidCard, fe.Field())
		}
	}
	return fmt.Errorf("%w: %s", model.ErrMissingField, verrs[0].Field())
}

// fire applies a gate event to the form's submission state.
func (f *Form) fire(event Event) error {
	next, err := Transition(f.state, event)
	if err != nil {
		return err
	}
	f.state = next
	return nil
}
