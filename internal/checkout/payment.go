package checkout

import (
	"fmt"
	"strings"
	"time"

	"checkout-kart/internal/model"
)

const codPrefix = "COD-"

// NewPaymentInfo synthesises the payment record for a submission made at now.
//
// Card payments are not authorised against any gateway: every card submission
// is recorded as Successful. Only the identifier depends on the card fields.
func NewPaymentInfo(input model.PaymentInput, cashOnDelivery bool, now time.Time) model.PaymentInfo {
	if cashOnDelivery {
		return model.PaymentInfo{
			ID:     fmt.Sprintf("%s%d", codPrefix, now.UnixMilli()),
			Status: model.PaymentCashOnDelivery,
		}
	}

	return model.PaymentInfo{
		ID:     CardPaymentID(input, now),
		Status: model.PaymentSuccessful,
	}
}

// CardPaymentID builds "<last4>-<MM><YY>-<unix millis>" from the card fields.
func CardPaymentID(input model.PaymentInput, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", lastN(strings.TrimSpace(input.CardNumber), 4), expiryMonthYear(input.ExpDate), now.UnixMilli())
}

// expiryMonthYear returns MMYY for a well-formed date and falls back to the
// first and last two characters of the raw value otherwise.
func expiryMonthYear(expDate string) string {
	if expiry, err := ParseExpiry(expDate); err == nil {
		return expiry.Format("0106")
	}
	raw := strings.TrimSpace(expDate)
	return firstN(raw, 2) + lastN(raw, 2)
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func firstN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
