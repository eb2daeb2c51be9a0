package models

// SessionStatus mirrors the external gateway's view of a checkout session.
type SessionStatus string

const (
	SessionOpen     SessionStatus = "open"
	SessionComplete SessionStatus = "complete"
	SessionExpired  SessionStatus = "expired"
)

type SessionPaymentStatus string

const (
	SessionUnpaid SessionPaymentStatus = "unpaid"
	SessionPaid   SessionPaymentStatus = "paid"
)

// PaymentSession is the locally mirrored state of a gateway session. The
// gateway owns the session; we hold the reference and the last-known status.
type PaymentSession struct {
	ID            string               `json:"id"`
	OrderID       string               `json:"order_id"`
	Status        SessionStatus        `json:"status"`
	PaymentStatus SessionPaymentStatus `json:"payment_status"`
	RedirectURL   string               `json:"redirect_url,omitempty"`
}
