package order

// TransitionResult is the backend's answer to a cancel or refund.
// A successful result carries the new snapshot and no message; a failed
// one carries a user-safe message and never a snapshot.
type TransitionResult struct {
	Success bool   `json:"success"`
	Order   *Order `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Succeeded builds a successful result carrying the updated snapshot.
func Succeeded(o *Order) *TransitionResult {
	return &TransitionResult{Success: true, Order: o}
}

// Rejected builds a business rejection with a displayable message.
func Rejected(message string) *TransitionResult {
	return &TransitionResult{Success: false, Message: message}
}

// Valid reports whether the result holds its invariant.
func (r *TransitionResult) Valid() bool {
	if r == nil {
		return false
	}
	if r.Success {
		return r.Order != nil
	}
	return r.Order == nil
}

// PaymentSession is a gateway-issued checkout session. Holding one does not
// mean the order was paid.
type PaymentSession struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// PaymentSessionResult is the gateway integration's answer to CreateSession.
// A nil Session means the gateway produced no checkout.
type PaymentSessionResult struct {
	Session *PaymentSession `json:"data,omitempty"`
}

// HasSession reports whether a usable session was returned.
func (r *PaymentSessionResult) HasSession() bool {
	return r != nil && r.Session != nil && r.Session.ID != ""
}
