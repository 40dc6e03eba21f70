package order

import "github.com/google/uuid"

// Action names a user-triggered order action.
type Action string

const (
	ActionCancel Action = "cancel"
	ActionRefund Action = "refund"
	ActionPay    Action = "pay"
)

// String returns the action name.
func (a Action) String() string {
	return string(a)
}

// ActionRequest is one of CancelRequest, RefundRequest or CreateSessionRequest.
// Requests are built fresh for every invocation and never reused.
type ActionRequest interface {
	Action() Action
	Key() string
}

// CancelRequest asks the backend to cancel an order.
type CancelRequest struct {
	OrderID        int64
	IdempotencyKey string
}

// Action implements ActionRequest.
func (CancelRequest) Action() Action { return ActionCancel }

// Key implements ActionRequest.
func (r CancelRequest) Key() string { return r.IdempotencyKey }

// RefundRequest asks the backend to refund an order.
type RefundRequest struct {
	OrderID        int64
	IdempotencyKey string
}

// Action implements ActionRequest.
func (RefundRequest) Action() Action { return ActionRefund }

// Key implements ActionRequest.
func (r RefundRequest) Key() string { return r.IdempotencyKey }

// CreateSessionRequest asks the gateway integration for a checkout session.
type CreateSessionRequest struct {
	OrderNumber        string `json:"order_number"`
	AmountInMinorUnits int64  `json:"amount"`
	ProductTitle       string `json:"product_title"`
	ProductDescription string `json:"product_description"`
	IdempotencyKey     string `json:"-"`
}

// Action implements ActionRequest.
func (CreateSessionRequest) Action() Action { return ActionPay }

// Key implements ActionRequest.
func (r CreateSessionRequest) Key() string { return r.IdempotencyKey }

// NewCancelRequest builds the cancel request for an order snapshot.
func NewCancelRequest(o *Order) CancelRequest {
	return CancelRequest{OrderID: o.ID, IdempotencyKey: uuid.NewString()}
}

// NewRefundRequest builds the refund request for an order snapshot.
func NewRefundRequest(o *Order) RefundRequest {
	return RefundRequest{OrderID: o.ID, IdempotencyKey: uuid.NewString()}
}

// NewCreateSessionRequest builds the checkout session request for an order snapshot.
func NewCreateSessionRequest(o *Order) CreateSessionRequest {
	return CreateSessionRequest{
		OrderNumber:        o.Number,
		AmountInMinorUnits: o.AmountInMinorUnits(),
		ProductTitle:       o.Product.Title,
		ProductDescription: o.Product.Description,
		IdempotencyKey:     uuid.NewString(),
	}
}
