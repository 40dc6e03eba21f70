package orderaction

import "github.com/uniedit/orderflow/internal/port/outbound"

// Messages holds every user-facing text the actions produce.
// Backend rejection messages are shown as received and are not listed here.
type Messages struct {
	CancelPrompt outbound.Prompt
	RefundPrompt outbound.Prompt

	// CancelFailed and RefundFailed are shown when the backend call could
	// not complete or answered with something unusable.
	CancelFailed string
	RefundFailed string

	// PaymentFailed is the single text for every failure to start a payment.
	PaymentFailed string

	// Unexpected is shown when an action ends without any outcome.
	Unexpected string

	// Canceled and Refunded are optional success notices. Empty means the
	// refreshed order is the only confirmation.
	Canceled string
	Refunded string
}

// DefaultMessages returns the built-in English texts.
func DefaultMessages() Messages {
	return Messages{
		CancelPrompt: outbound.Prompt{
			Title: "Attention",
			Body:  "Do you really want to cancel this order?",
			Yes:   "Yes",
			No:    "No",
		},
		RefundPrompt: outbound.Prompt{
			Title: "Attention",
			Body:  "Do you really want to request a refund for this order?",
			Yes:   "Yes",
			No:    "No",
		},
		CancelFailed:  "Unable to cancel the order",
		RefundFailed:  "Unable to refund the order",
		PaymentFailed: "Payment could not be started",
		Unexpected:    "Something went wrong, please try again",
	}
}

// withDefaults fills empty texts from DefaultMessages.
func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	m.CancelPrompt = promptWithDefaults(m.CancelPrompt, d.CancelPrompt)
	m.RefundPrompt = promptWithDefaults(m.RefundPrompt, d.RefundPrompt)
	if m.CancelFailed == "" {
		m.CancelFailed = d.CancelFailed
	}
	if m.RefundFailed == "" {
		m.RefundFailed = d.RefundFailed
	}
	if m.PaymentFailed == "" {
		m.PaymentFailed = d.PaymentFailed
	}
	if m.Unexpected == "" {
		m.Unexpected = d.Unexpected
	}
	return m
}

func promptWithDefaults(p, d outbound.Prompt) outbound.Prompt {
	if p.Title == "" {
		p.Title = d.Title
	}
	if p.Body == "" {
		p.Body = d.Body
	}
	if p.Yes == "" {
		p.Yes = d.Yes
	}
	if p.No == "" {
		p.No = d.No
	}
	return p
}
