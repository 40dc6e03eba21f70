package outbound

import "context"

// Answer is the user's response to a confirmation prompt.
type Answer int

const (
	AnswerDismissed Answer = iota
	AnswerYes
	AnswerNo
)

// String returns the answer name.
func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	default:
		return "dismissed"
	}
}

// Prompt is a yes/no question shown before a destructive action.
type Prompt struct {
	Title string
	Body  string
	Yes   string
	No    string
}

// ConfirmationPort presents a prompt and blocks until the user answers or
// dismisses it.
type ConfirmationPort interface {
	Ask(ctx context.Context, prompt Prompt) (Answer, error)
}

// Severity classifies a user-visible outcome.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// NotifierPort renders an outcome message to the user.
type NotifierPort interface {
	Notify(ctx context.Context, message string, severity Severity)
}
