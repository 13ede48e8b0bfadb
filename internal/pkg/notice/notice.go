// Package notice carries the user-visible messages a view raises after an action.
package notice

import "errors"

// Level mirrors the alert variants the storefront renders
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notice is a single message shown to the shopper
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Success reports a completed action
func Success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }

// Info is a neutral message
func Info(msg string) Notice { return Notice{Level: LevelInfo, Message: msg} }

// Warning flags something the shopper must fix before retrying
func Warning(msg string) Notice { return Notice{Level: LevelWarning, Message: msg} }

// Danger reports a failed action
func Danger(msg string) Notice { return Notice{Level: LevelDanger, Message: msg} }

// IsZero reports whether no notice was raised
func (n Notice) IsZero() bool {
	return n.Message == ""
}

// Public is implemented by errors whose text is safe to show to the shopper
// verbatim, such as messages returned by the backend.
type Public interface {
	error
	PublicMessage() string
}

// MessageOf returns the first public message in err's chain, or fallback.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var p Public
	if errors.As(err, &p) {
		if msg := p.PublicMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
