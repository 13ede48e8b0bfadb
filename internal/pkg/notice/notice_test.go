package notice

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type publicErr struct{ msg string }

func (e *publicErr) Error() string         { return "backend: " + e.msg }
func (e *publicErr) PublicMessage() string { return e.msg }

func TestMessageOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "fallback"},
		{"plain error", errors.New("dial tcp: refused"), "fallback"},
		{"public error", &publicErr{msg: "Email already taken."}, "Email already taken."},
		{"wrapped public error", fmt.Errorf("register: %w", &publicErr{msg: "Invalid zipcode."}), "Invalid zipcode."},
		{"empty public message", &publicErr{}, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageOf(tt.err, "fallback"))
		})
	}
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, LevelSuccess, Success("ok").Level)
	assert.Equal(t, LevelWarning, Warning("careful").Level)
	assert.Equal(t, LevelDanger, Danger("bad").Level)
	assert.Equal(t, LevelInfo, Info("fyi").Level)
	assert.True(t, Notice{}.IsZero())
	assert.False(t, Info("x").IsZero())
}
