package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gotodo/internal/account/domain/entities"
	"gotodo/pkg/validation"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     []string
	}{
		{name: "simple", username: "alice"},
		{name: "allowed symbols", username: "al.ice+1@x-y_z"},
		{name: "unicode letters", username: "алиса"},
		{name: "empty", username: "", want: []string{entities.MsgRequired}},
		{name: "space", username: "al ice", want: []string{entities.MsgUsernameInvalid}},
		{name: "too long", username: strings.Repeat("a", 151), want: []string{entities.MsgUsernameTooLong}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.Errors{}
			entities.ValidateUsername(tt.username, errs)

			assert.Equal(t, tt.want, errs[entities.FieldUsername])
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  []string
	}{
		{name: "empty allowed", email: ""},
		{name: "valid", email: "alice@example.com"},
		{name: "missing domain", email: "alice@", want: []string{entities.MsgEmailInvalid}},
		{name: "too long", email: strings.Repeat("a", 250) + "@x.io", want: []string{entities.MsgEmailTooLong}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.Errors{}
			entities.ValidateEmail(tt.email, errs)

			assert.Equal(t, tt.want, errs[entities.FieldEmail])
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{name: "long enough", password: "12345678"},
		{name: "empty", password: "", want: []string{entities.MsgRequired}},
		{name: "short", password: "1234567", want: []string{entities.MsgPasswordTooShort}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.Errors{}
			entities.ValidatePassword(tt.password, errs)

			assert.Equal(t, tt.want, errs[entities.FieldPassword])
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Alice@example.com", entities.NormalizeEmail("  Alice@EXAMPLE.com "))
	assert.Equal(t, "no-at-sign", entities.NormalizeEmail("no-at-sign"))
	assert.Equal(t, "", entities.NormalizeEmail(""))
}
