package service

import (
	"context"
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase unchanged", "user@example.com", "user@example.com"},
		{"domain lowered", "user@EXAMPLE.COM", "user@example.com"},
		{"local part preserved", "User@EXAMPLE.com", "User@example.com"},
		{"mixed domain", "chef@Example.Com", "chef@example.com"},
		{"no at sign", "not-an-email", "not-an-email"},
		{"empty", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := NormalizeEmail(test.input); got != test.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	svc := NewUserService(nil)

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:    "missing_email",
			input:   RegisterInput{Password: "goodpass"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "bad_email",
			input:   RegisterInput{Email: "not-an-email", Password: "goodpass"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "short_password",
			input:   RegisterInput{Email: "user@example.com", Password: "pw"},
			wantErr: ErrPasswordTooShort,
		},
		{
			name:    "missing_password",
			input:   RegisterInput{Email: "user@example.com"},
			wantErr: ErrPasswordTooShort,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestUpdateProfileRequiresFullSetOnPut(t *testing.T) {
	svc := NewUserService(nil)

	email := "user@example.com"
	name := "User"

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:  "01HX0000000000000000000000",
		Email:   &email,
		Name:    &name,
		Partial: false,
	})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}
