package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/recipebox/recipebox/internal/repository"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"integer", "5", "5.00", nil},
		{"one decimal", "5.5", "5.50", nil},
		{"two decimals", "5.25", "5.25", nil},
		{"zero", "0", "0.00", nil},
		{"surrounding space", " 12.50 ", "12.50", nil},
		{"max digits", "999999.99", "999999.99", nil},
		{"empty", "", "", ErrInvalidPrice},
		{"negative", "-5.00", "", ErrInvalidPrice},
		{"three decimals", "5.255", "", ErrInvalidPrice},
		{"too many digits", "1234567", "", ErrInvalidPrice},
		{"not a number", "five", "", ErrInvalidPrice},
		{"trailing dot", "5.", "", ErrInvalidPrice},
		{"comma separator", "5,50", "", ErrInvalidPrice},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := normalizePrice(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected error %v, got %v", test.wantErr, err)
			}
			if got != test.want {
				t.Errorf("normalizePrice(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, []string{}},
		{"no dupes", []string{"a", "b"}, []string{"a", "b"}},
		{"dupes", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{"order preserved", []string{"c", "a", "c", "b"}, []string{"c", "a", "b"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := dedupe(test.input)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("dedupe(%v) = %v, want %v", test.input, got, test.want)
			}
		})
	}
}

func TestMapRelationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"missing tag", repository.ErrTagUnknown, ErrUnknownTag},
		{"missing ingredient", repository.ErrIngredientUnknown, ErrUnknownIngredient},
		{"wrapped tag", fmt.Errorf("insert: %w", repository.ErrTagUnknown), ErrUnknownTag},
		{"unrelated", errors.New("boom"), nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapRelationError(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("mapRelationError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCreateRecipeValidationErrors(t *testing.T) {
	svc := &RecipeService{}

	tests := []struct {
		name    string
		input   CreateRecipeInput
		wantErr error
	}{
		{
			name:    "empty_title",
			input:   CreateRecipeInput{Title: "   ", TimeMinutes: 5, Price: "5.00"},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "negative_time",
			input:   CreateRecipeInput{Title: "Soup", TimeMinutes: -1, Price: "5.00"},
			wantErr: ErrInvalidTime,
		},
		{
			name:    "bad_price",
			input:   CreateRecipeInput{Title: "Soup", TimeMinutes: 5, Price: "cheap"},
			wantErr: ErrInvalidPrice,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.CreateRecipe(context.Background(), test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
