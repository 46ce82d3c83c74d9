package dto

import (
	"encoding/json"
	"testing"

	"github.com/recipebox/recipebox/internal/model"
)

func TestDecimal_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    Decimal
		wantErr bool
	}{
		{"string", `{"price":"5.50"}`, "5.50", false},
		{"number", `{"price":5.50}`, "5.50", false},
		{"integer number", `{"price":5}`, "5", false},
		{"null", `{"price":null}`, "", false},
		{"bool", `{"price":true}`, "", true},
		{"array", `{"price":[1]}`, "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req struct {
				Price Decimal `json:"price"`
			}
			err := json.Unmarshal([]byte(tt.payload), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.payload)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Price != tt.want {
				t.Errorf("got %q, want %q", req.Price, tt.want)
			}
		})
	}
}

func TestUpdateRecipeRequest_AbsentVsEmpty(t *testing.T) {
	t.Parallel()

	var absent UpdateRecipeRequest
	if err := json.Unmarshal([]byte(`{"title":"Stew"}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.Tags != nil {
		t.Error("absent tags key should decode to nil slice")
	}

	var empty UpdateRecipeRequest
	if err := json.Unmarshal([]byte(`{"title":"Stew","tags":[]}`), &empty); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if empty.Tags == nil {
		t.Error("explicit empty tags should decode to non-nil slice")
	}
}

func TestToRecipeResponse_ImageURL(t *testing.T) {
	t.Parallel()

	recipe := &model.Recipe{
		ID:          "01HX0000000000000000000000",
		Title:       "Stew",
		TimeMinutes: 30,
		Price:       "9.50",
	}

	resp := ToRecipeResponse(recipe, "http://localhost:8080")
	if resp.Image != nil {
		t.Errorf("expected nil image, got %v", *resp.Image)
	}
	if resp.Tags == nil || resp.Ingredients == nil {
		t.Error("relation id slices should never be nil")
	}

	recipe.ImagePath = "uploads/recipe/abc.png"
	resp = ToRecipeResponse(recipe, "http://localhost:8080/")
	if resp.Image == nil {
		t.Fatal("expected image URL")
	}
	if *resp.Image != "http://localhost:8080/media/uploads/recipe/abc.png" {
		t.Errorf("unexpected image URL: %s", *resp.Image)
	}
}
