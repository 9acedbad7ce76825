package domain

import (
	"errors"
	"testing"
)

func TestRecipeInputValidate(t *testing.T) {
	ok := []Ingredient{{Name: "Water", Quantity: "1L"}}
	tests := []struct {
		name    string
		in      RecipeInput
		wantErr bool
	}{
		{"valid", RecipeInput{Title: "Soup", Ingredients: ok}, false},
		{"optional ingredient", RecipeInput{Ingredients: []Ingredient{{Name: "Salt", Quantity: "pinch", Optional: true}}}, false},
		{"missing title is not an ingredient error", RecipeInput{Ingredients: ok}, false},
		{"nil ingredients", RecipeInput{Title: "Soup"}, true},
		{"empty ingredients", RecipeInput{Title: "Soup", Ingredients: []Ingredient{}}, true},
		{"no name", RecipeInput{Ingredients: []Ingredient{{Quantity: "1L"}}}, true},
		{"no quantity", RecipeInput{Ingredients: []Ingredient{{Name: "Water"}}}, true},
		{"whitespace name is present", RecipeInput{Ingredients: []Ingredient{{Name: " ", Quantity: "1L"}}}, false},
		{"whitespace quantity is present", RecipeInput{Ingredients: []Ingredient{{Name: "Water", Quantity: " "}}}, false},
		{"second element bad", RecipeInput{Ingredients: append(ok, Ingredient{Name: "Salt"})}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRecipeApply(t *testing.T) {
	r := Recipe{ID: "r1", UserID: "u1", Title: "Old"}
	r.Apply(RecipeInput{
		Title:        "New",
		Ingredients:  []Ingredient{{Name: "Rice", Quantity: "200g"}},
		Instructions: "Cook",
		Image:        "http://x/rice.jpg",
	})
	if r.Title != "New" || len(r.Ingredients) != 1 || r.Instructions != "Cook" || r.Image != "http://x/rice.jpg" {
		t.Errorf("Apply() left %+v", r)
	}
	if r.ID != "r1" || r.UserID != "u1" {
		t.Errorf("Apply() changed identity: %+v", r)
	}
}
