package service

import (
	"github.com/pageza/grocerly/backend/internal/models"
)

// Serving bounds accepted by the scaling engine.
const (
	MinServings = 1
	MaxServings = 100
)

// ValidateServings reports whether n is an acceptable serving count.
func ValidateServings(n int) error {
	if n < MinServings || n > MaxServings {
		return invalidf("servings must be between %d and %d, got %d", MinServings, MaxServings, n)
	}
	return nil
}

// Rescale multiplies every line quantity of recipe by newServings/servings
// and stores the new serving count. The recipe is left untouched on error.
func Rescale(recipe *models.Recipe, newServings int) error {
	if err := checkScalable(recipe, newServings); err != nil {
		return err
	}
	applyScale(recipe, newServings)
	return nil
}

// RescaleAll rescales each recipe to newServings against its own prior
// servings. Recipes that cannot be scaled are left untouched and returned in
// skipped; an invalid newServings rejects the batch before any change.
func RescaleAll(recipes []*models.Recipe, newServings int) (skipped []*models.Recipe, err error) {
	if err := ValidateServings(newServings); err != nil {
		return nil, err
	}
	for _, r := range recipes {
		if err := Rescale(r, newServings); err != nil {
			skipped = append(skipped, r)
		}
	}
	return skipped, nil
}

func checkScalable(recipe *models.Recipe, newServings int) error {
	if err := ValidateServings(newServings); err != nil {
		return err
	}
	if recipe == nil {
		return invalidf("recipe is required")
	}
	if recipe.Servings < 1 {
		return ErrMissingServings
	}
	return nil
}

func applyScale(recipe *models.Recipe, newServings int) {
	if recipe.Servings == newServings {
		return
	}
	factor := float64(newServings) / float64(recipe.Servings)
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].Quantity *= factor
	}
	recipe.Servings = newServings
}
