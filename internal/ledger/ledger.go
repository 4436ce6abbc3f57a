// Package ledger rolls food entries into daily nutrition totals.
package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/marcus/p75/internal/models"
)

// ValidationError reports malformed manual input. The log it was meant for
// is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AddItems appends items to the log's meals in order.
func AddItems(log models.DailyLog, items ...models.FoodItem) models.DailyLog {
	out := log.Clone()
	out.Meals = append(out.Meals, items...)
	return out
}

// RemoveItem removes the meal at index. An out-of-range index is a no-op.
func RemoveItem(log models.DailyLog, index int) models.DailyLog {
	out := log.Clone()
	if index < 0 || index >= len(out.Meals) {
		return out
	}
	out.Meals = append(out.Meals[:index], out.Meals[index+1:]...)
	return out
}

// Totals sums the macros of every meal in the log.
func Totals(log models.DailyLog) models.Macros {
	var total models.Macros
	for _, item := range log.Meals {
		total = total.Add(item.Macros)
	}
	return total
}

// NewManualItem builds a food item from manual entry. Name, calories and
// protein are required and must be non-negative numbers; carbs and fats are
// left at zero.
func NewManualItem(name, calories, protein string) (models.FoodItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.FoodItem{}, &ValidationError{Field: "name", Reason: "required"}
	}
	cals, err := parseAmount("calories", calories)
	if err != nil {
		return models.FoodItem{}, err
	}
	prot, err := parseAmount("protein", protein)
	if err != nil {
		return models.FoodItem{}, err
	}
	return models.FoodItem{
		Name:   name,
		Macros: models.Macros{Calories: cals, Protein: prot},
	}, nil
}

// Validate checks an item produced elsewhere (e.g. by the assistant) against
// the same rules as manual entry.
func Validate(item models.FoodItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	m := item.Macros
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"calories", m.Calories}, {"protein", m.Protein}, {"carbs", m.Carbs}, {"fats", m.Fats},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ValidationError{Field: f.name, Reason: "must be a non-negative number"}
		}
	}
	return nil
}

func parseAmount(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: field, Reason: "required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	if v < 0 {
		return 0, &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return v, nil
}
