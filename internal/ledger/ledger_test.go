package ledger

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/marcus/p75/internal/models"
)

func randomMeals(n int) []models.FoodItem {
	meals := make([]models.FoodItem, n)
	for i := range meals {
		meals[i] = models.FoodItem{
			Name: gofakeit.Dinner(),
			Macros: models.Macros{
				Calories: float64(gofakeit.Number(0, 900)),
				Protein:  float64(gofakeit.Number(0, 60)),
				Carbs:    float64(gofakeit.Number(0, 120)),
				Fats:     float64(gofakeit.Number(0, 40)),
			},
		}
	}
	return meals
}

func TestTotalsEmptyLog(t *testing.T) {
	got := Totals(models.DailyLog{Date: "2024-01-01"})
	if got != (models.Macros{}) {
		t.Errorf("Totals(empty) = %+v, want zero", got)
	}
}

func TestTotalsSumsAllMacros(t *testing.T) {
	log := models.DailyLog{Meals: []models.FoodItem{
		{Name: "eggs", Macros: models.Macros{Calories: 150, Protein: 12, Carbs: 1, Fats: 10}},
		{Name: "rice", Macros: models.Macros{Calories: 200, Protein: 4, Carbs: 44, Fats: 0.5}},
	}}
	got := Totals(log)
	want := models.Macros{Calories: 350, Protein: 16, Carbs: 45, Fats: 10.5}
	if got != want {
		t.Errorf("Totals = %+v, want %+v", got, want)
	}
}

func TestTotalsInvariantUnderPermutation(t *testing.T) {
	gofakeit.Seed(42)
	meals := randomMeals(25)
	base := Totals(models.DailyLog{Meals: meals})

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.FoodItem(nil), meals...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := Totals(models.DailyLog{Meals: shuffled})
		// integer-valued macros sum exactly in any order
		if got != base {
			t.Fatalf("permutation %d: Totals = %+v, want %+v", i, got, base)
		}
	}
}

func TestAddItemsAppendsInOrder(t *testing.T) {
	log := models.DailyLog{Date: "2024-01-01", Meals: []models.FoodItem{{Name: "a"}}}
	out := AddItems(log, models.FoodItem{Name: "b"}, models.FoodItem{Name: "c"})

	if len(out.Meals) != 3 {
		t.Fatalf("len(meals) = %d, want 3", len(out.Meals))
	}
	for i, name := range []string{"a", "b", "c"} {
		if out.Meals[i].Name != name {
			t.Errorf("meals[%d] = %q, want %q", i, out.Meals[i].Name, name)
		}
	}
	if len(log.Meals) != 1 {
		t.Errorf("input log mutated: %d meals", len(log.Meals))
	}
}

func TestRemoveItem(t *testing.T) {
	log := models.DailyLog{Meals: []models.FoodItem{{Name: "a"}, {Name: "b"}, {Name: "c"}}}

	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"first", 0, []string{"b", "c"}},
		{"middle", 1, []string{"a", "c"}},
		{"last", 2, []string{"a", "b"}},
		{"out of range", 3, []string{"a", "b", "c"}},
		{"negative", -1, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RemoveItem(log, tt.index)
			if len(out.Meals) != len(tt.want) {
				t.Fatalf("len(meals) = %d, want %d", len(out.Meals), len(tt.want))
			}
			for i, name := range tt.want {
				if out.Meals[i].Name != name {
					t.Errorf("meals[%d] = %q, want %q", i, out.Meals[i].Name, name)
				}
			}
			if len(log.Meals) != 3 {
				t.Errorf("input log mutated")
			}
		})
	}
}

func TestNewManualItem(t *testing.T) {
	tests := []struct {
		name, food, cals, prot string
		wantField              string
	}{
		{"valid", "Chicken", "300", "40", ""},
		{"decimal", "Whey", "120.5", "24.5", ""},
		{"missing name", " ", "300", "40", "name"},
		{"missing calories", "Chicken", "", "40", "calories"},
		{"missing protein", "Chicken", "300", "", "protein"},
		{"non numeric calories", "Chicken", "lots", "40", "calories"},
		{"non numeric protein", "Chicken", "300", "NaN", "protein"},
		{"negative protein", "Chicken", "300", "-1", "protein"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewManualItem(tt.food, tt.cals, tt.prot)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if item.Macros.Carbs != 0 || item.Macros.Fats != 0 {
					t.Errorf("manual items carry no carbs/fats, got %+v", item.Macros)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateRejectsNegativeMacros(t *testing.T) {
	err := Validate(models.FoodItem{Name: "x", Macros: models.Macros{Fats: -2}})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "fats" {
		t.Errorf("Validate = %v, want fats ValidationError", err)
	}
	if err := Validate(models.FoodItem{Name: "x"}); err != nil {
		t.Errorf("Validate(zero macros) = %v", err)
	}
}

func TestValidateReportsFirstInvalidMacroInOrder(t *testing.T) {
	item := models.FoodItem{Name: "x", Macros: models.Macros{Calories: -1, Protein: math.NaN(), Carbs: -3, Fats: math.Inf(1)}}
	for i := 0; i < 20; i++ {
		var verr *ValidationError
		if err := Validate(item); !errors.As(err, &verr) || verr.Field != "calories" {
			t.Fatalf("run %d: Validate = %v, want calories ValidationError", i, err)
		}
	}

	item.Macros.Calories = 100
	var verr *ValidationError
	if err := Validate(item); !errors.As(err, &verr) || verr.Field != "protein" {
		t.Errorf("Validate = %v, want protein ValidationError", err)
	}
}
