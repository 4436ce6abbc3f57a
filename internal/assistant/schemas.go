package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/invopop/jsonschema"
)

// ErrSchemaMismatch is returned when a model reply does not match the
// requested schema
var ErrSchemaMismatch = errors.New("response does not match schema")

func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// Wire shapes. Pointer fields distinguish a missing value from a zero one.

type mealItemReply struct {
	Name     *string  `json:"name" jsonschema_description:"Food name as the user wrote it"`
	Calories *float64 `json:"calories" jsonschema_description:"Estimated kcal"`
	Protein  *float64 `json:"protein" jsonschema_description:"Grams of protein"`
	Carbs    *float64 `json:"carbs" jsonschema_description:"Grams of carbohydrate"`
	Fats     *float64 `json:"fats" jsonschema_description:"Grams of fat"`
}

type mealReply struct {
	Items []mealItemReply `json:"items"`
}

type alternativeReply struct {
	Name        *string `json:"name"`
	Description *string `json:"description" jsonschema_description:"One short sentence"`
}

type newExerciseReply struct {
	Name          *string `json:"name"`
	Description   *string `json:"description" jsonschema_description:"One short sentence"`
	TargetMuscles *string `json:"targetMuscles"`
	Sets          *int    `json:"sets" jsonschema:"minimum=1"`
	Reps          *string `json:"reps" jsonschema_description:"Rep range such as 10-12"`
}

var (
	mealSchema        = GenerateSchema[mealReply]()
	alternativeSchema = GenerateSchema[alternativeReply]()
	newExerciseSchema = GenerateSchema[newExerciseReply]()
)

type validator interface {
	validate() error
}

// decodeStrict decodes a single JSON document, rejecting unknown fields,
// trailing data, and missing or invalid required fields
func decodeStrict[T any, PT interface {
	*T
	validator
}](content string) (*T, error) {
	content = cleanJSON(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty response", ErrSchemaMismatch)
	}

	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()
	out := new(T)
	if err := dec.Decode(out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrSchemaMismatch)
	}
	if err := PT(out).validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return out, nil
}

// cleanJSON strips a markdown code fence some models wrap replies in
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func requireString(field string, v *string) error {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func requireAmount(field string, v *float64) error {
	if v == nil {
		return fmt.Errorf("%s is required", field)
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return fmt.Errorf("%s must be a non-negative number", field)
	}
	return nil
}

func (r *mealReply) validate() error {
	if r.Items == nil {
		return errors.New("items is required")
	}
	for i, item := range r.Items {
		if err := errors.Join(
			requireString("name", item.Name),
			requireAmount("calories", item.Calories),
			requireAmount("protein", item.Protein),
			requireAmount("carbs", item.Carbs),
			requireAmount("fats", item.Fats),
		); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return nil
}

func (r *alternativeReply) validate() error {
	return errors.Join(
		requireString("name", r.Name),
		requireString("description", r.Description),
	)
}

func (r *newExerciseReply) validate() error {
	err := errors.Join(
		requireString("name", r.Name),
		requireString("description", r.Description),
		requireString("targetMuscles", r.TargetMuscles),
		requireString("reps", r.Reps),
	)
	if r.Sets == nil || *r.Sets <= 0 {
		err = errors.Join(err, errors.New("sets must be a positive integer"))
	}
	return err
}
