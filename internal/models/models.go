package models

import "time"

// DateLayout is the key format for daily logs and history entries
const DateLayout = "2006-01-02"

// Profile defaults for a fresh install
const (
	InitialWeight   = 68.0
	TargetWeight    = 75.0
	DailyWaterGoal  = 3000 // ml
	WaterIncrement  = 250  // ml per tap
	CreatineStep    = 1.0  // g per tap
	DefaultUserName = "User"
)

// RoutineID is one of the fixed routine codes
type RoutineID string

const (
	RoutineA RoutineID = "A"
	RoutineB RoutineID = "B"
	RoutineC RoutineID = "C"
	RoutineD RoutineID = "D"
	RoutineE RoutineID = "E"
)

// Role identifies the author of a chat message
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// UserProfile is the single owner of the tracker
type UserProfile struct {
	Name          string   `json:"name"`
	StartWeight   float64  `json:"startWeight"`
	CurrentWeight float64  `json:"currentWeight"`
	TargetWeight  float64  `json:"targetWeight"`
	Height        *float64 `json:"height,omitempty"`
}

// Start returns the weight progress is measured from. Profiles stored
// before the start weight was recorded began at InitialWeight.
func (p UserProfile) Start() float64 {
	if p.StartWeight > 0 {
		return p.StartWeight
	}
	return InitialWeight
}

// DefaultProfile returns the profile used before the user edits anything
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:          DefaultUserName,
		StartWeight:   InitialWeight,
		CurrentWeight: InitialWeight,
		TargetWeight:  TargetWeight,
	}
}

// Macros holds nutrition totals for a food item or a day
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Add returns the element-wise sum of two macro sets
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fats:     m.Fats + o.Fats,
	}
}

// FoodItem is a single logged food
type FoodItem struct {
	Name   string `json:"name"`
	Macros Macros `json:"macros"`
}

// DailyLog is the tracked state of one calendar day
type DailyLog struct {
	Date             string     `json:"date"`
	Meals            []FoodItem `json:"meals"`
	WaterIntake      int        `json:"waterIntake"`
	CreatineAmount   float64    `json:"creatineAmount"`
	WorkoutCompleted bool       `json:"workoutCompleted"`
	Weight           *float64   `json:"weight,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with l
func (l DailyLog) Clone() DailyLog {
	out := l
	out.Meals = append([]FoodItem(nil), l.Meals...)
	if out.Meals == nil {
		out.Meals = []FoodItem{}
	}
	if l.Weight != nil {
		w := *l.Weight
		out.Weight = &w
	}
	return out
}

// ExerciseHistoryEntry is a dated snapshot of an exercise's achieved load
type ExerciseHistoryEntry struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Reps   string  `json:"reps"`
}

// Exercise is a live prescription plus its dated history
type Exercise struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Sets          int                    `json:"sets"`
	Reps          string                 `json:"reps"`
	Weight        float64                `json:"weight"`
	Description   string                 `json:"description,omitempty"`
	TargetMuscles string                 `json:"targetMuscles,omitempty"`
	LastUpdated   int64                  `json:"lastUpdated,omitempty"`
	GifURL        string                 `json:"gifUrl,omitempty"`
	History       []ExerciseHistoryEntry `json:"history,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
}

// Clone returns a copy with its own history slice
func (e Exercise) Clone() Exercise {
	out := e
	if e.History != nil {
		out.History = append([]ExerciseHistoryEntry(nil), e.History...)
	}
	return out
}

// WorkoutRoutine is a named, ordered set of exercises
type WorkoutRoutine struct {
	ID        RoutineID  `json:"id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

// Clone returns a deep copy of the routine
func (r WorkoutRoutine) Clone() WorkoutRoutine {
	out := r
	out.Exercises = make([]Exercise, len(r.Exercises))
	for i, ex := range r.Exercises {
		out.Exercises[i] = ex.Clone()
	}
	return out
}

// ChatMessage is one turn of the coach transcript
type ChatMessage struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // unix millis
}

// EditingState maps a routine to the exercise currently open for editing.
// A routine with no entry is in the viewing state.
type EditingState map[RoutineID]string

// FormatDate formats t as a daily log key
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Float64 returns a pointer to v
func Float64(v float64) *float64 {
	return &v
}
