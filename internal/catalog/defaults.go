package catalog

import "github.com/marcus/p75/internal/models"

const gifBase = "https://placehold.co/600x400/171717/eab308?text="

// Defaults returns the bundled catalog used when no workouts are stored.
func Defaults() []models.WorkoutRoutine {
	return []models.WorkoutRoutine{
		{
			ID:   models.RoutineA,
			Name: "Push (Chest/Shoulders/Triceps)",
			Exercises: []models.Exercise{
				{ID: "a1", Name: "Incline Dumbbell Press", Sets: 4, Reps: "8-12", Weight: 20,
					Description:   "Set the bench to 30-45 degrees. Keep elbows about 45 degrees from the torso. Lower under control to the chest and press explosively.",
					TargetMuscles: "Upper Chest", GifURL: gifBase + "INCLINE+PRESS"},
				{ID: "a2", Name: "Barbell Bench Press", Sets: 3, Reps: "8-10", Weight: 60,
					Description:   "Grip slightly wider than the shoulders. Lower the bar to nipple line with feet planted and shoulder blades retracted.",
					TargetMuscles: "Chest", GifURL: gifBase + "BENCH+PRESS"},
				{ID: "a3", Name: "Lateral Raise", Sets: 4, Reps: "12-15", Weight: 10,
					Description:   "Raise the arms to shoulder height with a slight elbow bend. No momentum from the back.",
					TargetMuscles: "Lateral Delts", GifURL: gifBase + "LATERAL+RAISE"},
				{ID: "a4", Name: "Rope Triceps Pushdown", Sets: 3, Reps: "12-15", Weight: 25,
					Description:   "Elbows pinned to the sides. Extend fully and spread the rope at the bottom.",
					TargetMuscles: "Triceps", GifURL: gifBase + "ROPE+PUSHDOWN"},
			},
		},
		{
			ID:   models.RoutineB,
			Name: "Pull (Back/Biceps)",
			Exercises: []models.Exercise{
				{ID: "b1", Name: "Pull-up", Sets: 4, Reps: "Failure", Weight: 0,
					Description:   "Hang with a pronated grip. Pull until the chin clears the bar and control the descent.",
					TargetMuscles: "Lats", GifURL: gifBase + "PULL+UP"},
				{ID: "b2", Name: "Bent-over Row", Sets: 3, Reps: "8-12", Weight: 50,
					Description:   "Hinge until the torso is almost parallel to the floor, spine neutral. Pull the bar to the navel.",
					TargetMuscles: "Back", GifURL: gifBase + "BENT+OVER+ROW"},
				{ID: "b3", Name: "Face Pull", Sets: 3, Reps: "15-20", Weight: 20,
					Description:   "Pull the rope toward the forehead, separating the hands and rotating the shoulders out.",
					TargetMuscles: "Rear Delts", GifURL: gifBase + "FACE+PULL"},
				{ID: "b4", Name: "Hammer Curl", Sets: 3, Reps: "10-12", Weight: 14,
					Description:   "Neutral grip. Curl without swinging the torso.",
					TargetMuscles: "Biceps", GifURL: gifBase + "HAMMER+CURL"},
			},
		},
		{
			ID:   models.RoutineC,
			Name: "Legs (Quad Focus)",
			Exercises: []models.Exercise{
				{ID: "c1", Name: "Back Squat", Sets: 4, Reps: "6-10", Weight: 80,
					Description:   "Feet shoulder width. Sit the hips back and push the knees out. Keep the chest up.",
					TargetMuscles: "Quads", GifURL: gifBase + "SQUAT"},
				{ID: "c2", Name: "Leg Extension", Sets: 3, Reps: "12-15", Weight: 40,
					Description:   "Align the knee with the machine axis. Extend fully and hold one second at the top.",
					TargetMuscles: "Quads", GifURL: gifBase + "LEG+EXTENSION"},
				{ID: "c3", Name: "Walking Lunge", Sets: 3, Reps: "10-12", Weight: 15,
					Description:   "Take a long step and lower until the back knee nearly touches the floor. Torso upright.",
					TargetMuscles: "Quads", GifURL: gifBase + "LUNGE"},
				{ID: "c4", Name: "Standing Calf Raise", Sets: 4, Reps: "15-20", Weight: 60,
					Description:   "Rise as high as possible on the toes and lower into a full stretch.",
					TargetMuscles: "Calves", GifURL: gifBase + "CALF+RAISE"},
			},
		},
		{
			ID:   models.RoutineD,
			Name: "Upper (Hypertrophy)",
			Exercises: []models.Exercise{
				{ID: "d1", Name: "Overhead Press", Sets: 3, Reps: "8-12", Weight: 40,
					Description:   "Press the bar overhead to lockout without over-arching the lower back.",
					TargetMuscles: "Shoulders", GifURL: gifBase + "OVERHEAD+PRESS"},
				{ID: "d2", Name: "Lat Pulldown", Sets: 3, Reps: "10-12", Weight: 50,
					Description:   "Pull the bar to the upper chest, driving the elbows toward the back pockets.",
					TargetMuscles: "Back", GifURL: gifBase + "LAT+PULLDOWN"},
				{ID: "d3", Name: "Incline Dumbbell Fly", Sets: 3, Reps: "12-15", Weight: 12,
					Description:   "Open the arms in a wide arc, stretch the chest, and squeeze on the way up.",
					TargetMuscles: "Upper Chest", GifURL: gifBase + "INCLINE+FLY"},
				{ID: "d4", Name: "Barbell Curl", Sets: 3, Reps: "10-12", Weight: 30,
					Description:   "Elbows fixed at the sides. Curl to full contraction and lower under control.",
					TargetMuscles: "Biceps", GifURL: gifBase + "BARBELL+CURL"},
			},
		},
		{
			ID:   models.RoutineE,
			Name: "Legs (Glutes/Hamstrings)",
			Exercises: []models.Exercise{
				{ID: "e1", Name: "Romanian Deadlift", Sets: 4, Reps: "8-10", Weight: 90,
					Description:   "Hip-width stance. Slide the bar down the legs pushing the hips back with a flat back.",
					TargetMuscles: "Hamstrings", GifURL: gifBase + "RDL"},
				{ID: "e2", Name: "Lying Leg Curl", Sets: 3, Reps: "12-15", Weight: 35,
					Description:   "Curl the pad toward the glutes without lifting the hips off the bench.",
					TargetMuscles: "Hamstrings", GifURL: gifBase + "LEG+CURL"},
				{ID: "e3", Name: "Bulgarian Split Squat", Sets: 3, Reps: "10-12", Weight: 15,
					Description:   "Rear foot on a bench. Lower until the front thigh is parallel, leaning slightly forward.",
					TargetMuscles: "Glutes", GifURL: gifBase + "BULGARIAN"},
			},
		},
	}
}

var library = []Definition{
	// chest
	{Name: "Incline Dumbbell Press", TargetMuscles: "Upper Chest", Description: "Bench at 30-45 degrees. Elbows at 45 degrees to the torso.", GifURL: gifBase + "INCLINE+PRESS"},
	{Name: "Barbell Bench Press", TargetMuscles: "Chest", Description: "Grip slightly wider than the shoulders. Lower to nipple line.", GifURL: gifBase + "BENCH+PRESS"},
	{Name: "Incline Dumbbell Fly", TargetMuscles: "Upper Chest", Description: "Open the arms to stretch the chest with elbows slightly bent.", GifURL: gifBase + "INCLINE+FLY"},
	{Name: "High Cable Crossover", TargetMuscles: "Lower Chest", Description: "Pull the handles down toward the hips.", GifURL: gifBase + "CROSSOVER"},
	// back
	{Name: "Pull-up", TargetMuscles: "Lats", Description: "Pull until the chin clears the bar.", GifURL: gifBase + "PULL+UP"},
	{Name: "Lat Pulldown", TargetMuscles: "Back", Description: "Pull the bar to the upper chest.", GifURL: gifBase + "LAT+PULLDOWN"},
	{Name: "Bent-over Row", TargetMuscles: "Back", Description: "Torso hinged, spine straight. Pull the bar to the navel.", GifURL: gifBase + "BENT+OVER+ROW"},
	{Name: "One-arm Dumbbell Row", TargetMuscles: "Back", Description: "Brace on a bench and row the dumbbell close to the body.", GifURL: gifBase + "DB+ROW"},
	// shoulders
	{Name: "Overhead Press", TargetMuscles: "Shoulders", Description: "Press the bar overhead.", GifURL: gifBase + "OVERHEAD+PRESS"},
	{Name: "Lateral Raise", TargetMuscles: "Lateral Delts", Description: "Raise the arms to shoulder height.", GifURL: gifBase + "LATERAL+RAISE"},
	{Name: "Face Pull", TargetMuscles: "Rear Delts", Description: "Pull the rope toward the forehead.", GifURL: gifBase + "FACE+PULL"},
	// legs
	{Name: "Back Squat", TargetMuscles: "Quads, Glutes", Description: "Sit the hips back and down.", GifURL: gifBase + "SQUAT"},
	{Name: "45-degree Leg Press", TargetMuscles: "Quads", Description: "Press the platform without locking the knees.", GifURL: gifBase + "LEG+PRESS"},
	{Name: "Leg Extension", TargetMuscles: "Quads", Description: "Extend the knees completely.", GifURL: gifBase + "LEG+EXTENSION"},
	{Name: "Romanian Deadlift", TargetMuscles: "Hamstrings", Description: "Slide the bar down the legs, hips back.", GifURL: gifBase + "RDL"},
	{Name: "Lying Leg Curl", TargetMuscles: "Hamstrings", Description: "Curl the pad toward the glutes.", GifURL: gifBase + "LEG+CURL"},
	// arms
	{Name: "Barbell Curl", TargetMuscles: "Biceps", Description: "Curl without swinging the body.", GifURL: gifBase + "BARBELL+CURL"},
	{Name: "Rope Triceps Pushdown", TargetMuscles: "Triceps", Description: "Extend the elbows and spread the rope at the bottom.", GifURL: gifBase + "ROPE+PUSHDOWN"},
	{Name: "Skull Crusher", TargetMuscles: "Triceps", Description: "Lower the bar toward the forehead.", GifURL: gifBase + "SKULL+CRUSHER"},
}

// Library returns the bundled exercise definitions available for manual
// swaps and additions.
func Library() []Definition {
	return append([]Definition(nil), library...)
}

// LookupLibrary finds a library definition by exact name
func LookupLibrary(name string) (Definition, bool) {
	for _, def := range library {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}
