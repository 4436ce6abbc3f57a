package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/marcus/p75/internal/assistant"
	"github.com/marcus/p75/internal/db"
	"github.com/marcus/p75/internal/ledger"
	"github.com/marcus/p75/internal/models"
	"github.com/marcus/p75/internal/output"
	"github.com/marcus/p75/internal/progress"
	"github.com/marcus/p75/internal/session"
	"github.com/marcus/p75/internal/workflow"
)

func TestResolveDataDir(t *testing.T) {
	home := "/home/u"
	tests := []struct {
		name      string
		flag, env string
		want      string
	}{
		{"default", "", "", filepath.Join(home, ".p75")},
		{"env", "", "/data/p75", "/data/p75"},
		{"flag wins over env", "/tmp/x", "/data/p75", "/tmp/x"},
		{"tilde", "~/fit", "", filepath.Join(home, "fit")},
		{"bare tilde", "", "~", home},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveDataDir(tt.flag, tt.env, home); got != tt.want {
				t.Errorf("resolveDataDir(%q, %q) = %q, want %q", tt.flag, tt.env, got, tt.want)
			}
		})
	}
}

func TestParseRoutine(t *testing.T) {
	for _, in := range []string{"a", "A", " c ", "e"} {
		if _, err := parseRoutine(in); err != nil {
			t.Errorf("parseRoutine(%q) error: %v", in, err)
		}
	}
	got, _ := parseRoutine("d")
	if got != models.RoutineD {
		t.Errorf("parseRoutine(d) = %s", got)
	}
	for _, in := range []string{"", "F", "AB"} {
		if _, err := parseRoutine(in); !errors.Is(err, errNotFound) {
			t.Errorf("parseRoutine(%q) = %v, want not found", in, err)
		}
	}
}

func TestParseDelta(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"+1", 1, false},
		{"-1", -1, false},
		{"5", 5, false},
		{"2.5", 2.5, false},
		{"0", 0, true},
		{"lots", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDelta(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseDelta(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParseKg(t *testing.T) {
	if kg, err := parseKg("69.4"); err != nil || kg != 69.4 {
		t.Errorf("parseKg(69.4) = %v, %v", kg, err)
	}
	for _, in := range []string{"0", "-3", "heavy"} {
		if _, err := parseKg(in); !errors.Is(err, session.ErrInvalidWeight) {
			t.Errorf("parseKg(%q) = %v", in, err)
		}
	}
}

func TestSplitGlobalFlags(t *testing.T) {
	oldDir, oldVerbose := dirFlag, verboseFlag
	t.Cleanup(func() { dirFlag, verboseFlag = oldDir, oldVerbose })
	dirFlag, verboseFlag = "", false

	rest, help, err := splitGlobalFlags([]string{"--dir", "/tmp/p", "-1", "-v"})
	if err != nil || help {
		t.Fatalf("splitGlobalFlags: help=%v err=%v", help, err)
	}
	if len(rest) != 1 || rest[0] != "-1" {
		t.Errorf("rest = %v, want [-1]", rest)
	}
	if dirFlag != "/tmp/p" || !verboseFlag {
		t.Errorf("dirFlag=%q verbose=%v", dirFlag, verboseFlag)
	}

	if _, help, _ := splitGlobalFlags([]string{"--dir=/x", "--help"}); !help || dirFlag != "/x" {
		t.Errorf("help=%v dirFlag=%q", help, dirFlag)
	}
	if _, _, err := splitGlobalFlags([]string{"--dir"}); err == nil {
		t.Error("expected error for --dir without value")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{workflow.ErrNotEditing, output.ErrCodeNotEditing},
		{fmt.Errorf("a1: %w", workflow.ErrNotEditing), output.ErrCodeNotEditing},
		{&ledger.ValidationError{Field: "calories", Reason: "required"}, output.ErrCodeInvalidInput},
		{&workflow.FieldError{Field: "sets", Reason: "must be greater than zero"}, output.ErrCodeInvalidInput},
		{session.ErrInvalidWeight, output.ErrCodeInvalidInput},
		{session.ErrNoSuggestion, output.ErrCodeAIUnavailable},
		{db.ErrNotInitialized, output.ErrCodeNotFound},
		{fmt.Errorf("exercise %q: %w", "zz", errNotFound), output.ErrCodeNotFound},
		{errors.New("disk I/O error"), output.ErrCodeDatabaseError},
	}
	for _, tt := range tests {
		if got := errorCode(tt.err); got != tt.want {
			t.Errorf("errorCode(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestBuildExport(t *testing.T) {
	dir := t.TempDir()
	database, err := db.Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer database.Close()

	sess, err := session.Load(database)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	sess.AddWater(1)
	if err := sess.Err(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	doc, err := buildExport(database)
	if err != nil {
		t.Fatalf("buildExport failed: %v", err)
	}
	if doc.SchemaVersion != db.SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", doc.SchemaVersion, db.SchemaVersion)
	}
	if _, ok := doc.Data[db.KeyLogs]; !ok {
		t.Errorf("export missing %q: %v", db.KeyLogs, doc.Data)
	}
	if _, ok := doc.Data[db.KeyWorkouts]; ok {
		t.Error("untouched workouts should not be stored")
	}
	if doc.UpdatedAt[db.KeyLogs].IsZero() {
		t.Error("UpdatedAt not set")
	}
}

// TestInitThenWater runs the CLI end to end against a temp data dir
func TestInitThenWater(t *testing.T) {
	dir := t.TempDir()

	rootCmd.SetArgs([]string{"--dir", dir, "init"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}
	rootCmd.SetArgs([]string{"--dir", dir, "water", "--taps", "2"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("water: %v", err)
	}
	rootCmd.SetArgs(nil)

	database, err := db.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	var workouts []models.WorkoutRoutine
	if ok, err := database.Get(db.KeyWorkouts, &workouts); !ok || err != nil {
		t.Fatalf("workouts not seeded: ok=%v err=%v", ok, err)
	}
	if len(workouts) != 5 {
		t.Errorf("len(workouts) = %d, want 5", len(workouts))
	}

	var logs map[string]models.DailyLog
	if _, err := database.Get(db.KeyLogs, &logs); err != nil {
		t.Fatalf("Get logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("len(logs) = %d, want 1", len(logs))
	}
	for _, l := range logs {
		if l.WaterIntake != 2*models.WaterIncrement {
			t.Errorf("WaterIntake = %d, want %d", l.WaterIntake, 2*models.WaterIncrement)
		}
	}
}

func TestCommandsRequireInit(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"--dir", dir, "today"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); !errors.Is(err, db.ErrNotInitialized) {
		t.Errorf("today before init = %v, want ErrNotInitialized", err)
	}
}

func TestReadBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	b := readBuildInfo("", info)
	if b.Version != "dev" || b.Revision != "0123456789ab" || !b.Dirty {
		t.Errorf("readBuildInfo = %+v", b)
	}
	if !strings.Contains(b.String(), "dev (0123456789ab, dirty)") {
		t.Errorf("String() = %q", b.String())
	}

	if got := readBuildInfo("v1.4.0", info).Version; got != "v1.4.0" {
		t.Errorf("stamped version = %q", got)
	}
	info.Main.Version = "v1.3.0"
	if got := readBuildInfo("", info).Version; got != "v1.3.0" {
		t.Errorf("module version = %q", got)
	}
	if got := readBuildInfo("", nil).Version; got != "dev" {
		t.Errorf("no build info = %q", got)
	}
}

func TestProgressReportReusedAcrossRuns(t *testing.T) {
	oldBase := baseDir
	t.Cleanup(func() { baseDir = oldBase })
	baseDir = t.TempDir()

	run := func() (progress.Report, progress.MemoStats) {
		a, err := openApp(true)
		if err != nil {
			t.Fatalf("openApp failed: %v", err)
		}
		defer a.Close()
		report := a.sess.Progress("a1")
		return report, a.memo.Stats()
	}

	first, stats := run()
	if stats.Misses != 1 || stats.StoredHits != 0 {
		t.Fatalf("first run stats = %+v, want one miss", stats)
	}
	second, stats := run()
	if stats.StoredHits != 1 || stats.Misses != 0 {
		t.Errorf("second run stats = %+v, want one stored hit", stats)
	}
	if first.GoalPercent != second.GoalPercent || len(first.Volume) != len(second.Volume) {
		t.Errorf("reports differ: %+v vs %+v", first, second)
	}
}

// emptyCoach is reachable but never recognizes anything
type emptyCoach struct{ assistant.Disabled }

func (emptyCoach) Enabled() bool { return true }

func TestScanMealWithNothingRecognizedIsNoop(t *testing.T) {
	database, err := db.Initialize(t.TempDir())
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer database.Close()

	sess, err := session.Load(database, session.WithCollaborator(emptyCoach{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	a := &app{db: database, sess: sess}

	if err := scanMeal(context.Background(), a, "???", true); err != nil {
		t.Fatalf("scanMeal = %v, want nil", err)
	}
	if meals := sess.TodayLog().Meals; len(meals) != 0 {
		t.Errorf("meals = %v, want none", meals)
	}
	var logs map[string]models.DailyLog
	if ok, _ := database.Get(db.KeyLogs, &logs); ok {
		t.Errorf("logs stored after an empty scan: %v", logs)
	}
}

func TestCheckSwapArgs(t *testing.T) {
	if err := checkSwapArgs([]string{"a1", "Dumbbell Fly"}, true); err == nil {
		t.Error("NAME with --ai should be rejected")
	}
	for _, tt := range []struct {
		args  []string
		useAI bool
	}{
		{[]string{"a1"}, true},
		{[]string{"a1", "Dumbbell Fly"}, false},
		{[]string{"a1"}, false},
	} {
		if err := checkSwapArgs(tt.args, tt.useAI); err != nil {
			t.Errorf("checkSwapArgs(%v, %v) = %v", tt.args, tt.useAI, err)
		}
	}
}
