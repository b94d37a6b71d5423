// Package history maintains an append-only log of workout events and
// derives rolling-window statistics from it.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	DefaultMaxConsecutiveDays = 3
	DefaultWeeklyGoal         = 4
)

// workoutTypes is the closed set of recognized workout types.
var workoutTypes = []string{"strength", "yoga", "runs"}

var validate = validator.New()

type recordRequest struct {
	Type string `validate:"required,oneof=strength yoga runs"`
}

// Event is one recorded workout. Events are immutable once recorded
// and are never deleted.
type Event struct {
	Date time.Time `json:"date"`
	Type string    `json:"type"`
}

// RecordResult is the outcome of a RecordWorkout call.
type RecordResult struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
}

// Summary aggregates the rolling-window statistics for a caller.
type Summary struct {
	WeeklyCount                int                `json:"weekly_count"`
	WeeklyGoal                 int                `json:"weekly_goal"`
	WeeklyCompletionPercentage float64            `json:"weekly_completion_percentage"`
	ConsecutiveDays            int                `json:"consecutive_days"`
	MaxConsecutiveDays         int                `json:"max_consecutive_days"`
	Distribution               map[string]float64 `json:"distribution"`
	RestRecommended            bool               `json:"rest_recommended"`
}

// Store is a single-writer, file-persisted workout log. The full log
// is rewritten after every append under the store lock, so the
// in-memory list and the on-disk file never diverge after a successful
// RecordWorkout. Persistence failures are logged and swallowed; the
// in-memory state stays authoritative for the process lifetime.
type Store struct {
	mu                 sync.Mutex
	path               string
	events             []Event
	maxConsecutiveDays int
	weeklyGoal         int
	log                *zap.SugaredLogger
}

func NewStore(path string, maxConsecutiveDays, weeklyGoal int, log *zap.SugaredLogger) *Store {
	if maxConsecutiveDays <= 0 {
		maxConsecutiveDays = DefaultMaxConsecutiveDays
	}
	if weeklyGoal <= 0 {
		weeklyGoal = DefaultWeeklyGoal
	}
	s := &Store{
		path:               path,
		maxConsecutiveDays: maxConsecutiveDays,
		weeklyGoal:         weeklyGoal,
		log:                log,
	}
	s.load()
	return s
}

// RecordWorkout appends one event and persists the log. The workout
// type is enforced here, at the store boundary: an invalid type is
// rejected with an error status and the store is left untouched.
func (s *Store) RecordWorkout(workoutType string, at time.Time) RecordResult {
	if err := validate.Struct(recordRequest{Type: workoutType}); err != nil {
		return RecordResult{
			Status: "error",
			Message: fmt.Sprintf("Invalid workout type. Must be one of: %s",
				strings.Join(workoutTypes, ", ")),
			Warnings:        []string{},
			Recommendations: []string{},
		}
	}
	if at.IsZero() {
		at = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, Event{Date: at, Type: workoutType})
	if err := s.persistLocked(); err != nil {
		s.log.Errorw("failed to persist workout history", "path", s.path, "error", err)
	}

	result := RecordResult{
		Status:          "success",
		Message:         "Workout recorded successfully",
		Warnings:        []string{},
		Recommendations: []string{},
	}

	now := time.Now()
	if streak := s.consecutiveDaysLocked(now); streak >= s.maxConsecutiveDays {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"You've worked out %d days in a row. Consider taking a rest day.", streak))
	}
	if count := s.weeklyCountLocked(now); count >= s.weeklyGoal {
		result.Recommendations = append(result.Recommendations, fmt.Sprintf(
			"You've reached your weekly goal of %d workouts! Great job!", s.weeklyGoal))
	}
	return result
}

// ConsecutiveWorkoutDays returns the streak of calendar days with at
// least one event, walking backward from today and checking up to a
// week back. A day without an event breaks the streak; if today has no
// event the streak is 0.
func (s *Store) ConsecutiveWorkoutDays() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveDaysLocked(time.Now())
}

// WeeklyWorkoutCount returns the number of events in the trailing 7
// days, by exact timestamp delta.
func (s *Store) WeeklyWorkoutCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weeklyCountLocked(time.Now())
}

// Distribution returns the percentage share of each known workout type
// over the trailing 7 days. All three keys are always present; with no
// events every percentage is 0.
func (s *Store) Distribution() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.distributionLocked(time.Now())
}

// GetSummary reports the rolling-window statistics and the rest
// recommendation. RestRecommended depends only on the consecutive-day
// condition, independent of the weekly goal.
func (s *Store) GetSummary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	weeklyCount := s.weeklyCountLocked(now)
	consecutive := s.consecutiveDaysLocked(now)

	completion := float64(weeklyCount) / float64(s.weeklyGoal) * 100
	if completion > 100 {
		completion = 100
	}

	return Summary{
		WeeklyCount:                weeklyCount,
		WeeklyGoal:                 s.weeklyGoal,
		WeeklyCompletionPercentage: completion,
		ConsecutiveDays:            consecutive,
		MaxConsecutiveDays:         s.maxConsecutiveDays,
		Distribution:               s.distributionLocked(now),
		RestRecommended:            consecutive >= s.maxConsecutiveDays,
	}
}

// Len returns the number of recorded events.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func (s *Store) consecutiveDaysLocked(now time.Time) int {
	if len(s.events) == 0 {
		return 0
	}

	dates := make(map[string]bool, len(s.events))
	for _, e := range s.events {
		dates[e.Date.Format("2006-01-02")] = true
	}

	streak := 0
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		if !dates[day] {
			break
		}
		streak++
	}
	return streak
}

func (s *Store) weeklyCountLocked(now time.Time) int {
	cutoff := now.AddDate(0, 0, -7)
	count := 0
	for _, e := range s.events {
		if !e.Date.Before(cutoff) {
			count++
		}
	}
	return count
}

func (s *Store) distributionLocked(now time.Time) map[string]float64 {
	cutoff := now.AddDate(0, 0, -7)
	counts := make(map[string]int, len(workoutTypes))
	for _, t := range workoutTypes {
		counts[t] = 0
	}

	total := 0
	for _, e := range s.events {
		if e.Date.Before(cutoff) {
			continue
		}
		if _, known := counts[e.Type]; known {
			counts[e.Type]++
			total++
		}
	}

	dist := make(map[string]float64, len(counts))
	for t, c := range counts {
		if total > 0 {
			dist[t] = float64(c) / float64(total) * 100
		} else {
			dist[t] = 0
		}
	}
	return dist
}

// historyFile is the on-disk shape. Unknown extra fields in the file
// are ignored on load.
type historyFile struct {
	Workouts []eventRecord `json:"workouts"`
}

type eventRecord struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Infow("no workout history file, starting empty", "path", s.path)
			return
		}
		s.log.Errorw("failed to read workout history, starting empty", "path", s.path, "error", err)
		return
	}

	var file historyFile
	if err := json.Unmarshal(data, &file); err != nil {
		s.log.Errorw("failed to parse workout history, starting empty", "path", s.path, "error", err)
		return
	}

	events := make([]Event, 0, len(file.Workouts))
	for _, rec := range file.Workouts {
		date, err := parseTimestamp(rec.Date)
		if err != nil {
			s.log.Warnw("skipping workout record with bad timestamp", "date", rec.Date, "error", err)
			continue
		}
		events = append(events, Event{Date: date, Type: rec.Type})
	}
	s.events = events
	s.log.Infow("loaded workout history", "path", s.path, "records", len(events))
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	// Tolerate zone-less timestamps from older history files.
	return time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.Local)
}

// persistLocked rewrites the full log atomically (temp file + rename).
func (s *Store) persistLocked() error {
	file := historyFile{Workouts: make([]eventRecord, len(s.events))}
	for i, e := range s.events {
		file.Workouts[i] = eventRecord{
			Date: e.Date.Format(time.RFC3339),
			Type: e.Type,
		}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
