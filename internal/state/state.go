// Package state defines the single persisted application document and the
// domain records it aggregates. Every list in AppState is append-only and
// insertion-ordered; the whole document is serialized as one JSON object.
package state

import (
	"strconv"
	"sync"
	"time"
)

// Behavior grade predicates (predikat nilai kelakuan).
const (
	BehaviorGradeA = "A"
	BehaviorGradeB = "B"
	BehaviorGradeC = "C"
	BehaviorGradeD = "D"
)

// Activity categories.
const (
	CategoryAkademik        = "Akademik"
	CategoryPerilaku        = "Perilaku"
	CategoryEkstrakurikuler = "Ekstrakurikuler"
)

// Reminder priorities.
const (
	PriorityRendah = "Rendah"
	PrioritySedang = "Sedang"
	PriorityTinggi = "Tinggi"
)

// Schedule is one timetable entry. Duplicates are allowed; there is no
// uniqueness constraint on any field.
type Schedule struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	Subject   string `json:"subject"`
	Time      string `json:"time"`
	ClassName string `json:"className"`
}

// Grade is one academic score for a student. Score is not bounds-checked;
// the model producing it is trusted.
type Grade struct {
	ID          string  `json:"id"`
	StudentName string  `json:"studentName"`
	Subject     string  `json:"subject"`
	Score       float64 `json:"score"`
}

// BehaviorRecord is a conduct note with a letter predicate (A-D).
type BehaviorRecord struct {
	ID          string `json:"id"`
	StudentName string `json:"studentName"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Activity is a categorized student activity note.
type Activity struct {
	ID          string `json:"id"`
	StudentName string `json:"studentName"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// Reminder is a task/agenda note. GoogleSynced is advisory only: no external
// calendar or task system is ever contacted.
type Reminder struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Date         string `json:"date"`
	Priority     string `json:"priority"`
	GoogleSynced bool   `json:"googleSynced"`
}

// ParentReport is a drafted progress summary intended for an external
// messaging channel. The system only prepares the text, it never sends it.
type ParentReport struct {
	ID          string `json:"id"`
	StudentName string `json:"studentName"`
	PhoneNumber string `json:"phoneNumber"`
	Content     string `json:"content"`
	Date        string `json:"date"`
}

// Contact is a parent phone-book entry. PhoneNumber is the dedup key:
// inserting a second contact with the same number is a no-op.
type Contact struct {
	ID          string `json:"id"`
	StudentName string `json:"studentName"`
	ParentName  string `json:"parentName"`
	PhoneNumber string `json:"phoneNumber"`
	ClassName   string `json:"className"`
}

// UserProfile is the session-scoped simulated login identity.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

// AppState is the sole persisted document. All lists must be non-nil after
// loading so older persisted documents missing newer keys stay usable.
type AppState struct {
	Schedules       []Schedule       `json:"schedules"`
	Grades          []Grade          `json:"grades"`
	BehaviorRecords []BehaviorRecord `json:"behaviorRecords"`
	Activities      []Activity       `json:"activities"`
	Reminders       []Reminder       `json:"reminders"`
	ParentReports   []ParentReport   `json:"parentReports"`
	Contacts        []Contact        `json:"contacts"`
	User            *UserProfile     `json:"user,omitempty"`
}

// Default returns a fresh AppState with every list initialized and empty.
func Default() AppState {
	return AppState{
		Schedules:       []Schedule{},
		Grades:          []Grade{},
		BehaviorRecords: []BehaviorRecord{},
		Activities:      []Activity{},
		Reminders:       []Reminder{},
		ParentReports:   []ParentReport{},
		Contacts:        []Contact{},
	}
}

// FillDefaults replaces nil lists with empty ones. Loading a document
// persisted by an older schema must never leave a list field nil.
func (s *AppState) FillDefaults() {
	if s.Schedules == nil {
		s.Schedules = []Schedule{}
	}
	if s.Grades == nil {
		s.Grades = []Grade{}
	}
	if s.BehaviorRecords == nil {
		s.BehaviorRecords = []BehaviorRecord{}
	}
	if s.Activities == nil {
		s.Activities = []Activity{}
	}
	if s.Reminders == nil {
		s.Reminders = []Reminder{}
	}
	if s.ParentReports == nil {
		s.ParentReports = []ParentReport{}
	}
	if s.Contacts == nil {
		s.Contacts = []Contact{}
	}
}

// HasContactPhone reports whether any existing contact already uses the
// given phone number.
func (s *AppState) HasContactPhone(phoneNumber string) bool {
	for _, c := range s.Contacts {
		if c.PhoneNumber == phoneNumber {
			return true
		}
	}
	return false
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID generates a synthetic record id from the current wall clock in
// milliseconds. Ids issued within the same millisecond are bumped past the
// last one handed out, so every record in a batch gets a distinct id while
// the value stays a numeric wall-clock-derived string.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}
