package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/gurumate/gurumate/internal/tools"
)

// Mutation is the closed set of state changes a tool call can request.
// Every known tool-call name maps to exactly one variant; the dispatcher
// switches over them exhaustively, so adding a tool means adding a variant
// here and a case there, checked at compile time.
type Mutation interface {
	isMutation()
	validate() error
}

type AddSchedule struct {
	Day       string `json:"day"`
	Subject   string `json:"subject"`
	Time      string `json:"time"`
	ClassName string `json:"className"`
}

type AddGrade struct {
	StudentName string  `json:"studentName"`
	Subject     string  `json:"subject"`
	Score       float64 `json:"score"`
}

type AddBehaviorRecord struct {
	StudentName string `json:"studentName"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type AddActivity struct {
	StudentName string `json:"studentName"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

type AddReminder struct {
	Text     string `json:"text"`
	Date     string `json:"date"`
	Priority string `json:"priority"`
}

type GenerateParentReport struct {
	StudentName string `json:"studentName"`
	PhoneNumber string `json:"phoneNumber"`
	Content     string `json:"content"`
}

type SyncContacts struct {
	StudentName string `json:"studentName"`
	ParentName  string `json:"parentName"`
	PhoneNumber string `json:"phoneNumber"`
	ClassName   string `json:"className"`
}

func (AddSchedule) isMutation()          {}
func (AddGrade) isMutation()             {}
func (AddBehaviorRecord) isMutation()    {}
func (AddActivity) isMutation()          {}
func (AddReminder) isMutation()          {}
func (GenerateParentReport) isMutation() {}
func (SyncContacts) isMutation()         {}

func (m AddSchedule) validate() error {
	return requireAll(map[string]string{
		"day": m.Day, "subject": m.Subject, "time": m.Time, "className": m.ClassName,
	})
}

func (m AddGrade) validate() error {
	// Score has no bounds and zero is a legal score; only names are required.
	return requireAll(map[string]string{
		"studentName": m.StudentName, "subject": m.Subject,
	})
}

func (m AddBehaviorRecord) validate() error {
	return requireAll(map[string]string{
		"studentName": m.StudentName, "grade": m.Grade,
		"description": m.Description, "date": m.Date,
	})
}

func (m AddActivity) validate() error {
	return requireAll(map[string]string{
		"studentName": m.StudentName, "description": m.Description,
		"category": m.Category, "date": m.Date,
	})
}

func (m AddReminder) validate() error {
	return requireAll(map[string]string{
		"text": m.Text, "date": m.Date, "priority": m.Priority,
	})
}

func (m GenerateParentReport) validate() error {
	return requireAll(map[string]string{
		"studentName": m.StudentName, "phoneNumber": m.PhoneNumber, "content": m.Content,
	})
}

func (m SyncContacts) validate() error {
	return requireAll(map[string]string{
		"studentName": m.StudentName, "parentName": m.ParentName,
		"phoneNumber": m.PhoneNumber, "className": m.ClassName,
	})
}

func requireAll(fields map[string]string) error {
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("missing required argument %q", name)
		}
	}
	return nil
}

// ErrUnknownTool marks a tool-call name outside the advertised set. Unknown
// calls are skipped, never treated as failures of the batch.
var ErrUnknownTool = fmt.Errorf("unknown tool call")

// Parse converts one raw tool call into its typed mutation. It returns
// ErrUnknownTool for names outside the closed set and a descriptive error
// when the arguments are malformed or missing a required field.
func Parse(tc *tools.ToolCall) (Mutation, error) {
	var m Mutation
	switch tc.Function.Name {
	case tools.NameAddSchedule:
		m = &AddSchedule{}
	case tools.NameAddGrade:
		m = &AddGrade{}
	case tools.NameAddBehaviorRecord:
		m = &AddBehaviorRecord{}
	case tools.NameAddActivity:
		m = &AddActivity{}
	case tools.NameAddReminder:
		m = &AddReminder{}
	case tools.NameGenerateParentReport:
		m = &GenerateParentReport{}
	case tools.NameSyncContacts:
		m = &SyncContacts{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, tc.Function.Name)
	}
	if err := json.Unmarshal([]byte(tc.Function.Arguments), m); err != nil {
		return nil, fmt.Errorf("malformed arguments for %s: %w", tc.Function.Name, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid call to %s: %w", tc.Function.Name, err)
	}
	return m, nil
}
