// Package dispatch owns the application state and is the only mutation path
// into it. Tool calls returned by the model are parsed into typed mutations
// and applied in order; every applied mutation re-persists the full document.
package dispatch

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gurumate/gurumate/internal/state"
	"github.com/gurumate/gurumate/internal/store"
	"github.com/gurumate/gurumate/internal/tools"
)

// ReminderConfirmation is appended to the assistant reply whenever a
// reminder is recorded. The Google sync it mentions is a UI-level label;
// nothing external is contacted.
const ReminderConfirmation = "\n\n✅ Pengingat tersimpan dan otomatis tersinkron dengan Google Calendar & Google Tasks Anda."

// Result summarizes one applied batch of tool calls.
type Result struct {
	// Applied lists the names of calls that changed (or deliberately
	// no-opped on) the state, in application order.
	Applied []string
	// Skipped lists calls dropped for unknown names or malformed args.
	Skipped []string
	// ReplySuffix is extra text to append to the assistant reply, e.g.
	// the reminder sync confirmation.
	ReplySuffix string
}

// Dispatcher is the state container: it loads the document once, applies
// mutations one at a time under a lock, and writes the whole document back
// after every change.
type Dispatcher struct {
	mu    sync.Mutex
	st    state.AppState
	store store.Store
}

// New loads the persisted document and wraps it in a Dispatcher.
func New(ctx context.Context, st store.Store) (*Dispatcher, error) {
	loaded, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{st: loaded, store: st}, nil
}

// State returns a copy of the current document. The copy shares no slice
// headers with the live state, so callers can hold it across mutations.
func (d *Dispatcher) State() state.AppState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneState(d.st)
}

// Apply runs a batch of tool calls against the state, strictly in the order
// received. Unknown names and malformed calls are skipped; the rest of the
// batch still runs. The updated document is persisted once per mutation.
func (d *Dispatcher) Apply(ctx context.Context, calls []*tools.ToolCall) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	var res Result
	for _, tc := range calls {
		m, err := Parse(tc)
		if err != nil {
			log.Printf("WARNING: skipping tool call %q: %v", tc.Function.Name, err)
			res.Skipped = append(res.Skipped, tc.Function.Name)
			continue
		}
		res.ReplySuffix += d.applyLocked(m)
		res.Applied = append(res.Applied, tc.Function.Name)
		d.persist(ctx)
	}
	return res
}

// applyLocked mutates the state for a single parsed call and returns any
// reply suffix it contributes. The type switch is exhaustive over the
// Mutation variants.
func (d *Dispatcher) applyLocked(m Mutation) string {
	switch v := m.(type) {
	case *AddSchedule:
		d.st.Schedules = append(d.st.Schedules, state.Schedule{
			ID: state.NewID(), Day: v.Day, Subject: v.Subject, Time: v.Time, ClassName: v.ClassName,
		})
	case *AddGrade:
		d.st.Grades = append(d.st.Grades, state.Grade{
			ID: state.NewID(), StudentName: v.StudentName, Subject: v.Subject, Score: v.Score,
		})
	case *AddBehaviorRecord:
		d.st.BehaviorRecords = append(d.st.BehaviorRecords, state.BehaviorRecord{
			ID: state.NewID(), StudentName: v.StudentName, Grade: v.Grade,
			Description: v.Description, Date: v.Date,
		})
	case *AddActivity:
		d.st.Activities = append(d.st.Activities, state.Activity{
			ID: state.NewID(), StudentName: v.StudentName, Description: v.Description,
			Category: v.Category, Date: v.Date,
		})
	case *AddReminder:
		d.st.Reminders = append(d.st.Reminders, state.Reminder{
			ID: state.NewID(), Text: v.Text, Date: v.Date, Priority: v.Priority,
			GoogleSynced: true,
		})
		return ReminderConfirmation
	case *GenerateParentReport:
		d.st.ParentReports = append(d.st.ParentReports, state.ParentReport{
			ID: state.NewID(), StudentName: v.StudentName, PhoneNumber: v.PhoneNumber,
			Content: v.Content, Date: time.Now().Format("02/01/2006"),
		})
	case *SyncContacts:
		// Dedup on phone number: an existing entry makes this a no-op,
		// not an error.
		if d.st.HasContactPhone(v.PhoneNumber) {
			return ""
		}
		d.st.Contacts = append(d.st.Contacts, state.Contact{
			ID: state.NewID(), StudentName: v.StudentName, ParentName: v.ParentName,
			PhoneNumber: v.PhoneNumber, ClassName: v.ClassName,
		})
	}
	return ""
}

// AddContact is the manual (non-model) contact path. It applies the same
// phone-number dedup as syncContacts and reports whether anything changed.
func (d *Dispatcher) AddContact(ctx context.Context, c state.Contact) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.st.HasContactPhone(c.PhoneNumber) {
		return false
	}
	if c.ID == "" {
		c.ID = state.NewID()
	}
	d.st.Contacts = append(d.st.Contacts, c)
	d.persist(ctx)
	return true
}

// SetUser records the simulated login profile.
func (d *Dispatcher) SetUser(ctx context.Context, u state.UserProfile) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.User = &u
	d.persist(ctx)
}

// Reset clears the persisted slot and resets the in-memory document
// (logout/reset).
func (d *Dispatcher) Reset(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st = state.Default()
	return d.store.Clear(ctx)
}

// persist writes the full document. A failed write must not take the
// assistant down; it is logged and the in-memory state stays authoritative.
func (d *Dispatcher) persist(ctx context.Context) {
	if err := d.store.Save(ctx, d.st); err != nil {
		log.Printf("WARNING: failed to persist state: %v", err)
	}
}

func cloneState(st state.AppState) state.AppState {
	out := st
	out.Schedules = append([]state.Schedule{}, st.Schedules...)
	out.Grades = append([]state.Grade{}, st.Grades...)
	out.BehaviorRecords = append([]state.BehaviorRecord{}, st.BehaviorRecords...)
	out.Activities = append([]state.Activity{}, st.Activities...)
	out.Reminders = append([]state.Reminder{}, st.Reminders...)
	out.ParentReports = append([]state.ParentReport{}, st.ParentReports...)
	out.Contacts = append([]state.Contact{}, st.Contacts...)
	if st.User != nil {
		u := *st.User
		out.User = &u
	}
	return out
}
