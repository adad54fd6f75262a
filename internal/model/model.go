package model

import (
	"strings"
	"time"
)

// DateLayout is the canonical storage form for entry dates (date-only).
const DateLayout = "2006-01-02"

type EntryKind string

const (
	EntryKindProject    EntryKind = "project"
	EntryKindNonProject EntryKind = "non-project"
)

// LogEntry is one logged block of hours against a project phase.
// ProjectCode, PhaseNumber and TDEvent are frozen at creation time;
// edits may only touch Date, Hours and Notes.
type LogEntry struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"` // YYYY-MM-DD
	ProjectCode string  `json:"projectCode"`
	PhaseNumber string  `json:"phaseNumber"`
	Hours       float64 `json:"hours"`
	Notes       string  `json:"notes,omitempty"`
	TDEvent     string  `json:"tdEvent,omitempty"`
}

// NonProjectEntry is one logged block of hours against ad-hoc work
// (internal tasks, customer support, etc.). All fields except ID stay
// editable, re-validated against the current reference catalog on save.
type NonProjectEntry struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Task     string  `json:"task"`
	Customer string  `json:"customer"`
	Hours    float64 `json:"hours"`
	Notes    string  `json:"notes,omitempty"`
}

// LogPatch carries the editable subset of a LogEntry. Nil fields are
// left untouched by an update.
type LogPatch struct {
	Date  *string
	Hours *float64
	Notes *string
}

// NonProjectPatch carries the editable subset of a NonProjectEntry.
type NonProjectPatch struct {
	Name     *string
	Date     *string
	Task     *string
	Customer *string
	Hours    *float64
	Notes    *string
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return err == nil
}

// Today returns the current local date in canonical form.
func Today() string {
	return time.Now().Format(DateLayout)
}
