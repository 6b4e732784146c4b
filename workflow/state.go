// Package workflow implements the four-stage meeting preparation pipeline:
// context analysis, industry analysis, strategy development and the final
// executive brief. Stages run strictly in order and each one writes exactly
// one output field of the meeting state.
package workflow

import (
	"time"
)

// MeetingState is the record threaded through all pipeline stages. Input
// fields are set once before the run starts; each output field is written by
// exactly one stage, in stage order.
type MeetingState struct {
	CompanyName      string
	MeetingObjective string
	Attendees        string
	Duration         int // minutes
	FocusAreas       string

	ContextAnalysis  string
	IndustryAnalysis string
	Strategy         string
	ExecutiveBrief   string

	Timestamp string // RFC3339, set at creation
}

// NewMeetingState creates the initial state for a single pipeline run with
// empty output fields and the creation timestamp set.
func NewMeetingState(company, objective, attendees string, duration int, focusAreas string) MeetingState {
	return MeetingState{
		CompanyName:      company,
		MeetingObjective: objective,
		Attendees:        attendees,
		Duration:         duration,
		FocusAreas:       focusAreas,
		Timestamp:        time.Now().Format(time.RFC3339),
	}
}

// StateUpdate is a partial update produced by a single stage. A stage sets at
// most one field; nil fields are left untouched by apply.
type StateUpdate struct {
	ContextAnalysis  *string
	IndustryAnalysis *string
	Strategy         *string
	ExecutiveBrief   *string
}

// apply merges an update into a state and returns the new state. It never
// modifies input fields, which keeps the write-once invariant local to the
// stage that produced the update.
func apply(state MeetingState, update StateUpdate) MeetingState {
	if update.ContextAnalysis != nil {
		state.ContextAnalysis = *update.ContextAnalysis
	}
	if update.IndustryAnalysis != nil {
		state.IndustryAnalysis = *update.IndustryAnalysis
	}
	if update.Strategy != nil {
		state.Strategy = *update.Strategy
	}
	if update.ExecutiveBrief != nil {
		state.ExecutiveBrief = *update.ExecutiveBrief
	}
	return state
}
