package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// MinWindowMinutes is the clinical floor for the prescribed sleep
	// window (5 hours).
	MinWindowMinutes = 300
	// WindowStepMinutes is the granularity of all window durations and
	// adjustments.
	WindowStepMinutes = 15
)

// Rationale tags attached to window history records and proposals.
const (
	RationaleInitial      = "initial"
	RationaleManualEdit   = "manual edit"
	RationaleIncrease     = "increase"
	RationaleDecrease     = "decrease"
	RationaleNoChange     = "no change"
	RationaleAtMinimum    = "no change — at minimum"
	RationaleInsufficient = "insufficient data"
)

// SleepWindow is the prescribed band between bedtime and target wake
// time that the user is instructed to follow.
type SleepWindow struct {
	// Target wake time (wall clock)
	TargetWake ClockTime `json:"target_wake_time" example:"07:00"`
	// Window duration in minutes; positive multiple of 15, at least 300
	WindowMinutes int `json:"window_minutes" example:"360"`
}

// PrescribedBedtime derives the bedtime from the target wake time and
// the window duration, wrapping backwards across midnight.
func (w SleepWindow) PrescribedBedtime() ClockTime {
	m := (int(w.TargetWake) - w.WindowMinutes) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return ClockTime(m)
}

// Validate checks the window duration granularity and floor.
func (w SleepWindow) Validate() error {
	if w.WindowMinutes < MinWindowMinutes {
		return fmt.Errorf("%w: window duration %dm is below the 5h minimum", ErrValidation, w.WindowMinutes)
	}
	if w.WindowMinutes%WindowStepMinutes != 0 {
		return fmt.Errorf("%w: window duration %dm is not a multiple of %d minutes", ErrValidation, w.WindowMinutes, WindowStepMinutes)
	}
	return nil
}

// WindowHistoryRecord is one effective-dated prescription. The record
// is active from EffectiveFrom until superseded by a later record.
type WindowHistoryRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EffectiveFrom string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_window_effective_from" json:"effective_from"`
	TargetWake    ClockTime `gorm:"type:varchar(5);not null" json:"target_wake_time"`
	WindowMinutes int       `gorm:"not null" json:"window_minutes"`
	Rationale     string    `gorm:"type:varchar(64);not null" json:"rationale"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WindowHistoryRecord) TableName() string {
	return "window_history"
}

func (r WindowHistoryRecord) Window() SleepWindow {
	return SleepWindow{TargetWake: r.TargetWake, WindowMinutes: r.WindowMinutes}
}

// WindowRecordResponse is the response form of a history record.
// @Description Effective-dated sleep window prescription.
type WindowRecordResponse struct {
	EffectiveFrom string    `json:"effective_from" example:"2024-01-15"`
	TargetWake    ClockTime `json:"target_wake_time" example:"07:00"`
	WindowMinutes int       `json:"window_minutes" example:"360"`
	// Derived bedtime (target wake minus window duration)
	PrescribedBedtime ClockTime `json:"prescribed_bedtime" example:"01:00"`
	Rationale         string    `json:"rationale" example:"initial"`
}

func (r WindowHistoryRecord) ToResponse() WindowRecordResponse {
	return WindowRecordResponse{
		EffectiveFrom:     r.EffectiveFrom,
		TargetWake:        r.TargetWake,
		WindowMinutes:     r.WindowMinutes,
		PrescribedBedtime: r.Window().PrescribedBedtime(),
		Rationale:         r.Rationale,
	}
}

// ActiveWindowResponse answers "what window is active on date D".
// @Description Active window lookup result.
type ActiveWindowResponse struct {
	Date   string               `json:"date" example:"2024-01-20"`
	Record WindowRecordResponse `json:"record"`
	// True when the date precedes the earliest record and the initial
	// plan is used as a fallback
	GapWarning bool `json:"gap_warning,omitempty"`
}

// ApplyWindowRequest appends a new history record effective from the
// given date (today for rule-triggered appends).
// @Description Append a window prescription to the history.
type ApplyWindowRequest struct {
	EffectiveFrom string    `json:"effective_from" validate:"required,dateonly" example:"2024-01-22"`
	TargetWake    ClockTime `json:"target_wake_time" example:"07:00"`
	// Window duration in minutes (multiple of 15, minimum 300)
	WindowMinutes int `json:"window_minutes" validate:"required,min=1" example:"375"`
	// Optional rationale; defaults to "manual edit"
	Rationale string `json:"rationale,omitempty" validate:"max=64"`
}

// EditWindowRequest replaces the window prescribed at an existing
// effective date. Re-dating a record is a remove+append, not an edit.
// @Description Edit the window values of an existing history record.
type EditWindowRequest struct {
	TargetWake    ClockTime `json:"target_wake_time" example:"06:30"`
	WindowMinutes int       `json:"window_minutes" validate:"required,min=1" example:"360"`
}

// WindowHistoryResponse lists the full ledger in effective-date order.
// @Description Ordered window prescription history.
type WindowHistoryResponse struct {
	Data []WindowRecordResponse `json:"data"`
}
