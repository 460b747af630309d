package domain

import (
	"time"

	"github.com/google/uuid"
)

// DiaryEntry is one logged night/day cycle, attributed to the evening's
// calendar date (the morning the user wakes counts toward the prior
// evening). At most one entry exists per log date; edits replace the
// entry wholesale and derived metrics are recomputed.
type DiaryEntry struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	LogDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_diary_log_date" json:"log_date"`

	// Wall-clock timestamps on the 18:00-anchored sleep-day axis.
	// Any of them may be absent; the night is then reported as
	// incomplete and excluded from aggregation.
	Bedtime    *ClockTime `gorm:"type:varchar(5)" json:"bedtime,omitempty"`
	LightsOff  *ClockTime `gorm:"type:varchar(5)" json:"lights_off,omitempty"`
	SleepOnset *ClockTime `gorm:"type:varchar(5)" json:"sleep_onset,omitempty"`
	FinalWake  *ClockTime `gorm:"type:varchar(5)" json:"final_wake,omitempty"`
	RiseTime   *ClockTime `gorm:"type:varchar(5)" json:"rise_time,omitempty"`

	Awakenings Intervals `gorm:"type:jsonb;not null;default:'[]'" json:"nightly_awakenings"`
	Naps       Intervals `gorm:"type:jsonb;not null;default:'[]'" json:"daytime_naps"`

	Notes     string    `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DiaryEntry) TableName() string {
	return "diary_entries"
}

// UpsertDiaryEntryRequest is the request body for creating or replacing
// a diary entry.
// @Description One night's raw sleep timestamps plus awakenings and naps.
type UpsertDiaryEntryRequest struct {
	// Calendar date the night is attributed to (ISO date)
	LogDate string `json:"log_date" validate:"required,dateonly" example:"2024-01-15"`
	// Time the user got into bed
	Bedtime *ClockTime `json:"bedtime,omitempty" example:"22:00"`
	// Time the lights went out
	LightsOff *ClockTime `json:"lights_off,omitempty" example:"22:15"`
	// Estimated time of falling asleep
	SleepOnset *ClockTime `json:"sleep_onset,omitempty" example:"22:30"`
	// Final morning awakening
	FinalWake *ClockTime `json:"final_wake,omitempty" example:"06:30"`
	// Time the user got out of bed
	RiseTime *ClockTime `json:"rise_time,omitempty" example:"07:00"`
	// Nightly awakening intervals, each within [sleep_onset, final_wake]
	Awakenings []Interval `json:"nightly_awakenings,omitempty"`
	// Daytime nap intervals on the associated calendar date
	Naps []Interval `json:"daytime_naps,omitempty"`
	// Free-text notes for the night
	Notes string `json:"notes,omitempty" validate:"max=2000"`
}

// DiaryEntryResponse is the response body for diary endpoints.
// @Description Diary entry with derived per-night metrics.
type DiaryEntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	LogDate    string     `json:"log_date" example:"2024-01-15"`
	Bedtime    *ClockTime `json:"bedtime,omitempty" example:"22:00"`
	LightsOff  *ClockTime `json:"lights_off,omitempty" example:"22:15"`
	SleepOnset *ClockTime `json:"sleep_onset,omitempty" example:"22:30"`
	FinalWake  *ClockTime `json:"final_wake,omitempty" example:"06:30"`
	RiseTime   *ClockTime `json:"rise_time,omitempty" example:"07:00"`
	Awakenings []Interval `json:"nightly_awakenings"`
	Naps       []Interval `json:"daytime_naps"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	// Derived metrics for the night; incomplete nights carry only the
	// raw fields above.
	Metrics *NightMetrics `json:"metrics,omitempty"`
}

func (e *DiaryEntry) ToResponse(metrics *NightMetrics) DiaryEntryResponse {
	return DiaryEntryResponse{
		ID:         e.ID,
		LogDate:    e.LogDate,
		Bedtime:    e.Bedtime,
		LightsOff:  e.LightsOff,
		SleepOnset: e.SleepOnset,
		FinalWake:  e.FinalWake,
		RiseTime:   e.RiseTime,
		Awakenings: e.Awakenings,
		Naps:       e.Naps,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		Metrics:    metrics,
	}
}

// DiaryListResponse is the response body for listing diary entries.
// @Description Paginated list of diary entries, newest first.
type DiaryListResponse struct {
	Data       []DiaryEntryResponse `json:"data"`
	Pagination PaginationResponse   `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// DiaryFilter contains filter parameters for listing diary entries.
type DiaryFilter struct {
	From   string
	To     string
	Limit  int
	Cursor string
}
