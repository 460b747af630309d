package domain

// NightMetrics holds the derived metrics for one night. Derived data:
// never persisted, always recomputed from the diary entry.
// @Description Per-night sleep metrics.
type NightMetrics struct {
	LogDate string `json:"log_date" example:"2024-01-15"`
	// Time in bed (bedtime to rise), minutes
	TIBMinutes int `json:"tib_minutes" example:"540"`
	// Wake after sleep onset, minutes
	WASOMinutes int `json:"waso_minutes" example:"20"`
	// Total sleep time, minutes
	TSTMinutes int `json:"tst_minutes" example:"480"`
	// Sleep efficiency, percent (0-100)
	SE float64 `json:"se" example:"88.9"`
	// Total daytime nap minutes; reported alongside, never part of SE
	NapMinutes int `json:"nap_minutes" example:"0"`
	// True when a required timestamp is missing or TIB is not positive;
	// such nights are excluded from aggregation, never coerced to SE=0
	Incomplete bool `json:"incomplete,omitempty"`
}

// NapCategory classifies daytime napping over a reporting window by
// the number of days with naps: 0, 1, 2-3, 4 or more.
type NapCategory string

const (
	NapNone       NapCategory = "none"
	NapOccasional NapCategory = "occasional"
	NapRegular    NapCategory = "regular"
	NapFrequent   NapCategory = "frequent"
)

// NapAssessment summarizes daytime napping over the rolling window.
// @Description Daytime nap summary for the rolling window.
type NapAssessment struct {
	DaysWithNaps    int `json:"days_with_naps" example:"2"`
	TotalNapMinutes int `json:"total_nap_minutes" example:"45"`
	// Average nap minutes per logged day in the window
	AvgNapMinutesPerDay float64     `json:"avg_nap_minutes_per_day" example:"6.4"`
	Category            NapCategory `json:"category" example:"occasional"`
}

// AdherenceCategory grades how consistently the logged bed and rise
// times follow the prescribed window.
type AdherenceCategory string

const (
	AdherenceUnknown  AdherenceCategory = "unknown"
	AdherenceHigh     AdherenceCategory = "high"
	AdherenceModerate AdherenceCategory = "moderate"
	AdherenceLow      AdherenceCategory = "low"
)

// AdherenceAssessment measures whether the user went to bed and got up
// at the prescribed times. It says nothing about how long they slept.
// @Description Sleep-window adherence summary for the rolling window.
type AdherenceAssessment struct {
	// Nights with both bedtime and rise time logged
	NightsChecked int `json:"nights_checked" example:"6"`
	// Nights with bedtime and rise within tolerance of the window
	// active on that date
	AdherentNights int `json:"adherent_nights" example:"5"`
	// Percent of checked nights that were adherent
	Rate     float64           `json:"rate" example:"83.3"`
	Category AdherenceCategory `json:"category" example:"high"`
}

// RollingReport is the trailing N-day aggregate. When no complete
// night exists in the window, Insufficient is true and AverageSE must
// not be read as a real average.
// @Description Rolling sleep-efficiency aggregate.
type RollingReport struct {
	// First date of the window (inclusive)
	From string `json:"from" example:"2024-01-09"`
	// Last date of the window (inclusive)
	To string `json:"to" example:"2024-01-15"`
	// Window length in days
	WindowDays int `json:"window_days" example:"7"`
	// Average SE over complete nights only
	AverageSE float64 `json:"average_se" example:"83.2"`
	// Number of complete nights the average is computed over
	NightsCounted int `json:"nights_counted" example:"5"`
	// True when zero complete nights exist in the window
	Insufficient bool `json:"insufficient_data,omitempty"`
	// Nap summary over the same window
	Naps NapAssessment `json:"naps"`
	// Window adherence over the same window
	Adherence AdherenceAssessment `json:"window_adherence"`
}

// WindowProposal is the adjustment engine's decision: the window to
// prescribe next and the rule that produced it.
// @Description Proposed sleep-window adjustment with rationale.
type WindowProposal struct {
	// Window currently active as of today
	Current SleepWindow `json:"current"`
	// Proposed window (equal to Current for no-change outcomes)
	Proposed SleepWindow `json:"proposed"`
	// Derived bedtime of the proposed window
	ProposedBedtime ClockTime `json:"proposed_bedtime" example:"00:45"`
	// Rule that fired: increase, decrease, no change,
	// no change — at minimum, or insufficient data
	Rationale string `json:"rationale" example:"increase"`
	// True when the proposal differs from the current window
	Changed bool `json:"changed"`
}

// ProposalResponse pairs the proposal with the aggregate it was
// derived from.
// @Description Adjustment proposal with its supporting aggregate.
type ProposalResponse struct {
	Rolling  RollingReport  `json:"rolling"`
	Proposal WindowProposal `json:"proposal"`
}
