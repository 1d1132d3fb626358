package internal

import "time"

// BedState is the power mode of a side
type BedState string

const (
	BedStateOff   BedState = "off"
	BedStateSmart BedState = "smart"
)

// UserSnapshot is everything known about one bed-side user after the last
// refresh. It is a value: refreshes build a new snapshot per facet and
// replace the stored one, so a snapshot handed out is never modified.
type UserSnapshot struct {
	UserID  string   `json:"user_id" yaml:"user_id"`
	Side    Side     `json:"side" yaml:"side"`
	Profile *Profile `json:"profile,omitempty" yaml:"profile,omitempty"`

	// Trends are in API order, oldest day first. The last entry is the
	// current (or most recent) session, the one before it last night.
	Trends   []TrendEntry `json:"trends,omitempty" yaml:"trends,omitempty"`
	Routines []Routine    `json:"routines,omitempty" yaml:"routines,omitempty"`

	NextAlarm   *time.Time `json:"next_alarm,omitempty" yaml:"next_alarm,omitempty"`
	NextAlarmID string     `json:"next_alarm_id,omitempty" yaml:"next_alarm_id,omitempty"`

	BedState           BedState     `json:"bed_state,omitempty" yaml:"bed_state,omitempty"`
	CurrentSideTemp    *float64     `json:"current_side_temp_c,omitempty" yaml:"current_side_temp_c,omitempty"`
	TargetHeatingLevel *int         `json:"target_heating_level,omitempty" yaml:"target_heating_level,omitempty"`
	SmartLevels        *SmartLevels `json:"smart_levels,omitempty" yaml:"smart_levels,omitempty"`

	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// NewUserSnapshot returns the empty snapshot of a freshly resolved user
func NewUserSnapshot(user BedSideUser) UserSnapshot {
	return UserSnapshot{UserID: user.UserID, Side: user.Side}
}

// WithProfile returns a copy carrying profile
func (s UserSnapshot) WithProfile(profile Profile) UserSnapshot {
	s.Profile = &profile
	return s
}

// WithTrends returns a copy carrying trends
func (s UserSnapshot) WithTrends(trends []TrendEntry) UserSnapshot {
	s.Trends = trends
	return s
}

// WithRoutines returns a copy carrying the routines facet. A nil alarm
// time with a non-empty id means the upcoming alarm is disabled.
func (s UserSnapshot) WithRoutines(routines []Routine, nextAlarm *time.Time, nextAlarmID string) UserSnapshot {
	s.Routines = routines
	s.NextAlarm = nextAlarm
	s.NextAlarmID = nextAlarmID
	return s
}

// WithTemperature returns a copy carrying the temperature facet
func (s UserSnapshot) WithTemperature(state BedState, sideTemp *float64, targetLevel int, smart *SmartLevels) UserSnapshot {
	s.BedState = state
	s.CurrentSideTemp = sideTemp
	s.TargetHeatingLevel = &targetLevel
	s.SmartLevels = smart
	return s
}

// DisplayName returns the profile's first name, falling back to the side
func (s UserSnapshot) DisplayName() string {
	if s.Profile != nil && s.Profile.FirstName != "" {
		return s.Profile.FirstName
	}
	return string(s.Side)
}
