package internal

import "time"

// SessionSummary is the flattened view of one sleep session
type SessionSummary struct {
	Date            *time.Time     `json:"date,omitempty" yaml:"date,omitempty"`
	Processing      bool           `json:"processing,omitempty" yaml:"processing,omitempty"`
	Stage           *string        `json:"stage,omitempty" yaml:"stage,omitempty"`
	Score           *int           `json:"score,omitempty" yaml:"score,omitempty"`
	Breakdown       map[string]int `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
	TimeSlept       *int           `json:"time_slept,omitempty" yaml:"time_slept,omitempty"`
	HeartRate       *float64       `json:"heart_rate,omitempty" yaml:"heart_rate,omitempty"`
	RespiratoryRate *float64       `json:"respiratory_rate,omitempty" yaml:"respiratory_rate,omitempty"`
	HRV             *float64       `json:"hrv,omitempty" yaml:"hrv,omitempty"`
	BedTemp         *float64       `json:"bed_temp_c,omitempty" yaml:"bed_temp_c,omitempty"`
	RoomTemp        *float64       `json:"room_temp_c,omitempty" yaml:"room_temp_c,omitempty"`
	TossAndTurns    *int           `json:"toss_and_turns,omitempty" yaml:"toss_and_turns,omitempty"`
}

// DayScore is one trend day's score
type DayScore struct {
	Day   string `json:"day" yaml:"day"`
	Score int    `json:"score" yaml:"score"`
}

// UserReport is what the CLI prints and exports for one user
type UserReport struct {
	UserID          string         `json:"user_id" yaml:"user_id"`
	Name            string         `json:"name" yaml:"name"`
	Side            Side           `json:"side" yaml:"side"`
	BedState        BedState       `json:"bed_state,omitempty" yaml:"bed_state,omitempty"`
	InBed           bool           `json:"in_bed" yaml:"in_bed"`
	CurrentSideTemp *float64       `json:"current_side_temp_c,omitempty" yaml:"current_side_temp_c,omitempty"`
	Current         SessionSummary `json:"current" yaml:"current"`
	// LastNight is nil when fewer than two trend days are known
	LastNight    *SessionSummary `json:"last_night,omitempty" yaml:"last_night,omitempty"`
	NextAlarm    *NextAlarmInfo  `json:"next_alarm,omitempty" yaml:"next_alarm,omitempty"`
	RecentScores []DayScore      `json:"recent_scores,omitempty" yaml:"recent_scores,omitempty"`
	GeneratedAt  time.Time       `json:"generated_at" yaml:"generated_at"`
}

// recentDays is how many trend days the report lists
const recentDays = 7

func opt[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

// BuildReport derives the report of s as seen at now
func BuildReport(s UserSnapshot, now time.Time) UserReport {
	r := UserReport{
		UserID:          s.UserID,
		Name:            s.DisplayName(),
		Side:            s.Side,
		BedState:        s.BedState,
		InBed:           s.BedPresence(now),
		CurrentSideTemp: s.CurrentSideTemp,
		GeneratedAt:     now,
	}

	breakdown, _ := s.CurrentSleepBreakdown()
	r.Current = SessionSummary{
		Date:            opt(s.CurrentSessionDate()),
		Processing:      s.CurrentSessionProcessing(),
		Stage:           opt(s.CurrentSleepStage()),
		Score:           opt(s.CurrentSleepScore()),
		Breakdown:       breakdown,
		TimeSlept:       opt(s.TimeSlept()),
		HeartRate:       opt(s.CurrentHeartRate()),
		RespiratoryRate: opt(s.CurrentRespiratoryRate()),
		HRV:             opt(s.CurrentHRV()),
		BedTemp:         opt(s.CurrentBedTemp()),
		RoomTemp:        opt(s.CurrentRoomTemp()),
		TossAndTurns:    opt(s.CurrentTossAndTurns()),
	}

	if len(s.Trends) >= 2 {
		lastBreakdown, _ := s.LastSleepBreakdown()
		r.LastNight = &SessionSummary{
			Date:            opt(s.LastSessionDate()),
			Score:           opt(s.LastSleepScore()),
			Breakdown:       lastBreakdown,
			HeartRate:       opt(s.LastHeartRate()),
			RespiratoryRate: opt(s.LastRespiratoryRate()),
			BedTemp:         opt(s.LastBedTemp()),
			RoomTemp:        opt(s.LastRoomTemp()),
			TossAndTurns:    opt(s.LastTossAndTurns()),
		}
	}

	if alarm, err := s.UpcomingAlarm(); err == nil {
		r.NextAlarm = &alarm
	}

	start := 0
	if len(s.Trends) > recentDays {
		start = len(s.Trends) - recentDays
	}
	for _, t := range s.Trends[start:] {
		if t.Score != nil {
			r.RecentScores = append(r.RecentScores, DayScore{Day: t.Day, Score: *t.Score})
		}
	}
	return r
}
