package internal

import "time"

// findAlarm searches routines in order, override alarms before base alarms
func findAlarm(routines []Routine, alarmID string) (Alarm, bool) {
	for _, r := range routines {
		if r.Override != nil {
			for _, a := range r.Override.Alarms {
				if a.AlarmID == alarmID {
					return a, true
				}
			}
		}
		for _, a := range r.Alarms {
			if a.AlarmID == alarmID {
				return a, true
			}
		}
	}
	return Alarm{}, false
}

// IsAlarmEnabled reports whether an alarm will ring. An empty alarmID asks
// about the next alarm, which uses the alarm's own enabled flag; a named
// alarm is enabled unless it was disabled individually (a one-off skip).
func (s UserSnapshot) IsAlarmEnabled(alarmID string) bool {
	next := alarmID == ""
	id := alarmID
	if next {
		id = s.NextAlarmID
	}
	if id == "" {
		return false
	}

	alarm, ok := findAlarm(s.Routines, id)
	if !ok {
		return false
	}
	if next {
		return alarm.Enabled
	}
	return !alarm.DisabledIndividually
}

// NextAlarmInfo describes the upcoming alarm of a user
type NextAlarmInfo struct {
	AlarmID string     `json:"alarm_id" yaml:"alarm_id"`
	Time    *time.Time `json:"time,omitempty" yaml:"time,omitempty"`
	Enabled bool       `json:"enabled" yaml:"enabled"`
}

// UpcomingAlarm returns the next alarm, or ErrNoNextAlarm when no routine
// has one lined up
func (s UserSnapshot) UpcomingAlarm() (NextAlarmInfo, error) {
	if s.NextAlarmID == "" {
		return NextAlarmInfo{}, ErrNoNextAlarm
	}
	return NextAlarmInfo{
		AlarmID: s.NextAlarmID,
		Time:    s.NextAlarm,
		Enabled: s.IsAlarmEnabled(""),
	}, nil
}
