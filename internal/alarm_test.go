package internal

import (
	"errors"
	"testing"
	"time"
)

func TestIsAlarmEnabled(t *testing.T) {
	routines := []Routine{
		{
			ID:     "r1",
			Alarms: []Alarm{{AlarmID: "shared", Enabled: true, DisabledIndividually: false}},
			Override: &RoutineOverride{Alarms: []Alarm{
				{AlarmID: "shared", Enabled: false, DisabledIndividually: true},
			}},
		},
		{
			ID: "r2",
			Alarms: []Alarm{
				{AlarmID: "weekday", Enabled: false, DisabledIndividually: false},
				{AlarmID: "skipped", Enabled: true, DisabledIndividually: true},
			},
		},
	}

	tests := []struct {
		name    string
		nextID  string
		alarmID string
		want    bool
	}{
		{name: "override wins over base with the same id", alarmID: "shared", want: false},
		{name: "named alarm ignores enabled flag", alarmID: "weekday", want: true},
		{name: "named alarm skipped once", alarmID: "skipped", want: false},
		{name: "unknown named alarm", alarmID: "nope", want: false},
		{name: "next alarm uses enabled flag", nextID: "skipped", want: true},
		{name: "next alarm disabled", nextID: "weekday", want: false},
		{name: "next alarm found in override", nextID: "shared", want: false},
		{name: "no next alarm", want: false},
		{name: "next alarm not in routines", nextID: "ghost", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := UserSnapshot{Routines: routines, NextAlarmID: tt.nextID}
			if got := s.IsAlarmEnabled(tt.alarmID); got != tt.want {
				t.Errorf("IsAlarmEnabled(%q) = %v, want %v", tt.alarmID, got, tt.want)
			}
		})
	}
}

func TestUpcomingAlarm(t *testing.T) {
	if _, err := (UserSnapshot{}).UpcomingAlarm(); !errors.Is(err, ErrNoNextAlarm) {
		t.Errorf("UpcomingAlarm() error = %v, want ErrNoNextAlarm", err)
	}

	at := time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC)
	s := UserSnapshot{}.WithRoutines(
		[]Routine{{ID: "r", Alarms: []Alarm{{AlarmID: "a1", Enabled: true}}}},
		&at, "a1",
	)
	info, err := s.UpcomingAlarm()
	if err != nil {
		t.Fatalf("UpcomingAlarm() error = %v", err)
	}
	if info.AlarmID != "a1" || !info.Enabled || info.Time == nil || !info.Time.Equal(at) {
		t.Errorf("UpcomingAlarm() = %+v", info)
	}

	// disabled upcoming routine: id without a time
	s = s.WithRoutines(s.Routines, nil, "a1")
	info, err = s.UpcomingAlarm()
	if err != nil || info.Time != nil || info.AlarmID != "a1" {
		t.Errorf("UpcomingAlarm() = %+v, %v", info, err)
	}
}

func TestUserSnapshot_WithIsCopyOnWrite(t *testing.T) {
	original := NewUserSnapshot(BedSideUser{UserID: "u1", Side: SideRight})
	updated := original.WithProfile(Profile{FirstName: "Sam"}).WithTrends([]TrendEntry{{Day: "d"}})

	if original.Profile != nil || original.Trends != nil {
		t.Error("With* must not modify the receiver")
	}
	if updated.DisplayName() != "Sam" {
		t.Errorf("DisplayName() = %q, want Sam", updated.DisplayName())
	}
	if original.DisplayName() != "right" {
		t.Errorf("DisplayName() without profile = %q, want right", original.DisplayName())
	}
}
