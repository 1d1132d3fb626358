package internal

import (
	"time"
)

func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

// CreateTestSnapshot creates a left-side snapshot with two trend days and
// an enabled next alarm, as seen at now
func CreateTestSnapshot(userID string, now time.Time) UserSnapshot {
	sample := func(at time.Time, v float64) TimeseriesSample {
		return TimeseriesSample{TextValue(at.UTC().Format("2006-01-02T15:04:05.000Z")), NumberValue(v)}
	}
	alarmAt := now.Add(8 * time.Hour)

	s := NewUserSnapshot(BedSideUser{UserID: userID, Side: SideLeft})
	s = s.WithProfile(Profile{Email: userID + "@example.com", FirstName: "Alex", LastName: "Doe"})
	s = s.WithTrends([]TrendEntry{
		{
			Day:              now.AddDate(0, 0, -1).Format(dateLayout),
			Score:            intPtr(81),
			PresenceStart:    now.Add(-30 * time.Hour).UTC().Format("2006-01-02T15:04:05.000Z"),
			SleepDuration:    intPtr(25200),
			PresenceDuration: intPtr(27000),
			LightDuration:    intPtr(14400),
			DeepDuration:     intPtr(5400),
			RemDuration:      intPtr(5400),
			TossAndTurns:     intPtr(14),
			SleepQualityScore: &SleepQualityScore{
				HeartRate:       &MetricDetail{Current: floatPtr(57), Average: floatPtr(55)},
				RespiratoryRate: &MetricDetail{Current: floatPtr(14.5), Average: floatPtr(14.1)},
				TempBedC:        &MetricDetail{Current: floatPtr(31.2), Average: floatPtr(30.8)},
				TempRoomC:       &MetricDetail{Current: floatPtr(20.4), Average: floatPtr(20.9)},
			},
		},
		{
			Day:              now.Format(dateLayout),
			Score:            intPtr(74),
			PresenceStart:    now.Add(-6 * time.Hour).UTC().Format("2006-01-02T15:04:05.000Z"),
			SleepDuration:    intPtr(18000),
			PresenceDuration: intPtr(21600),
			TossAndTurns:     intPtr(9),
			SleepQualityScore: &SleepQualityScore{
				HRV:             &MetricDetail{Current: floatPtr(48.2)},
				RespiratoryRate: &MetricDetail{Current: floatPtr(13.9)},
			},
			Sessions: []SleepSession{{
				Stages: []SleepStage{{Stage: "awake", Duration: intPtr(600)}, {Stage: "deep", Duration: intPtr(3600)}},
				Timeseries: &SleepTimeseries{
					HeartRate: []TimeseriesSample{sample(now.Add(-10*time.Minute), 58), sample(now.Add(-2*time.Minute), 56)},
					TempBedC:  []TimeseriesSample{sample(now.Add(-2*time.Minute), 32.5)},
					TempRoomC: []TimeseriesSample{sample(now.Add(-2*time.Minute), 21)},
				},
			}},
		},
	})
	s = s.WithRoutines([]Routine{{
		ID:      "routine-1",
		Enabled: true,
		Alarms:  []Alarm{{AlarmID: "alarm-1", Enabled: true, Time: "07:00:00"}},
	}}, timePtr(alarmAt), "alarm-1")
	s = s.WithTemperature(BedStateSmart, floatPtr(27), 10, &SmartLevels{
		BedTimeLevel:      intPtr(10),
		InitialSleepLevel: intPtr(-5),
		FinalSleepLevel:   intPtr(0),
	})
	s.UpdatedAt = now
	return s
}

// CreateTestReport builds the report of CreateTestSnapshot
func CreateTestReport(userID string) *UserReport {
	now := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	r := BuildReport(CreateTestSnapshot(userID, now), now)
	return &r
}
