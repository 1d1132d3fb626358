package internal

import "time"

// Breakdown keys
const (
	StageLight = "light"
	StageDeep  = "deep"
	StageRem   = "rem"
	StageAwake = "awake"
)

// The derived values below are recomputed from Trends on every call.
// The last trend entry is the current session and the second-to-last is
// last night; anything missing along the way yields ok == false.

func (s UserSnapshot) currentTrend() (TrendEntry, bool) {
	if len(s.Trends) == 0 {
		return TrendEntry{}, false
	}
	return s.Trends[len(s.Trends)-1], true
}

func (s UserSnapshot) lastTrend() (TrendEntry, bool) {
	if len(s.Trends) < 2 {
		return TrendEntry{}, false
	}
	return s.Trends[len(s.Trends)-2], true
}

// latestTimeseries is the timeseries of the last session of the current trend
func (s UserSnapshot) latestTimeseries() (*SleepTimeseries, bool) {
	trend, ok := s.currentTrend()
	if !ok || len(trend.Sessions) == 0 {
		return nil, false
	}
	ts := trend.Sessions[len(trend.Sessions)-1].Timeseries
	return ts, ts != nil
}

func lastReading(samples []TimeseriesSample) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	return samples[len(samples)-1].Reading()
}

func intValue(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func metric(q *SleepQualityScore, pick func(*SleepQualityScore) *MetricDetail, current bool) (float64, bool) {
	if q == nil {
		return 0, false
	}
	d := pick(q)
	if d == nil {
		return 0, false
	}
	p := d.Average
	if current {
		p = d.Current
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

func breakdown(t TrendEntry) (map[string]int, bool) {
	out := map[string]int{}
	if v, ok := intValue(t.LightDuration); ok {
		out[StageLight] = v
	}
	if v, ok := intValue(t.DeepDuration); ok {
		out[StageDeep] = v
	}
	if v, ok := intValue(t.RemDuration); ok {
		out[StageRem] = v
	}
	if t.PresenceDuration != nil && t.SleepDuration != nil {
		out[StageAwake] = *t.PresenceDuration - *t.SleepDuration
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func presenceStart(t TrendEntry, ok bool) (time.Time, bool) {
	if !ok || t.PresenceStart == "" {
		return time.Time{}, false
	}
	return ParseAPITime(t.PresenceStart)
}

// CurrentSessionDate is when the current session started
func (s UserSnapshot) CurrentSessionDate() (time.Time, bool) {
	return presenceStart(s.currentTrend())
}

// CurrentSessionProcessing reports whether the API is still scoring the current session
func (s UserSnapshot) CurrentSessionProcessing() bool {
	t, ok := s.currentTrend()
	return ok && t.Processing
}

// CurrentSleepStage is the stage the user is in right now. While a session
// is processing the API appends a synthetic "awake" stage, which is skipped.
func (s UserSnapshot) CurrentSleepStage() (string, bool) {
	trend, ok := s.currentTrend()
	if !ok || len(trend.Sessions) == 0 {
		return "", false
	}
	stages := trend.Sessions[len(trend.Sessions)-1].Stages
	if len(stages) == 0 {
		return "", false
	}
	if trend.Processing && len(stages) >= 2 {
		return stages[len(stages)-2].Stage, true
	}
	return stages[len(stages)-1].Stage, true
}

func (s UserSnapshot) CurrentSleepScore() (int, bool) {
	t, ok := s.currentTrend()
	if !ok {
		return 0, false
	}
	return intValue(t.Score)
}

func (s UserSnapshot) CurrentSleepBreakdown() (map[string]int, bool) {
	t, ok := s.currentTrend()
	if !ok {
		return nil, false
	}
	return breakdown(t)
}

// CurrentHeartRate is the last heart-rate sample of the current session
func (s UserSnapshot) CurrentHeartRate() (float64, bool) {
	ts, ok := s.latestTimeseries()
	if !ok {
		return 0, false
	}
	return lastReading(ts.HeartRate)
}

// CurrentRoomTemp is the last room temperature sample (°C) of the current session
func (s UserSnapshot) CurrentRoomTemp() (float64, bool) {
	ts, ok := s.latestTimeseries()
	if !ok {
		return 0, false
	}
	return lastReading(ts.TempRoomC)
}

// CurrentBedTemp is the last bed temperature sample (°C) of the current session
func (s UserSnapshot) CurrentBedTemp() (float64, bool) {
	ts, ok := s.latestTimeseries()
	if !ok {
		return 0, false
	}
	return lastReading(ts.TempBedC)
}

func (s UserSnapshot) CurrentTossAndTurns() (int, bool) {
	t, ok := s.currentTrend()
	if !ok {
		return 0, false
	}
	return intValue(t.TossAndTurns)
}

func (s UserSnapshot) CurrentRespiratoryRate() (float64, bool) {
	t, ok := s.currentTrend()
	if !ok {
		return 0, false
	}
	return metric(t.SleepQualityScore, func(q *SleepQualityScore) *MetricDetail { return q.RespiratoryRate }, true)
}

func (s UserSnapshot) CurrentHRV() (float64, bool) {
	t, ok := s.currentTrend()
	if !ok {
		return 0, false
	}
	return metric(t.SleepQualityScore, func(q *SleepQualityScore) *MetricDetail { return q.HRV }, true)
}

// TimeSlept is the sleep duration of the current session in seconds
func (s UserSnapshot) TimeSlept() (int, bool) {
	t, ok := s.currentTrend()
	if !ok {
		return 0, false
	}
	return intValue(t.SleepDuration)
}

// LastSessionDate is when last night's session started
func (s UserSnapshot) LastSessionDate() (time.Time, bool) {
	return presenceStart(s.lastTrend())
}

func (s UserSnapshot) LastSleepScore() (int, bool) {
	t, ok := s.lastTrend()
	if !ok {
		return 0, false
	}
	return intValue(t.Score)
}

func (s UserSnapshot) LastSleepBreakdown() (map[string]int, bool) {
	t, ok := s.lastTrend()
	if !ok {
		return nil, false
	}
	return breakdown(t)
}

// LastBedTemp is last night's average bed temperature (°C)
func (s UserSnapshot) LastBedTemp() (float64, bool) {
	t, ok := s.lastTrend()
	if !ok {
		return 0, false
	}
	return metric(t.SleepQualityScore, func(q *SleepQualityScore) *MetricDetail { return q.TempBedC }, false)
}

// LastRoomTemp is last night's average room temperature (°C)
func (s UserSnapshot) LastRoomTemp() (float64, bool) {
	t, ok := s.lastTrend()
	if !ok {
		return 0, false
	}
	return metric(t.SleepQualityScore, func(q *SleepQualityScore) *MetricDetail { return q.TempRoomC }, false)
}

func (s UserSnapshot) LastTossAndTurns() (int, bool) {
	t, ok := s.lastTrend()
	if !ok {
		return 0, false
	}
	return intValue(t.TossAndTurns)
}

func (s UserSnapshot) LastHeartRate() (float64, bool) {
	t, ok := s.lastTrend()
	if !ok {
		return 0, false
	}
	return metric(t.SleepQualityScore, func(q *SleepQualityScore) *MetricDetail { return q.HeartRate }, false)
}

func (s UserSnapshot) LastRespiratoryRate() (float64, bool) {
	t, ok := s.lastTrend()
	if !ok {
		return 0, false
	}
	return metric(t.SleepQualityScore, func(q *SleepQualityScore) *MetricDetail { return q.RespiratoryRate }, false)
}

// BedPresence reports whether the last heart-rate sample is less than
// BedPresenceWindow old at now. Missing or unparseable data means absent.
func (s UserSnapshot) BedPresence(now time.Time) bool {
	ts, ok := s.latestTimeseries()
	if !ok || len(ts.HeartRate) == 0 {
		return false
	}
	at, ok := ts.HeartRate[len(ts.HeartRate)-1].Time()
	if !ok {
		return false
	}
	return now.Sub(at) < BedPresenceWindow
}
