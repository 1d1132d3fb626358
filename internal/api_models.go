package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// authResponse is the body of a successful password-grant exchange
type authResponse struct {
	AccessToken  string  `json:"access_token" validate:"required"`
	TokenType    string  `json:"token_type"`
	ExpiresIn    float64 `json:"expires_in" validate:"gt=0"`
	RefreshToken string  `json:"refresh_token"`
	UserID       string  `json:"userId" validate:"required"`
}

type userMeResponse struct {
	User struct {
		Devices  []string `json:"devices"`
		Features []string `json:"features"`
	} `json:"user"`
}

type deviceUsersResponse struct {
	Result struct {
		LeftUserID  string            `json:"leftUserId"`
		RightUserID string            `json:"rightUserId"`
		AwaySides   map[string]string `json:"awaySides"`
	} `json:"result"`
}

type userResponse struct {
	User struct {
		Email         string `json:"email"`
		FirstName     string `json:"firstName"`
		LastName      string `json:"lastName"`
		CurrentDevice *struct {
			ID   string `json:"id"`
			Side string `json:"side"`
		} `json:"currentDevice"`
	} `json:"user"`
}

type trendsResponse struct {
	Days []TrendEntry `json:"days" validate:"dive"`
}

type routinesResponse struct {
	Settings struct {
		Routines []Routine `json:"routines" validate:"dive"`
	} `json:"settings"`
	State struct {
		NextAlarm *struct {
			NextTimestamp string `json:"nextTimestamp"`
			AlarmID       string `json:"alarmId"`
		} `json:"nextAlarm"`
		UpcomingRoutineID string `json:"upcomingRoutineId"`
	} `json:"state"`
}

type temperatureResponse struct {
	CurrentLevel       int `json:"currentLevel"`
	CurrentDeviceLevel int `json:"currentDeviceLevel"`
	CurrentState       struct {
		Type string `json:"type" validate:"required"`
	} `json:"currentState"`
	Smart *SmartLevels `json:"smart"`
}

type deviceDataResponse struct {
	Result DeviceData `json:"result"`
}

// Profile is the account holder information of a bed-side user
type Profile struct {
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	FirstName string `json:"firstName,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"lastName,omitempty" yaml:"last_name,omitempty"`
}

// TrendEntry is one calendar day of sleep data
type TrendEntry struct {
	Day               string             `json:"day" yaml:"day"`
	Score             *int               `json:"score,omitempty" yaml:"score,omitempty"`
	PresenceStart     string             `json:"presenceStart,omitempty" yaml:"presence_start,omitempty"`
	PresenceEnd       string             `json:"presenceEnd,omitempty" yaml:"presence_end,omitempty"`
	SleepDuration     *int               `json:"sleepDuration,omitempty" yaml:"sleep_duration,omitempty"`
	PresenceDuration  *int               `json:"presenceDuration,omitempty" yaml:"presence_duration,omitempty"`
	LightDuration     *int               `json:"lightDuration,omitempty" yaml:"light_duration,omitempty"`
	DeepDuration      *int               `json:"deepDuration,omitempty" yaml:"deep_duration,omitempty"`
	RemDuration       *int               `json:"remDuration,omitempty" yaml:"rem_duration,omitempty"`
	TossAndTurns      *int               `json:"tnt,omitempty" yaml:"tnt,omitempty"`
	Processing        bool               `json:"processing,omitempty" yaml:"processing,omitempty"`
	Sessions          []SleepSession     `json:"sessions,omitempty" yaml:"sessions,omitempty" validate:"dive"`
	SleepQualityScore *SleepQualityScore `json:"sleepQualityScore,omitempty" yaml:"sleep_quality_score,omitempty"`
	SleepRoutineScore *SleepRoutineScore `json:"sleepRoutineScore,omitempty" yaml:"sleep_routine_score,omitempty"`
}

// SleepSession is one continuous stretch in bed within a trend day
type SleepSession struct {
	Stages     []SleepStage     `json:"stages,omitempty" yaml:"stages,omitempty"`
	Timeseries *SleepTimeseries `json:"timeseries,omitempty" yaml:"timeseries,omitempty"`
}

// SleepStage is a stage name ("awake", "light", "deep", "rem", ...) and its length in seconds
type SleepStage struct {
	Stage    string `json:"stage" yaml:"stage"`
	Duration *int   `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// SleepTimeseries holds the sampled channels of a session
type SleepTimeseries struct {
	HeartRate       []TimeseriesSample `json:"heartRate,omitempty" yaml:"heart_rate,omitempty" validate:"dive,len=2"`
	RespiratoryRate []TimeseriesSample `json:"respiratoryRate,omitempty" yaml:"respiratory_rate,omitempty" validate:"dive,len=2"`
	TempBedC        []TimeseriesSample `json:"tempBedC,omitempty" yaml:"temp_bed_c,omitempty" validate:"dive,len=2"`
	TempRoomC       []TimeseriesSample `json:"tempRoomC,omitempty" yaml:"temp_room_c,omitempty" validate:"dive,len=2"`
}

// TimeseriesSample is a [timestamp, value] pair
type TimeseriesSample []TimeseriesValue

// Time parses the timestamp element
func (s TimeseriesSample) Time() (time.Time, bool) {
	if len(s) < 1 {
		return time.Time{}, false
	}
	return ParseAPITime(s[0].Text())
}

// Reading returns the numeric value element
func (s TimeseriesSample) Reading() (float64, bool) {
	if len(s) < 2 {
		return 0, false
	}
	return s[1].Float()
}

// TimeseriesValue is either a JSON string or a JSON number. The API uses
// both for the same channel, so the original form is kept.
type TimeseriesValue struct {
	text     string
	number   float64
	isNumber bool
}

// TextValue builds a string-form value
func TextValue(s string) TimeseriesValue {
	return TimeseriesValue{text: s}
}

// NumberValue builds a number-form value
func NumberValue(f float64) TimeseriesValue {
	return TimeseriesValue{number: f, isNumber: true}
}

// IsNumber reports whether the value arrived as a JSON number
func (v TimeseriesValue) IsNumber() bool {
	return v.isNumber
}

// Text returns the string form; numbers are formatted without loss
func (v TimeseriesValue) Text() string {
	if v.isNumber {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.text
}

// Float returns the numeric form; strings are parsed best-effort
func (v TimeseriesValue) Float() (float64, bool) {
	if v.isNumber {
		return v.number, true
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// UnmarshalJSON tries a string first, then a number
func (v *TimeseriesValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = NumberValue(f)
		return nil
	}
	return fmt.Errorf("timeseries value is neither string nor number: %s", truncate(string(data), 64))
}

// MarshalJSON writes the value back in its original form
func (v TimeseriesValue) MarshalJSON() ([]byte, error) {
	if v.isNumber {
		return json.Marshal(v.number)
	}
	return json.Marshal(v.text)
}

// MarshalYAML writes the value back in its original form
func (v TimeseriesValue) MarshalYAML() (interface{}, error) {
	if v.isNumber {
		return v.number, nil
	}
	return v.text, nil
}

// SleepQualityScore breaks the daily score down by metric
type SleepQualityScore struct {
	Total                *int          `json:"total,omitempty" yaml:"total,omitempty"`
	SleepDurationSeconds *ScoreDetail  `json:"sleepDurationSeconds,omitempty" yaml:"sleep_duration_seconds,omitempty"`
	HRV                  *MetricDetail `json:"hrv,omitempty" yaml:"hrv,omitempty"`
	RespiratoryRate      *MetricDetail `json:"respiratoryRate,omitempty" yaml:"respiratory_rate,omitempty"`
	HeartRate            *MetricDetail `json:"heartRate,omitempty" yaml:"heart_rate,omitempty"`
	TempBedC             *MetricDetail `json:"tempBedC,omitempty" yaml:"temp_bed_c,omitempty"`
	TempRoomC            *MetricDetail `json:"tempRoomC,omitempty" yaml:"temp_room_c,omitempty"`
}

// SleepRoutineScore scores bedtime consistency
type SleepRoutineScore struct {
	Total                *int         `json:"total,omitempty" yaml:"total,omitempty"`
	LatencyAsleepSeconds *ScoreDetail `json:"latencyAsleepSeconds,omitempty" yaml:"latency_asleep_seconds,omitempty"`
	LatencyOutSeconds    *ScoreDetail `json:"latencyOutSeconds,omitempty" yaml:"latency_out_seconds,omitempty"`
	WakeupConsistency    *ScoreDetail `json:"wakeupConsistency,omitempty" yaml:"wakeup_consistency,omitempty"`
}

type ScoreDetail struct {
	Score *int `json:"score,omitempty" yaml:"score,omitempty"`
}

// MetricDetail carries the night's value and the user's running average
type MetricDetail struct {
	Current *float64 `json:"current,omitempty" yaml:"current,omitempty"`
	Average *float64 `json:"average,omitempty" yaml:"average,omitempty"`
}

// Routine is a recurring bedtime/wake-up schedule with its alarms
type Routine struct {
	ID       string           `json:"id" yaml:"id" validate:"required"`
	Enabled  bool             `json:"enabled" yaml:"enabled"`
	Alarms   []Alarm          `json:"alarms" yaml:"alarms" validate:"dive"`
	Override *RoutineOverride `json:"override,omitempty" yaml:"override,omitempty"`
}

// RoutineOverride replaces a routine's alarms for a single occurrence
type RoutineOverride struct {
	RoutineEnabled bool    `json:"routineEnabled" yaml:"routine_enabled"`
	Alarms         []Alarm `json:"alarms" yaml:"alarms" validate:"dive"`
}

type Alarm struct {
	AlarmID              string         `json:"alarmId" yaml:"alarm_id" validate:"required"`
	Enabled              bool           `json:"enabled" yaml:"enabled"`
	DisabledIndividually bool           `json:"disabledIndividually" yaml:"disabled_individually"`
	Time                 string         `json:"time,omitempty" yaml:"time,omitempty"`
	Settings             *AlarmSettings `json:"settings,omitempty" yaml:"settings,omitempty"`
}

type AlarmSettings struct {
	Volume   *int  `json:"volume,omitempty" yaml:"volume,omitempty"`
	Duration *int  `json:"duration,omitempty" yaml:"duration,omitempty"`
	Thermal  *bool `json:"thermal,omitempty" yaml:"thermal,omitempty"`
}

// SmartLevels are the raw heating levels of the smart schedule
type SmartLevels struct {
	BedTimeLevel      *int `json:"bedTimeLevel,omitempty" yaml:"bed_time_level,omitempty"`
	InitialSleepLevel *int `json:"initialSleepLevel,omitempty" yaml:"initial_sleep_level,omitempty"`
	FinalSleepLevel   *int `json:"finalSleepLevel,omitempty" yaml:"final_sleep_level,omitempty"`
}

// Level returns the level named by one of SmartLevelNames
func (s SmartLevels) Level(name string) (int, bool) {
	var p *int
	switch name {
	case "bedTimeLevel":
		p = s.BedTimeLevel
	case "initialSleepLevel":
		p = s.InitialSleepLevel
	case "finalSleepLevel":
		p = s.FinalSleepLevel
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// DeviceData is the device-wide state of the pod
type DeviceData struct {
	LeftHeatingLevel        *int   `json:"leftHeatingLevel,omitempty" yaml:"left_heating_level,omitempty"`
	RightHeatingLevel       *int   `json:"rightHeatingLevel,omitempty" yaml:"right_heating_level,omitempty"`
	LeftTargetHeatingLevel  *int   `json:"leftTargetHeatingLevel,omitempty" yaml:"left_target_heating_level,omitempty"`
	RightTargetHeatingLevel *int   `json:"rightTargetHeatingLevel,omitempty" yaml:"right_target_heating_level,omitempty"`
	LeftNowHeating          *bool  `json:"leftNowHeating,omitempty" yaml:"left_now_heating,omitempty"`
	RightNowHeating         *bool  `json:"rightNowHeating,omitempty" yaml:"right_now_heating,omitempty"`
	LeftHeatingDuration     *int   `json:"leftHeatingDuration,omitempty" yaml:"left_heating_duration,omitempty"`
	RightHeatingDuration    *int   `json:"rightHeatingDuration,omitempty" yaml:"right_heating_duration,omitempty"`
	NeedsPriming            *bool  `json:"needsPriming,omitempty" yaml:"needs_priming,omitempty"`
	Priming                 *bool  `json:"priming,omitempty" yaml:"priming,omitempty"`
	HasWater                *bool  `json:"hasWater,omitempty" yaml:"has_water,omitempty"`
	LastPrime               string `json:"lastPrime,omitempty" yaml:"last_prime,omitempty"`
}
