package testutil

import (
	"net/http"
	"time"
)

// Fixture identities used by SeedAccount
const (
	FixtureToken       = "fixture-token"
	FixtureOwnerID     = "user-left"
	FixtureDeviceID    = "dev-1"
	FixtureLeftUserID  = "user-left"
	FixtureRightUserID = "user-right"
)

// FixtureNow is the clock the fixtures are written against
var FixtureNow = time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)

const tokenBody = `{
	"access_token": "fixture-token",
	"token_type": "bearer",
	"expires_in": 72000,
	"refresh_token": "fixture-refresh",
	"userId": "user-left"
}`

const meBody = `{"user": {"devices": ["dev-1"], "features": ["cooling", "elevation"]}}`

const deviceUsersBody = `{"result": {"leftUserId": "user-left", "rightUserId": "user-right", "awaySides": {}}}`

const leftUserBody = `{"user": {
	"email": "alex@example.com", "firstName": "Alex", "lastName": "Doe",
	"currentDevice": {"id": "dev-1", "side": "left"}
}}`

const rightUserBody = `{"user": {
	"email": "sam@example.com", "firstName": "Sam", "lastName": "Doe",
	"currentDevice": {"id": "dev-1", "side": "right"}
}}`

// leftTrendsBody has two days; the current one carries heart-rate samples
// in both the string and the number form
const leftTrendsBody = `{"days": [
	{
		"day": "2024-03-09", "score": 81,
		"presenceStart": "2024-03-08T23:10:00.000Z", "presenceEnd": "2024-03-09T06:40:00.000Z",
		"sleepDuration": 25200, "presenceDuration": 27000,
		"lightDuration": 14400, "deepDuration": 5400, "remDuration": 5400, "tnt": 14,
		"sleepQualityScore": {
			"total": 81,
			"heartRate": {"current": 57, "average": 55},
			"respiratoryRate": {"current": 14.5, "average": 14.1},
			"tempBedC": {"current": 31.2, "average": 30.8},
			"tempRoomC": {"current": 20.4, "average": 20.9}
		}
	},
	{
		"day": "2024-03-10", "score": 74, "processing": true,
		"presenceStart": "2024-03-10T01:00:00Z",
		"sleepDuration": 18000, "presenceDuration": 21600, "tnt": 9,
		"sleepQualityScore": {"hrv": {"current": 48.2}, "respiratoryRate": {"current": 13.9}},
		"sessions": [{
			"stages": [{"stage": "light", "duration": 1200}, {"stage": "deep", "duration": 3600}, {"stage": "awake", "duration": 60}],
			"timeseries": {
				"heartRate": [["2024-03-10T06:50:00.000Z", "58"], ["2024-03-10T06:55:00.000Z", 56]],
				"tempBedC": [["2024-03-10T06:55:00.000Z", 32.5]],
				"tempRoomC": [["2024-03-10T06:55:00.000Z", 21.0]]
			}
		}]
	}
]}`

// rightTrendsBody has a single day, so there is no last night
const rightTrendsBody = `{"days": [{"day": "2024-03-10", "score": 66, "tnt": 20}]}`

// leftRoutinesBody schedules alarm-1 explicitly
const leftRoutinesBody = `{
	"settings": {"routines": [{
		"id": "routine-1", "enabled": true,
		"alarms": [{"alarmId": "alarm-1", "enabled": true, "disabledIndividually": false, "time": "07:30:00"}]
	}]},
	"state": {"nextAlarm": {"nextTimestamp": "2024-03-10T07:30:00Z", "alarmId": "alarm-1"}, "upcomingRoutineId": "routine-1"}
}`

// rightRoutinesBody has no scheduled alarm, only an upcoming routine whose
// override alarm is disabled
const rightRoutinesBody = `{
	"settings": {"routines": [{
		"id": "routine-2", "enabled": true,
		"alarms": [{"alarmId": "alarm-2", "enabled": true}],
		"override": {"routineEnabled": true, "alarms": [{"alarmId": "alarm-2b", "enabled": false}]}
	}]},
	"state": {"upcomingRoutineId": "routine-2"}
}`

const leftTemperatureBody = `{
	"currentLevel": 10, "currentDeviceLevel": 0,
	"currentState": {"type": "smart"},
	"smart": {"bedTimeLevel": 10, "initialSleepLevel": -5, "finalSleepLevel": 0}
}`

const rightTemperatureBody = `{"currentLevel": -20, "currentDeviceLevel": -50, "currentState": {"type": "off"}}`

const deviceDataBody = `{"result": {
	"leftHeatingLevel": 10, "rightHeatingLevel": -50,
	"leftTargetHeatingLevel": 10, "rightTargetHeatingLevel": -20,
	"leftNowHeating": true, "rightNowHeating": false,
	"needsPriming": false, "priming": false, "hasWater": true,
	"lastPrime": "2024-03-01T12:00:00.000Z"
}}`

// SeedAccount stubs a two-user account on f: user-left and user-right share
// dev-1. Every mutation endpoint answers 200.
func SeedAccount(f *FakeAPI) {
	f.SetToken(FixtureToken)

	f.Stub(http.MethodPost, "/v1/tokens", http.StatusOK, tokenBody)
	f.Stub(http.MethodGet, "/v1/users/me", http.StatusOK, meBody)
	f.Stub(http.MethodGet, "/v1/devices/"+FixtureDeviceID, http.StatusOK, deviceUsersBody)

	f.Stub(http.MethodGet, "/v1/users/user-left", http.StatusOK, leftUserBody)
	f.Stub(http.MethodGet, "/v1/users/user-left/trends", http.StatusOK, leftTrendsBody)
	f.Stub(http.MethodGet, "/v2/users/user-left/routines", http.StatusOK, leftRoutinesBody)
	f.Stub(http.MethodGet, "/v1/users/user-left/temperature", http.StatusOK, leftTemperatureBody)

	f.Stub(http.MethodGet, "/v1/users/user-right", http.StatusOK, rightUserBody)
	f.Stub(http.MethodGet, "/v1/users/user-right/trends", http.StatusOK, rightTrendsBody)
	f.Stub(http.MethodGet, "/v2/users/user-right/routines", http.StatusOK, rightRoutinesBody)
	f.Stub(http.MethodGet, "/v1/users/user-right/temperature", http.StatusOK, rightTemperatureBody)

	for _, id := range []string{FixtureLeftUserID, FixtureRightUserID} {
		f.Stub(http.MethodPut, "/v1/users/"+id+"/temperature", http.StatusOK, `{}`)
		f.Stub(http.MethodPut, "/v1/users/"+id+"/away-mode", http.StatusOK, `{}`)
	}
}

// StubDeviceData makes /v1/devices/dev-1 answer with the device-wide state
// instead of the user assignment
func StubDeviceData(f *FakeAPI) {
	f.Stub(http.MethodGet, "/v1/devices/"+FixtureDeviceID, http.StatusOK, deviceDataBody)
}
