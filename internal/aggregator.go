package internal

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"
)

// UserAggregator owns the per-user snapshots and refreshes them facet by facet
type UserAggregator struct {
	api          *apiClient
	clientAPIURL string
	appAPIURL    string
	location     *time.Location
	now          func() time.Time

	mu        sync.RWMutex
	snapshots map[string]UserSnapshot
}

// Track replaces the set of known users with fresh, empty snapshots
func (a *UserAggregator) Track(users map[string]BedSideUser) {
	snapshots := make(map[string]UserSnapshot, len(users))
	for id, user := range users {
		snapshots[id] = NewUserSnapshot(user)
	}
	a.mu.Lock()
	a.snapshots = snapshots
	a.mu.Unlock()
}

// UserIDs returns the known user ids in sorted order
func (a *UserAggregator) UserIDs() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return sortedKeys(a.snapshots)
}

// Snapshot returns the latest snapshot of userID
func (a *UserAggregator) Snapshot(userID string) (UserSnapshot, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.snapshots[userID]
	return s, ok
}

// Snapshots returns every snapshot ordered by user id
func (a *UserAggregator) Snapshots() []UserSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]UserSnapshot, 0, len(a.snapshots))
	for _, id := range sortedKeys(a.snapshots) {
		out = append(out, a.snapshots[id])
	}
	return out
}

func (a *UserAggregator) commit(s UserSnapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.snapshots[s.UserID]; ok {
		a.snapshots[s.UserID] = s
	}
}

// facet fetches one slice of user data and returns the patched snapshot
type facet struct {
	name  string
	fetch func(ctx context.Context, s UserSnapshot) (UserSnapshot, error)
}

func (a *UserAggregator) facets() []facet {
	return []facet{
		{"profile", a.fetchProfile},
		{"trends", a.fetchTrends},
		{"routines", a.fetchRoutines},
		{"temperature", a.fetchTemperature},
	}
}

// RefreshOne refreshes every facet of userID in order. Each facet is
// committed as soon as it succeeds; the first failure stops the refresh and
// leaves later facets as they were.
func (a *UserAggregator) RefreshOne(ctx context.Context, userID string) (UserSnapshot, error) {
	current, ok := a.Snapshot(userID)
	if !ok {
		return UserSnapshot{}, ErrUserNotFound
	}

	for _, f := range a.facets() {
		next, err := f.fetch(ctx, current)
		if err != nil {
			return current, fmt.Errorf("refresh %s of user %s: %w", f.name, userID, err)
		}
		next.UpdatedAt = a.now()
		a.commit(next)
		current = next
	}
	return current, nil
}

// RefreshAll refreshes every known user in id order and stops at the first
// failing user
func (a *UserAggregator) RefreshAll(ctx context.Context) error {
	for _, id := range a.UserIDs() {
		if _, err := a.RefreshOne(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (a *UserAggregator) fetchProfile(ctx context.Context, s UserSnapshot) (UserSnapshot, error) {
	var resp userResponse
	if err := a.api.get(ctx, endpoint(a.clientAPIURL, "/users/%s", url.PathEscape(s.UserID)), nil, &resp); err != nil {
		return s, err
	}
	return s.WithProfile(Profile{
		Email:     resp.User.Email,
		FirstName: resp.User.FirstName,
		LastName:  resp.User.LastName,
	}), nil
}

// TrendWindow returns the from/to days of the trends query: yesterday
// through tomorrow in loc
func TrendWindow(now time.Time, loc *time.Location) (from, to string) {
	local := now.In(loc)
	return local.AddDate(0, 0, -1).Format(dateLayout), local.AddDate(0, 0, 1).Format(dateLayout)
}

func (a *UserAggregator) fetchTrends(ctx context.Context, s UserSnapshot) (UserSnapshot, error) {
	from, to := TrendWindow(a.now(), a.location)
	params := url.Values{
		"tz":                   {a.location.String()},
		"from":                 {from},
		"to":                   {to},
		"include-main":         {"false"},
		"include-all-sessions": {"true"},
		"model-version":        {"v2"},
	}
	var resp trendsResponse
	if err := a.api.get(ctx, endpoint(a.clientAPIURL, "/users/%s/trends", url.PathEscape(s.UserID)), params, &resp); err != nil {
		return s, err
	}
	return s.WithTrends(resp.Days), nil
}

func (a *UserAggregator) fetchRoutines(ctx context.Context, s UserSnapshot) (UserSnapshot, error) {
	var resp routinesResponse
	if err := a.api.get(ctx, endpoint(a.appAPIURL, "/v2/users/%s/routines", url.PathEscape(s.UserID)), nil, &resp); err != nil {
		return s, err
	}
	routines := resp.Settings.Routines
	next, id := resolveNextAlarm(resp, routines)
	return s.WithRoutines(routines, next, id), nil
}

// resolveNextAlarm picks the scheduled alarm, or, when nothing is scheduled,
// the first alarm of the upcoming routine (which is then disabled)
func resolveNextAlarm(resp routinesResponse, routines []Routine) (*time.Time, string) {
	if na := resp.State.NextAlarm; na != nil && na.NextTimestamp != "" {
		if t, ok := ParseAPITime(na.NextTimestamp); ok {
			return &t, na.AlarmID
		}
		LogWarn("Unparseable next alarm timestamp %q", na.NextTimestamp)
		return nil, na.AlarmID
	}

	upcoming := resp.State.UpcomingRoutineID
	if upcoming == "" {
		return nil, ""
	}
	for _, r := range routines {
		if r.ID != upcoming {
			continue
		}
		if r.Override != nil && len(r.Override.Alarms) > 0 {
			return nil, r.Override.Alarms[0].AlarmID
		}
		if len(r.Alarms) > 0 {
			return nil, r.Alarms[0].AlarmID
		}
		return nil, ""
	}
	return nil, ""
}

func (a *UserAggregator) fetchTemperature(ctx context.Context, s UserSnapshot) (UserSnapshot, error) {
	var resp temperatureResponse
	if err := a.api.get(ctx, endpoint(a.appAPIURL, "/v1/users/%s/temperature", url.PathEscape(s.UserID)), nil, &resp); err != nil {
		return s, err
	}
	var sideTemp *float64
	if t, ok := RawToTemperature(resp.CurrentDeviceLevel, Celsius); ok {
		sideTemp = &t
	}
	return s.WithTemperature(BedState(resp.CurrentState.Type), sideTemp, resp.CurrentLevel, resp.Smart), nil
}
