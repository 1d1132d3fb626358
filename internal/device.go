package internal

import (
	"context"
	"net/url"
	"sort"
)

// Side is the half of the mattress a user sleeps on
type Side string

const (
	SideSolo  Side = "solo"
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// ParseSide accepts exactly solo, left or right
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideSolo, SideLeft, SideRight:
		return Side(s), nil
	default:
		return "", &InvalidSideError{Side: s}
	}
}

// Device is the account's pod and what it can do
type Device struct {
	ID      string `json:"id" yaml:"id"`
	CanCool bool   `json:"can_cool" yaml:"can_cool"`
	HasBase bool   `json:"has_base" yaml:"has_base"`
}

// BedSideUser is a user bound to a side of the device
type BedSideUser struct {
	UserID string `json:"user_id" yaml:"user_id"`
	Side   Side   `json:"side" yaml:"side"`
}

// Account is the result of device discovery
type Account struct {
	DeviceIDs []string
	Features  []string
}

// Primary returns the device used for everything else. Multi-device
// accounts are not supported, so the first device wins.
func (a Account) Primary() (Device, error) {
	if len(a.DeviceIDs) == 0 {
		return Device{}, ErrDeviceNotFound
	}
	return Device{
		ID:      a.DeviceIDs[0],
		CanCool: hasFeature(a.Features, featureCooling),
		HasBase: hasFeature(a.Features, featureElevation),
	}, nil
}

func hasFeature(features []string, name string) bool {
	for _, f := range features {
		if f == name {
			return true
		}
	}
	return false
}

// DeviceResolver discovers the device and its bed-side users
type DeviceResolver struct {
	api          *apiClient
	clientAPIURL string
}

// FetchAccount returns the device ids and features of the signed-in account
func (r *DeviceResolver) FetchAccount(ctx context.Context) (Account, error) {
	var resp userMeResponse
	if err := r.api.get(ctx, r.clientAPIURL+"/users/me", nil, &resp); err != nil {
		return Account{}, err
	}
	return Account{DeviceIDs: resp.User.Devices, Features: resp.User.Features}, nil
}

// ResolveDevice fetches the account and returns its primary device
func (r *DeviceResolver) ResolveDevice(ctx context.Context) (Device, error) {
	account, err := r.FetchAccount(ctx)
	if err != nil {
		return Device{}, err
	}
	device, err := account.Primary()
	if err != nil {
		return Device{}, err
	}
	LogDebug("Device %s (cooling=%t, base=%t)", device.ID, device.CanCool, device.HasBase)
	return device, nil
}

// ResolveUsers returns every user assigned to deviceID, keyed by user id.
// Away users are included. Users without a usable side are left out.
func (r *DeviceResolver) ResolveUsers(ctx context.Context, deviceID string) (map[string]BedSideUser, error) {
	if deviceID == "" {
		return nil, ErrDeviceNotFound
	}

	var assignment deviceUsersResponse
	err := r.api.get(ctx,
		endpoint(r.clientAPIURL, "/devices/%s", url.PathEscape(deviceID)),
		url.Values{"filter": {"leftUserId,rightUserId,awaySides"}},
		&assignment)
	if err != nil {
		return nil, err
	}

	ids := map[string]struct{}{}
	if id := assignment.Result.LeftUserID; id != "" {
		ids[id] = struct{}{}
	}
	if id := assignment.Result.RightUserID; id != "" {
		ids[id] = struct{}{}
	}
	for _, id := range assignment.Result.AwaySides {
		if id != "" {
			ids[id] = struct{}{}
		}
	}

	users := make(map[string]BedSideUser, len(ids))
	for _, id := range sortedKeys(ids) {
		side, err := r.fetchSide(ctx, id)
		if err != nil {
			return nil, err
		}
		if side == "" {
			continue
		}
		users[id] = BedSideUser{UserID: id, Side: side}
	}
	return users, nil
}

// fetchSide returns "" when the user has no parseable side
func (r *DeviceResolver) fetchSide(ctx context.Context, userID string) (Side, error) {
	var resp userResponse
	if err := r.api.get(ctx, endpoint(r.clientAPIURL, "/users/%s", url.PathEscape(userID)), nil, &resp); err != nil {
		return "", err
	}
	if resp.User.CurrentDevice == nil {
		LogDebug("User %s has no current device, skipping", userID)
		return "", nil
	}
	side, err := ParseSide(resp.User.CurrentDevice.Side)
	if err != nil {
		LogDebug("User %s skipped: %v", userID, err)
		return "", nil
	}
	return side, nil
}

// FetchDeviceData returns the device-wide heating and priming state
func (r *DeviceResolver) FetchDeviceData(ctx context.Context, deviceID string) (DeviceData, error) {
	if deviceID == "" {
		return DeviceData{}, ErrDeviceNotFound
	}
	var resp deviceDataResponse
	if err := r.api.get(ctx, endpoint(r.clientAPIURL, "/devices/%s", url.PathEscape(deviceID)), nil, &resp); err != nil {
		return DeviceData{}, err
	}
	return resp.Result, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
