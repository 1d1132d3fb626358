package internal

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
)

func newTestResolver(tr Transport) *DeviceResolver {
	return &DeviceResolver{api: authorizedAPI(tr), clientAPIURL: testClientAPI}
}

func TestParseSide(t *testing.T) {
	for _, s := range []string{"solo", "left", "right"} {
		if got, err := ParseSide(s); err != nil || string(got) != s {
			t.Errorf("ParseSide(%q) = %q, %v", s, got, err)
		}
	}
	for _, s := range []string{"", "Left", "middle", " left"} {
		var sideErr *InvalidSideError
		if _, err := ParseSide(s); !errors.As(err, &sideErr) {
			t.Errorf("ParseSide(%q) error = %v, want InvalidSideError", s, err)
		}
	}
}

func TestDeviceResolver_ResolveDevice(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Device
		wantErr error
	}{
		{
			name: "cooling only",
			body: `{"user":{"devices":["d1","d2"],"features":["cooling"]}}`,
			want: Device{ID: "d1", CanCool: true},
		},
		{
			name: "cooling and base",
			body: `{"user":{"devices":["d1"],"features":["elevation","cooling","audio"]}}`,
			want: Device{ID: "d1", CanCool: true, HasBase: true},
		},
		{
			name:    "no device",
			body:    `{"user":{"devices":[],"features":["cooling"]}}`,
			wantErr: ErrDeviceNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newStubTransport()
			tr.on(http.MethodGet, testClientAPI+"/users/me", 200, tt.body)

			got, err := newTestResolver(tr).ResolveDevice(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveDevice() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDevice() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveDevice() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDeviceResolver_ResolveUsers(t *testing.T) {
	user := func(side string) string {
		return `{"user":{"firstName":"x","currentDevice":{"id":"d1","side":"` + side + `"}}}`
	}

	tests := []struct {
		name       string
		assignment string
		users      map[string]string
		want       map[string]BedSideUser
	}{
		{
			name:       "left and right",
			assignment: `{"result":{"leftUserId":"u1","rightUserId":"u2","awaySides":{}}}`,
			users:      map[string]string{"u1": user("left"), "u2": user("right")},
			want: map[string]BedSideUser{
				"u1": {UserID: "u1", Side: SideLeft},
				"u2": {UserID: "u2", Side: SideRight},
			},
		},
		{
			name:       "away user included once",
			assignment: `{"result":{"leftUserId":"u1","awaySides":{"rightUserId":"u3","leftUserId":"u1"}}}`,
			users:      map[string]string{"u1": user("left"), "u3": user("right")},
			want: map[string]BedSideUser{
				"u1": {UserID: "u1", Side: SideLeft},
				"u3": {UserID: "u3", Side: SideRight},
			},
		},
		{
			name:       "solo sleeper",
			assignment: `{"result":{"leftUserId":"u1","rightUserId":"u1"}}`,
			users:      map[string]string{"u1": user("solo")},
			want:       map[string]BedSideUser{"u1": {UserID: "u1", Side: SideSolo}},
		},
		{
			name:       "unparseable side dropped",
			assignment: `{"result":{"leftUserId":"u1","rightUserId":"u2"}}`,
			users:      map[string]string{"u1": user("left"), "u2": user("middle")},
			want:       map[string]BedSideUser{"u1": {UserID: "u1", Side: SideLeft}},
		},
		{
			name:       "user without device dropped",
			assignment: `{"result":{"leftUserId":"u1"}}`,
			users:      map[string]string{"u1": `{"user":{"firstName":"x"}}`},
			want:       map[string]BedSideUser{},
		},
		{
			name:       "nobody assigned",
			assignment: `{"result":{}}`,
			want:       map[string]BedSideUser{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newStubTransport()
			tr.on(http.MethodGet, testClientAPI+"/devices/d1", 200, tt.assignment)
			for id, body := range tt.users {
				tr.on(http.MethodGet, testClientAPI+"/users/"+id, 200, body)
			}

			got, err := newTestResolver(tr).ResolveUsers(context.Background(), "d1")
			if err != nil {
				t.Fatalf("ResolveUsers() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveUsers() = %+v, want %+v", got, tt.want)
			}

			calls := tr.requests()
			if calls[0].Query.Get("filter") != "leftUserId,rightUserId,awaySides" {
				t.Errorf("assignment filter = %q", calls[0].Query.Get("filter"))
			}
			if len(calls) != 1+len(tt.users) {
				t.Errorf("got %d calls, want one per distinct user plus the assignment", len(calls))
			}
		})
	}
}

func TestDeviceResolver_ResolveUsersErrors(t *testing.T) {
	if _, err := newTestResolver(newStubTransport()).ResolveUsers(context.Background(), ""); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("ResolveUsers(\"\") error = %v, want ErrDeviceNotFound", err)
	}

	tr := newStubTransport()
	tr.on(http.MethodGet, testClientAPI+"/devices/d1", 200, `{"result":{"leftUserId":"u1"}}`)
	tr.on(http.MethodGet, testClientAPI+"/users/u1", 500, `oops`)
	_, err := newTestResolver(tr).ResolveUsers(context.Background(), "d1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 500 {
		t.Errorf("ResolveUsers() error = %v, want APIError(500)", err)
	}
}

func TestDeviceResolver_FetchDeviceData(t *testing.T) {
	tr := newStubTransport()
	tr.on(http.MethodGet, testClientAPI+"/devices/d1", 200, `{"result":{"leftHeatingLevel":12,"needsPriming":true,"lastPrime":"2024-03-01T12:00:00.000Z"}}`)

	data, err := newTestResolver(tr).FetchDeviceData(context.Background(), "d1")
	if err != nil {
		t.Fatalf("FetchDeviceData() error = %v", err)
	}
	if data.LeftHeatingLevel == nil || *data.LeftHeatingLevel != 12 {
		t.Errorf("LeftHeatingLevel = %v, want 12", data.LeftHeatingLevel)
	}
	if data.NeedsPriming == nil || !*data.NeedsPriming {
		t.Errorf("NeedsPriming = %v, want true", data.NeedsPriming)
	}
	if data.RightHeatingLevel != nil {
		t.Errorf("RightHeatingLevel = %v, want nil", *data.RightHeatingLevel)
	}
}
