package cmd

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/iksnae/eight-sleep/testutil"
)

const leftTemperaturePath = "/v1/users/user-left/temperature"

// putBodies decodes the bodies of the PUT requests sent to path
func putBodies(t *testing.T, api *testutil.FakeAPI, path string) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, r := range api.RequestsTo(http.MethodPut, path) {
		var body map[string]interface{}
		testutil.JSONUnmarshal(t, r.Body, &body)
		out = append(out, body)
	}
	return out
}

func TestHeatCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantLevel   float64
		wantPuts    int
		wantWarning bool
	}{
		{
			name:      "level without duration",
			args:      []string{"heat", "--duration", "0", "user-left", "20"},
			wantLevel: 20,
			wantPuts:  2,
		},
		{
			name:      "negative level with duration",
			args:      []string{"heat", "--duration", "90m", "user-left", "--", "-30"},
			wantLevel: -30,
			wantPuts:  3,
		},
		{
			name:        "level is clamped",
			args:        []string{"heat", "--duration", "0", "user-left", "150"},
			wantLevel:   100,
			wantPuts:    2,
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := newFakeAccount(t)
			stdout, stderr, err := account.run(t, tt.args...)
			if err != nil {
				t.Fatalf("heat error = %v", err)
			}

			bodies := putBodies(t, account.api, leftTemperaturePath)
			if len(bodies) != tt.wantPuts {
				t.Fatalf("PUT requests = %d, want %d: %v", len(bodies), tt.wantPuts, bodies)
			}
			state, _ := bodies[0]["currentState"].(map[string]interface{})
			if state["type"] != "smart" {
				t.Errorf("first PUT = %v, want smart state", bodies[0])
			}
			if bodies[1]["currentLevel"] != tt.wantLevel {
				t.Errorf("second PUT = %v, want currentLevel %v", bodies[1], tt.wantLevel)
			}
			if tt.wantPuts == 3 {
				timed, _ := bodies[2]["timeBased"].(map[string]interface{})
				if timed["durationSeconds"] != float64(5400) || timed["level"] != tt.wantLevel {
					t.Errorf("third PUT = %v, want 5400s at %v", bodies[2], tt.wantLevel)
				}
			}
			if !strings.Contains(stdout, "Heating level of user-left set to") {
				t.Errorf("stdout = %q", stdout)
			}
			if got := strings.Contains(stderr, "clamped"); got != tt.wantWarning {
				t.Errorf("clamp warning = %v, want %v (stderr %q)", got, tt.wantWarning, stderr)
			}
		})
	}
}

func TestHeatCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown user",
			args:    []string{"heat", "--duration", "0", "nobody", "10"},
			wantErr: "user not found",
		},
		{
			name:    "level not a number",
			args:    []string{"heat", "--duration", "0", "user-left", "warm"},
			wantErr: "invalid level",
		},
		{
			name:    "negative duration",
			args:    []string{"heat", "--duration", "-1h", "user-left", "10"},
			wantErr: "invalid duration",
		},
		{
			name:    "missing level",
			args:    []string{"heat", "--duration", "0", "user-left"},
			wantErr: "accepts 2 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := newFakeAccount(t)
			_, _, err := account.run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("heat error = %v, want %q", err, tt.wantErr)
			}
			for _, r := range account.api.Requests() {
				if r.Method == http.MethodPut {
					t.Errorf("unexpected PUT %s", r.Path)
				}
			}
		})
	}
}

func TestOnOffCommands(t *testing.T) {
	tests := []struct {
		command   string
		wantState string
		wantOut   string
	}{
		{command: "on", wantState: "smart", wantOut: "turned on"},
		{command: "off", wantState: "off", wantOut: "turned off"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			account := newFakeAccount(t)
			stdout, _, err := account.run(t, tt.command, "user-left")
			if err != nil {
				t.Fatalf("%s error = %v", tt.command, err)
			}
			bodies := putBodies(t, account.api, leftTemperaturePath)
			if len(bodies) != 1 {
				t.Fatalf("PUT requests = %d, want 1", len(bodies))
			}
			state, _ := bodies[0]["currentState"].(map[string]interface{})
			if state["type"] != tt.wantState {
				t.Errorf("PUT body = %v, want state %s", bodies[0], tt.wantState)
			}
			if !strings.Contains(stdout, tt.wantOut) {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantOut)
			}
		})
	}
}

func TestAwayCommand(t *testing.T) {
	for _, action := range []string{"start", "end"} {
		t.Run(action, func(t *testing.T) {
			account := newFakeAccount(t)
			if _, _, err := account.run(t, "away", "user-right", action); err != nil {
				t.Fatalf("away %s error = %v", action, err)
			}
			reqs := account.api.RequestsTo(http.MethodPut, "/v1/users/user-right/away-mode")
			if len(reqs) != 1 {
				t.Fatalf("away-mode requests = %d, want 1", len(reqs))
			}
			var body struct {
				AwayPeriod map[string]string `json:"awayPeriod"`
			}
			if err := json.Unmarshal(reqs[0].Body, &body); err != nil {
				t.Fatalf("away-mode body: %v", err)
			}
			stamp, ok := body.AwayPeriod[action]
			if !ok || len(body.AwayPeriod) != 1 || !strings.HasSuffix(stamp, ".000Z") {
				t.Errorf("away-mode body = %s", reqs[0].Body)
			}
		})
	}
}

func TestAwayCommand_InvalidAction(t *testing.T) {
	account := newFakeAccount(t)
	_, _, err := account.run(t, "away", "user-right", "pause")
	if err == nil || !strings.Contains(err.Error(), "invalid action") {
		t.Fatalf("away error = %v, want invalid action", err)
	}
	if n := len(account.api.Requests()); n != 0 {
		t.Errorf("invalid action made %d request(s), want none", n)
	}
}
