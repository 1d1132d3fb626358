package cmd

import (
	"strings"
	"testing"
)

func TestConvertCommand(t *testing.T) {
	account := newFakeAccount(t)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "raw zero in celsius",
			args: []string{"convert", "raw", "0"},
			want: "27.0°C",
		},
		{
			name: "negative raw level",
			args: []string{"convert", "raw", "--", "-50"},
			want: "21.0°C",
		},
		{
			name: "interpolated raw level",
			args: []string{"convert", "raw", "3"},
			want: "27.5°C",
		},
		{
			name: "raw level in fahrenheit",
			args: []string{"--unit", "fahrenheit", "convert", "raw", "--", "-100"},
			want: "55.0°F",
		},
		{
			name: "temperature in celsius",
			args: []string{"convert", "temp", "27"},
			want: "0",
		},
		{
			name: "fahrenheit plateau picks lowest level",
			args: []string{"--unit", "fahrenheit", "convert", "temp", "77"},
			want: "-18",
		},
		{
			name: "temperature above range clamps",
			args: []string{"convert", "temp", "60"},
			want: "100",
		},
		{
			name:    "raw level out of range",
			args:    []string{"convert", "raw", "150"},
			wantErr: true,
		},
		{
			name:    "raw level not a number",
			args:    []string{"convert", "raw", "warm"},
			wantErr: true,
		},
		{
			name:    "temperature not a number",
			args:    []string{"convert", "temp", "hot"},
			wantErr: true,
		},
		{
			name:    "temperature NaN",
			args:    []string{"convert", "temp", "NaN"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := account.run(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := strings.TrimSpace(stdout); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}

	if n := len(account.api.Requests()); n != 0 {
		t.Errorf("convert made %d request(s), want none", n)
	}
}
