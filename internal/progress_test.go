package internal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

func captureStatus(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var status, result bytes.Buffer
	SetStatusOutput(&status, &result)
	t.Cleanup(func() { SetStatusOutput(os.Stderr, os.Stdout) })
	return &status, &result
}

func TestShowProgress(t *testing.T) {
	captureStatus(t)

	tests := []struct {
		name    string
		fn      func(ctx context.Context) error
		wantErr bool
	}{
		{name: "successful function", fn: func(ctx context.Context) error { return nil }},
		{name: "function with error", fn: func(ctx context.Context) error { return errors.New("test error") }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgress(context.Background(), "Testing", tt.fn)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShowProgressWithSteps_StopsAtFirstFailure(t *testing.T) {
	captureStatus(t)

	var ran []string
	step := func(name string, err error) ProgressStep {
		return ProgressStep{Message: name, Fn: func(ctx context.Context) error {
			ran = append(ran, name)
			return err
		}}
	}

	err := ShowProgressWithSteps(context.Background(), []ProgressStep{
		step("authenticate", nil),
		step("resolve device", errors.New("no device")),
		step("resolve users", nil),
	})
	if err == nil || !strings.Contains(err.Error(), "resolve device") {
		t.Errorf("ShowProgressWithSteps() error = %v", err)
	}
	if strings.Join(ran, ",") != "authenticate,resolve device" {
		t.Errorf("ran = %v", ran)
	}
}

func TestPrintFunctions(t *testing.T) {
	status, result := captureStatus(t)

	PrintSuccess("done")
	PrintInfo("fyi")
	PrintWarning("careful")
	PrintError("broken")

	if got := result.String(); got != "done\nfyi\n" {
		t.Errorf("result output = %q", got)
	}
	if got := status.String(); got != "WARNING: careful\nbroken\n" {
		t.Errorf("status output = %q", got)
	}
}
