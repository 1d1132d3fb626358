package internal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	MinHeatingLevel = -100
	MaxHeatingLevel = 100
)

// Away mode actions
const (
	AwayStart = "start"
	AwayEnd   = "end"
)

// ControlActions issues state-changing commands. Multi-step commands are
// not rolled back when a later step fails.
type ControlActions struct {
	api       *apiClient
	appAPIURL string
	now       func() time.Time
}

func (c *ControlActions) temperatureURL(userID string) string {
	return endpoint(c.appAPIURL, "/v1/users/%s/temperature", url.PathEscape(userID))
}

// ClampHeatingLevel limits level to the device range
func ClampHeatingLevel(level int) int {
	if level < MinHeatingLevel {
		return MinHeatingLevel
	}
	if level > MaxHeatingLevel {
		return MaxHeatingLevel
	}
	return level
}

// SetHeatingLevel turns the side on and sets level. When duration is
// positive a separate timed command keeps the level for that long.
func (c *ControlActions) SetHeatingLevel(ctx context.Context, userID string, level int, duration time.Duration) error {
	level = ClampHeatingLevel(level)

	if err := c.TurnOnSide(ctx, userID); err != nil {
		return err
	}
	if err := c.api.put(ctx, c.temperatureURL(userID), map[string]interface{}{
		"currentLevel": level,
	}); err != nil {
		return err
	}

	seconds := int(duration / time.Second)
	if seconds > 0 {
		if err := c.api.put(ctx, c.temperatureURL(userID), map[string]interface{}{
			"timeBased": map[string]int{
				"level":           level,
				"durationSeconds": seconds,
			},
		}); err != nil {
			return err
		}
	}
	return nil
}

// TurnOnSide switches the side to smart mode
func (c *ControlActions) TurnOnSide(ctx context.Context, userID string) error {
	return c.setState(ctx, userID, BedStateSmart)
}

// TurnOffSide switches the side off
func (c *ControlActions) TurnOffSide(ctx context.Context, userID string) error {
	return c.setState(ctx, userID, BedStateOff)
}

func (c *ControlActions) setState(ctx context.Context, userID string, state BedState) error {
	return c.api.put(ctx, c.temperatureURL(userID), map[string]interface{}{
		"currentState": map[string]string{"type": string(state)},
	})
}

// SetAwayMode starts or ends away mode. The period boundary is sent as
// "now minus one day" in UTC, which is what the server accepts.
func (c *ControlActions) SetAwayMode(ctx context.Context, userID, action string) error {
	if action != AwayStart && action != AwayEnd {
		return &APIError{
			StatusCode: http.StatusBadRequest,
			Body:       []byte(fmt.Sprintf("invalid away mode action %q (expected start or end)", action)),
		}
	}
	stamp := AwayTimestamp(c.now())
	return c.api.put(ctx, endpoint(c.appAPIURL, "/v1/users/%s/away-mode", url.PathEscape(userID)), map[string]interface{}{
		"awayPeriod": map[string]string{action: stamp},
	})
}

// AwayTimestamp formats the away-mode boundary for now
func AwayTimestamp(now time.Time) string {
	return now.UTC().AddDate(0, 0, -1).Format(awayTimeLayout)
}
