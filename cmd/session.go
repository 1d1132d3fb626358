package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iksnae/eight-sleep/internal"
)

// openTokenCache opens the configured token cache, or returns nil with a
// warning when it cannot be opened
func openTokenCache() *internal.TokenCache {
	cache, err := internal.OpenTokenCache(cfg.TokenCache)
	if err != nil {
		internal.LogWarn("Token cache unavailable: %v", err)
		return nil
	}
	return cache
}

// connect builds a client from the loaded config and discovers the device
// and its users. A cached session is tried first; when the API rejects it
// the client signs in again and the new session replaces the cached one.
func connect(ctx context.Context) (*internal.Client, error) {
	client, err := internal.NewClientFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	cache := openTokenCache()
	if cache != nil {
		defer cache.Close()

		s, ok, err := cache.Load(cfg.Email, time.Now())
		if err != nil {
			internal.LogWarn("Failed to read cached session: %v", err)
		} else if ok {
			internal.LogDebug("Using cached session for %s", cfg.Email)
			client.RestoreSession(s)
			err := client.Discover(ctx)
			if err == nil {
				return client, nil
			}
			if !errors.Is(err, internal.ErrTokenExpired) {
				return nil, err
			}
			internal.LogInfo("Cached session was rejected, signing in again")
		}
	}

	if err := client.Start(ctx); err != nil {
		return nil, err
	}
	if cache != nil {
		if s, ok := client.Session(); ok {
			if err := cache.Save(cfg.Email, s); err != nil {
				internal.LogWarn("Failed to cache session: %v", err)
			}
		}
	}
	return client, nil
}

// connectAndRefresh connects and refreshes userID, or every user when
// userID is empty
func connectAndRefresh(ctx context.Context, userID string) (*internal.Client, []internal.UserSnapshot, error) {
	client, err := connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	if userID != "" {
		s, err := client.UpdateUser(ctx, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to refresh user %s: %w", userID, err)
		}
		return client, []internal.UserSnapshot{s}, nil
	}
	if err := client.UpdateUserData(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to refresh users: %w", err)
	}
	return client, client.Users(), nil
}
