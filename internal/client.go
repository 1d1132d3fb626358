package internal

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ClientOptions configures NewClient. Zero values fall back to the
// platform defaults.
type ClientOptions struct {
	Credentials  Credentials
	Location     *time.Location
	Transport    Transport
	AuthURL      string
	ClientAPIURL string
	AppAPIURL    string
	Now          func() time.Time
}

// Client is a single logical session against the platform. Calls on one
// Client are meant to be made one at a time.
type Client struct {
	creds    Credentials
	sessions *SessionStore
	auth     *AuthGateway
	devices  *DeviceResolver
	users    *UserAggregator
	controls *ControlActions

	mu         sync.RWMutex
	device     *Device
	deviceData *DeviceData
}

// NewClient wires the components together
func NewClient(opts ClientOptions) *Client {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	transport := opts.Transport
	if transport == nil {
		transport = NewHTTPTransport(HTTPTransportOptions{})
	}
	clientAPI := strings.TrimRight(orDefault(opts.ClientAPIURL, DefaultClientAPIURL), "/")
	appAPI := strings.TrimRight(orDefault(opts.AppAPIURL, DefaultAppAPIURL), "/")

	sessions := NewSessionStore(now)
	api := &apiClient{transport: transport, sessions: sessions}

	return &Client{
		creds:    opts.Credentials,
		sessions: sessions,
		auth:     NewAuthGateway(transport, sessions, opts.AuthURL, now),
		devices:  &DeviceResolver{api: api, clientAPIURL: clientAPI},
		users: &UserAggregator{
			api:          api,
			clientAPIURL: clientAPI,
			appAPIURL:    appAPI,
			location:     loc,
			now:          now,
			snapshots:    map[string]UserSnapshot{},
		},
		controls: &ControlActions{api: api, appAPIURL: appAPI, now: now},
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Start authenticates, resolves the device and resolves its users
func (c *Client) Start(ctx context.Context) error {
	if _, err := c.auth.Authenticate(ctx, c.creds); err != nil {
		return err
	}
	return c.Discover(ctx)
}

// Discover resolves the device and its users with the current session
func (c *Client) Discover(ctx context.Context) error {
	device, err := c.devices.ResolveDevice(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.device = &device
	c.mu.Unlock()

	users, err := c.devices.ResolveUsers(ctx, device.ID)
	if err != nil {
		return err
	}
	c.users.Track(users)
	LogDebug("Resolved %d user(s) on device %s", len(users), device.ID)
	return nil
}

// RefreshToken re-authenticates with the stored credentials
func (c *Client) RefreshToken(ctx context.Context) error {
	_, err := c.auth.Authenticate(ctx, c.creds)
	return err
}

// RestoreSession installs a previously obtained session
func (c *Client) RestoreSession(s Session) {
	c.sessions.Set(s)
}

// Session returns the current session, if any
func (c *Client) Session() (Session, bool) {
	return c.sessions.Current()
}

// Device returns the resolved primary device
func (c *Client) Device() (Device, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.device == nil {
		return Device{}, false
	}
	return *c.device, true
}

// DeviceID is the primary device id, or "" before discovery
func (c *Client) DeviceID() string {
	d, _ := c.Device()
	return d.ID
}

// RefreshDevice fetches the device-wide state
func (c *Client) RefreshDevice(ctx context.Context) (DeviceData, error) {
	data, err := c.devices.FetchDeviceData(ctx, c.DeviceID())
	if err != nil {
		return DeviceData{}, err
	}
	c.mu.Lock()
	c.deviceData = &data
	c.mu.Unlock()
	return data, nil
}

// DeviceData returns the last fetched device state
func (c *Client) DeviceData() (DeviceData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.deviceData == nil {
		return DeviceData{}, false
	}
	return *c.deviceData, true
}

// UserIDs returns the resolved user ids in sorted order
func (c *Client) UserIDs() []string {
	return c.users.UserIDs()
}

// User returns the latest snapshot of userID
func (c *Client) User(userID string) (UserSnapshot, error) {
	s, ok := c.users.Snapshot(userID)
	if !ok {
		return UserSnapshot{}, ErrUserNotFound
	}
	return s, nil
}

// Users returns every snapshot ordered by user id
func (c *Client) Users() []UserSnapshot {
	return c.users.Snapshots()
}

// UpdateUser refreshes every facet of one user
func (c *Client) UpdateUser(ctx context.Context, userID string) (UserSnapshot, error) {
	return c.users.RefreshOne(ctx, userID)
}

// UpdateUserData refreshes every user, stopping at the first failure
func (c *Client) UpdateUserData(ctx context.Context) error {
	return c.users.RefreshAll(ctx)
}

// NextAlarm returns the upcoming alarm of userID
func (c *Client) NextAlarm(userID string) (NextAlarmInfo, error) {
	s, err := c.User(userID)
	if err != nil {
		return NextAlarmInfo{}, err
	}
	return s.UpcomingAlarm()
}

// SetHeatingLevel sets the heating level of a known user's side
func (c *Client) SetHeatingLevel(ctx context.Context, userID string, level int, duration time.Duration) error {
	if _, ok := c.users.Snapshot(userID); !ok {
		return ErrUserNotFound
	}
	return c.controls.SetHeatingLevel(ctx, userID, level, duration)
}

// TurnOnSide switches userID's side to smart mode
func (c *Client) TurnOnSide(ctx context.Context, userID string) error {
	return c.controls.TurnOnSide(ctx, userID)
}

// TurnOffSide switches userID's side off
func (c *Client) TurnOffSide(ctx context.Context, userID string) error {
	return c.controls.TurnOffSide(ctx, userID)
}

// SetAwayMode starts or ends away mode for userID
func (c *Client) SetAwayMode(ctx context.Context, userID, action string) error {
	return c.controls.SetAwayMode(ctx, userID, action)
}
