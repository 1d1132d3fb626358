package internal

import (
	"context"
	"net/http"
	"time"
)

// Credentials identify the account and the app client used for the
// password grant
type Credentials struct {
	Email        string
	Password     string
	ClientID     string // defaults to KnownClientID
	ClientSecret string // defaults to KnownClientSecret
}

// AuthGateway exchanges credentials for a Session
type AuthGateway struct {
	transport Transport
	sessions  *SessionStore
	authURL   string
	now       func() time.Time
}

// NewAuthGateway creates a gateway writing into sessions
func NewAuthGateway(transport Transport, sessions *SessionStore, authURL string, now func() time.Time) *AuthGateway {
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	if now == nil {
		now = time.Now
	}
	return &AuthGateway{
		transport: transport,
		sessions:  sessions,
		authURL:   authURL,
		now:       now,
	}
}

// Authenticate performs one password-grant exchange. On success the stored
// session is replaced; on failure the previous session is left untouched.
func (g *AuthGateway) Authenticate(ctx context.Context, creds Credentials) (Session, error) {
	clientID := creds.ClientID
	if clientID == "" {
		clientID = KnownClientID
	}
	clientSecret := creds.ClientSecret
	if clientSecret == "" {
		clientSecret = KnownClientSecret
	}

	LogDebug("Authenticating %s (client %s)", creds.Email, clientID)

	resp, err := g.transport.Send(ctx, &Request{
		Method: http.MethodPost,
		URL:    g.authURL,
		Body: map[string]string{
			"client_id":     clientID,
			"client_secret": clientSecret,
			"grant_type":    "password",
			"username":      creds.Email,
			"password":      creds.Password,
		},
		Sensitive: true,
	})
	if err != nil {
		return Session{}, err
	}
	if resp == nil {
		return Session{}, ErrInvalidResponse
	}
	if resp.StatusCode != http.StatusOK {
		LogDebug("Token exchange rejected with status %d", resp.StatusCode)
		return Session{}, &AuthenticationError{StatusCode: resp.StatusCode}
	}

	var body authResponse
	if err := decodeStrict(resp.Body, &body); err != nil {
		return Session{}, err
	}

	session := Session{
		BearerToken: body.AccessToken,
		ExpiresAt:   g.now().Add(time.Duration(body.ExpiresIn * float64(time.Second))),
		OwnerUserID: body.UserID,
	}
	g.sessions.Set(session)
	LogDebug("Authenticated as %s, token valid until %s", session.OwnerUserID, session.ExpiresAt.Format(time.RFC3339))
	return session, nil
}
