package domain

import "time"

// AuthMethod tags which identity source established a session.
type AuthMethod string

const (
	AuthMethodProvider AuthMethod = "provider"
	AuthMethodCustom   AuthMethod = "custom"
	AuthMethodGoogle   AuthMethod = "google"
)

// Identity is the result of a successful authentication or session resolution.
type Identity struct {
	User   User       `json:"user"`
	Method AuthMethod `json:"authMethod"`
	// SessionID is the jti of an application-issued session; empty for provider sessions.
	SessionID string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// Credentials is an email/password pair submitted at login.
type Credentials struct {
	Email    string
	Password string
}

// SessionTokens are the raw cookie values presented by a client.
type SessionTokens struct {
	AccessToken   string // sb-access-token
	RefreshToken  string // sb-refresh-token
	CustomSession string // custom-session
}

// IsEmpty reports whether no session cookie was presented.
func (t SessionTokens) IsEmpty() bool {
	return t.AccessToken == "" && t.RefreshToken == "" && t.CustomSession == ""
}

// ProviderSession holds tokens issued by the managed auth provider.
type ProviderSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// ProviderUser is the user record returned by the managed auth provider.
type ProviderUser struct {
	ID    string
	Email string
	Name  string
	Role  string // optional role claim from the provider's user metadata
}
