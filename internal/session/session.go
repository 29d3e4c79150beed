// Package session binds authenticated requests to a user identity.
//
// A session is a signed JWT carried in a cookie. The token itself is
// stateless; logout works by blacklisting the token's jti in Redis until the
// token would have expired anyway. This is revocation of a single token, not
// a server-side session store.
package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the name of the session cookie.
const CookieName = "inkwell_session"

const (
	issuer   = "inkwell"
	audience = "inkwell-web"
)

// Errors returned by Parse.
var (
	ErrInvalidToken = fmt.Errorf("invalid or expired session token")
	ErrRevoked      = fmt.Errorf("session has been revoked")
)

// Identity is the authenticated principal extracted from a session token.
type Identity struct {
	UserID    uint
	Username  string
	JTI       string
	ExpiresAt time.Time
}

// Manager issues, parses, and revokes session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client
}

// NewManager creates a session Manager. redisClient may be nil, in which case
// revocation becomes a no-op and tokens stay valid until expiry.
func NewManager(secret string, ttl time.Duration, redisClient *redis.Client) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, redis: redisClient}
}

// Issue creates a signed session token for the given user.
func (m *Manager) Issue(userID uint, username string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      issuer,
		"aud":      audience,
		"exp":      now.Add(m.ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a session token and returns the identity it carries.
// Revoked tokens are rejected even if otherwise valid.
func (m *Manager) Parse(ctx context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, ErrInvalidToken
	}

	ident := &Identity{UserID: uint(userID)}
	if username, usernameOk := claims["username"].(string); usernameOk {
		ident.Username = username
	}
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		ident.ExpiresAt = exp.Time
	}
	if jti, jtiOk := claims["jti"].(string); jtiOk {
		ident.JTI = jti
	}

	if ident.JTI != "" && m.redis != nil {
		revoked, redisErr := m.redis.Exists(ctx, blacklistKey(ident.JTI)).Result()
		if redisErr == nil && revoked > 0 {
			return nil, ErrRevoked
		}
	}

	return ident, nil
}

// Revoke blacklists the identity's jti for the token's remaining lifetime.
func (m *Manager) Revoke(ctx context.Context, ident *Identity) error {
	if m.redis == nil || ident == nil || ident.JTI == "" {
		return nil
	}
	remaining := time.Until(ident.ExpiresAt)
	if remaining <= 0 {
		return nil
	}
	return m.redis.Set(ctx, blacklistKey(ident.JTI), "1", remaining).Err()
}

func blacklistKey(jti string) string {
	return "session_blacklist:" + jti
}

// generateJTI creates a unique token ID to make individual tokens revocable.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
