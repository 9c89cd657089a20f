package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	"ticketflow/internal/config"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrWrongAudience = errors.New("token audience mismatch")
)

// Claims covers both access and id tokens issued by the identity provider.
type Claims struct {
	TokenUse          string `json:"token_use"`
	ClientID          string `json:"client_id"`
	CustomID          string `json:"custom:id"`
	Email             string `json:"email"`
	Username          string `json:"username"`
	CognitoUsername   string `json:"cognito:username"`
	PreferredUsername string `json:"preferred_username"`
	Role              string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the caller identity extracted from a verified token.
type Identity struct {
	Subject  string
	UserID   string
	Email    string
	Username string
	Role     string
}

// Verifier validates bearer tokens against the identity provider's JWKS.
// The key set is cached in-process and refreshed hourly; an unknown kid
// triggers one immediate refresh before the token is rejected.
type Verifier struct {
	keyfunc  jwt.Keyfunc
	issuer   string
	clientID string
	close    func()
}

func NewVerifier(ctx context.Context, cfg config.Auth) (*Verifier, error) {
	jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}

	return &Verifier{
		keyfunc:  jwks.Keyfunc,
		issuer:   cfg.Issuer,
		clientID: cfg.ClientID,
		close:    jwks.EndBackground,
	}, nil
}

// NewVerifierWithKeyfunc wires a static key lookup, used in tests.
func NewVerifierWithKeyfunc(kf jwt.Keyfunc, issuer, clientID string) *Verifier {
	return &Verifier{keyfunc: kf, issuer: issuer, clientID: clientID, close: func() {}}
}

func (v *Verifier) Close() {
	v.close()
}

func (v *Verifier) Verify(tokenStr string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, v.keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Access tokens carry client_id and no aud; id tokens carry aud.
	switch claims.TokenUse {
	case "access":
		if claims.ClientID != v.clientID {
			return nil, ErrWrongAudience
		}
	default:
		if !containsAudience(claims.Audience, v.clientID) {
			return nil, ErrWrongAudience
		}
	}

	return &Identity{
		Subject:  claims.Subject,
		UserID:   userID(claims),
		Email:    claims.Email,
		Username: username(claims),
		Role:     claims.Role,
	}, nil
}

func userID(c *Claims) string {
	if c.CustomID != "" {
		return c.CustomID
	}
	return c.Subject
}

func username(c *Claims) string {
	switch {
	case c.Username != "":
		return c.Username
	case c.CognitoUsername != "":
		return c.CognitoUsername
	default:
		return c.PreferredUsername
	}
}

func containsAudience(aud jwt.ClaimStrings, clientID string) bool {
	for _, a := range aud {
		if a == clientID {
			return true
		}
	}
	return false
}
