// Package token issues and verifies the signed bearer tokens that carry a
// user's identity and authorization snapshot between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mlemaire/user-management-api/internal/models"
)

// ErrMissingSecret means the signing secret was never configured. Callers
// must fail closed with a server-error status; a token signed with an empty
// secret is worse than no token.
var ErrMissingSecret = errors.New("jwt signing secret is not configured")

// Kind tags the distinct ways verification can fail. The client always sees
// the same unauthorized status; the kind drives the machine-readable code
// and diagnostics.
type Kind int

const (
	KindMalformed Kind = iota
	KindSignature
	KindExpired
	KindNotYetValid
)

func (k Kind) String() string {
	switch k {
	case KindSignature:
		return "signature"
	case KindExpired:
		return "expired"
	case KindNotYetValid:
		return "not_yet_valid"
	default:
		return "malformed"
	}
}

// VerifyError is the tagged-variant result of a failed verification.
type VerifyError struct {
	Kind Kind
	err  error
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("token verification failed (%s): %v", e.Kind, e.err)
}

func (e *VerifyError) Unwrap() error { return e.err }

// Claims embeds the registered claim set plus the identity and authorization
// snapshot taken at issuance. Role or permission changes after issuance do
// not propagate into live tokens; they apply at the next login.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
}

// HasPermission reports whether the token's permission snapshot contains the
// permission.
func (c *Claims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Manager signs and verifies HS256 tokens with a fixed lifetime and
// issuer/audience provenance tags. It is read-only after construction and
// safe for concurrent use.
type Manager struct {
	secret   []byte
	lifetime time.Duration
	issuer   string
	audience string
}

func NewManager(secret string, lifetime time.Duration, issuer, audience string) *Manager {
	return &Manager{
		secret:   []byte(secret),
		lifetime: lifetime,
		issuer:   issuer,
		audience: audience,
	}
}

// Issue mints a signed token for the user, embedding the current
// role/permission snapshot.
func (m *Manager) Issue(user *models.User) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
		UserID:      user.ID.String(),
		Email:       user.Email,
		Role:        user.Role,
		Permissions: append([]string(nil), user.Permissions...),
		FirstName:   user.FirstName,
		LastName:    user.LastName,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature, expiry and not-before in a single pass. Failures
// come back as a *VerifyError whose kind is derived from the jwt sentinel
// errors, never from matching error strings.
func (m *Manager) Verify(raw string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, &VerifyError{Kind: classify(err), err: err}
	}
	if !tok.Valid {
		return nil, &VerifyError{Kind: KindMalformed, err: errors.New("token is not valid")}
	}

	return claims, nil
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return KindExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return KindNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return KindSignature
	default:
		return KindMalformed
	}
}
