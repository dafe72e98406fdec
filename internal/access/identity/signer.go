package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionSigner signs and verifies EdDSA session tokens. One key per
// deployment; terminating a session goes through the session row, so key
// rotation machinery is not needed here.
type SessionSigner struct {
	issuer string
	priv   ed25519.PrivateKey
	pub    ed25519.PublicKey
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewEphemeralSigner generates a fresh signing key. Tokens do not survive
// a restart, which is acceptable for dev and test.
func NewEphemeralSigner(issuer string) (*SessionSigner, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &SessionSigner{issuer: issuer, priv: priv, pub: pub}, nil
}

// NewPersistentSigner loads the ed25519 seed from file, generating and
// writing one on first start (same pattern as the password pepper).
func NewPersistentSigner(issuer, file string) (*SessionSigner, error) {
	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		seed := make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			return nil, err
		}
		encoded := base64.RawURLEncoding.EncodeToString(seed)
		if err := os.WriteFile(file, []byte(encoded), 0600); err != nil {
			return nil, err
		}
		raw = []byte(encoded)
	} else if err != nil {
		return nil, err
	}

	seed, err := base64.RawURLEncoding.DecodeString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("decode signing key seed: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("signing key seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}

	priv := ed25519.NewKeyFromSeed(seed)
	return &SessionSigner{
		issuer: issuer,
		priv:   priv,
		pub:    priv.Public().(ed25519.PublicKey),
	}, nil
}

func (s *SessionSigner) Sign(sessionID, userID, role string, issuedAt, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(s.priv)
}

func (s *SessionSigner) verify(raw string) (sessionClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.pub, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return sessionClaims{}, err
	}
	return claims, nil
}
