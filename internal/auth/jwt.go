package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Claims holds the JWT payload for a guest session.
type Claims struct {
	GuestID    string `json:"guest_id"`
	PlayerName string `json:"player_name"`
	jwt.RegisteredClaims
}

// JWTManager handles guest token creation and validation.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager creates a JWTManager with the given secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		expiry: 24 * time.Hour,
	}
}

// GenerateGuestToken creates a session token for a guest player.
func (m *JWTManager) GenerateGuestToken(guestID, playerName string) (string, error) {
	claims := &Claims{
		GuestID:    guestID,
		PlayerName: playerName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   guestID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates a JWT string, returning the claims.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GuestSession is the response payload for a new guest session.
type GuestSession struct {
	Token      string `json:"token"`
	GuestID    string `json:"guest_id"`
	PlayerName string `json:"player_name"`
	ExpiresIn  int    `json:"expires_in"` // seconds
}

// NewGuestSession creates a session token bundle for a guest player.
func (m *JWTManager) NewGuestSession(guestID, playerName string) (*GuestSession, error) {
	token, err := m.GenerateGuestToken(guestID, playerName)
	if err != nil {
		return nil, err
	}
	return &GuestSession{
		Token:      token,
		GuestID:    guestID,
		PlayerName: playerName,
		ExpiresIn:  int(m.expiry.Seconds()),
	}, nil
}
