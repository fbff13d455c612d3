// Package token mints LiveKit access tokens.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/livekit/protocol/auth"
)

var (
	ErrNotConfigured = errors.New("token issuer is not configured")
	ErrRoomRequired  = errors.New("room is required")
)

// VideoGrant mirrors the video claim LiveKit tokens carry, for Parse.
type VideoGrant struct {
	RoomJoin       bool   `json:"roomJoin,omitempty"`
	Room           string `json:"room,omitempty"`
	CanPublish     *bool  `json:"canPublish,omitempty"`
	CanSubscribe   *bool  `json:"canSubscribe,omitempty"`
	CanPublishData *bool  `json:"canPublishData,omitempty"`
}

// Claims is the LiveKit access token payload.
type Claims struct {
	jwt.RegisteredClaims
	Name  string      `json:"name,omitempty"`
	Video *VideoGrant `json:"video,omitempty"`
}

// Participant identifies who the token is issued to.
type Participant struct {
	Identity string
	Name     string
}

// Issuer signs access tokens with an API key pair. Expiry is measured from
// the wall clock at signing; clock only drives validation in Parse.
type Issuer struct {
	apiKey    string
	apiSecret string
	ttl       time.Duration
	clock     clockwork.Clock
}

// NewIssuer creates an issuer. A zero ttl defaults to 15 minutes.
func NewIssuer(apiKey, apiSecret string, ttl time.Duration, clock clockwork.Clock) *Issuer {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Issuer{apiKey: apiKey, apiSecret: apiSecret, ttl: ttl, clock: clock}
}

// Issue returns a signed token letting p join roomName with publish,
// subscribe and data permissions.
func (i *Issuer) Issue(roomName string, p Participant) (string, error) {
	if i.apiKey == "" || i.apiSecret == "" {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(roomName) == "" {
		return "", ErrRoomRequired
	}

	allow := true
	at := auth.NewAccessToken(i.apiKey, i.apiSecret).
		SetIdentity(p.Identity).
		SetName(p.Name).
		SetValidFor(i.ttl).
		SetVideoGrant(&auth.VideoGrant{
			RoomJoin:       true,
			Room:           roomName,
			CanPublish:     &allow,
			CanSubscribe:   &allow,
			CanPublishData: &allow,
		})

	signed, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token signed by this issuer and returns its claims.
func (i *Issuer) Parse(signed string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(signed, &claims, func(*jwt.Token) (any, error) {
		return []byte(i.apiSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.apiKey),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil {
		return nil, err
	}
	return &claims, nil
}
