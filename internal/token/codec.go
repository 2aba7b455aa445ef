// Package token implements the capability key codec: a compact signed
// credential that authorizes one actor to submit answers for one exercise
// instance until it expires. Keys are never persisted; validity is proven
// purely by signature and expiry, so verification never touches storage.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// Payload is what a capability key encodes. Field tags are kept short to
// keep the token compact.
type Payload struct {
	InstanceID  string `json:"iid"`
	SessionID   string `json:"sid,omitempty"`
	UserID      string `json:"uid,omitempty"`
	GuestID     string `json:"gid,omitempty"`
	Exp         int64  `json:"exp"`
	AllowReveal bool   `json:"rev,omitempty"`
}

// Actor returns the identity embedded in the key.
func (p Payload) Actor() model.Actor {
	var a model.Actor
	if p.UserID != "" {
		u := p.UserID
		a.UserID = &u
	}
	if p.GuestID != "" {
		g := p.GuestID
		a.GuestID = &g
	}
	return a
}

// Codec signs and verifies capability keys with an HMAC-SHA256 shared
// secret. The secret is an explicit constructor dependency so tests can
// supply a fixed one.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New builds a codec with the given signing secret and default key lifetime.
func New(secret string, ttl time.Duration) *Codec {
	return NewWithClock(secret, ttl, time.Now)
}

// NewWithClock is used by tests that need deterministic expiry checks.
func NewWithClock(secret string, ttl time.Duration, now func() time.Time) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: now}
}

// TTL returns the default key lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Sign serializes the payload and appends its MAC: base64url(body) + "." +
// base64url(hmac-sha256(body)).
func (c *Codec) Sign(p Payload) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(body)
	return encoded + "." + c.mac(encoded), nil
}

// Issue signs a payload with the codec's default lifetime applied.
func (c *Codec) Issue(p Payload) (string, time.Time, error) {
	exp := c.now().Add(c.ttl)
	p.Exp = exp.Unix()
	key, err := c.Sign(p)
	return key, exp, err
}

// Verify checks the signature in constant time before parsing anything, then
// rejects keys with no instance binding or a non-future expiry. Every
// failure path returns model.ErrInvalidKey so callers always fail closed.
func (c *Codec) Verify(key string) (Payload, error) {
	var p Payload

	dot := strings.IndexByte(key, '.')
	if dot <= 0 || dot == len(key)-1 {
		return p, model.ErrInvalidKey
	}
	encoded, sig := key[:dot], key[dot+1:]

	sigBytes, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || len(sigBytes) != sha256.Size {
		return p, model.ErrInvalidKey
	}
	expected, err := base64.RawURLEncoding.DecodeString(c.mac(encoded))
	if err != nil || !hmac.Equal(sigBytes, expected) {
		return p, model.ErrInvalidKey
	}

	body, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, model.ErrInvalidKey
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return Payload{}, model.ErrInvalidKey
	}
	if p.InstanceID == "" {
		return Payload{}, model.ErrInvalidKey
	}
	if !time.Unix(p.Exp, 0).After(c.now()) {
		return Payload{}, model.ErrInvalidKey
	}
	return p, nil
}

func (c *Codec) mac(encoded string) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
