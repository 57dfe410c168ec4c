package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	// MaxCookieSize is the maximum size for a cookie (4KB).
	MaxCookieSize = 4096
	// minSecretLength is the minimum secret length accepted for signing.
	minSecretLength = 32
)

// Manager reads and writes HTTP cookies, optionally HMAC-signed.
type Manager struct {
	secrets  []string
	defaults Options
	maxSize  int
}

// New creates a cookie manager. The first secret signs new cookies; all
// secrets are accepted when verifying, which allows key rotation.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return &Manager{
		secrets:  secrets,
		defaults: defaults,
		maxSize:  MaxCookieSize,
	}, nil
}

// Set writes a cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}

	if size := len(c.String()); size > m.maxSize {
		return ErrCookieTooLarge{Name: name, Size: size, Max: m.maxSize}
	}

	http.SetCookie(w, c)
	return nil
}

// Get returns the value of a cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires a cookie on the client.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	})
}

// SetSigned writes a cookie whose value is signed with the cookie name,
// so a value cannot be replayed under another cookie.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.sign(name, value), opts...)
}

// GetSigned reads a signed cookie and verifies its signature.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(name, signed)
}

func mac(secret, name string, value []byte) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write(value)
	return h.Sum(nil)
}

// sign encodes the value and appends its signature: base64(value).base64(mac).
func (m *Manager) sign(name, value string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(value)) + "." + enc.EncodeToString(mac(m.secrets[0], name, []byte(value)))
}

func (m *Manager) verify(name, signed string) (string, error) {
	encodedValue, encodedSig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}

	enc := base64.RawURLEncoding
	value, err := enc.DecodeString(encodedValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := enc.DecodeString(encodedSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		if subtle.ConstantTimeCompare(sig, mac(secret, name, value)) == 1 {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}
