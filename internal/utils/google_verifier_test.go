package utils

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signGoogleToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validGoogleClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":         "https://accounts.google.com",
		"aud":         "client-123",
		"exp":         time.Now().Add(time.Hour).Unix(),
		"email":       "jane@example.com",
		"given_name":  "Jane",
		"family_name": "Doe",
	}
}

func TestGoogleVerifier_Verify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	kf := func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil }
	v := NewGoogleVerifierWithKeyfunc("client-123", kf)

	t.Run("valid token", func(t *testing.T) {
		p, err := v.Verify(context.Background(), signGoogleToken(t, key, validGoogleClaims()))
		require.NoError(t, err)
		assert.Equal(t, &GoogleProfile{Email: "jane@example.com", GivenName: "Jane", FamilyName: "Doe"}, p)
	})

	t.Run("bare issuer accepted", func(t *testing.T) {
		c := validGoogleClaims()
		c["iss"] = "accounts.google.com"
		_, err := v.Verify(context.Background(), signGoogleToken(t, key, c))
		assert.NoError(t, err)
	})

	failures := map[string]func(jwt.MapClaims){
		"wrong audience": func(c jwt.MapClaims) { c["aud"] = "someone-else" },
		"wrong issuer":   func(c jwt.MapClaims) { c["iss"] = "https://evil.example.com" },
		"expired":        func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Hour).Unix() },
		"no email":       func(c jwt.MapClaims) { delete(c, "email") },
		"no given name":  func(c jwt.MapClaims) { delete(c, "given_name") },
		"no family name": func(c jwt.MapClaims) { delete(c, "family_name") },
	}
	for name, mutate := range failures {
		t.Run(name, func(t *testing.T) {
			c := validGoogleClaims()
			mutate(c)
			_, err := v.Verify(context.Background(), signGoogleToken(t, key, c))
			assert.ErrorIs(t, err, ErrInvalidGoogleToken)
		})
	}

	t.Run("foreign key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		_, err = v.Verify(context.Background(), signGoogleToken(t, other, validGoogleClaims()))
		assert.ErrorIs(t, err, ErrInvalidGoogleToken)
	})

	t.Run("hmac token rejected", func(t *testing.T) {
		s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, validGoogleClaims()).SignedString([]byte("x"))
		_, err := v.Verify(context.Background(), s)
		assert.ErrorIs(t, err, ErrInvalidGoogleToken)
	})
}
