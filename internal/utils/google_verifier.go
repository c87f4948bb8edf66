package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// GoogleJWKSURL publishes the keys that sign Google ID tokens
const GoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// ErrInvalidGoogleToken is returned for any ID token that fails verification
var ErrInvalidGoogleToken = errors.New("invalid google id token")

// GoogleProfile is the identity carried by a verified ID token
type GoogleProfile struct {
	Email      string
	GivenName  string
	FamilyName string
}

// GoogleVerifier checks Google ID tokens
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleProfile, error)
}

type googleClaims struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	jwt.RegisteredClaims
}

type googleVerifier struct {
	clientID string
	keyFunc  jwt.Keyfunc
}

// NewGoogleVerifier fetches Google's JWKS and keeps it refreshed in the background until ctx ends
func NewGoogleVerifier(ctx context.Context, clientID string) (GoogleVerifier, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{GoogleJWKSURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load google jwks: %w", err)
	}
	return NewGoogleVerifierWithKeyfunc(clientID, k.Keyfunc), nil
}

// NewGoogleVerifierWithKeyfunc builds a verifier over an arbitrary key source
func NewGoogleVerifierWithKeyfunc(clientID string, kf jwt.Keyfunc) GoogleVerifier {
	return &googleVerifier{clientID: clientID, keyFunc: kf}
}

func (v *googleVerifier) Verify(ctx context.Context, idToken string) (*GoogleProfile, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("%w: google client id not configured", ErrInvalidGoogleToken)
	}
	claims := &googleClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}
	if !token.Valid || !googleIssuers[claims.Issuer] {
		return nil, ErrInvalidGoogleToken
	}
	if claims.Email == "" || claims.GivenName == "" || claims.FamilyName == "" {
		return nil, fmt.Errorf("%w: missing profile claims", ErrInvalidGoogleToken)
	}
	return &GoogleProfile{Email: claims.Email, GivenName: claims.GivenName, FamilyName: claims.FamilyName}, nil
}
