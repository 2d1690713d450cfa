// Package auth verifies OpenID Connect bearer tokens and carries the
// resulting caller identity through the request context.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

var (
	// ErrMissingToken indicates the request carried no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken indicates the bearer token failed verification.
	ErrInvalidToken = errors.New("invalid bearer token")
	// ErrMissingClaim indicates a verified token lacked the identity claim.
	ErrMissingClaim = errors.New("identity claim missing from token")
)

// Verifier validates a raw bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (map[string]any, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, rawToken string) (map[string]any, error)

// Verify calls f(ctx, rawToken).
func (f VerifierFunc) Verify(ctx context.Context, rawToken string) (map[string]any, error) {
	return f(ctx, rawToken)
}

type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// New discovers the OIDC provider at cfg.IssuerURL and returns a Verifier
// that checks signature, issuer, expiry, and audience against cfg.ClientID.
func New(ctx context.Context, cfg *Config) (Verifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}

	return &oidcVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (v *oidcVerifier) Verify(ctx context.Context, rawToken string) (map[string]any, error) {
	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims := make(map[string]any)
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if _, ok := claims["sub"]; !ok {
		claims["sub"] = token.Subject
	}

	return claims, nil
}

type identityKey struct{}

// WithIdentity returns a context carrying the verified caller identity.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the verified caller identity, if any.
func IdentityFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(string)
	return id, ok && id != ""
}

// Middleware requires a valid bearer token on every request and stores the
// value of claim (falling back to "sub") as the request identity.
func Middleware(v Verifier, claim string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := authenticate(r, v, claim)
			if err != nil {
				logger.Warn("authentication failed", "uri", r.URL.RequestURI(), "error", err)
				w.Header().Set("WWW-Authenticate", `Bearer realm="groundtruth"`)
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func authenticate(r *http.Request, v Verifier, claim string) (string, error) {
	raw, ok := bearerToken(r)
	if !ok {
		return "", ErrMissingToken
	}

	claims, err := v.Verify(r.Context(), raw)
	if err != nil {
		return "", err
	}

	for _, key := range []string{claim, "sub"} {
		if s, ok := claims[key].(string); ok && s != "" {
			return s, nil
		}
	}

	return "", ErrMissingClaim
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
