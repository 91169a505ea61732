package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes_12345"

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T, opts ...TokenOption) *TokenManager {
	t.Helper()
	opts = append([]TokenOption{WithClock(func() time.Time { return testEpoch })}, opts...)
	tm, err := NewTokenManager(testSecret, time.Hour, opts...)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	return tm
}

func signRaw(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return s
}

func TestNewTokenManager(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		ttl     time.Duration
		wantErr bool
	}{
		{name: "valid", secret: testSecret, ttl: time.Hour},
		{name: "empty secret", secret: "", ttl: time.Hour, wantErr: true},
		{name: "zero ttl", secret: testSecret, ttl: 0, wantErr: true},
		{name: "negative ttl", secret: testSecret, ttl: -time.Minute, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, err := NewTokenManager(tt.secret, tt.ttl)
			if tt.wantErr {
				if err == nil {
					t.Error("NewTokenManager() expected error, got nil")
				}
				return
			}
			if err != nil || tm == nil {
				t.Fatalf("NewTokenManager() = %v, %v", tm, err)
			}
		})
	}
}

func TestIssueAndValidate_RoundTrip(t *testing.T) {
	tm := newTestManager(t, WithIssuer("inventory-service"))

	identities := []domain.Identity{
		{Subject: "alice@example.com", Role: domain.RoleUser},
		{Subject: "bob@example.com", Role: domain.RoleAdmin},
		{Subject: "ü-ñ 名前", Role: domain.RoleUser},
	}

	for _, id := range identities {
		t.Run(id.Subject, func(t *testing.T) {
			tok, err := tm.Issue(id)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}
			if !tok.IssuedAt.Equal(testEpoch) {
				t.Errorf("IssuedAt = %v, want %v", tok.IssuedAt, testEpoch)
			}
			if !tok.ExpiresAt.Equal(testEpoch.Add(time.Hour)) {
				t.Errorf("ExpiresAt = %v, want %v", tok.ExpiresAt, testEpoch.Add(time.Hour))
			}
			if tok.ID == "" {
				t.Error("Issue() returned empty token id")
			}

			for _, at := range []time.Time{testEpoch, testEpoch.Add(59 * time.Minute)} {
				got, err := tm.ValidateAt(tok.Value, at)
				if err != nil {
					t.Fatalf("ValidateAt(%v) error = %v", at, err)
				}
				if got != id {
					t.Errorf("ValidateAt() = %+v, want %+v", got, id)
				}
			}
		})
	}
}

func TestIssue_RejectsIncompleteIdentity(t *testing.T) {
	tm := newTestManager(t)
	if _, err := tm.Issue(domain.Identity{Role: domain.RoleUser}); err == nil {
		t.Error("Issue() without subject expected error")
	}
	if _, err := tm.Issue(domain.Identity{Subject: "x", Role: "ROOT"}); err == nil {
		t.Error("Issue() with unknown role expected error")
	}
}

func TestValidate_ExpiredIsNeverInvalid(t *testing.T) {
	tm := newTestManager(t)
	tok, err := tm.Issue(domain.Identity{Subject: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	for _, after := range []time.Duration{time.Hour, time.Hour + time.Second, 48 * time.Hour, 10 * 365 * 24 * time.Hour} {
		_, err := tm.ValidateAt(tok.Value, testEpoch.Add(after))
		if !errors.Is(err, ErrExpiredToken) {
			t.Errorf("ValidateAt(+%v) error = %v, want ErrExpiredToken", after, err)
		}
		if errors.Is(err, ErrInvalidToken) {
			t.Errorf("ValidateAt(+%v) classified as invalid", after)
		}
		var tokErr *TokenError
		if !errors.As(err, &tokErr) || tokErr.Kind != TokenExpired {
			t.Errorf("ValidateAt(+%v) kind = %v", after, tokErr)
		}
	}
}

func TestValidate_FlippedSignatureIsInvalid(t *testing.T) {
	tm := newTestManager(t)
	tok, err := tm.Issue(domain.Identity{Subject: "alice", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	sigStart := strings.LastIndex(tok.Value, ".") + 1
	for i := sigStart; i < len(tok.Value); i++ {
		b := []byte(tok.Value)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		_, err := tm.ValidateAt(string(b), testEpoch)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("signature byte %d flipped: error = %v, want ErrInvalidToken", i-sigStart, err)
		}
	}
}

func TestValidate_TamperedExpiredTokenIsInvalid(t *testing.T) {
	tm := newTestManager(t)
	tok, err := tm.Issue(domain.Identity{Subject: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	b := []byte(tok.Value)
	i := strings.LastIndex(tok.Value, ".") + 3
	if b[i] == 'x' {
		b[i] = 'y'
	} else {
		b[i] = 'x'
	}

	// Signature is checked before expiry.
	_, err = tm.ValidateAt(string(b), testEpoch.Add(2*time.Hour))
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tm := newTestManager(t, WithIssuer("inventory-service"))
	exp := testEpoch.Add(time.Hour).Unix()
	iat := testEpoch.Unix()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "not_a_jwt_token"},
		{name: "three garbage segments", token: "invalid.token.format"},
		{name: "wrong secret", token: signRaw(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-12345"),
			jwt.MapClaims{"sub": "alice", "role": "USER", "iss": "inventory-service", "exp": exp, "iat": iat})},
		{name: "alg none", token: signRaw(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType,
			jwt.MapClaims{"sub": "alice", "role": "ADMIN", "iss": "inventory-service", "exp": exp})},
		{name: "hs512", token: signRaw(t, jwt.SigningMethodHS512, []byte(testSecret),
			jwt.MapClaims{"sub": "alice", "role": "ADMIN", "iss": "inventory-service", "exp": exp})},
		{name: "missing subject", token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret),
			jwt.MapClaims{"role": "USER", "iss": "inventory-service", "exp": exp})},
		{name: "missing role", token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret),
			jwt.MapClaims{"sub": "alice", "iss": "inventory-service", "exp": exp})},
		{name: "unknown role", token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret),
			jwt.MapClaims{"sub": "alice", "role": "ROOT", "iss": "inventory-service", "exp": exp})},
		{name: "missing expiry", token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret),
			jwt.MapClaims{"sub": "alice", "role": "USER", "iss": "inventory-service"})},
		{name: "foreign issuer", token: signRaw(t, jwt.SigningMethodHS256, []byte(testSecret),
			jwt.MapClaims{"sub": "alice", "role": "USER", "iss": "someone-else", "exp": exp})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tm.ValidateAt(tt.token, testEpoch)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("ValidateAt() error = %v, want ErrInvalidToken", err)
			}
			if id != (domain.Identity{}) {
				t.Errorf("ValidateAt() leaked identity %+v", id)
			}
		})
	}
}

func TestTokenError_Message(t *testing.T) {
	err := &TokenError{Kind: TokenExpired}
	if err.Error() != "expired token" {
		t.Errorf("Error() = %q", err.Error())
	}
	if TokenInvalid.String() != "invalid" || TokenExpired.String() != "expired" {
		t.Error("unexpected kind names")
	}
}
