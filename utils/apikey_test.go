package utils

import (
	"strings"
	"testing"
)

func TestGenerateAPIKeyFormat(t *testing.T) {
	key, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(key) != 35 || !strings.HasPrefix(key, "ak_") {
		t.Errorf("got %q, want ak_ prefix with 32 hex chars", key)
	}
	if err := ValidateKeyFormat(key); err != nil {
		t.Errorf("generated key failed its own format check: %v", err)
	}
}

func TestGenerateAPISecretFormat(t *testing.T) {
	secret, err := GenerateAPISecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(secret) != 67 || !strings.HasPrefix(secret, "sk_") {
		t.Errorf("got %q, want sk_ prefix with 64 hex chars", secret)
	}
}

func TestGeneratedCredentialsAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		key, err := GenerateAPIKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[key] {
			t.Fatalf("duplicate key generated: %q", key)
		}
		seen[key] = true
	}
}

func TestVerifyAPISecret(t *testing.T) {
	secret, err := GenerateAPISecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash := HashAPISecret(secret)

	if !VerifyAPISecret(secret, hash) {
		t.Error("correct secret rejected")
	}
	if VerifyAPISecret("sk_"+strings.Repeat("0", 64), hash) {
		t.Error("wrong secret accepted")
	}
	if hash == secret {
		t.Error("stored hash must not equal the plaintext secret")
	}
}

func TestValidateKeyFormat(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid", "ak_" + strings.Repeat("a", 32), false},
		{"wrong prefix", "pk_" + strings.Repeat("a", 32), true},
		{"too short", "ak_abc", true},
		{"too long", "ak_" + strings.Repeat("a", 40), true},
		{"empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateKeyFormat(tc.key)
			if (err != nil) != tc.wantErr {
				t.Errorf("got err %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
