package utils

import (
	"testing"

	"vidhub-go/internal/config"
)

func setupConfig() {
	config.Set(&config.Config{
		App: config.AppConfig{Name: "vidhub-test"},
		JWT: config.JWTConfig{
			AccessSecret:       "access-secret",
			AccessExpireHours:  1,
			RefreshSecret:      "refresh-secret",
			RefreshExpireHours: 2,
		},
	})
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword("s3cret", hash) {
		t.Error("VerifyPassword rejected the correct password")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	setupConfig()

	token, err := GenerateAccessToken(42, "alice", "alice@x.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
}

func TestTokens_SecretsAreNotInterchangeable(t *testing.T) {
	setupConfig()

	refresh, err := GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := ParseAccessToken(refresh); err != ErrInvalidToken {
		t.Errorf("ParseAccessToken(refresh) err = %v, want ErrInvalidToken", err)
	}
	claims, err := ParseRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
}

func TestParseAccessToken_Garbage(t *testing.T) {
	setupConfig()
	if _, err := ParseAccessToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello  ", "hello"},
		{"<b>bold</b> move", "bold move"},
		{"<script>alert(1)</script>ok", "ok"},
		{"Tom & Jerry", "Tom & Jerry"},
		{"I'm here", "I'm here"},
		{`say "hi"`, `say "hi"`},
		{"x < y", "x < y"},
		{"<b>a</b> & b", "a & b"},
	}
	for _, tt := range tests {
		got := SanitizeText(tt.in)
		if got != tt.want {
			t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
		// 回传已清洗的值不应再次变化
		if again := SanitizeText(got); again != got {
			t.Errorf("SanitizeText not stable for %q: %q -> %q", tt.in, got, again)
		}
	}
}
