package jwt

import (
	"testing"
	"time"

	"wedding-planner/backend/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  12 * time.Hour,
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.Username != "admin" {
		t.Errorf("期望 Username=admin，实际=%s", claims.Username)
	}
	if claims.Issuer != "wedding-planner" {
		t.Errorf("期望 Issuer=wedding-planner，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	// 检查过期时间约为 12h
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 11*time.Hour || ttl > 13*time.Hour {
		t.Errorf("TTL 期望约12h，实际=%v", ttl)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("invalid.token.string")
	if err == nil {
		t.Error("期望解析无效 token 返回错误")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret: "different-secret-key",
		TokenTTL:  12 * time.Hour,
	})

	token, _ := m1.GenerateToken("admin")
	_, err := m2.ParseToken(token)
	if err == nil {
		t.Error("不同密钥签名的 token 不应通过验证")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	// TTL 极短的 manager 用于测试过期
	m := NewManager(&config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  1 * time.Millisecond,
	})

	token, _ := m.GenerateToken("admin")
	time.Sleep(10 * time.Millisecond)

	_, err := m.ParseToken(token)
	if err == nil {
		t.Error("过期 token 不应通过验证")
	}
	if err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}
