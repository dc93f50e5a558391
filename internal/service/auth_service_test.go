package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wedding-planner/backend/internal/dto"
	"wedding-planner/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T) AuthService {
	t.Helper()
	cfg := testConfig()
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成测试密码哈希失败: %v", err)
	}
	cfg.Auth.AdminPasswordHash = string(hash)
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, jwtMgr, zap.NewNop())
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc := setupTestAuthService(t)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "Secret1234",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("应返回会话 Token")
	}
	if result.ExpiresIn != 12*3600 {
		t.Errorf("期望有效期 43200 秒，实际=%d", result.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_WrongUsername(t *testing.T) {
	svc := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "root",
		Password: "Secret1234",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}
