package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wedding-planner/backend/config"
	"wedding-planner/backend/internal/dto"
	"wedding-planner/backend/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("用户名或密码错误")

// AuthService 管理员认证业务接口
// 单管理员模式：凭据来自配置，不落库
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	cfg    *config.Config
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(cfg *config.Config, jwtMgr *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, jwtMgr: jwtMgr, logger: logger}
}

func (s *authService) Login(_ context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 无论用户名是否匹配都执行一次 bcrypt 比较，避免用户名枚举的时间差
	err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.AdminPasswordHash), []byte(req.Password))
	if req.Username != s.cfg.Auth.AdminUsername || err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateToken(req.Username)
	if err != nil {
		s.logger.Error("生成会话 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.TokenTTL().Seconds()),
	}, nil
}
