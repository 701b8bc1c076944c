package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/benbrewster85/risk-assessment-app-sub000/config"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/dto"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
	"github.com/benbrewster85/risk-assessment-app-sub000/pkg/jwt"
)

func setupTestAuthService(t *testing.T) (AuthService, *testRepos) {
	t.Helper()
	repos := newTestRepos()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret-0123456789",
			AccessTokenTTL:         15 * time.Minute,
			RefreshTokenTTLDefault: 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	repos.user.users["u-1"] = &model.User{
		UserID:       "u-1",
		TeamID:       testTeamID,
		Name:         "张测量",
		Email:        "zhang@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleEditor,
	}
	return svc, repos
}

func TestLogin_Success(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhang@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("应签发 token 对")
	}
	if resp.User.Role != model.RoleEditor || resp.User.TeamID != testTeamID {
		t.Errorf("用户信息错误: %+v", resp.User)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhang@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("应返回 ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("不存在的邮箱也应返回 ErrInvalidCredentials, got %v", err)
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _ := setupTestAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "zhang@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// 用 access token 冒充 refresh
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("access token 不得用于刷新, got %v", err)
	}
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	svc, repos := setupTestAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "zhang@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// 刷新前角色变更：新 token 以数据库当前值为准
	repos.user.users["u-1"].Role = model.RoleViewer

	refreshed, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if refreshed.User.Role != model.RoleViewer {
		t.Errorf("刷新应采用数据库中的当前角色: %q", refreshed.User.Role)
	}
}
