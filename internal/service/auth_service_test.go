package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rushant-123/ui-learnings/config"
	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/model"
	"github.com/Rushant-123/ui-learnings/internal/repository"
	"github.com/Rushant-123/ui-learnings/pkg/jwt"
)

func newTestAuthService(repo *repository.Repository) AuthService {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-at-least-16-chars",
			AccessTokenTTL: 15 * time.Minute,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
}

func seedUser(t *testing.T, repo *repository.Repository, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "测试用户",
		Role:         model.RoleLearner,
	}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

func TestSignup_Success(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAuthService(repo)

	result, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Email:    "new@test.com",
		Password: "secret123",
		FullName: "新学员",
	})
	if err != nil {
		t.Fatalf("Signup 应成功，但返回错误: %v", err)
	}
	if result.User.Email != "new@test.com" {
		t.Errorf("期望 Email=new@test.com，实际=%s", result.User.Email)
	}
	if result.User.Role != model.RoleLearner {
		t.Errorf("期望 Role=learner，实际=%s", result.User.Role)
	}
	if result.Session == nil || result.Session.AccessToken == "" {
		t.Error("Signup 应返回会话及 AccessToken")
	}
	if result.Session.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", result.Session.ExpiresIn)
	}
}

func TestSignup_EmailTaken(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAuthService(repo)
	seedUser(t, repo, "taken@test.com", "secret123")

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Email:    "taken@test.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}

func TestSignin_Success(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAuthService(repo)
	seedUser(t, repo, "user@test.com", "secret123")

	result, err := svc.Signin(context.Background(), &dto.SigninRequest{
		Email:    "user@test.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Signin 应成功，但返回错误: %v", err)
	}
	if result.Session == nil || result.Session.AccessToken == "" {
		t.Error("Signin 应返回会话及 AccessToken")
	}
}

func TestSignin_WrongPassword(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAuthService(repo)
	seedUser(t, repo, "user@test.com", "secret123")

	_, err := svc.Signin(context.Background(), &dto.SigninRequest{
		Email:    "user@test.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestSignin_UserNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAuthService(repo)

	_, err := svc.Signin(context.Background(), &dto.SigninRequest{
		Email:    "ghost@test.com",
		Password: "secret123",
	})
	// 不泄露用户是否存在
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestGetCurrentUser_Success(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAuthService(repo)
	user := seedUser(t, repo, "me@test.com", "secret123")

	result, err := svc.GetCurrentUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("GetCurrentUser 应成功: %v", err)
	}
	if result.User.ID != user.UserID {
		t.Errorf("期望 ID=%s，实际=%s", user.UserID, result.User.ID)
	}
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAuthService(repo)

	_, err := svc.GetCurrentUser(context.Background(), "no-such-user")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestSignout_NilRedisDegrades(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAuthService(repo)

	// Redis 未配置时登出静默成功
	if err := svc.Signout(context.Background(), nil); err != nil {
		t.Errorf("Signout 应静默降级，实际: %v", err)
	}
}
