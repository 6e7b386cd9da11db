package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
)

func testAuthService() (*AuthService, *memUsers, *fakeKV) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour, BcryptCost: 4}
	users := newMemUsers()
	kv := newFakeKV()
	return NewAuthService(cfg, users, kv, testLog), users, kv
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := testAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Name: " Maya ", Email: "Maya@Example.com", Password: "violin123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.User.Role != model.RoleUser || reg.Home != "/register" || reg.User.Email != "maya@example.com" {
		t.Errorf("register response = %+v", reg)
	}

	if _, err := svc.Register(ctx, model.RegisterRequest{Name: "Maya", Email: "maya@example.com", Password: "x123456"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate register err = %v, want ErrEmailTaken", err)
	}

	login, err := svc.Login(ctx, "maya@example.com", "violin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := svc.ValidateToken(login.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != reg.User.ID || claims.Role != model.RoleUser {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := svc.Login(ctx, "maya@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "violin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
}

func TestNewLoginReplacesSession(t *testing.T) {
	svc, _, _ := testAuthService()
	ctx := context.Background()

	first, err := svc.Register(ctx, model.RegisterRequest{Name: "Maya", Email: "maya@example.com", Password: "violin123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	second, err := svc.Login(ctx, "maya@example.com", "violin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	c1, _ := svc.ValidateToken(first.Token)
	c2, _ := svc.ValidateToken(second.Token)
	if err := svc.ValidateSession(ctx, c1.UserID, c1.ID); !errors.Is(err, ErrSessionInvalidated) {
		t.Errorf("old session err = %v, want ErrSessionInvalidated", err)
	}
	if err := svc.ValidateSession(ctx, c2.UserID, c2.ID); err != nil {
		t.Errorf("new session err = %v", err)
	}

	if err := svc.Logout(ctx, c2.UserID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := svc.ValidateSession(ctx, c2.UserID, c2.ID); !errors.Is(err, ErrSessionInvalidated) {
		t.Errorf("after logout err = %v, want ErrSessionInvalidated", err)
	}
}

func TestResolveActorReadsCurrentRole(t *testing.T) {
	svc, users, _ := testAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Name: "Maya", Email: "maya@example.com", Password: "violin123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	claims, _ := svc.ValidateToken(reg.Token)
	users.byID[reg.User.ID].Role = model.RoleAdmin

	actor, err := svc.ResolveActor(ctx, claims)
	if err != nil {
		t.Fatalf("ResolveActor: %v", err)
	}
	if !actor.IsAdmin() {
		t.Errorf("actor role = %s, want admin", actor.Role)
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc, _, _ := testAuthService()
	reg, err := svc.Register(context.Background(), model.RegisterRequest{Name: "Maya", Email: "maya@example.com", Password: "violin123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	other := NewAuthService(&config.Config{JWTSecret: "another-secret", JWTExpiry: time.Hour, BcryptCost: 4}, newMemUsers(), newFakeKV(), testLog)
	if _, err := other.ValidateToken(reg.Token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}
