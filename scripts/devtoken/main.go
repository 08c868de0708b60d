package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/internal/service"
	"github.com/noah-isme/college-portal-api/pkg/config"
	"github.com/noah-isme/college-portal-api/pkg/logger"
)

// devtoken mints a session token signed with the configured JWT secret so the
// API can be exercised locally without the session provider.
func main() {
	var (
		id      string
		role    string
		subRole string
		name    string
		dept    string
		expiry  time.Duration
	)

	flag.StringVar(&id, "id", "dev-user", "principal identifier")
	flag.StringVar(&role, "role", string(models.RoleStudent), "principal role")
	flag.StringVar(&subRole, "sub-role", "", "non-teaching sub-role")
	flag.StringVar(&name, "name", "Dev User", "display name")
	flag.StringVar(&dept, "department", "", "department")
	flag.DurationVar(&expiry, "expiry", 12*time.Hour, "token lifetime")
	flag.Parse()

	principal := models.Principal{
		ID:         id,
		Role:       models.Role(role),
		SubRole:    models.SubRole(subRole),
		Name:       name,
		Department: dept,
	}
	if !principal.Role.Valid() {
		log.Fatalf("unknown role %q", role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	auth := service.NewAuthService(logr, service.AuthConfig{
		Secret:      cfg.JWT.Secret,
		Issuer:      cfg.JWT.Issuer,
		TokenExpiry: expiry,
	})
	token, expiresAt, err := auth.IssueToken(principal)
	if err != nil {
		logr.Fatal("failed to issue token", zap.Error(err))
	}

	logr.Info("token issued", zap.String("principal_id", id), zap.String("role", role), zap.Time("expires_at", expiresAt))
	fmt.Println(token)
}
