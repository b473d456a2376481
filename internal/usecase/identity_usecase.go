package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"sparkz/internal/entity"
	"sparkz/internal/repo/persistent"
	"sparkz/pkg/jwt"
	"sparkz/pkg/logger"

	"github.com/google/uuid"
)

type IdentityUseCase interface {
	Login(email, name string) (*entity.User, string, error)
	Register(email, name string) (*entity.User, string, error)
	Logout() error
	UpgradeToDeveloper() (*entity.User, string, error)
	Current() *entity.User
}

// identityUseCase holds the single authenticated session. Every login or
// register replaces it wholesale; the record is mirrored to durable storage
// after each mutation and restored tolerantly at startup.
type identityUseCase struct {
	mu          sync.RWMutex
	current     *entity.User
	sessionRepo persistent.SessionRepository
	jwtService  *jwt.Service
	logger      *logger.Logger
}

func NewIdentityUseCase(sessionRepo persistent.SessionRepository, jwtService *jwt.Service, log *logger.Logger) IdentityUseCase {
	uc := &identityUseCase{
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		logger:      log,
	}

	restored, err := sessionRepo.Load(context.Background())
	if err != nil {
		log.Warn("Failed to restore session record: %v", err)
	} else if restored != nil {
		uc.current = restored
		log.Info("Restored session for %s", restored.Email)
	}

	return uc
}

// Login always succeeds. An email containing the literal substring "dev"
// yields a pre-verified developer.
//
// This is a demo stand-in for real verification, kept for parity with the
// storefront's behavior. It must be replaced before any production use.
func (uc *identityUseCase) Login(email, name string) (*entity.User, string, error) {
	isPreverified := strings.Contains(email, "dev")

	role := entity.RoleUser
	if isPreverified {
		role = entity.RoleDeveloper
	}

	user := &entity.User{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Role:       role,
		IsVerified: isPreverified,
		CreatedAt:  time.Now(),
	}

	return uc.replaceSession(user)
}

// Register always succeeds and always yields an unverified USER.
func (uc *identityUseCase) Register(email, name string) (*entity.User, string, error) {
	user := &entity.User{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Role:       entity.RoleUser,
		IsVerified: false,
		CreatedAt:  time.Now(),
	}

	return uc.replaceSession(user)
}

func (uc *identityUseCase) Logout() error {
	uc.mu.Lock()
	uc.current = nil
	uc.mu.Unlock()

	if err := uc.sessionRepo.Clear(context.Background()); err != nil {
		uc.logger.Error("Failed to remove persisted session: %v", err)
		return err
	}
	return nil
}

// UpgradeToDeveloper flips role and verification together in one step.
// Without an active session it is a no-op returning a nil user.
func (uc *identityUseCase) UpgradeToDeveloper() (*entity.User, string, error) {
	uc.mu.Lock()
	if uc.current == nil {
		uc.mu.Unlock()
		return nil, "", nil
	}

	upgraded := *uc.current
	upgraded.Role = entity.RoleDeveloper
	upgraded.IsVerified = true
	uc.current = &upgraded
	uc.mu.Unlock()

	uc.persist(&upgraded)

	token, err := uc.jwtService.GenerateToken(upgraded.ID, string(upgraded.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", err
	}

	result := upgraded
	return &result, token, nil
}

func (uc *identityUseCase) Current() *entity.User {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if uc.current == nil {
		return nil
	}
	copied := *uc.current
	return &copied
}

func (uc *identityUseCase) replaceSession(user *entity.User) (*entity.User, string, error) {
	uc.mu.Lock()
	uc.current = user
	uc.mu.Unlock()

	uc.persist(user)

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", err
	}

	copied := *user
	return &copied, token, nil
}

func (uc *identityUseCase) persist(user *entity.User) {
	if err := uc.sessionRepo.Save(context.Background(), user); err != nil {
		// A failed write never invalidates the in-memory session
		uc.logger.Error("Failed to persist session record: %v", err)
	}
}
