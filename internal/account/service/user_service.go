package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ridloal/hidayah-backoffice/internal/account/domain"
	"github.com/ridloal/hidayah-backoffice/internal/account/repository"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
)

var ErrInvalidCredentials = errors.New("username atau password salah")

// SeedUser is an account created at start-up when its username is still free.
type SeedUser struct {
	Nama     string
	Username string
	Role     domain.Role
	Password string
}

type UserService interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	EnsureUsers(ctx context.Context, users []SeedUser) error
	Counts(ctx context.Context) (domain.DashboardCounts, error)
}

type userService struct {
	repo repository.UserRepository
	cost int
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, cost: bcrypt.DefaultCost}
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			logger.Error("Login: failed to get user by username", err)
		}
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.PasswordHash = "" // Hapus sebelum dikembalikan
	return &domain.LoginResponse{User: *user}, nil
}

func (s *userService) EnsureUsers(ctx context.Context, users []SeedUser) error {
	for _, su := range users {
		if !su.Role.Valid() {
			return fmt.Errorf("seed user %s: invalid role %q", su.Username, su.Role)
		}
		_, err := s.repo.GetUserByUsername(ctx, su.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("could not look up seed user %s: %w", su.Username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), s.cost)
		if err != nil {
			logger.Error("EnsureUsers: failed to hash password", err)
			return fmt.Errorf("could not hash password for %s: %w", su.Username, err)
		}
		user := &domain.User{Nama: su.Nama, Username: su.Username, Role: su.Role, PasswordHash: string(hash)}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUserConflict) {
				continue // dibuat proses lain di antara lookup dan insert
			}
			return fmt.Errorf("could not create seed user %s: %w", su.Username, err)
		}
		logger.Info("Seed user %s (%s) created", su.Username, su.Role)
	}
	return nil
}

func (s *userService) Counts(ctx context.Context) (domain.DashboardCounts, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not count dashboard records: %w", err)
	}
	return counts, nil
}
