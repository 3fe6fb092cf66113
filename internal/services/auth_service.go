package services

import (
	"context"
	"strings"

	"github.com/lmodev/asaa_quiz/internal/config"
	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/security"
	"github.com/lmodev/asaa_quiz/internal/storage"
	"github.com/lmodev/asaa_quiz/pkg/errors"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

// AuthService implements the pseudo-based sign-in flow. There are no
// passwords; the only secret is the shared admin access code.
type AuthService struct {
	store *storage.Facade
	cfg   *config.Config
}

func NewAuthService(store *storage.Facade, cfg *config.Config) *AuthService {
	return &AuthService{store: store, cfg: cfg}
}

// AuthResult carries the signed-in user and their session token.
type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates a new player account for an unused pseudo.
func (s *AuthService) Register(ctx context.Context, username string) (*AuthResult, error) {
	username = security.SanitizeText(username)
	if username == "" {
		return nil, errors.New(errors.ErrCodeValidation, "Veuillez entrer un pseudo.")
	}
	if models.IsReservedUsername(username) {
		return nil, errors.New(errors.ErrCodeForbidden, "Ce pseudo est réservé.")
	}

	existing, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New(errors.ErrCodeAlreadyExists, "Ce pseudo est déjà pris. Veuillez vous connecter.")
	}

	user := models.User{Username: username, Role: models.RoleUser}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	logger.Info("user registered", "username", username)

	return s.issue(user)
}

// Login signs an existing player in. The reserved admin pseudo takes the
// access-code path; admin accounts cannot be entered through the plain path.
func (s *AuthService) Login(ctx context.Context, username, accessCode string) (*AuthResult, error) {
	username = security.SanitizeText(username)
	if username == "" {
		return nil, errors.New(errors.ErrCodeValidation, "Veuillez entrer un pseudo.")
	}

	if models.IsReservedUsername(username) {
		if accessCode != s.cfg.AdminAccessCode {
			return nil, errors.New(errors.ErrCodeUnauthorized, "Code d'accès administrateur incorrect.")
		}
		admin := models.User{Username: models.ReservedAdminUsername, Role: models.RoleAdmin}
		if err := s.store.SaveUser(ctx, admin); err != nil {
			return nil, err
		}
		logger.Info("admin signed in")
		return s.issue(admin)
	}

	existing, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "Pseudo inconnu. Veuillez d'abord vous inscrire.")
	}
	if existing.Role == models.RoleAdmin {
		return nil, errors.New(errors.ErrCodeForbidden, "Ce compte nécessite le code d'accès administrateur.")
	}

	if err := s.store.SaveUser(ctx, *existing); err != nil {
		return nil, err
	}
	return s.issue(*existing)
}

// ToggleRole flips a player between USER and ADMIN. The reserved admin
// account is never demoted.
func (s *AuthService) ToggleRole(ctx context.Context, username string) (*models.User, error) {
	if models.IsReservedUsername(username) {
		return nil, errors.New(errors.ErrCodeForbidden, "Le compte administrateur principal ne peut pas être modifié.")
	}

	existing, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "Utilisateur introuvable.")
	}

	if existing.Role == models.RoleAdmin {
		existing.Role = models.RoleUser
	} else {
		existing.Role = models.RoleAdmin
	}
	if err := s.store.SaveUser(ctx, *existing); err != nil {
		return nil, err
	}
	logger.Info("user role changed", "username", existing.Username, "role", existing.Role)
	return existing, nil
}

// Logout drops the cached session user.
func (s *AuthService) Logout() error {
	return s.store.ClearSession()
}

// ListUsers returns every account, for the admin user table.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// findUser matches pseudos case-insensitively so "aicha" and "Aicha" are one
// account, while the stored casing is preserved.
func (s *AuthService) findUser(ctx context.Context, username string) (*models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *AuthService) issue(user models.User) (*AuthResult, error) {
	token, err := security.GenerateJWT(user.Username, user.Role, s.cfg.JWTSecret)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to sign session token")
	}
	return &AuthResult{User: user, Token: token}, nil
}
