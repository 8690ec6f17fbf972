package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/PierrickDossin/AymanProject/internal/auth"
	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/repository"
	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

const passwordCost = 10

type UserService struct {
	repo     repository.UserRepository
	tokens   *auth.TokenIssuer
	sessions auth.SessionStore
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenIssuer, sessions auth.SessionStore) *UserService {
	return &UserService{repo: repo, tokens: tokens, sessions: sessions}
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "User")
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, lookup(err, "User")
	}
	return user, nil
}

// GetUserByTelegramID - for the chat bot
func (s *UserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	user, err := s.repo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, lookup(err, "User")
	}
	return user, nil
}

func (s *UserService) GetUsersCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *UserService) CreateUser(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	email := normalizeEmail(dto.Email)
	if err := s.ensureUnique(ctx, "", email, dto.Username); err != nil {
		return nil, err
	}

	hash, err := hashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  dto.Username,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     email,
		Password:  hash,
		AvatarURL: dto.AvatarURL,
	}
	if _, err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	utils.Log.Info("User created", "userId", user.ID)
	return user, nil
}

// UpdateUser applies only the fields present in dto.
func (s *UserService) UpdateUser(ctx context.Context, id string, dto UpdateUserDTO) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	email := ""
	if dto.Email != nil {
		email = normalizeEmail(*dto.Email)
	}
	username := ""
	if dto.Username != nil {
		username = *dto.Username
	}
	if err := s.ensureUnique(ctx, id, email, username); err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if username != "" {
		user.Username = username
	}
	if dto.FirstName != nil {
		user.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		user.LastName = *dto.LastName
	}
	if dto.AvatarURL != nil {
		user.AvatarURL = dto.AvatarURL
	}
	if dto.Password != nil {
		if user.Password, err = hashPassword(*dto.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookup(err, "User")
	}
	return nil
}

// Login checks the password and opens a session. Unknown emails and wrong
// passwords fail the same way.
func (s *UserService) Login(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	user, err := s.checkCredentials(ctx, dto.Email, dto.Password)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, user)
}

func (s *UserService) checkCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, unauthorized("Invalid credentials")
	}
	return user, nil
}

// SocialLogin finds the user by email or registers one on first sight. The
// provider's assertion is not verified here, so no session is opened; a
// bearer token only comes from Login or the OAuth callback.
func (s *UserService) SocialLogin(ctx context.Context, dto SocialLoginDTO) (*models.User, error) {
	first, last := splitName(dto.Name)
	user, err := s.FindOrCreateExternal(ctx, dto.Email, first, last)
	if err != nil {
		return nil, err
	}
	utils.Log.Info("Social login", "provider", dto.Provider, "userId", user.ID)
	return user, nil
}

// FindOrCreateExternal backs both social login and the Google OAuth callback.
func (s *UserService) FindOrCreateExternal(ctx context.Context, email, firstName, lastName string) (*models.User, error) {
	email = normalizeEmail(email)
	user, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	username, err := s.availableUsername(ctx, strings.SplitN(email, "@", 2)[0])
	if err != nil {
		return nil, err
	}
	password, err := randomPassword()
	if err != nil {
		return nil, err
	}
	if firstName == "" {
		firstName = "User"
	}
	if lastName == "" {
		lastName = "User"
	}

	return s.CreateUser(ctx, CreateUserDTO{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	})
}

// IssueSession opens a session for an already authenticated user.
func (s *UserService) IssueSession(ctx context.Context, user *models.User) (*LoginResult, error) {
	return s.openSession(ctx, user)
}

func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// Authenticate resolves a bearer token to a user id. The token must be both
// validly signed and still present in the session store.
func (s *UserService) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", unauthorized("Invalid token")
	}
	userID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return "", unauthorized("Session expired")
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}
	if userID != claims.UserID {
		return "", unauthorized("Invalid token")
	}
	return userID, nil
}

// LinkTelegram attaches a chat account to the user registered under email
// once the password checks out. A chat holds at most one link.
func (s *UserService) LinkTelegram(ctx context.Context, email, password string, telegramID int64) (*models.User, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if other, err := s.repo.FindByTelegramID(ctx, telegramID); err == nil && other.ID != user.ID {
		other.TelegramID = nil
		if err := s.repo.Update(ctx, other); err != nil {
			return nil, fmt.Errorf("unlink telegram: %w", err)
		}
	}

	user.TelegramID = &telegramID
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("link telegram: %w", err)
	}
	return user, nil
}

func (s *UserService) openSession(ctx context.Context, user *models.User) (*LoginResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, token, user.ID, s.tokens.TTL()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

// ensureUnique rejects an email or username held by a user other than selfID.
// Empty values are not checked.
func (s *UserService) ensureUnique(ctx context.Context, selfID, email, username string) error {
	if email != "" {
		existing, err := s.repo.FindByEmail(ctx, email)
		if err == nil && existing.ID != selfID {
			return conflict("Email already exists")
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("check email: %w", err)
		}
	}
	if username != "" {
		existing, err := s.repo.FindByUsername(ctx, username)
		if err == nil && existing.ID != selfID {
			return conflict("Username already exists")
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("check username: %w", err)
		}
	}
	return nil
}

// availableUsername derives a username from base, appending a counter until
// it is free.
func (s *UserService) availableUsername(ctx context.Context, base string) (string, error) {
	base = strings.ToLower(strings.TrimSpace(base))
	if len(base) < 3 {
		base = "user_" + base
	}
	if len(base) > 45 {
		base = base[:45]
	}
	candidate := base
	for i := 1; i < 1000; i++ {
		_, err := s.repo.FindByUsername(ctx, candidate)
		if errors.Is(err, repository.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("check username: %w", err)
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return "", conflict("Username already exists")
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func randomPassword() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
