// Package services contains server-side business logic. Every service reads
// through repositories vended by a repomanager.RepositoryManager and returns
// *common.Error values carrying the caller-facing message.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/common"
	"github.com/dmitrijs2005/libkeeper/internal/logging"
	"github.com/dmitrijs2005/libkeeper/internal/server/auth"
	"github.com/dmitrijs2005/libkeeper/internal/server/config"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/repomanager"
)

const (
	seedLibrarianName     = "librarian"
	seedLibrarianPassword = "librarian"

	userNotFound = "User not found!"
)

var errBadCredentials = common.NewError(common.ErrorUnauthorized, "Invalid username or password!")

// Session is returned by registration and login.
type Session struct {
	User  models.Identity
	Token string
}

// UserService registers and authenticates users and issues identity tokens.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	log                         logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	hash                        func(string) (string, error)
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		log:                         log.With("service", "users"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		hash:                        auth.HashPassword,
	}
}

// Register creates a user with role "user" and logs them in.
func (s *UserService) Register(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, invalid("Username and password are required!")
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, common.NewError(common.ErrorConflict, "Username already exists!")
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, internal("lookup user", err)
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	u, err := repo.Create(ctx, &models.User{Username: username, PasswordHash: hash, Role: models.RoleUser})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.NewError(common.ErrorConflict, "Username already exists!")
		}
		return nil, internal("create user", err)
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return s.session(u)
}

// LoginUser authenticates a patron.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*Session, error) {
	return s.login(ctx, username, password, models.RoleUser, "You are not a user!")
}

// LoginLibrarian authenticates a librarian.
func (s *UserService) LoginLibrarian(ctx context.Context, username, password string) (*Session, error) {
	return s.login(ctx, username, password, models.RoleLibrarian, "You are not a librarian!")
}

func (s *UserService) login(ctx context.Context, username, password, role, wrongRole string) (*Session, error) {
	if username == "" || password == "" {
		return nil, invalid("Username and password are required!")
	}

	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errBadCredentials
		}
		return nil, internal("lookup user", err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, errBadCredentials
	}
	if u.Role != role {
		return nil, common.NewError(common.ErrorUnauthorized, wrongRole)
	}

	return s.session(u)
}

// ListUsers returns every account with role "user". Librarian only.
func (s *UserService) ListUsers(ctx context.Context, caller models.Identity) ([]models.Identity, error) {
	if err := requireLibrarian(caller); err != nil {
		return nil, err
	}

	list, err := s.repomanager.Users(s.db).ListByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, internal("list users", err)
	}

	res := make([]models.Identity, 0, len(list))
	for _, u := range list {
		res = append(res, u.Identity())
	}
	return res, nil
}

// EnsureLibrarian creates the seed librarian account when no librarian exists.
func (s *UserService) EnsureLibrarian(ctx context.Context) error {
	repo := s.repomanager.Users(s.db)

	n, err := repo.CountByRole(ctx, models.RoleLibrarian)
	if err != nil {
		return internal("count librarians", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := s.hash(seedLibrarianPassword)
	if err != nil {
		return internal("hash password", err)
	}
	u, err := repo.Create(ctx, &models.User{Username: seedLibrarianName, PasswordHash: hash, Role: models.RoleLibrarian})
	if err != nil {
		return internal("create librarian", err)
	}

	s.log.Info(ctx, "seed librarian created", "user_id", u.ID)
	return nil
}

func (s *UserService) session(u *models.User) (*Session, error) {
	id := u.Identity()
	token, err := auth.GenerateToken(id, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, internal("sign token", err)
	}
	return &Session{User: id, Token: token}, nil
}
