package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/apperr"
	"github.com/docline/docline-api/internal/domain/entity"
	"github.com/docline/docline-api/internal/domain/repository"
	"github.com/docline/docline-api/pkg/helpers"
	"github.com/docline/docline-api/pkg/mailer"
)

// AccountService owns registration, credential verification and account
// administration. Token issuance goes through the auth.TokenManager; the
// service itself never stores sessions.
type AccountService struct {
	Accounts repository.AccountRepository
	Tokens   *auth.TokenManager
	Logger   *logrus.Logger
	Mail     *helpers.RabbitPublisher
}

func NewAccountService(accounts repository.AccountRepository, tokens *auth.TokenManager, logger *logrus.Logger, mail *helpers.RabbitPublisher) *AccountService {
	return &AccountService{Accounts: accounts, Tokens: tokens, Logger: logger, Mail: mail}
}

// ExposedUser is the account shape surfaced to callers: no password hash.
type ExposedUser struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

func exposeAccount(a *entity.Account) ExposedUser {
	return ExposedUser{ID: a.ID, Email: a.Email, Roles: a.Roles.Names()}
}

// LoginResult pairs the exposed user with a freshly issued session token.
type LoginResult struct {
	User      ExposedUser `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s *AccountService) makeLoginResult(a *entity.Account) (*LoginResult, error) {
	token, exp, err := s.Tokens.Issue(a.ID, a.Roles)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: exposeAccount(a), Token: token, ExpiresAt: exp}, nil
}

type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Street     string
	Number     string
	PostalCode string
	City       string
	Birthdate  time.Time
}

// Register creates a PATIENT account and its profile atomically and signs the
// new account in. A duplicate email surfaces as Conflict.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*LoginResult, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	acct := &entity.Account{
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        entity.NewRoleSet(entity.RolePatient),
	}
	profile := &entity.PatientProfile{
		Name:       in.Name,
		Street:     in.Street,
		Number:     in.Number,
		PostalCode: in.PostalCode,
		City:       in.City,
		Birthdate:  in.Birthdate,
	}
	if err := s.Accounts.CreatePatientAccount(ctx, acct, profile); err != nil {
		return nil, translateUniqueViolation(err)
	}

	s.publishEmail(ctx, mailer.EmailJob{
		To:      acct.Email,
		Subject: "Welcome to docline",
		Text:    "Hi " + profile.Name + ", your account has been created. You can now book appointments.",
	})

	return s.makeLoginResult(acct)
}

// Login verifies the credentials and issues a token. Unknown email and wrong
// password produce the same answer.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	a, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil || a == nil {
		return nil, apperr.Unauthenticated("the given email and password do not match")
	}
	if !helpers.VerifyPassword(password, a.PasswordHash) {
		return nil, apperr.Unauthenticated("the given email and password do not match")
	}
	return s.makeLoginResult(a)
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (ExposedUser, error) {
	a, err := s.Accounts.GetByID(ctx, id)
	if err != nil {
		return ExposedUser{}, err
	}
	return exposeAccount(a), nil
}

func (s *AccountService) List(ctx context.Context) ([]ExposedUser, error) {
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ExposedUser, 0, len(accounts))
	for i := range accounts {
		out = append(out, exposeAccount(&accounts[i]))
	}
	return out, nil
}

// UpdateRoles is the explicit administrative role update; it is the only way
// a role set changes after creation. Unknown tags are rejected here.
func (s *AccountService) UpdateRoles(ctx context.Context, id int64, roleNames []string) (ExposedUser, error) {
	roles, err := entity.ParseRoleSet(roleNames)
	if err != nil {
		return ExposedUser{}, apperr.ValidationFailed(err.Error(), map[string]any{"roles": roleNames})
	}
	if err := s.Accounts.UpdateRoles(ctx, id, roles); err != nil {
		return ExposedUser{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return s.Accounts.Delete(ctx, id)
}

func (s *AccountService) publishEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Mail == nil {
		return
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("publish email job failed")
	}
}
