package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"yatra/internal/models/db_models"
	"yatra/internal/models/request_models"
	resp "yatra/internal/models/response_models"
	"yatra/internal/repositories"
	"yatra/pkg/logger"
	"yatra/pkg/memcache"
	"yatra/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*resp.AccountLoginResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*resp.AccountLoginResponse, error)
	GetProfile(ctx context.Context, userID string) (*resp.AccountResponse, error)
	UpdateProfile(ctx context.Context, userID string, request request_models.UpdateProfileRequest) (*resp.AccountResponse, error)
	ChangePassword(ctx context.Context, userID string, request request_models.ChangePasswordRequest) error
	Logout(tokenID string, expiresAt time.Time)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	jwt         *utils.JWTManager
	revoked     *memcache.RevokedTokens
	log         *logger.Logger
	now         func() time.Time
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	jwt *utils.JWTManager,
	revoked *memcache.RevokedTokens,
	log *logger.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		jwt:         jwt,
		revoked:     revoked,
		log:         log,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*resp.AccountLoginResponse, error) {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	newAccount := &db_models.User{
		Name:          strings.TrimSpace(request.Name),
		Email:         email,
		Phone:         strings.TrimSpace(request.Phone),
		PasswordHash:  hashedPassword,
		Role:          db_models.RoleTourist,
		AccountStatus: "active",
		IsActive:      true,
		LastLoginAt:   a.now().Unix(),
	}

	if err := a.accountRepo.InsertTx(ctx, newAccount); err != nil {
		a.log.Error("create account failed", "email", email, "error", err)
		return nil, utils.ErrDatabaseError
	}

	return a.issue(newAccount)
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*resp.AccountLoginResponse, error) {
	startTime := a.now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, utils.ErrForbidden
	}

	account.LastLoginAt = a.now().Unix()
	if err := a.accountRepo.UpdateColumns(ctx, account.ID, map[string]interface{}{
		"last_login_at": account.LastLoginAt,
	}); err != nil {
		a.log.Warn("could not record last login", "user_id", account.ID, "error", err)
	}

	a.log.Debug("login verified", "user_id", account.ID, "elapsed", time.Since(startTime))
	return a.issue(account)
}

func (a *AccountService) issue(account *db_models.User) (*resp.AccountLoginResponse, error) {
	token, err := a.jwt.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, err
	}
	return &resp.AccountLoginResponse{
		Token:     token,
		ExpiresIn: int64(a.jwt.TTL().Seconds()),
		User:      resp.NewAccountResponse(account),
	}, nil
}

func (a *AccountService) findAccount(ctx context.Context, userID string) (*db_models.User, error) {
	account, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID string) (*resp.AccountResponse, error) {
	account, err := a.findAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := resp.NewAccountResponse(account)
	return &out, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID string, request request_models.UpdateProfileRequest) (*resp.AccountResponse, error) {
	account, err := a.findAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		account.Name = strings.TrimSpace(*request.Name)
	}
	if request.Phone != nil {
		account.Phone = strings.TrimSpace(*request.Phone)
	}
	if request.Gender != nil {
		account.Gender = *request.Gender
	}
	if request.DateOfBirth != nil {
		if *request.DateOfBirth != "" {
			if _, err := time.Parse("2006-01-02", *request.DateOfBirth); err != nil {
				return nil, utils.NewFieldError("dateOfBirth", "must be a date in YYYY-MM-DD format")
			}
		}
		account.DateOfBirth = *request.DateOfBirth
	}
	if request.ProfilePicture != nil {
		account.ProfilePicture = *request.ProfilePicture
	}
	if request.Address != nil {
		account.Address = datatypes.NewJSONType(*request.Address)
	}

	if err := a.accountRepo.Save(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := resp.NewAccountResponse(account)
	return &out, nil
}

func (a *AccountService) ChangePassword(ctx context.Context, userID string, request request_models.ChangePasswordRequest) error {
	account, err := a.findAccount(ctx, userID)
	if err != nil {
		return err
	}
	if err := utils.ComparePasswords(account.PasswordHash, request.CurrentPassword); err != nil {
		return utils.NewFieldError("currentPassword", "current password is incorrect")
	}
	if request.CurrentPassword == request.NewPassword {
		return utils.NewFieldError("newPassword", "new password must differ from the current one")
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	return a.updatePassword(ctx, account.ID, hashed)
}

func (a *AccountService) updatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	if err := a.accountRepo.UpdateColumns(ctx, id, map[string]interface{}{
		"password_hash":       hashed,
		"password_changed_at": a.now().Unix(),
	}); err != nil {
		return utils.ErrDatabaseError
	}
	a.log.Info("password changed", "user_id", id)
	return nil
}

func (a *AccountService) Logout(tokenID string, expiresAt time.Time) {
	a.revoked.Revoke(tokenID, expiresAt)
}
