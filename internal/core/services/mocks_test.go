package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/velorashop/velora_backend/internal/core/domain"
	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	SaveUserFn           func(ctx context.Context, user domain.User) error
	FindUserByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	FindUsersFn          func(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateUserFn         func(ctx context.Context, user domain.User) error
	UpdatePasswordHashFn func(ctx context.Context, userID string, passwordHash string) error
	MarkUserDeletedFn    func(ctx context.Context, userID string, deletedAt time.Time) error
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if m.FindUsersFn != nil {
		return m.FindUsersFn(ctx, limit, offset)
	}
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	if m.UpdatePasswordHashFn != nil {
		return m.UpdatePasswordHashFn(ctx, userID, passwordHash)
	}
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	if m.MarkUserDeletedFn != nil {
		return m.MarkUserDeletedFn(ctx, userID, deletedAt)
	}
	args := m.Called(ctx, userID, deletedAt)
	return args.Error(0)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- Mock TokenRepository ---
type MockTokenRepository struct {
	mock.Mock
	SaveTokenFn            func(ctx context.Context, token domain.AuthToken) error
	FindByTokenFn          func(ctx context.Context, tokenString string) (*domain.AuthToken, error)
	DeactivateTokenFn      func(ctx context.Context, tokenID string) error
	DeactivateUserTokensFn func(ctx context.Context, userID string, kind domain.TokenKind) error
}

func (m *MockTokenRepository) SaveToken(ctx context.Context, token domain.AuthToken) error {
	if m.SaveTokenFn != nil {
		return m.SaveTokenFn(ctx, token)
	}
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) FindByToken(ctx context.Context, tokenString string) (*domain.AuthToken, error) {
	if m.FindByTokenFn != nil {
		return m.FindByTokenFn(ctx, tokenString)
	}
	args := m.Called(ctx, tokenString)
	var token *domain.AuthToken
	if args.Get(0) != nil {
		token = args.Get(0).(*domain.AuthToken)
	}
	return token, args.Error(1)
}

func (m *MockTokenRepository) DeactivateToken(ctx context.Context, tokenID string) error {
	if m.DeactivateTokenFn != nil {
		return m.DeactivateTokenFn(ctx, tokenID)
	}
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenRepository) DeactivateUserTokens(ctx context.Context, userID string, kind domain.TokenKind) error {
	if m.DeactivateUserTokensFn != nil {
		return m.DeactivateUserTokensFn(ctx, userID, kind)
	}
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

var _ portsrepo.TokenRepository = (*MockTokenRepository)(nil)

// --- Mock OTPRepository ---
type MockOTPRepository struct {
	mock.Mock
	SaveOTPFn           func(ctx context.Context, otp domain.OTP) error
	FindValidOTPFn      func(ctx context.Context, email, code string, now time.Time) (*domain.OTP, error)
	MarkOTPUsedFn       func(ctx context.Context, otpID string) error
	MarkEmailOTPsUsedFn func(ctx context.Context, email string) error
}

func (m *MockOTPRepository) SaveOTP(ctx context.Context, otp domain.OTP) error {
	if m.SaveOTPFn != nil {
		return m.SaveOTPFn(ctx, otp)
	}
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockOTPRepository) FindValidOTP(ctx context.Context, email, code string, now time.Time) (*domain.OTP, error) {
	if m.FindValidOTPFn != nil {
		return m.FindValidOTPFn(ctx, email, code, now)
	}
	args := m.Called(ctx, email, code, now)
	var otp *domain.OTP
	if args.Get(0) != nil {
		otp = args.Get(0).(*domain.OTP)
	}
	return otp, args.Error(1)
}

func (m *MockOTPRepository) MarkOTPUsed(ctx context.Context, otpID string) error {
	if m.MarkOTPUsedFn != nil {
		return m.MarkOTPUsedFn(ctx, otpID)
	}
	args := m.Called(ctx, otpID)
	return args.Error(0)
}

func (m *MockOTPRepository) MarkEmailOTPsUsed(ctx context.Context, email string) error {
	if m.MarkEmailOTPsUsedFn != nil {
		return m.MarkEmailOTPsUsedFn(ctx, email)
	}
	args := m.Called(ctx, email)
	return args.Error(0)
}

var _ portsrepo.OTPRepository = (*MockOTPRepository)(nil)

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
	SaveWalletFn          func(ctx context.Context, wallet domain.Wallet) error
	FindWalletByAddressFn func(ctx context.Context, address string) (*domain.Wallet, error)
	FindWalletsByUserIDFn func(ctx context.Context, userID string) ([]domain.Wallet, error)
	UpdateWalletFn        func(ctx context.Context, wallet domain.Wallet) error
	DeleteWalletFn        func(ctx context.Context, walletID string) error
	SetPrimaryWalletFn    func(ctx context.Context, userID, walletID string) error
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	if m.SaveWalletFn != nil {
		return m.SaveWalletFn(ctx, wallet)
	}
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	if m.FindWalletByAddressFn != nil {
		return m.FindWalletByAddressFn(ctx, address)
	}
	args := m.Called(ctx, address)
	var wallet *domain.Wallet
	if args.Get(0) != nil {
		wallet = args.Get(0).(*domain.Wallet)
	}
	return wallet, args.Error(1)
}

func (m *MockWalletRepository) FindWalletsByUserID(ctx context.Context, userID string) ([]domain.Wallet, error) {
	if m.FindWalletsByUserIDFn != nil {
		return m.FindWalletsByUserIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var wallets []domain.Wallet
	if args.Get(0) != nil {
		wallets = args.Get(0).([]domain.Wallet)
	}
	return wallets, args.Error(1)
}

func (m *MockWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	if m.UpdateWalletFn != nil {
		return m.UpdateWalletFn(ctx, wallet)
	}
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	if m.DeleteWalletFn != nil {
		return m.DeleteWalletFn(ctx, walletID)
	}
	args := m.Called(ctx, walletID)
	return args.Error(0)
}

func (m *MockWalletRepository) SetPrimaryWallet(ctx context.Context, userID, walletID string) error {
	if m.SetPrimaryWalletFn != nil {
		return m.SetPrimaryWalletFn(ctx, userID, walletID)
	}
	args := m.Called(ctx, userID, walletID)
	return args.Error(0)
}

var _ portsrepo.WalletRepository = (*MockWalletRepository)(nil)

// --- Mock PermissionRepository ---
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) FindAllPermissions(ctx context.Context) ([]domain.Permission, error) {
	args := m.Called(ctx)
	var perms []domain.Permission
	if args.Get(0) != nil {
		perms = args.Get(0).([]domain.Permission)
	}
	return perms, args.Error(1)
}

func (m *MockPermissionRepository) FindDirectPermissions(ctx context.Context, userID string) ([]domain.Permission, error) {
	args := m.Called(ctx, userID)
	var perms []domain.Permission
	if args.Get(0) != nil {
		perms = args.Get(0).([]domain.Permission)
	}
	return perms, args.Error(1)
}

func (m *MockPermissionRepository) FindRolePermissions(ctx context.Context, roleID string) ([]domain.Permission, error) {
	args := m.Called(ctx, roleID)
	var perms []domain.Permission
	if args.Get(0) != nil {
		perms = args.Get(0).([]domain.Permission)
	}
	return perms, args.Error(1)
}

func (m *MockPermissionRepository) GrantUserPermission(ctx context.Context, userID, permissionID string) error {
	args := m.Called(ctx, userID, permissionID)
	return args.Error(0)
}

func (m *MockPermissionRepository) RevokeUserPermission(ctx context.Context, userID, permissionID string) error {
	args := m.Called(ctx, userID, permissionID)
	return args.Error(0)
}

func (m *MockPermissionRepository) SaveRole(ctx context.Context, role domain.CustomRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockPermissionRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.CustomRole, error) {
	args := m.Called(ctx, roleID)
	var role *domain.CustomRole
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.CustomRole)
	}
	return role, args.Error(1)
}

func (m *MockPermissionRepository) FindRoles(ctx context.Context) ([]domain.CustomRole, error) {
	args := m.Called(ctx)
	var roles []domain.CustomRole
	if args.Get(0) != nil {
		roles = args.Get(0).([]domain.CustomRole)
	}
	return roles, args.Error(1)
}

func (m *MockPermissionRepository) UpdateRole(ctx context.Context, role domain.CustomRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockPermissionRepository) DeleteRole(ctx context.Context, roleID string) error {
	args := m.Called(ctx, roleID)
	return args.Error(0)
}

func (m *MockPermissionRepository) SetRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	args := m.Called(ctx, roleID, permissionIDs)
	return args.Error(0)
}

var _ portsrepo.PermissionRepository = (*MockPermissionRepository)(nil)

// --- Mock MailerSvc ---
type MockMailer struct {
	mock.Mock
	SendFn func(ctx context.Context, job domain.EmailJob) error
}

func (m *MockMailer) Send(ctx context.Context, job domain.EmailJob) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, job)
	}
	args := m.Called(ctx, job)
	return args.Error(0)
}

var _ portssvc.MailerSvc = (*MockMailer)(nil)

// --- Mock TokenSvcFacade ---
type MockTokenService struct {
	mock.Mock
	IssueAccessTokenFn func(ctx context.Context, user *domain.User, device string) (string, *domain.AuthToken, error)
}

func (m *MockTokenService) IssueAccessToken(ctx context.Context, user *domain.User, device string) (string, *domain.AuthToken, error) {
	if m.IssueAccessTokenFn != nil {
		return m.IssueAccessTokenFn(ctx, user, device)
	}
	args := m.Called(ctx, user, device)
	var token *domain.AuthToken
	if args.Get(1) != nil {
		token = args.Get(1).(*domain.AuthToken)
	}
	return args.String(0), token, args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*utils.AccessClaims, error) {
	args := m.Called(ctx, tokenString)
	var claims *utils.AccessClaims
	if args.Get(0) != nil {
		claims = args.Get(0).(*utils.AccessClaims)
	}
	return claims, args.Error(1)
}

func (m *MockTokenService) InvalidateUserTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)
