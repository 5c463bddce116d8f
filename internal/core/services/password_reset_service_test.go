package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/velorashop/velora_backend/internal/apperrors"
	"github.com/velorashop/velora_backend/internal/core/domain"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/core/services"
	"github.com/velorashop/velora_backend/internal/platform/config"
	"github.com/velorashop/velora_backend/internal/utils"
)

type PasswordResetServiceTestSuite struct {
	suite.Suite
	cfg           *config.Config
	mockUserRepo  *MockUserRepository
	mockTokenRepo *MockTokenRepository
	mockOTPRepo   *MockOTPRepository
	mockMailer    *MockMailer
	service       portssvc.PasswordResetSvcFacade
	user          *domain.User
}

func (suite *PasswordResetServiceTestSuite) SetupTest() {
	suite.cfg = testConfig()
	suite.cfg.FrontendBaseURL = "https://shop.example.com"
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockTokenRepo = new(MockTokenRepository)
	suite.mockOTPRepo = new(MockOTPRepository)
	suite.mockMailer = new(MockMailer)
	suite.service = services.NewPasswordResetService(suite.cfg, suite.mockUserRepo, suite.mockTokenRepo, suite.mockOTPRepo, suite.mockMailer)
	suite.user = &domain.User{
		UserID: uuid.NewString(),
		Email:  "alice@example.com",
		Role:   domain.RoleUser,
		Status: domain.StatusActive,
	}
}

// --- RequestReset Tests ---

func (suite *PasswordResetServiceTestSuite) TestRequestReset_UnknownEmailIsSilent() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.RequestReset(ctx, "nobody@example.com")

	suite.Require().NoError(err)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "SaveToken")
	suite.mockOTPRepo.AssertNotCalled(suite.T(), "SaveOTP")
	suite.mockMailer.AssertNotCalled(suite.T(), "Send")
}

func (suite *PasswordResetServiceTestSuite) TestRequestReset_IssuesTokenAndCodeTogether() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.user.Email).Return(suite.user, nil).Once()

	// Previous credentials are retired before the new pair is issued.
	suite.mockTokenRepo.On("DeactivateUserTokens", ctx, suite.user.UserID, domain.TokenKindPasswordReset).Return(nil).Once()
	suite.mockOTPRepo.On("MarkEmailOTPsUsed", ctx, suite.user.Email).Return(nil).Once()

	var savedToken domain.AuthToken
	suite.mockTokenRepo.On("SaveToken", ctx, mock.MatchedBy(func(entry domain.AuthToken) bool {
		savedToken = entry
		return entry.UserID == suite.user.UserID && entry.Kind == domain.TokenKindPasswordReset && entry.Active
	})).Return(nil).Once()

	var savedOTP domain.OTP
	suite.mockOTPRepo.On("SaveOTP", ctx, mock.MatchedBy(func(otp domain.OTP) bool {
		savedOTP = otp
		return otp.Email == suite.user.Email && len(otp.Code) == 6
	})).Return(nil).Once()

	var sentJob domain.EmailJob
	suite.mockMailer.On("Send", ctx, mock.MatchedBy(func(job domain.EmailJob) bool {
		sentJob = job
		return job.To == suite.user.Email && job.Template == domain.EmailTemplatePasswordReset
	})).Return(nil).Once()

	err := suite.service.RequestReset(ctx, suite.user.Email)

	suite.Require().NoError(err)
	suite.Equal(savedToken.Token, sentJob.Params["resetToken"])
	suite.Equal(savedOTP.Code, sentJob.Params["otp"])
	suite.Contains(sentJob.Params["resetURL"], "https://shop.example.com/reset-password?token=")
	suite.Require().NotNil(savedToken.ExpiresAt)
	suite.WithinDuration(time.Now().Add(15*time.Minute), *savedToken.ExpiresAt, 5*time.Second)
	suite.mockTokenRepo.AssertExpectations(suite.T())
	suite.mockOTPRepo.AssertExpectations(suite.T())
	suite.mockMailer.AssertExpectations(suite.T())
}

// --- VerifyOTP Tests ---

func (suite *PasswordResetServiceTestSuite) TestVerifyOTP_ValidCodeIsConsumed() {
	ctx := context.Background()
	otp := &domain.OTP{OTPID: uuid.NewString(), Email: suite.user.Email, Code: "123456"}

	suite.mockOTPRepo.On("FindValidOTP", ctx, suite.user.Email, "123456", mock.AnythingOfType("time.Time")).Return(otp, nil).Once()
	suite.mockOTPRepo.On("MarkOTPUsed", ctx, otp.OTPID).Return(nil).Once()

	err := suite.service.VerifyOTP(ctx, suite.user.Email, "123456")

	suite.Require().NoError(err)
	suite.mockOTPRepo.AssertExpectations(suite.T())
}

func (suite *PasswordResetServiceTestSuite) TestVerifyOTP_ConsumedCodeNeverValidatesAgain() {
	ctx := context.Background()
	otp := &domain.OTP{OTPID: uuid.NewString(), Email: suite.user.Email, Code: "123456"}

	// Back the mock with single-use state so a second check sees the
	// consumed row.
	consumed := false
	suite.mockOTPRepo.FindValidOTPFn = func(ctx context.Context, email, code string, now time.Time) (*domain.OTP, error) {
		if consumed {
			return nil, apperrors.ErrNotFound
		}
		return otp, nil
	}
	suite.mockOTPRepo.MarkOTPUsedFn = func(ctx context.Context, otpID string) error {
		suite.Equal(otp.OTPID, otpID)
		consumed = true
		return nil
	}

	suite.Require().NoError(suite.service.VerifyOTP(ctx, suite.user.Email, "123456"))

	err := suite.service.VerifyOTP(ctx, suite.user.Email, "123456")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PasswordResetServiceTestSuite) TestVerifyOTP_InvalidCode() {
	ctx := context.Background()

	suite.mockOTPRepo.On("FindValidOTP", ctx, suite.user.Email, "000000", mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.VerifyOTP(ctx, suite.user.Email, "000000")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ResetWithToken Tests ---

func (suite *PasswordResetServiceTestSuite) issueResetToken() (string, *domain.AuthToken) {
	token, err := utils.GenerateResetJWT(suite.user, suite.cfg.JWTSecret, suite.cfg.ResetTokenExpiryDuration, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	expiresAt := time.Now().Add(suite.cfg.ResetTokenExpiryDuration)
	entry := &domain.AuthToken{
		TokenID:   uuid.NewString(),
		UserID:    suite.user.UserID,
		Email:     suite.user.Email,
		Token:     token,
		Kind:      domain.TokenKindPasswordReset,
		Active:    true,
		ExpiresAt: &expiresAt,
	}
	return token, entry
}

func (suite *PasswordResetServiceTestSuite) TestResetWithToken_Success() {
	ctx := context.Background()
	token, entry := suite.issueResetToken()

	suite.mockTokenRepo.On("FindByToken", ctx, token).Return(entry, nil).Once()
	suite.mockUserRepo.On("UpdatePasswordHash", ctx, suite.user.UserID, mock.MatchedBy(func(hash string) bool {
		return utils.CheckPasswordHash("brand-new-password", hash)
	})).Return(nil).Once()
	suite.mockTokenRepo.On("DeactivateUserTokens", ctx, suite.user.UserID, domain.TokenKindPasswordReset).Return(nil).Once()
	suite.mockOTPRepo.On("MarkEmailOTPsUsed", ctx, suite.user.Email).Return(nil).Once()

	err := suite.service.ResetWithToken(ctx, token, "brand-new-password")

	suite.Require().NoError(err)
	suite.mockTokenRepo.AssertExpectations(suite.T())
	suite.mockOTPRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *PasswordResetServiceTestSuite) TestResetWithToken_RevokedLedgerEntry() {
	ctx := context.Background()
	token, entry := suite.issueResetToken()
	entry.Active = false

	suite.mockTokenRepo.On("FindByToken", ctx, token).Return(entry, nil).Once()

	err := suite.service.ResetWithToken(ctx, token, "brand-new-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdatePasswordHash")
}

func (suite *PasswordResetServiceTestSuite) TestResetWithToken_NotInLedger() {
	ctx := context.Background()
	token, _ := suite.issueResetToken()

	suite.mockTokenRepo.On("FindByToken", ctx, token).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ResetWithToken(ctx, token, "brand-new-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *PasswordResetServiceTestSuite) TestResetWithToken_GarbageToken() {
	ctx := context.Background()

	err := suite.service.ResetWithToken(ctx, "not-a-jwt", "brand-new-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "FindByToken")
}

// --- ResetWithOTP Tests ---

func (suite *PasswordResetServiceTestSuite) TestResetWithOTP_Success() {
	ctx := context.Background()
	otp := &domain.OTP{OTPID: uuid.NewString(), Email: suite.user.Email, Code: "123456"}

	suite.mockOTPRepo.On("FindValidOTP", ctx, suite.user.Email, "123456", mock.AnythingOfType("time.Time")).Return(otp, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.user.Email).Return(suite.user, nil).Once()
	suite.mockUserRepo.On("UpdatePasswordHash", ctx, suite.user.UserID, mock.AnythingOfType("string")).Return(nil).Once()

	// Completing the code path must also kill the outstanding token.
	suite.mockTokenRepo.On("DeactivateUserTokens", ctx, suite.user.UserID, domain.TokenKindPasswordReset).Return(nil).Once()
	suite.mockOTPRepo.On("MarkEmailOTPsUsed", ctx, suite.user.Email).Return(nil).Once()

	err := suite.service.ResetWithOTP(ctx, suite.user.Email, "123456", "brand-new-password")

	suite.Require().NoError(err)
	suite.mockTokenRepo.AssertExpectations(suite.T())
	suite.mockOTPRepo.AssertExpectations(suite.T())
}

func (suite *PasswordResetServiceTestSuite) TestResetWithOTP_InvalidCode() {
	ctx := context.Background()

	suite.mockOTPRepo.On("FindValidOTP", ctx, suite.user.Email, "000000", mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ResetWithOTP(ctx, suite.user.Email, "000000", "brand-new-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdatePasswordHash")
}

func TestPasswordResetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PasswordResetServiceTestSuite))
}
