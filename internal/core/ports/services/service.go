package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is used
// throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User               UserSvcFacade
	TokenService       TokenSvcFacade
	Wallet             WalletSvcFacade
	PasswordReset      PasswordResetSvcFacade
	Permission         PermissionSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	Verification       VerificationSvcFacade
	Mailer             MailerSvc
	Product            ProductSvcFacade
}
