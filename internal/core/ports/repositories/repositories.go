package repositories

// RepositoryProvider bundles every repository implementation handed to the
// service layer.
type RepositoryProvider struct {
	UserRepo       UserRepository
	TokenRepo      TokenRepository
	OTPRepo        OTPRepository
	WalletRepo     WalletRepository
	PermissionRepo PermissionRepository
	ProductRepo    ProductRepository
}
