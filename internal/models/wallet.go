package models

// Wallet is the database row model for the wallets table. Addresses are stored
// in EIP-55 checksum form; user_id is NULL for nonce-only placeholders.
type Wallet struct {
	WalletID  string  `db:"wallet_id"`
	Address   string  `db:"address"`
	UserID    *string `db:"user_id"`
	Nonce     string  `db:"nonce"`
	IsPrimary bool    `db:"is_primary"`
	AuditFields
}
