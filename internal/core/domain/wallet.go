package domain

import "time"

// Wallet is an Ethereum address linked (or about to be linked) to a user.
// UserID is nil while the wallet is only a nonce placeholder created by a
// getNonce call for an address nobody has authenticated yet. The nonce is a
// single-use challenge and must be rotated after every successful signature
// verification.
type Wallet struct {
	WalletID  string  `json:"walletID"`
	Address   string  `json:"address"`
	UserID    *string `json:"userID,omitempty"`
	Nonce     string  `json:"-"`
	IsPrimary bool    `json:"isPrimary"`
	AuditFields
}

// NonceMessageTemplate is the fixed message a wallet signs to prove ownership.
// The %s placeholder carries the current nonce.
const NonceMessageTemplate = "Welcome to Velora!\n\nSign this message to authenticate your wallet.\n\nNonce: %s"

// WalletAuthResult is returned from a successful wallet authentication.
type WalletAuthResult struct {
	Token     string    `json:"token"`
	User      *User     `json:"user"`
	Wallet    *Wallet   `json:"wallet"`
	IssuedAt  time.Time `json:"issuedAt"`
	IsNewUser bool      `json:"isNewUser"`
}
