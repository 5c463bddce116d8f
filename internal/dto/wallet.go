package dto

import "github.com/velorashop/velora_backend/internal/core/domain"

// NonceRequest is the payload for POST /auth/metamask/nonce.
type NonceRequest struct {
	Address string `json:"address" binding:"required,eth_addr"`
}

// NonceData carries the issued challenge.
type NonceData struct {
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

// WalletAuthRequest is the payload for POST /auth/metamask/authenticate.
type WalletAuthRequest struct {
	Address   string `json:"address" binding:"required,eth_addr"`
	Signature string `json:"signature" binding:"required"`
	Device    string `json:"device"`
}

// LinkWalletRequest is the payload for POST /api/v1/wallets/link.
type LinkWalletRequest struct {
	Address   string `json:"address" binding:"required,eth_addr"`
	Signature string `json:"signature" binding:"required"`
}

// WalletResponse is the API projection of a wallet.
type WalletResponse struct {
	WalletID  string `json:"walletID"`
	Address   string `json:"address"`
	IsPrimary bool   `json:"isPrimary"`
}

// ToWalletResponse maps a domain wallet to its API projection.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:  w.WalletID,
		Address:   w.Address,
		IsPrimary: w.IsPrimary,
	}
}

// ToWalletResponses maps a slice of wallets.
func ToWalletResponses(ws []domain.Wallet) []WalletResponse {
	out := make([]WalletResponse, len(ws))
	for i := range ws {
		out[i] = ToWalletResponse(&ws[i])
	}
	return out
}

// NonceResponse wraps the issued challenge.
type NonceResponse struct {
	Success bool      `json:"success"`
	Data    NonceData `json:"data"`
}

// WalletAuthData is the data envelope of a successful wallet authentication.
type WalletAuthData struct {
	Token  string         `json:"token"`
	User   LoginUser      `json:"user"`
	Wallet WalletResponse `json:"wallet"`
}

// WalletAuthResponse wraps a successful wallet authentication.
type WalletAuthResponse struct {
	Success bool           `json:"success"`
	Data    WalletAuthData `json:"data"`
}
