package utils

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// IsEthereumAddress reports whether s looks like a 0x-prefixed 20-byte hex
// address.
func IsEthereumAddress(s string) bool {
	return common.IsHexAddress(s)
}

// ChecksumAddress normalizes an address to its EIP-55 mixed-case encoding.
func ChecksumAddress(s string) string {
	return common.HexToAddress(s).Hex()
}

// RecoverPersonalSignAddress recovers the checksum address that produced
// signature over message using the eth_personal_sign digest
// ("\x19Ethereum Signed Message:\n" + len + message).
func RecoverPersonalSignAddress(message, signature string) (string, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", fmt.Errorf("malformed signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	// personal_sign produces V as 27/28; go-ethereum expects 0/1.
	if sig[crypto.RecoveryIDOffset] == 27 || sig[crypto.RecoveryIDOffset] == 28 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	digest := accounts.TextHash([]byte(message))
	pubKey, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return "", fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pubKey).Hex(), nil
}

// SameAddress compares two addresses case-insensitively so checksum and
// lowercase encodings of the same address match.
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}
