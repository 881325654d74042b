// Package eth holds the Ethereum pieces the service needs: keccak hashing of
// certificate documents, personal_sign recovery for wallet linking and
// receipt lookups for anchoring transactions.
package eth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrBadAddress   = errors.New("invalid wallet address")
	ErrBadSignature = errors.New("invalid signature")
	ErrSignerMatch  = errors.New("signature was not produced by the given address")
)

// Keccak returns the 0x-prefixed keccak256 of data.
func Keccak(data []byte) string {
	return crypto.Keccak256Hash(data).Hex()
}

// NormalizeAddress validates a hex address and returns it lowercased.
func NormalizeAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if !common.IsHexAddress(addr) {
		return "", ErrBadAddress
	}
	return strings.ToLower(common.HexToAddress(addr).Hex()), nil
}

// RecoverSigner returns the address that produced an EIP-191 personal_sign
// signature over message.
func RecoverSigner(message, signature string) (string, error) {
	sig, err := hexutil.Decode(strings.TrimSpace(signature))
	if err != nil || len(sig) != crypto.SignatureLength {
		return "", ErrBadSignature
	}
	// wallets send v as 27/28
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return strings.ToLower(crypto.PubkeyToAddress(*pub).Hex()), nil
}

// VerifySignature checks that address signed message.
func VerifySignature(address, message, signature string) error {
	want, err := NormalizeAddress(address)
	if err != nil {
		return err
	}
	got, err := RecoverSigner(message, signature)
	if err != nil {
		return err
	}
	if got != want {
		return ErrSignerMatch
	}
	return nil
}

// LinkMessage is the text a wallet signs to link itself to an account.
func LinkMessage(username, nonce string) string {
	return fmt.Sprintf("PlacementHub wallet link\nAccount: %s\nNonce: %s", username, nonce)
}
