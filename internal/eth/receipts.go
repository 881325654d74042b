package eth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

const (
	TxPending   = "pending"
	TxConfirmed = "confirmed"
	TxFailed    = "failed"
)

var ErrBadTxHash = errors.New("invalid transaction hash")

// TxInfo is what the chain says about an anchoring transaction.
type TxInfo struct {
	Status      string
	From        string
	BlockNumber uint64
}

// Chain looks up anchoring transactions.
type Chain interface {
	Lookup(ctx context.Context, txHash string) (TxInfo, error)
}

// Default is nil when no RPC endpoint is configured.
var Default Chain

// ValidTxHash reports whether s looks like a 32-byte 0x hash.
func ValidTxHash(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) == 66 && strings.HasPrefix(s, "0x") && isHex(s[2:])
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

type RPC struct {
	client *ethclient.Client
}

func Dial(ctx context.Context, url string) (*RPC, error) {
	c, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial eth rpc: %w", err)
	}
	return &RPC{client: c}, nil
}

func (r *RPC) Close() {
	r.client.Close()
}

// Lookup reports pending while the transaction has no receipt.
func (r *RPC) Lookup(ctx context.Context, txHash string) (TxInfo, error) {
	if !ValidTxHash(txHash) {
		return TxInfo{}, ErrBadTxHash
	}
	h := common.HexToHash(txHash)

	info := TxInfo{Status: TxPending}
	tx, _, err := r.client.TransactionByHash(ctx, h)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return info, nil
		}
		return TxInfo{}, fmt.Errorf("fetch transaction: %w", err)
	}
	if from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx); err == nil {
		info.From = strings.ToLower(from.Hex())
	}

	rcpt, err := r.client.TransactionReceipt(ctx, h)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return info, nil
		}
		return TxInfo{}, fmt.Errorf("fetch receipt: %w", err)
	}
	if rcpt.BlockNumber != nil {
		info.BlockNumber = rcpt.BlockNumber.Uint64()
	}
	if rcpt.Status == types.ReceiptStatusSuccessful {
		info.Status = TxConfirmed
	} else {
		info.Status = TxFailed
	}
	return info, nil
}
