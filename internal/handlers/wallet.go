package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"placementhub/internal/cache"
	"placementhub/internal/db"
	"placementhub/internal/eth"
	"placementhub/internal/middleware"
	"placementhub/internal/models"

	"github.com/google/uuid"
)

const nonceTTL = 5 * time.Minute

func nonceKey(uid uint) string {
	return fmt.Sprintf("wallet:nonce:%d", uid)
}

// POST /api/v1/wallet/nonce (protected)
func WalletNonce(w http.ResponseWriter, r *http.Request) {
	uid, _, _ := middleware.Caller(r.Context())
	username, _ := r.Context().Value(middleware.UsernameKey).(string)

	nonce := uuid.NewString()
	if err := cache.Default.Set(r.Context(), nonceKey(uid), []byte(nonce), nonceTTL); err != nil {
		serverError(w, r, "failed to store nonce", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"nonce":      nonce,
		"message":    eth.LinkMessage(username, nonce),
		"expires_in": int(nonceTTL.Seconds()),
	})
}

type linkWalletReq struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

// POST /api/v1/wallet/link (protected)
func LinkWallet(w http.ResponseWriter, r *http.Request) {
	uid, _, _ := middleware.Caller(r.Context())
	username, _ := r.Context().Value(middleware.UsernameKey).(string)

	var req linkWalletReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	addr, err := eth.NormalizeAddress(req.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	nonce, err := cache.Default.Take(r.Context(), nonceKey(uid))
	if errors.Is(err, cache.ErrMiss) {
		writeError(w, http.StatusBadRequest, "no pending nonce, request a new one")
		return
	} else if err != nil {
		serverError(w, r, "failed to read nonce", err)
		return
	}
	if err := eth.VerifySignature(addr, eth.LinkMessage(username, string(nonce)), req.Signature); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var other models.User
	if err := db.DB.Where("wallet_address = ? AND id <> ?", addr, uid).First(&other).Error; err == nil {
		writeError(w, http.StatusConflict, "wallet already linked to another account")
		return
	}
	if err := db.DB.Model(&models.User{}).Where("id = ?", uid).Update("wallet_address", addr).Error; err != nil {
		serverError(w, r, "failed to link wallet", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wallet_address": addr})
}
