package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"placementhub/internal/db"
	"placementhub/internal/logger"
	"placementhub/internal/models"
	"placementhub/pkg"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type shareLinkReq struct {
	CertificateID  string          `json:"certificate_id"`
	ExpiresInHours json.RawMessage `json:"expires_in_hours"`
}

// hours accepts expires_in_hours as a number or a numeric string.
func (s shareLinkReq) hours() (int, bool) {
	raw := strings.Trim(strings.TrimSpace(string(s.ExpiresInHours)), `"`)
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

func verifyURL(publicID string) string {
	return fmt.Sprintf("%s/verify/%s", frontendBaseURL, url.PathEscape(publicID))
}

// GenerateShareLink signs a time-limited link to one of the caller's
// certificates.
// POST /api/v1/certificates/share-link (student)
func GenerateShareLink(w http.ResponseWriter, r *http.Request) {
	var req shareLinkReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.CertificateID = strings.TrimSpace(req.CertificateID)
	if req.CertificateID == "" {
		writeError(w, http.StatusBadRequest, "certificate_id is required")
		return
	}
	hours, ok := req.hours()
	if !ok {
		writeError(w, http.StatusBadRequest, pkg.ErrShareHours.Error())
		return
	}
	student, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var cert models.Certificate
	if err := db.DB.Where("public_id = ?", req.CertificateID).First(&cert).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "certificate not found")
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	if cert.StudentID != student.ID {
		writeError(w, http.StatusForbidden, "forbidden: not owner of certificate")
		return
	}

	tok, exp, err := pkg.CreateShareToken(cert.PublicID, hours)
	if errors.Is(err, pkg.ErrShareHours) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if err != nil {
		serverError(w, r, "failed to sign share token", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"shareable_url": verifyURL(cert.PublicID) + "?token=" + url.QueryEscape(tok),
		"expires_at":    exp,
	})
}

// GetCertificateInfo serves a shared certificate to whoever holds a valid
// link token.
// GET /api/v1/certificate-info/{id}?token=
func GetCertificateInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tok := r.URL.Query().Get("token")
	if tok == "" {
		writeError(w, http.StatusUnauthorized, pkg.ErrInvalidShare.Error())
		return
	}
	validUntil, err := pkg.VerifyShareToken(tok, id)
	if errors.Is(err, pkg.ErrNoSecret) {
		serverError(w, r, "server misconfigured", err)
		return
	} else if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	cert, err := certificateByPublicID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "certificate not found")
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}

	// The pinned copy is best-effort; the stored document is authoritative.
	var pinned any
	if cert.CertificateURL != "" {
		client := &http.Client{Timeout: 10 * time.Second}
		req, _ := http.NewRequestWithContext(r.Context(), http.MethodGet, cert.CertificateURL, nil)
		if resp, err := client.Do(req); err == nil {
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				_ = json.NewDecoder(resp.Body).Decode(&pinned)
			}
		} else {
			logger.L.Debug("ipfs fetch failed", zap.String("url", cert.CertificateURL), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"certificate":  cert,
		"verification": verification(r.Context(), cert),
		"ipfs":         pinned,
		"valid_until":  validUntil,
	})
}
