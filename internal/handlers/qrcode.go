package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// GET /api/v1/certificates/{id}/qrcode
func GetCertificateQRCode(w http.ResponseWriter, r *http.Request) {
	cert, err := certificateByPublicID(chi.URLParam(r, "id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "certificate not found", http.StatusNotFound)
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}

	png, err := qrcode.Encode(verifyURL(cert.PublicID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
