package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"placementhub/internal/db"
	"placementhub/internal/eth"
	"placementhub/internal/ipfs"
	"placementhub/internal/logger"
	"placementhub/internal/middleware"
	"placementhub/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	VerifyVerified   = "Verified"
	VerifyTampered   = "Tampered"
	VerifyUnanchored = "Unanchored"
)

func documentHash(c *models.Certificate) (string, error) {
	b, err := json.Marshal(c.Document())
	if err != nil {
		return "", err
	}
	return eth.Keccak(b), nil
}

type issueReq struct {
	StudentID           uint       `json:"student_id"`
	CertificateName     string     `json:"certificate_name"`
	IssuingOrganization string     `json:"issuing_organization"`
	IssueDate           *time.Time `json:"issue_date"`
	ExpiryDate          *time.Time `json:"expiry_date"`
}

// IssueCertificate records a certificate for one of the college's students,
// hashes its canonical document and pins it to IPFS when a pinner is set.
// POST /api/v1/certificates (college)
func IssueCertificate(w http.ResponseWriter, r *http.Request) {
	var req issueReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.CertificateName = strings.TrimSpace(req.CertificateName)
	if req.StudentID == 0 || req.CertificateName == "" {
		writeError(w, http.StatusBadRequest, "student_id and certificate_name are required")
		return
	}
	if req.IssueDate != nil && req.ExpiryDate != nil && req.ExpiryDate.Before(*req.IssueDate) {
		writeError(w, http.StatusBadRequest, "expiry_date is before issue_date")
		return
	}
	college, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var student models.Student
	if err := db.DB.First(&student, req.StudentID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "student not found")
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	if student.CollegeID == nil || *student.CollegeID != college.ID {
		writeError(w, http.StatusForbidden, "forbidden: student is not on this college's roster")
		return
	}

	issuer := strings.TrimSpace(req.IssuingOrganization)
	if issuer == "" {
		issuer = college.CollegeName
	}
	issued := req.IssueDate
	if issued == nil {
		now := time.Now().UTC()
		issued = &now
	}
	cert := models.Certificate{
		PublicID:            uuid.NewString(),
		StudentID:           student.ID,
		CollegeID:           college.ID,
		HolderName:          student.Name,
		CertificateName:     req.CertificateName,
		IssuingOrganization: issuer,
		IssueDate:           issued,
		ExpiryDate:          req.ExpiryDate,
		ChainStatus:         models.ChainUnanchored,
	}
	if student.RollNumber != nil {
		cert.HolderRoll = *student.RollNumber
	}
	if cert.BlockchainHash, err = documentHash(&cert); err != nil {
		serverError(w, r, "failed to hash certificate", err)
		return
	}

	if ipfs.Default != nil {
		cid, err := ipfs.Default.PinJSON(r.Context(), "certificate-"+cert.PublicID, cert.Document())
		if err != nil {
			logger.L.Error("ipfs pin failed", zap.String("public_id", cert.PublicID), zap.Error(err))
			writeError(w, http.StatusBadGateway, "failed to pin certificate to IPFS")
			return
		}
		cert.IPFSCID = cid
		cert.CertificateURL = ipfs.Default.GatewayURL(cid)
	}
	if err := db.DB.Create(&cert).Error; err != nil {
		serverError(w, r, "failed to store certificate", err)
		return
	}
	logger.L.Info("certificate issued",
		zap.String("public_id", cert.PublicID),
		zap.Uint("college_id", college.ID),
		zap.String("hash", cert.BlockchainHash))
	writeJSON(w, http.StatusCreated, cert)
}

// GET /api/v1/certificates (student or college)
func ListCertificates(w http.ResponseWriter, r *http.Request) {
	_, ut, _ := middleware.Caller(r.Context())
	q := db.DB.Order("created_at DESC")
	switch ut {
	case models.UserTypeStudent:
		s, err := currentStudent(r)
		if err != nil {
			profileError(w, r, err)
			return
		}
		q = q.Preload("College").Where("student_id = ?", s.ID)
	case models.UserTypeCollege:
		c, err := currentCollege(r)
		if err != nil {
			profileError(w, r, err)
			return
		}
		q = q.Preload("Student").Where("college_id = ?", c.ID)
	default:
		writeError(w, http.StatusForbidden, "forbidden for account type "+ut)
		return
	}
	var out []models.Certificate
	if err := q.Find(&out).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func certificateByPublicID(id string) (*models.Certificate, error) {
	var c models.Certificate
	if err := db.DB.Preload("College").Where("public_id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

type txReq struct {
	TxHash string `json:"tx_hash"`
}

var errTxRecorded = errors.New("transaction already recorded")

// applyChainInfo copies a receipt lookup onto the certificate.
func applyChainInfo(c *models.Certificate, info eth.TxInfo) {
	switch info.Status {
	case eth.TxConfirmed:
		c.ChainStatus = models.ChainConfirmed
		c.Verified = true
	case eth.TxFailed:
		c.ChainStatus = models.ChainFailed
		c.Verified = false
	default:
		c.ChainStatus = models.ChainPending
	}
}

// collegeWallet returns the wallet linked to the college's account, if any.
func collegeWallet(c *models.College) string {
	if c.UserID == nil {
		return ""
	}
	var u models.User
	if err := db.DB.First(&u, *c.UserID).Error; err != nil || u.WalletAddress == nil {
		return ""
	}
	return *u.WalletAddress
}

// RecordTransaction attaches the anchoring transaction a college sent for
// one of its certificates. With an RPC endpoint configured the receipt is
// checked immediately.
// POST /api/v1/certificates/{id}/transaction (college)
func RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req txReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.TxHash = strings.ToLower(strings.TrimSpace(req.TxHash))
	if !eth.ValidTxHash(req.TxHash) {
		writeError(w, http.StatusBadRequest, eth.ErrBadTxHash.Error())
		return
	}
	college, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	cert, err := certificateByPublicID(chi.URLParam(r, "id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "certificate not found")
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	if cert.CollegeID != college.ID {
		writeError(w, http.StatusForbidden, "forbidden: certificate issued by another college")
		return
	}

	rec := models.Transaction{CertificateID: cert.ID, TxHash: req.TxHash, Status: eth.TxPending}
	cert.ChainStatus = models.ChainPending
	if eth.Default != nil {
		info, err := eth.Default.Lookup(r.Context(), req.TxHash)
		if err != nil {
			logger.L.Error("receipt lookup failed", zap.String("tx", req.TxHash), zap.Error(err))
			writeError(w, http.StatusBadGateway, "failed to look up transaction")
			return
		}
		if wallet := collegeWallet(college); wallet != "" && info.From != "" && !strings.EqualFold(wallet, info.From) {
			writeError(w, http.StatusBadRequest, "transaction was not sent from the college's linked wallet")
			return
		}
		rec.Status, rec.FromAddress, rec.BlockNumber = info.Status, info.From, info.BlockNumber
		applyChainInfo(cert, info)
	}
	cert.TxHash = req.TxHash

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Transaction{}).Where("tx_hash = ?", rec.TxHash).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return errTxRecorded
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return tx.Model(&models.Certificate{}).Where("id = ?", cert.ID).Updates(map[string]any{
			"tx_hash":      cert.TxHash,
			"chain_status": cert.ChainStatus,
			"verified":     cert.Verified,
		}).Error
	})
	if errors.Is(err, errTxRecorded) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		serverError(w, r, "failed to record transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"certificate": cert, "transaction": rec})
}

// refreshPending re-reads the receipt of a certificate still waiting on
// its anchoring transaction.
func refreshPending(ctx context.Context, c *models.Certificate) {
	if eth.Default == nil || c.ChainStatus != models.ChainPending || c.TxHash == "" {
		return
	}
	info, err := eth.Default.Lookup(ctx, c.TxHash)
	if err != nil {
		logger.L.Warn("receipt refresh failed", zap.String("tx", c.TxHash), zap.Error(err))
		return
	}
	applyChainInfo(c, info)
	if c.ChainStatus == models.ChainPending {
		return
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).Where("tx_hash = ?", c.TxHash).Updates(map[string]any{
			"status":       info.Status,
			"from_address": info.From,
			"block_number": info.BlockNumber,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Certificate{}).Where("id = ?", c.ID).Updates(map[string]any{
			"chain_status": c.ChainStatus,
			"verified":     c.Verified,
		}).Error
	})
	if err != nil {
		logger.L.Warn("failed to store refreshed receipt", zap.Error(err))
	}
}

// verification re-hashes the stored certificate and reports its state.
func verification(ctx context.Context, c *models.Certificate) map[string]any {
	refreshPending(ctx, c)
	status := VerifyVerified
	hash, err := documentHash(c)
	switch {
	case err != nil || !strings.EqualFold(hash, c.BlockchainHash):
		status = VerifyTampered
	case c.ChainStatus != models.ChainConfirmed:
		status = VerifyUnanchored
	}
	out := map[string]any{
		"status":        status,
		"public_id":     c.PublicID,
		"document_hash": hash,
		"stored_hash":   c.BlockchainHash,
		"chain_status":  c.ChainStatus,
		"tx_hash":       c.TxHash,
		"expired":       c.Expired(time.Now()),
		"document":      c.Document(),
	}
	if c.College != nil {
		out["college"] = c.College.CollegeName
	}
	return out
}

// GET /api/v1/certificates/{id}/verify
func VerifyCertificate(w http.ResponseWriter, r *http.Request) {
	cert, err := certificateByPublicID(chi.URLParam(r, "id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "certificate not found")
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, verification(r.Context(), cert))
}
