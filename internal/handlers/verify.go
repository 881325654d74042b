package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"placementhub/internal/db"
	"placementhub/internal/llm"
	"placementhub/internal/logger"
	"placementhub/internal/models"
	"placementhub/internal/ocr"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"go.uber.org/zap"
)

// CollegeMatchThreshold is the Jaro-Winkler similarity above which the
// institution read off a document is taken to be the one on record.
const CollegeMatchThreshold = 0.85

const maxDocumentSize = 10 << 20

// parseDocument extracts credential fields from OCR text, preferring the
// language model and falling back to pattern matching.
func parseDocument(r *http.Request, raw string) models.ParsedCredential {
	if llm.Default != nil {
		pc, err := llm.ParseCertificate(r.Context(), llm.Default, raw)
		if err == nil {
			return pc
		}
		logger.L.Warn("llm certificate parse failed, using patterns", zap.Error(err))
	}
	return ocr.ParseText(raw)
}

// VerifyDocument checks a scanned certificate against the student roster.
// POST /api/v1/verify-document, multipart field "certificate"
func VerifyDocument(w http.ResponseWriter, r *http.Request) {
	if ocr.Default == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "Server_Error", "message": "document OCR is not configured"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize)
	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "failed to parse form or file too large"})
		return
	}
	file, _, err := r.FormFile("certificate")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "missing file field 'certificate' (send multipart/form-data with field name 'certificate')"})
		return
	}
	defer file.Close()
	img, err := io.ReadAll(file)
	if err != nil || len(img) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "failed to read uploaded file"})
		return
	}

	raw, err := ocr.Default.Text(r.Context(), img)
	if errors.Is(err, ocr.ErrNoText) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": err.Error()})
		return
	} else if err != nil {
		logger.L.Error("ocr failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]any{"status": "Server_Error", "message": "OCR request failed"})
		return
	}

	pc := parseDocument(r, raw)
	if strings.TrimSpace(pc.RegisterNumber) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": llm.ErrNoRegisterNumber.Error()})
		return
	}

	var candidates []models.Student
	if err := db.DB.Preload("College").Where("roll_number = ?", pc.RegisterNumber).Find(&candidates).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}
	if len(candidates) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "Not_Found",
			"message": "No matching record was found for the provided register number.",
		})
		return
	}

	// Roll numbers are unique per college only; keep the closest institution.
	extracted := strings.TrimSpace(pc.CollegeName)
	jw := metrics.NewJaroWinkler()
	var best *models.Student
	conf := -1.0
	for i := range candidates {
		c := &candidates[i]
		official := ""
		if c.College != nil {
			official = strings.TrimSpace(c.College.CollegeName)
		}
		if s := strutil.Similarity(strings.ToLower(extracted), strings.ToLower(official), jw); s > conf {
			best, conf = c, s
		}
	}

	official := ""
	if best.College != nil {
		official = best.College.CollegeName
	}
	data := map[string]any{
		"student_name_ocr":  pc.StudentName,
		"register_number":   pc.RegisterNumber,
		"course_name":       pc.CourseName,
		"year_of_passing":   pc.YearOfPassing,
		"college_name_ocr":  extracted,
		"official_college":  official,
		"record_student_id": best.ID,
		"record_student":    best.Name,
		"record_department": best.Department,
	}
	if conf >= CollegeMatchThreshold {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":           "Verified",
			"match_confidence": conf,
			"data":             data,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "Potentially_Tampered",
		"match_confidence": conf,
		"message":          "The institution name on the document does not match the official record.",
		"data":             data,
	})
}
