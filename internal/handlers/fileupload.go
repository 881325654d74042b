package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"placementhub/internal/db"
	"placementhub/internal/logger"
	"placementhub/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rosterHeaders = []string{"student_name", "roll_number", "email", "department", "year", "cgpa", "attendance", "skills"}

// rowError is a CSV row that could not be imported. Line counts the header.
type rowError struct {
	Line int
	Msg  string
}

func (e *rowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// rosterFile finds the uploaded CSV, preferring the "file" field and
// falling back to the first file in the form.
func rosterFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	for _, name := range []string{"file", "students", "csv"} {
		if f, h, err := r.FormFile(name); err == nil {
			return f, h, nil
		}
	}
	if r.MultipartForm != nil {
		for k := range r.MultipartForm.File {
			return r.FormFile(k)
		}
	}
	return nil, nil, http.ErrMissingFile
}

// BulkUploadStudents imports a college's roster from CSV in one
// transaction. Roll numbers already on the roster are skipped.
// POST /api/v1/colleges/me/students/bulk-upload (college)
func BulkUploadStudents(w http.ResponseWriter, r *http.Request) {
	college, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	file, header, err := rosterFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "CSV file is required in field 'file'")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		writeError(w, http.StatusBadRequest, "unable to read CSV header")
		return
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(strings.TrimPrefix(headers[i], "\ufeff")))
	}
	if !slices.Equal(headers, rosterHeaders) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    "Invalid CSV format. Please use the provided template.",
			"expected": rosterHeaders,
			"got":      headers,
		})
		return
	}

	var inserted, duplicates int
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		line := 1
		for {
			rec, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			line++
			if err != nil {
				return &rowError{line, "malformed CSV row"}
			}
			st, err := parseRosterRow(rec, line)
			if err != nil {
				return err
			}
			st.CollegeID = &college.ID

			var dup int64
			if err := tx.Model(&models.Student{}).
				Where("college_id = ? AND roll_number = ?", college.ID, *st.RollNumber).
				Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				duplicates++
				continue
			}
			if err := tx.Create(st).Error; err != nil {
				return err
			}
			inserted++
		}
	})
	var re *rowError
	if errors.As(err, &re) {
		writeError(w, http.StatusBadRequest, re.Error())
		return
	}
	if err != nil {
		serverError(w, r, "failed to import roster", err)
		return
	}

	logger.L.Info("roster imported",
		zap.Uint("college_id", college.ID),
		zap.Int("inserted", inserted),
		zap.Int("duplicates", duplicates))
	writeJSON(w, http.StatusOK, map[string]any{
		"message":            fmt.Sprintf("Successfully imported %d students. Skipped %d duplicates.", inserted, duplicates),
		"inserted":           inserted,
		"duplicates_skipped": duplicates,
		"file":               header.Filename,
	})
}

func parseRosterRow(rec []string, line int) (*models.Student, error) {
	if len(rec) != len(rosterHeaders) {
		return nil, &rowError{line, "row does not match header length"}
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	if rec[0] == "" || rec[1] == "" {
		return nil, &rowError{line, "student_name and roll_number are required"}
	}
	st := &models.Student{
		Name:            rec[0],
		RollNumber:      &rec[1],
		Email:           rec[2],
		Department:      rec[3],
		PlacementStatus: models.PlacementSeeking,
	}
	if rec[4] != "" {
		y, err := strconv.Atoi(rec[4])
		if err != nil || y < 1 || y > 6 {
			return nil, &rowError{line, "invalid year"}
		}
		st.Year = y
	}
	if rec[5] != "" {
		g, err := strconv.ParseFloat(rec[5], 64)
		if err != nil || g < 0 || g > 10 {
			return nil, &rowError{line, "invalid cgpa (expected 0-10)"}
		}
		st.CGPA = g
	}
	if rec[6] != "" {
		a, err := strconv.ParseFloat(rec[6], 64)
		if err != nil || a < 0 || a > 100 {
			return nil, &rowError{line, "invalid attendance (expected 0-100)"}
		}
		st.Attendance = a
	}
	for _, s := range strings.Split(rec[7], ";") {
		if s = strings.TrimSpace(s); s != "" {
			st.Skills = append(st.Skills, s)
		}
	}
	return st, nil
}
