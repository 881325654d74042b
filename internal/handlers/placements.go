package handlers

import (
	"errors"
	"net/http"

	"placementhub/internal/db"
	"placementhub/internal/middleware"
	"placementhub/internal/models"

	"gorm.io/gorm"
)

// placementScope restricts a placement query to rows the caller may see.
func placementScope(r *http.Request, q *gorm.DB) (*gorm.DB, error) {
	_, ut, _ := middleware.Caller(r.Context())
	switch ut {
	case models.UserTypeStudent:
		s, err := currentStudent(r)
		if err != nil {
			return nil, err
		}
		return q.Where("student_id = ?", s.ID), nil
	case models.UserTypeCollege:
		c, err := currentCollege(r)
		if err != nil {
			return nil, err
		}
		return q.Where("college_id = ?", c.ID), nil
	case models.UserTypeCompany:
		c, err := currentCompany(r)
		if err != nil {
			return nil, err
		}
		return q.Where("company_id = ?", c.ID), nil
	}
	return nil, gorm.ErrRecordNotFound
}

// GET /api/v1/placements (protected)
func ListPlacements(w http.ResponseWriter, r *http.Request) {
	q, err := placementScope(r, db.DB.Preload("Student").Preload("Company").Order("created_at DESC"))
	if err != nil {
		profileError(w, r, err)
		return
	}
	var out []models.Placement
	if err := q.Find(&out).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type placementStatusReq struct {
	Status string `json:"status"`
}

// UpdatePlacementStatus lets the student answer an offer and the company
// or college confirm that an accepted offer was joined.
// PATCH /api/v1/placements/{id}/status (protected)
func UpdatePlacementStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req placementStatusReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	_, ut, _ := middleware.Caller(r.Context())
	allowed := req.Status == models.PlacementJoined
	if ut == models.UserTypeStudent {
		allowed = req.Status == models.PlacementAccepted || req.Status == models.PlacementDeclined
	}
	if !allowed {
		writeError(w, http.StatusForbidden, "a "+ut+" account cannot set status "+req.Status)
		return
	}

	q, err := placementScope(r, db.DB)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var p models.Placement
	if err := q.First(&p, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "placement not found")
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	from := p.Status
	if err := p.Transition(req.Status); err != nil {
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error(), "from": from, "to": req.Status})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := advanceStatus(tx, &models.Placement{}, p.ID, from, p.Status); err != nil {
			return err
		}
		if p.Status != models.PlacementDeclined {
			return nil
		}
		return tx.Model(&models.Student{}).Where("id = ?", p.StudentID).Updates(map[string]any{
			"placement_status":  models.PlacementSeeking,
			"placement_company": "",
			"placement_package": 0,
		}).Error
	})
	if errors.Is(err, errStatusChanged) {
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error(), "from": from, "to": req.Status})
		return
	}
	if err != nil {
		serverError(w, r, "failed to update placement", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
