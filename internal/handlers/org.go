package handlers

import (
	"net/http"
	"strings"

	"placementhub/internal/db"
	"placementhub/internal/models"
)

// GET /api/v1/colleges/me (college)
func ShowCollege(w http.ResponseWriter, r *http.Request) {
	c, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type collegeUpdate struct {
	CollegeName     *string  `json:"college_name"`
	University      *string  `json:"university"`
	Location        *string  `json:"location"`
	Accreditation   *string  `json:"accreditation"`
	Tier            *int     `json:"tier"`
	EstablishedYear *int     `json:"established_year"`
	TotalStudents   *int     `json:"total_students"`
	Departments     []string `json:"departments"`
	ContactPerson   *string  `json:"contact_person"`
	ContactEmail    *string  `json:"contact_email"`
	ContactPhone    *string  `json:"contact_phone"`
	Website         *string  `json:"website"`
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// PUT /api/v1/colleges/me (college)
func UpdateCollege(w http.ResponseWriter, r *http.Request) {
	var body collegeUpdate
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Tier != nil && (*body.Tier < 1 || *body.Tier > 3) {
		writeError(w, http.StatusBadRequest, "tier must be 1, 2 or 3")
		return
	}
	if body.CollegeName != nil && strings.TrimSpace(*body.CollegeName) == "" {
		writeError(w, http.StatusBadRequest, "college_name cannot be empty")
		return
	}
	c, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	setTrimmed(&c.CollegeName, body.CollegeName)
	setTrimmed(&c.University, body.University)
	setTrimmed(&c.Location, body.Location)
	setTrimmed(&c.ContactPerson, body.ContactPerson)
	setTrimmed(&c.ContactEmail, body.ContactEmail)
	setTrimmed(&c.ContactPhone, body.ContactPhone)
	setTrimmed(&c.Website, body.Website)
	if body.Accreditation != nil {
		c.Accreditation = strings.TrimSpace(*body.Accreditation)
		if body.Tier == nil {
			c.Tier = models.TierFromAccreditation(c.Accreditation)
		}
	}
	if body.Tier != nil {
		c.Tier = *body.Tier
	}
	if body.EstablishedYear != nil {
		c.EstablishedYear = *body.EstablishedYear
	}
	if body.TotalStudents != nil {
		c.TotalStudents = *body.TotalStudents
	}
	if body.Departments != nil {
		c.Departments = body.Departments
	}
	if err := db.DB.Save(c).Error; err != nil {
		serverError(w, r, "failed to update college", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GET /api/v1/colleges
func AllColleges(w http.ResponseWriter, r *http.Request) {
	var colleges []models.College
	q := db.DB.Order("college_name")
	if loc := strings.TrimSpace(r.URL.Query().Get("location")); loc != "" {
		q = q.Where("location = ?", loc)
	}
	if err := q.Find(&colleges).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, colleges)
}

// GET /api/v1/colleges/me/students (college)
func CollegeStudents(w http.ResponseWriter, r *http.Request) {
	c, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	q := db.DB.Where("college_id = ?", c.ID).Order("roll_number")
	if d := strings.TrimSpace(r.URL.Query().Get("department")); d != "" {
		q = q.Where("department = ?", d)
	}
	if st := strings.TrimSpace(r.URL.Query().Get("status")); st != "" {
		q = q.Where("placement_status = ?", st)
	}
	var students []models.Student
	if err := q.Find(&students).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(students), "students": students})
}

// GET /api/v1/companies/me (company)
func ShowCompany(w http.ResponseWriter, r *http.Request) {
	c, err := currentCompany(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type companyUpdate struct {
	CompanyName   *string `json:"company_name"`
	Industry      *string `json:"industry"`
	Location      *string `json:"location"`
	Website       *string `json:"website"`
	Description   *string `json:"description"`
	ContactPerson *string `json:"contact_person"`
	ContactEmail  *string `json:"contact_email"`
	ContactPhone  *string `json:"contact_phone"`
	Size          *string `json:"size"`
	FoundedYear   *int    `json:"founded_year"`
}

// PUT /api/v1/companies/me (company)
func UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var body companyUpdate
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.CompanyName != nil && strings.TrimSpace(*body.CompanyName) == "" {
		writeError(w, http.StatusBadRequest, "company_name cannot be empty")
		return
	}
	c, err := currentCompany(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	setTrimmed(&c.CompanyName, body.CompanyName)
	setTrimmed(&c.Industry, body.Industry)
	setTrimmed(&c.Location, body.Location)
	setTrimmed(&c.Website, body.Website)
	setTrimmed(&c.Description, body.Description)
	setTrimmed(&c.ContactPerson, body.ContactPerson)
	setTrimmed(&c.ContactEmail, body.ContactEmail)
	setTrimmed(&c.ContactPhone, body.ContactPhone)
	setTrimmed(&c.Size, body.Size)
	if body.FoundedYear != nil {
		c.FoundedYear = *body.FoundedYear
	}
	if err := db.DB.Save(c).Error; err != nil {
		serverError(w, r, "failed to update company", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GET /api/v1/companies
func AllCompanies(w http.ResponseWriter, r *http.Request) {
	var companies []models.Company
	q := db.DB.Order("company_name")
	if ind := strings.TrimSpace(r.URL.Query().Get("industry")); ind != "" {
		q = q.Where("industry = ?", ind)
	}
	if err := q.Find(&companies).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}
