package router

import (
	"fmt"
	"net/http"

	"placementhub/internal/config"
	"placementhub/internal/handlers"
	"placementhub/internal/middleware"
	"placementhub/internal/models"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	student = models.UserTypeStudent
	college = models.UserTypeCollege
	company = models.UserTypeCompany
)

func RegisterRouter(cfg *config.Config) http.Handler {
	handlers.Configure(cfg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Logging)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)

		r.Get("/colleges", handlers.AllColleges)
		r.Get("/companies", handlers.AllCompanies)
		r.Get("/skills", handlers.SkillCatalogue)
		r.Get("/skills/demand", handlers.SkillDemand)
		r.Get("/jobs/templates", handlers.JobTemplates)
		r.Get("/nep/guidelines", handlers.NEPGuidelines)

		// Certificate verification is public; share links carry their own token.
		r.Get("/certificates/{id}/verify", handlers.VerifyCertificate)
		r.Get("/certificates/{id}/qrcode", handlers.GetCertificateQRCode)
		r.Get("/certificate-info/{id}", handlers.GetCertificateInfo)
		r.Post("/verify-document", handlers.VerifyDocument)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireActive(handlers.AccountActive))

			r.Get("/auth/me", handlers.AuthMe)
			r.Post("/wallet/nonce", handlers.WalletNonce)
			r.Post("/wallet/link", handlers.LinkWallet)

			r.Post("/jobs/parse", handlers.ParseJob)
			r.Post("/jobs/optimize", handlers.OptimizeJob)
			r.Get("/jobs", handlers.ListJobs)
			r.Get("/jobs/{id}", handlers.GetJob)
			r.Get("/placements", handlers.ListPlacements)
			r.Patch("/placements/{id}/status", handlers.UpdatePlacementStatus)
			r.Post("/predict", handlers.Predict)

			r.With(middleware.RequireType(student, company)).Get("/interviews", handlers.ListInterviews)
			r.With(middleware.RequireType(student, college)).Get("/certificates", handlers.ListCertificates)
			r.With(middleware.RequireType(company, college)).Get("/analytics/heatmap", handlers.Heatmap)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireType(student))
				r.Get("/students/me", handlers.ShowStudent)
				r.Put("/students/me", handlers.UpdateStudent)
				r.Post("/jobs/{id}/apply", handlers.Apply)
				r.Get("/applications", handlers.StudentApplications)
				r.Post("/resume/build", handlers.BuildResume)
				r.Post("/resume/gap", handlers.ResumeGap)
				r.Post("/certificates/share-link", handlers.GenerateShareLink)

				r.Route("/practice/sessions", func(r chi.Router) {
					r.Post("/", handlers.StartPractice)
					r.Get("/", handlers.ListPractice)
					r.Get("/{id}", handlers.GetPractice)
					r.Post("/{id}/frames", handlers.PostFrame)
					r.Post("/{id}/answers", handlers.PostAnswer)
					r.Post("/{id}/finish", handlers.FinishPractice)
					r.Get("/{id}/report", handlers.PracticeReport)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireType(college))
				r.Get("/colleges/me", handlers.ShowCollege)
				r.Put("/colleges/me", handlers.UpdateCollege)
				r.Get("/colleges/me/students", handlers.CollegeStudents)
				r.Post("/colleges/me/students/bulk-upload", handlers.BulkUploadStudents)
				r.Get("/analytics/dashboard", handlers.Dashboard)
				r.Get("/analytics/forecast", handlers.Forecast)
				r.Post("/nep/assessments", handlers.CreateNEPAssessment)
				r.Get("/nep/assessments", handlers.NEPAssessments)
				r.Post("/predict/train", handlers.TrainPredictor)
				r.Post("/certificates", handlers.IssueCertificate)
				r.Post("/certificates/{id}/transaction", handlers.RecordTransaction)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireType(company))
				r.Get("/companies/me", handlers.ShowCompany)
				r.Put("/companies/me", handlers.UpdateCompany)
				r.Post("/jobs", handlers.CreateJob)
				r.Patch("/jobs/{id}", handlers.UpdateJob)
				r.Get("/jobs/{id}/applications", handlers.JobApplications)
				r.Patch("/applications/{id}/status", handlers.UpdateApplicationStatus)
				r.Post("/interviews", handlers.CreateInterview)
				r.Patch("/interviews/{id}", handlers.UpdateInterview)
				r.Post("/analytics/talent-search", handlers.TalentSearch)
			})
		})
	})
	return r
}
