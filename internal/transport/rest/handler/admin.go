package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"mindcheck/internal/model"
	"mindcheck/internal/service"
	"mindcheck/internal/transport/rest/middleware"
)

// AdminHandler handles admin account and console endpoints
type AdminHandler struct {
	adminSvc    *service.AdminService
	surveySvc   *service.SurveyService
	questionSvc *service.QuestionService
	logger      *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminSvc *service.AdminService, surveySvc *service.SurveyService, questionSvc *service.QuestionService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		adminSvc:    adminSvc,
		surveySvc:   surveySvc,
		questionSvc: questionSvc,
		logger:      logger,
	}
}

// Signup handles POST /admin/signup
//
// @Summary Request an admin account
// @Tags admin
// @Accept json
// @Produce json
// @Param body body model.CredentialsRequest true "credentials"
// @Success 201 {object} model.MessageResponse
// @Router /admin/signup [post]
func (h *AdminHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.adminSvc.Register(r.Context(), req.Email, req.Password); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.MessageResponse{Message: "Signup successful, pending approval"})
}

// Login handles POST /admin/login
//
// @Summary Sign in as an approved admin
// @Tags admin
// @Accept json
// @Produce json
// @Param body body model.CredentialsRequest true "credentials"
// @Success 200 {object} model.LoginResponse
// @Router /admin/login [post]
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.adminSvc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.LoginResponse{Token: token})
}

// List handles GET /admin/list
//
// @Summary List admin accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.AdminSummary
// @Router /admin/list [get]
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if admins == nil {
		admins = []model.AdminSummary{}
	}
	writeJSON(w, http.StatusOK, admins)
}

// Review handles POST /admin/review
//
// @Summary Approve or reject an admin account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.ReviewRequest true "decision"
// @Success 200 {object} model.ReviewResponse
// @Router /admin/review [post]
func (h *AdminHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req model.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.AdminID == "" || req.Approve == nil {
		writeServiceError(w, r, h.logger, service.ErrInvalidReview)
		return
	}

	status, err := h.adminSvc.Review(r.Context(), middleware.GetAdmin(r.Context()), req.AdminID, *req.Approve)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ReviewResponse{Status: status})
}

// Entries handles GET /admin/entries
//
// @Summary List stored survey entries, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.SurveyEntry
// @Router /admin/entries [get]
func (h *AdminHandler) Entries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.surveySvc.Entries(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if entries == nil {
		entries = []*model.SurveyEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Entry handles GET /admin/entries/{id}
//
// @Summary Show one entry with its answers resolved to question text
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "entry id"
// @Success 200 {object} model.EntryDetail
// @Router /admin/entries/{id} [get]
func (h *AdminHandler) Entry(w http.ResponseWriter, r *http.Request) {
	detail, err := h.surveySvc.Entry(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Questions handles GET /admin/questions
//
// @Summary List questions including option weights
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Question
// @Router /admin/questions [get]
func (h *AdminHandler) Questions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionSvc.Questions(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Stats handles GET /admin/stats
//
// @Summary Count stored entries per result
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.SurveyStats
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.surveySvc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
