package handler

import (
	"log/slog"
	"net/http"

	"mindcheck/internal/model"
	"mindcheck/internal/service"
)

// SurveyHandler handles the public survey endpoints
type SurveyHandler struct {
	questionSvc *service.QuestionService
	surveySvc   *service.SurveyService
	logger      *slog.Logger
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(questionSvc *service.QuestionService, surveySvc *service.SurveyService, logger *slog.Logger) *SurveyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SurveyHandler{
		questionSvc: questionSvc,
		surveySvc:   surveySvc,
		logger:      logger,
	}
}

// Questions handles GET /survey/questions
//
// @Summary List survey questions
// @Tags survey
// @Produce json
// @Success 200 {array} model.PublicQuestion
// @Router /survey/questions [get]
func (h *SurveyHandler) Questions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionSvc.PublicQuestions(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Submit handles POST /survey
//
// @Summary Score and store a survey
// @Tags survey
// @Accept json
// @Produce json
// @Param body body model.SubmitRequest true "answers"
// @Success 201 {object} model.SubmitResponse
// @Router /survey [post]
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.surveySvc.Submit(r.Context(), req.Answers)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Check handles POST /survey/check
//
// @Summary Score a survey without storing it
// @Tags survey
// @Accept json
// @Produce json
// @Param body body model.SubmitRequest true "answers"
// @Success 200 {object} model.CheckResponse
// @Router /survey/check [post]
func (h *SurveyHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.surveySvc.Check(r.Context(), req.Answers)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
