package handler

import (
	"encoding/json"
	"net/http"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/api/middleware"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/app/service"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/all-questions", h.listAll)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Authenticator)
		admin.Use(middleware.AdminOnly)
		admin.Post("/add-question", h.add)
		admin.Put("/update-question/{id}", h.update)
		admin.Delete("/delete-question/{id}", h.deleteByID)
	})
}

func (h *QuestionHandler) add(w http.ResponseWriter, r *http.Request) {
	var req service.AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	question, err := h.questionService.Add(r.Context(), req)
	if err != nil {
		respondError(w, err, "Failed to add question")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.questionService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err, "Failed to update question")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *QuestionHandler) deleteByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.questionService.DeleteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "Failed to delete question")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *QuestionHandler) listAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := h.questionService.List(r.Context(), query.Get("topics"), query.Get("vehicleType"))
	if err != nil {
		respondError(w, err, "Internal Server Error")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
