package handler

import (
	"encoding/json"
	"net/http"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/api/middleware"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/app/service"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/go-chi/chi/v5"
)

type TopicHandler struct {
	topicService *service.TopicService
}

func NewTopicHandler(topicService *service.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

func (h *TopicHandler) RegisterRoutes(r chi.Router) {
	r.Get("/vehicle-type/{vehicleType}", h.listByVehicleType)
	r.Get("/all-topics", h.listAll)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Authenticator)
		admin.Use(middleware.AdminOnly)
		admin.Post("/create", h.create)
		admin.Patch("/update-topic/{id}", h.update)
		admin.Delete("/delete-topic/{id}", h.deleteCascade)
	})
}

func (h *TopicHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.topicService.CreateOrMerge(r.Context(), req)
	if err != nil {
		respondError(w, err, "Failed to create or update topic")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *TopicHandler) listByVehicleType(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topicService.ListByVehicleType(r.Context(), chi.URLParam(r, "vehicleType"))
	if err != nil {
		respondError(w, err, "Failed to retrieve topics")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, topics)
}

func (h *TopicHandler) listAll(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topicService.ListAll(r.Context(), r.URL.Query().Get("vehicleType"))
	if err != nil {
		respondError(w, err, "Failed to retrieve topics")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, topics)
}

func (h *TopicHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.topicService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err, "Failed to update topic")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *TopicHandler) deleteCascade(w http.ResponseWriter, r *http.Request) {
	resp, err := h.topicService.DeleteCascade(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "Failed to delete topic and related questions")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
