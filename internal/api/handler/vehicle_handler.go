package handler

import (
	"encoding/json"
	"net/http"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/api/middleware"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/app/service"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/go-chi/chi/v5"
)

type VehicleHandler struct {
	vehicleService *service.VehicleService
}

func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/all", h.listAll)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Authenticator)
		admin.Use(middleware.AdminOnly)
		admin.Post("/create", h.create)
		admin.Put("/update/{id}", h.update)
		admin.Delete("/delete/{id}", h.deleteByID)
	})
}

func (h *VehicleHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.vehicleService.Create(r.Context(), req)
	if err != nil {
		respondError(w, err, "Failed to create vehicle")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *VehicleHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.vehicleService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err, "Failed to update vehicle")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *VehicleHandler) deleteByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.vehicleService.DeleteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "Failed to delete vehicle")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *VehicleHandler) listAll(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicleService.ListAll(r.Context())
	if err != nil {
		respondError(w, err, "Failed to get all vehicles")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, vehicles)
}
