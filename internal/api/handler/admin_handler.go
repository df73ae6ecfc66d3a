package handler

import (
	"encoding/json"
	"net/http"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/api/middleware"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/app/service"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/forgot-password", h.forgotPassword)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Authenticator)
		admin.Use(middleware.AdminOnly)
		admin.Post("/create", h.create)
		admin.Get("/all", h.listAll)
		admin.Delete("/delete/{id}", h.deleteByID)
		admin.Put("/update-password", h.updatePassword)
	})
}

func (h *AdminHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.adminService.Login(r.Context(), req)
	if err != nil {
		respondError(w, err, "Failed to log in")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	admin, err := h.adminService.Create(r.Context(), req)
	if err != nil {
		respondError(w, err, "Failed to create admin")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, admin)
}

func (h *AdminHandler) listAll(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminService.ListAll(r.Context())
	if err != nil {
		respondError(w, err, "Failed to retrieve admins")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, admins)
}

func (h *AdminHandler) deleteByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.DeleteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "Failed to delete admin")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.adminService.UpdatePassword(r.Context(), req)
	if err != nil {
		respondError(w, err, "Failed to update password")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req service.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.adminService.ResetPassword(r.Context(), req)
	if err != nil {
		respondError(w, err, "Failed to reset password")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
