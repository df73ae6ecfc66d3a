package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/model"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/repository"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/platform/cache"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const vehiclesCacheKey = "vehicles:all"

type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	cache       *cache.Cache
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, cache *cache.Cache) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo, cache: cache}
}

type CreateVehicleRequest struct {
	Vehicle  string `json:"vehicle"`
	ImageURL string `json:"imageUrl"`
}

type UpdateVehicleRequest struct {
	Vehicle  *string `json:"vehicle,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type CreateVehicleResponse struct {
	Message    string             `json:"message"`
	NewVehicle *model.VehicleType `json:"newVehicle"`
}

type UpdateVehicleResponse struct {
	Message string             `json:"message"`
	Result  *model.VehicleType `json:"result"`
}

func (s *VehicleService) Create(ctx context.Context, req CreateVehicleRequest) (*CreateVehicleResponse, error) {
	if req.Vehicle == "" {
		return nil, common.NewError(common.ErrBadRequest, "Vehicle name is required")
	}

	_, err := s.vehicleRepo.FindByName(ctx, req.Vehicle)
	if err == nil {
		return nil, common.NewError(common.ErrConflict, "Vehicle already exists")
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing vehicle: %w", err)
	}

	vehicle := &model.VehicleType{
		ID:       uuid.NewString(),
		Name:     req.Vehicle,
		Slug:     slug.Make(req.Vehicle),
		ImageURL: req.ImageURL,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewError(common.ErrConflict, "Vehicle already exists")
		}
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.cache.Invalidate(ctx, vehiclesCacheKey)
	return &CreateVehicleResponse{Message: "Vehicle created successfully", NewVehicle: vehicle}, nil
}

func (s *VehicleService) Update(ctx context.Context, id string, req UpdateVehicleRequest) (*UpdateVehicleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.NewError(common.ErrBadRequest, "Invalid vehicle ID")
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Vehicle not found")
		}
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}

	changed := false
	if req.Vehicle != nil && *req.Vehicle != "" && *req.Vehicle != vehicle.Name {
		vehicle.Name = *req.Vehicle
		vehicle.Slug = slug.Make(*req.Vehicle)
		changed = true
	}
	if req.ImageURL != nil && *req.ImageURL != "" && *req.ImageURL != vehicle.ImageURL {
		vehicle.ImageURL = *req.ImageURL
		changed = true
	}
	if !changed {
		return nil, common.NewError(common.ErrBadRequest, "No changes made to the vehicle")
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewError(common.ErrConflict, "Vehicle already exists")
		}
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	s.cache.Invalidate(ctx, vehiclesCacheKey)
	return &UpdateVehicleResponse{Message: "Vehicle updated successfully", Result: vehicle}, nil
}

func (s *VehicleService) DeleteByID(ctx context.Context, id string) (*DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.NewError(common.ErrBadRequest, "Invalid vehicle ID")
	}
	deleted, err := s.vehicleRepo.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete vehicle: %w", err)
	}
	s.cache.Invalidate(ctx, vehiclesCacheKey)
	return &DeleteResult{DeletedCount: deleted}, nil
}

func (s *VehicleService) ListAll(ctx context.Context) ([]model.VehicleType, error) {
	var cached []model.VehicleType
	if s.cache.Get(ctx, vehiclesCacheKey, &cached) {
		return cached, nil
	}

	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	s.cache.Set(ctx, vehiclesCacheKey, vehicles)
	return vehicles, nil
}
