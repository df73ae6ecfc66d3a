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

const topicsCacheKey = "topics:all"

type TopicService struct {
	topicRepo    repository.TopicRepository
	questionRepo repository.QuestionRepository
	cache        *cache.Cache
}

func NewTopicService(topicRepo repository.TopicRepository, questionRepo repository.QuestionRepository, cache *cache.Cache) *TopicService {
	return &TopicService{topicRepo: topicRepo, questionRepo: questionRepo, cache: cache}
}

type CreateTopicRequest struct {
	Topic        string   `json:"topic"`
	VehicleTypes []string `json:"vehicleType"`
}

type UpdateTopicRequest struct {
	Topic        *string   `json:"topic,omitempty"`
	VehicleTypes *[]string `json:"vehicleType,omitempty"`
}

type CreateTopicResponse struct {
	Message string       `json:"message"`
	Result  *model.Topic `json:"result,omitempty"`
	// UpdatedVehicleTypes is set instead of Result when an existing topic
	// absorbed new vehicle types.
	UpdatedVehicleTypes []string `json:"updatedVehicleTypes,omitempty"`
}

type UpdateTopicResponse struct {
	Message      string       `json:"message"`
	UpdatedTopic *model.Topic `json:"updatedTopic"`
}

type DeleteTopicResponse struct {
	Message          string `json:"message"`
	DeletedQuestions int64  `json:"deletedQuestions"`
	DeletedTopic     int64  `json:"deletedTopic"`
}

// CreateOrMerge inserts a new topic, or unions the supplied vehicle types
// into an existing topic of the same name. A merge that adds nothing is a
// conflict, so repeating the same create is not silently idempotent.
func (s *TopicService) CreateOrMerge(ctx context.Context, req CreateTopicRequest) (*CreateTopicResponse, error) {
	if req.Topic == "" || len(req.VehicleTypes) == 0 {
		return nil, common.NewError(common.ErrBadRequest, "Vehicle type and topic are required")
	}

	existing, err := s.topicRepo.FindByName(ctx, req.Topic)
	switch {
	case err == nil:
		if !existing.MergeVehicleTypes(req.VehicleTypes) {
			return nil, common.NewError(common.ErrConflict, "This topic already exists with the selected vehicle types")
		}
		if err := s.topicRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to merge topic vehicle types: %w", err)
		}
		s.cache.Invalidate(ctx, topicsCacheKey)
		return &CreateTopicResponse{
			Message:             "Topic updated successfully",
			UpdatedVehicleTypes: existing.VehicleTypes,
		}, nil

	case errors.Is(err, common.ErrNotFound):
		topic := &model.Topic{
			ID:    uuid.NewString(),
			Topic: req.Topic,
			Slug:  slug.Make(req.Topic),
		}
		topic.MergeVehicleTypes(req.VehicleTypes) // dedupes the incoming set
		if err := s.topicRepo.Create(ctx, topic); err != nil {
			return nil, fmt.Errorf("failed to create topic: %w", err)
		}
		s.cache.Invalidate(ctx, topicsCacheKey)
		return &CreateTopicResponse{Message: "Topic created successfully", Result: topic}, nil

	default:
		return nil, fmt.Errorf("failed to find topic: %w", err)
	}
}

// ListByVehicleType returns topics whose vehicle type set contains the exact
// value.
func (s *TopicService) ListByVehicleType(ctx context.Context, vehicleType string) ([]model.Topic, error) {
	topics, err := s.topicRepo.ListByVehicleType(ctx, vehicleType, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

// ListAll returns every topic, or those matching the vehicle type filter
// case-insensitively when one is given.
func (s *TopicService) ListAll(ctx context.Context, vehicleType string) ([]model.Topic, error) {
	if vehicleType != "" {
		topics, err := s.topicRepo.ListByVehicleType(ctx, vehicleType, true)
		if err != nil {
			return nil, fmt.Errorf("failed to list topics: %w", err)
		}
		return topics, nil
	}

	var cached []model.Topic
	if s.cache.Get(ctx, topicsCacheKey, &cached) {
		return cached, nil
	}
	topics, err := s.topicRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	s.cache.Set(ctx, topicsCacheKey, topics)
	return topics, nil
}

func (s *TopicService) Update(ctx context.Context, id string, req UpdateTopicRequest) (*UpdateTopicResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.NewError(common.ErrBadRequest, "Invalid topic ID")
	}

	topic, err := s.topicRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Topic not found")
		}
		return nil, fmt.Errorf("failed to find topic: %w", err)
	}

	if req.Topic != nil && *req.Topic != "" {
		topic.Topic = *req.Topic
		topic.Slug = slug.Make(*req.Topic)
	}
	if req.VehicleTypes != nil {
		topic.VehicleTypes = nil
		topic.MergeVehicleTypes(*req.VehicleTypes)
	}

	if err := s.topicRepo.Update(ctx, topic); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewError(common.ErrConflict, "This topic already exists with the selected vehicle types")
		}
		return nil, fmt.Errorf("failed to update topic: %w", err)
	}

	s.cache.Invalidate(ctx, topicsCacheKey)
	return &UpdateTopicResponse{Message: "Topic updated successfully", UpdatedTopic: topic}, nil
}

// DeleteCascade removes the topic and every question referencing its name.
// The two deletes are sequential store operations, not a transaction; a
// concurrent re-create of the same topic name can interleave, which the
// service tolerates.
func (s *TopicService) DeleteCascade(ctx context.Context, id string) (*DeleteTopicResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.NewError(common.ErrBadRequest, "Invalid topic ID")
	}

	topic, err := s.topicRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Topic not found")
		}
		return nil, fmt.Errorf("failed to find topic: %w", err)
	}

	deletedQuestions, err := s.questionRepo.DeleteByTopic(ctx, topic.Topic)
	if err != nil {
		return nil, fmt.Errorf("failed to delete questions for topic: %w", err)
	}
	deletedTopic, err := s.topicRepo.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete topic: %w", err)
	}

	s.cache.Invalidate(ctx, topicsCacheKey, questionsCacheKey)
	return &DeleteTopicResponse{
		Message:          "Topic and related questions deleted successfully",
		DeletedQuestions: deletedQuestions,
		DeletedTopic:     deletedTopic,
	}, nil
}
