package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/model"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/repository"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/platform/cache"
	"github.com/google/uuid"
)

const questionsCacheKey = "questions:all"

type QuestionService struct {
	questionRepo repository.QuestionRepository
	cache        *cache.Cache
}

func NewQuestionService(questionRepo repository.QuestionRepository, cache *cache.Cache) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, cache: cache}
}

type AddQuestionRequest struct {
	Question      string           `json:"question"`
	Topic         model.StringList `json:"topic"`
	ImageURL      string           `json:"imageUrl"`
	CorrectOption string           `json:"correctOption"`
	VehicleType   string           `json:"vehicleType"`
	Option1       string           `json:"option1"`
	Option2       string           `json:"option2"`
	Option3       string           `json:"option3"`
	Option4       string           `json:"option4"`
}

// UpdateQuestionRequest replaces the named fields wholesale, not merge.
type UpdateQuestionRequest struct {
	Question    string           `json:"question"`
	Options     []string         `json:"options"`
	Answer      string           `json:"answer"`
	Topics      model.StringList `json:"topics"`
	VehicleType string           `json:"vehicleType"`
	Image       string           `json:"image"`
}

type UpdateQuestionResponse struct {
	Message string          `json:"message"`
	Result  *model.Question `json:"result"`
}

type QuestionListResponse struct {
	Message   string           `json:"message"`
	Questions []model.Question `json:"questions"`
}

func (s *QuestionService) Add(ctx context.Context, req AddQuestionRequest) (*model.Question, error) {
	options := []string{}
	for _, opt := range []string{req.Option1, req.Option2, req.Option3, req.Option4} {
		if opt != "" {
			options = append(options, opt)
		}
	}
	if len(options) < 2 {
		return nil, common.NewError(common.ErrBadRequest, "At least two options are required")
	}

	question := &model.Question{
		ID:          uuid.NewString(),
		Question:    req.Question,
		Options:     options,
		Answer:      req.CorrectOption,
		Topics:      req.Topic,
		VehicleType: req.VehicleType,
		ImageURL:    req.ImageURL,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to add question: %w", err)
	}

	s.cache.Invalidate(ctx, questionsCacheKey)
	return question, nil
}

func (s *QuestionService) Update(ctx context.Context, id string, req UpdateQuestionRequest) (*UpdateQuestionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.NewError(common.ErrBadRequest, "Invalid question ID")
	}

	question := &model.Question{
		ID:          id,
		Question:    req.Question,
		Options:     req.Options,
		Answer:      req.Answer,
		Topics:      req.Topics,
		VehicleType: req.VehicleType,
		ImageURL:    req.Image,
	}
	if err := s.questionRepo.Update(ctx, question); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Question not found")
		}
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	updated, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Updated question not found")
		}
		return nil, fmt.Errorf("failed to fetch updated question: %w", err)
	}

	s.cache.Invalidate(ctx, questionsCacheKey)
	return &UpdateQuestionResponse{Message: "Question updated successfully", Result: updated}, nil
}

func (s *QuestionService) DeleteByID(ctx context.Context, id string) (*DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.NewError(common.ErrBadRequest, "Invalid question ID")
	}
	deleted, err := s.questionRepo.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete question: %w", err)
	}
	s.cache.Invalidate(ctx, questionsCacheKey)
	return &DeleteResult{DeletedCount: deleted}, nil
}

// List filters questions by a comma-separated topics list (match any) and a
// case-insensitive vehicle type match; both are optional.
func (s *QuestionService) List(ctx context.Context, topicsParam, vehicleType string) (*QuestionListResponse, error) {
	filter := repository.QuestionFilter{VehicleType: vehicleType}
	if topicsParam != "" {
		filter.Topics = strings.Split(topicsParam, ",")
	}

	unfiltered := len(filter.Topics) == 0 && filter.VehicleType == ""
	if unfiltered {
		var cached []model.Question
		if s.cache.Get(ctx, questionsCacheKey, &cached) {
			return &QuestionListResponse{Message: "Query received", Questions: cached}, nil
		}
	}

	questions, err := s.questionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if unfiltered {
		s.cache.Set(ctx, questionsCacheKey, questions)
	}
	return &QuestionListResponse{Message: "Query received", Questions: questions}, nil
}
