package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/model"
	"github.com/google/uuid"
)

func TestAddQuestion(t *testing.T) {
	repo := &fakeQuestionRepo{}
	svc := NewQuestionService(repo, nil)
	ctx := context.Background()

	t.Run("one option is rejected", func(t *testing.T) {
		_, err := svc.Add(ctx, AddQuestionRequest{Question: "?", Option1: "yes"})
		if !errors.Is(err, common.ErrBadRequest) {
			t.Fatalf("want ErrBadRequest, got %v", err)
		}
		if err.Error() != "At least two options are required" {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("two options suffice", func(t *testing.T) {
		q, err := svc.Add(ctx, AddQuestionRequest{
			Question:      "Right of way?",
			Topic:         model.StringList{"signs"},
			CorrectOption: "yes",
			VehicleType:   "car",
			Option1:       "yes",
			Option2:       "no",
		})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(q.Options, []string{"yes", "no"}) {
			t.Errorf("options = %v", q.Options)
		}
		if q.Answer != "yes" {
			t.Errorf("answer = %q", q.Answer)
		}
	})

	t.Run("gaps in option fields keep order", func(t *testing.T) {
		q, err := svc.Add(ctx, AddQuestionRequest{
			Question: "?",
			Option1:  "a",
			Option3:  "c",
			Option4:  "d",
		})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(q.Options, []string{"a", "c", "d"}) {
			t.Errorf("options = %v, want [a c d]", q.Options)
		}
	})
}

func TestUpdateQuestion(t *testing.T) {
	repo := &fakeQuestionRepo{}
	svc := NewQuestionService(repo, nil)
	ctx := context.Background()

	created, err := svc.Add(ctx, AddQuestionRequest{
		Question:      "Right of way?",
		Topic:         model.StringList{"signs"},
		CorrectOption: "yes",
		VehicleType:   "car",
		ImageURL:      "http://img/q.png",
		Option1:       "yes",
		Option2:       "no",
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.Update(ctx, "nope", UpdateQuestionRequest{})
		if !errors.Is(err, common.ErrBadRequest) {
			t.Fatalf("want ErrBadRequest, got %v", err)
		}
		if err.Error() != "Invalid question ID" {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("absent id", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.NewString(), UpdateQuestionRequest{})
		if !errors.Is(err, common.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("replaces named fields wholesale", func(t *testing.T) {
		resp, err := svc.Update(ctx, created.ID, UpdateQuestionRequest{
			Question:    "Who yields?",
			Options:     []string{"me", "them", "nobody"},
			Answer:      "them",
			Topics:      model.StringList{"priority"},
			VehicleType: "truck",
			// Image deliberately empty: wholesale replacement clears it.
		})
		if err != nil {
			t.Fatal(err)
		}
		got := resp.Result
		if got.Question != "Who yields?" || got.Answer != "them" || got.VehicleType != "truck" {
			t.Errorf("unexpected result: %+v", got)
		}
		if got.ImageURL != "" {
			t.Errorf("image should be replaced, got %q", got.ImageURL)
		}
		if !reflect.DeepEqual([]string(got.Topics), []string{"priority"}) {
			t.Errorf("topics = %v", got.Topics)
		}
	})
}

func TestDeleteQuestion(t *testing.T) {
	repo := &fakeQuestionRepo{}
	svc := NewQuestionService(repo, nil)
	ctx := context.Background()

	created, err := svc.Add(ctx, AddQuestionRequest{Question: "?", Option1: "a", Option2: "b"})
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.DeleteByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want 1", result.DeletedCount)
	}

	result, err = svc.DeleteByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.DeletedCount != 0 {
		t.Errorf("DeletedCount = %d, want 0", result.DeletedCount)
	}
}

func TestListQuestions(t *testing.T) {
	repo := &fakeQuestionRepo{}
	svc := NewQuestionService(repo, nil)
	ctx := context.Background()

	add := func(vehicleType string, topics ...string) {
		t.Helper()
		_, err := svc.Add(ctx, AddQuestionRequest{
			Question:    "?",
			Topic:       model.StringList(topics),
			VehicleType: vehicleType,
			Option1:     "a",
			Option2:     "b",
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	add("Car", "signs")
	add("car", "lights")
	add("truck", "signs", "lights")
	add("bus", "parking")

	cases := []struct {
		name        string
		topics      string
		vehicleType string
		want        int
	}{
		{name: "no filters returns all", want: 4},
		{name: "topics match any", topics: "signs,lights", want: 3},
		{name: "vehicle type is case-insensitive", vehicleType: "CAR", want: 2},
		{name: "filters combine with AND", topics: "signs,lights", vehicleType: "car", want: 2},
		{name: "unknown topic matches nothing", topics: "ghost", want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.List(ctx, tc.topics, tc.vehicleType)
			if err != nil {
				t.Fatal(err)
			}
			if resp.Message != "Query received" {
				t.Errorf("message = %q", resp.Message)
			}
			if len(resp.Questions) != tc.want {
				t.Errorf("got %d questions, want %d", len(resp.Questions), tc.want)
			}
		})
	}
}
