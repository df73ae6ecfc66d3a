package service

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common/security"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/model"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/repository"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/platform/config"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
	os.Exit(m.Run())
}

// In-memory repositories backing the service tests.

type fakeAdminRepo struct {
	admins []*model.Admin
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	for _, a := range r.admins {
		if a.Username == admin.Username {
			return common.ErrConflict
		}
	}
	cp := *admin
	r.admins = append(r.admins, &cp)
	return nil
}

func (r *fakeAdminRepo) FindByUsername(_ context.Context, username string) (*model.Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeAdminRepo) List(_ context.Context) ([]model.Admin, error) {
	out := []model.Admin{}
	for _, a := range r.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAdminRepo) DeleteByID(_ context.Context, id string) (int64, error) {
	for i, a := range r.admins {
		if a.ID == id {
			r.admins = append(r.admins[:i], r.admins[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeAdminRepo) UpdatePassword(_ context.Context, username, hashedPassword string) (int64, error) {
	for _, a := range r.admins {
		if a.Username == username {
			a.HashedPassword = hashedPassword
			return 1, nil
		}
	}
	return 0, nil
}

type fakeVehicleRepo struct {
	vehicles []*model.VehicleType
}

func (r *fakeVehicleRepo) Create(_ context.Context, v *model.VehicleType) error {
	for _, existing := range r.vehicles {
		if existing.Name == v.Name {
			return common.ErrConflict
		}
	}
	cp := *v
	r.vehicles = append(r.vehicles, &cp)
	return nil
}

func (r *fakeVehicleRepo) FindByID(_ context.Context, id string) (*model.VehicleType, error) {
	for _, v := range r.vehicles {
		if v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeVehicleRepo) FindByName(_ context.Context, name string) (*model.VehicleType, error) {
	for _, v := range r.vehicles {
		if v.Name == name {
			cp := *v
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeVehicleRepo) Update(_ context.Context, v *model.VehicleType) error {
	for _, existing := range r.vehicles {
		if existing.Name == v.Name && existing.ID != v.ID {
			return common.ErrConflict
		}
	}
	for i, existing := range r.vehicles {
		if existing.ID == v.ID {
			cp := *v
			r.vehicles[i] = &cp
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakeVehicleRepo) DeleteByID(_ context.Context, id string) (int64, error) {
	for i, v := range r.vehicles {
		if v.ID == id {
			r.vehicles = append(r.vehicles[:i], r.vehicles[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeVehicleRepo) List(_ context.Context) ([]model.VehicleType, error) {
	out := []model.VehicleType{}
	for _, v := range r.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

type fakeTopicRepo struct {
	topics []*model.Topic
}

func (r *fakeTopicRepo) Create(_ context.Context, t *model.Topic) error {
	for _, existing := range r.topics {
		if existing.Topic == t.Topic {
			return common.ErrConflict
		}
	}
	cp := *t
	cp.VehicleTypes = append([]string(nil), t.VehicleTypes...)
	r.topics = append(r.topics, &cp)
	return nil
}

func (r *fakeTopicRepo) FindByID(_ context.Context, id string) (*model.Topic, error) {
	for _, t := range r.topics {
		if t.ID == id {
			return copyTopic(t), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeTopicRepo) FindByName(_ context.Context, name string) (*model.Topic, error) {
	for _, t := range r.topics {
		if t.Topic == name {
			return copyTopic(t), nil
		}
	}
	return nil, common.ErrNotFound
}

func copyTopic(t *model.Topic) *model.Topic {
	cp := *t
	cp.VehicleTypes = append([]string(nil), t.VehicleTypes...)
	return &cp
}

func (r *fakeTopicRepo) Update(_ context.Context, t *model.Topic) error {
	for i, existing := range r.topics {
		if existing.ID == t.ID {
			r.topics[i] = copyTopic(t)
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakeTopicRepo) DeleteByID(_ context.Context, id string) (int64, error) {
	for i, t := range r.topics {
		if t.ID == id {
			r.topics = append(r.topics[:i], r.topics[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeTopicRepo) List(_ context.Context) ([]model.Topic, error) {
	out := []model.Topic{}
	for _, t := range r.topics {
		out = append(out, *copyTopic(t))
	}
	return out, nil
}

func (r *fakeTopicRepo) ListByVehicleType(_ context.Context, vehicleType string, foldCase bool) ([]model.Topic, error) {
	out := []model.Topic{}
	for _, t := range r.topics {
		for _, v := range t.VehicleTypes {
			if v == vehicleType || (foldCase && strings.EqualFold(v, vehicleType)) {
				out = append(out, *copyTopic(t))
				break
			}
		}
	}
	return out, nil
}

type fakeQuestionRepo struct {
	questions []*model.Question
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *model.Question) error {
	cp := *q
	r.questions = append(r.questions, &cp)
	return nil
}

func (r *fakeQuestionRepo) FindByID(_ context.Context, id string) (*model.Question, error) {
	for _, q := range r.questions {
		if q.ID == id {
			cp := *q
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *model.Question) error {
	for i, existing := range r.questions {
		if existing.ID == q.ID {
			cp := *q
			r.questions[i] = &cp
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakeQuestionRepo) DeleteByID(_ context.Context, id string) (int64, error) {
	for i, q := range r.questions {
		if q.ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeQuestionRepo) DeleteByTopic(_ context.Context, topicName string) (int64, error) {
	var kept []*model.Question
	var deleted int64
	for _, q := range r.questions {
		match := false
		for _, topic := range q.Topics {
			if topic == topicName {
				match = true
				break
			}
		}
		if match {
			deleted++
		} else {
			kept = append(kept, q)
		}
	}
	r.questions = kept
	return deleted, nil
}

func (r *fakeQuestionRepo) List(_ context.Context, filter repository.QuestionFilter) ([]model.Question, error) {
	out := []model.Question{}
	for _, q := range r.questions {
		if len(filter.Topics) > 0 && !intersects(q.Topics, filter.Topics) {
			continue
		}
		if filter.VehicleType != "" &&
			!strings.Contains(strings.ToLower(q.VehicleType), strings.ToLower(filter.VehicleType)) {
			continue
		}
		out = append(out, *q)
	}
	return out, nil
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
