package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/apperr"
	"github.com/maanvikp20/promosite/internal/models"
	"github.com/maanvikp20/promosite/internal/repository"
	"github.com/maanvikp20/promosite/internal/validation"
)

type StudentService struct {
	students *repository.StudentRepo
	log      *zap.Logger
}

func NewStudentService(students *repository.StudentRepo, log *zap.Logger) *StudentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &StudentService{students: students, log: log}
}

func (s *StudentService) List(ctx context.Context) ([]models.Record, error) {
	students, err := s.students.FindAll(ctx)
	if err != nil {
		return nil, internal("Server failed to read all students", err)
	}
	return students, nil
}

func (s *StudentService) Get(ctx context.Context, id string) (models.Record, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, internal("Server failed to read students", err)
	}
	if student == nil {
		return nil, apperr.NotFound("Student not found")
	}
	return student, nil
}

// Create stores the body as a new student. Extra fields are kept as sent.
func (s *StudentService) Create(ctx context.Context, body map[string]any) (models.Record, error) {
	if err := validation.StudentCreate.Validate(body); err != nil {
		return nil, err
	}
	student := models.Record(body).Clone()
	id := assignID(student)

	if err := s.students.Create(ctx, student); err != nil {
		return nil, internal("Server cannot add student", err)
	}
	s.log.Info("student created", zap.String("id", id))
	return student, nil
}

// Update overwrites only the fields present in body.
func (s *StudentService) Update(ctx context.Context, id string, body map[string]any) (models.Record, error) {
	if err := validation.StudentUpdate.Validate(body); err != nil {
		return nil, err
	}
	if err := checkIDUnchanged(id, body); err != nil {
		return nil, err
	}
	student, err := s.students.Update(ctx, id, func(rec models.Record) error {
		rec.Merge(body)
		return nil
	})
	if err != nil {
		return nil, internal("Server failed to update student", err)
	}
	s.log.Info("student updated", zap.String("id", id))
	return student, nil
}

func (s *StudentService) Delete(ctx context.Context, id string) (models.Record, error) {
	student, err := s.students.Delete(ctx, id)
	if err != nil {
		return nil, internal("Server failed to delete student", err)
	}
	s.log.Info("student deleted", zap.String("id", id))
	return student, nil
}

func (s *StudentService) Count(ctx context.Context) (int, error) {
	n, err := s.students.Count(ctx)
	if err != nil {
		return 0, internal("Server failed to read students", err)
	}
	return n, nil
}
