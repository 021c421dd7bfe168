package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
)

type stubCustomersRepo struct {
	byPhone map[string]*models.Customer
}

func newStubCustomersRepo() *stubCustomersRepo {
	return &stubCustomersRepo{byPhone: make(map[string]*models.Customer)}
}

func (s *stubCustomersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubCustomersRepo) UpsertByPhone(ctx context.Context, customer *models.Customer) (enums.MutationOutcome, error) {
	existing, ok := s.byPhone[customer.Phone]
	if ok {
		customer.ID = existing.ID
		s.byPhone[customer.Phone] = customer
		return enums.MutationOutcomeUpdated, nil
	}
	customer.ID = uuid.New()
	s.byPhone[customer.Phone] = customer
	return enums.MutationOutcomeInserted, nil
}

func (s *stubCustomersRepo) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	customer, ok := s.byPhone[phone]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func TestUpsertIsIdempotentByPhone(t *testing.T) {
	repo := newStubCustomersRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	input := UpsertInput{Phone: "+8801700000000", Name: "Rahim", Address: "Dhaka"}

	first, err := svc.Upsert(context.Background(), input)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.Outcome != enums.MutationOutcomeInserted {
		t.Fatalf("expected inserted, got %s", first.Outcome)
	}

	second, err := svc.Upsert(context.Background(), input)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.Outcome != enums.MutationOutcomeUpdated {
		t.Fatalf("expected updated, got %s", second.Outcome)
	}
	if second.ID != first.ID {
		t.Fatalf("expected stable id across upserts")
	}
	if len(repo.byPhone) != 1 {
		t.Fatalf("expected a single record, got %d", len(repo.byPhone))
	}
}

func TestUpsertReplacesWholeRecord(t *testing.T) {
	repo := newStubCustomersRepo()
	svc, _ := NewService(repo)

	email := "old@example.com"
	if _, err := svc.Upsert(context.Background(), UpsertInput{Phone: "+8801700000000", Name: "Rahim", Address: "Dhaka", Email: &email}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	updated, err := svc.Upsert(context.Background(), UpsertInput{Phone: "+8801700000000", Name: "Karim", Address: "Chittagong"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if updated.Name != "Karim" || updated.Address != "Chittagong" {
		t.Fatalf("expected record replaced, got %+v", updated)
	}
	if updated.Email != nil {
		t.Fatalf("expected email cleared by full replacement")
	}
}

func TestUpsertValidation(t *testing.T) {
	svc, _ := NewService(newStubCustomersRepo())

	tests := []UpsertInput{
		{Name: "Rahim", Address: "Dhaka"},
		{Phone: "+8801700000000", Address: "Dhaka"},
		{Phone: "+8801700000000", Name: "Rahim"},
	}
	for _, input := range tests {
		_, err := svc.Upsert(context.Background(), input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected VALIDATION_ERROR for %+v, got %v", input, err)
		}
	}
}
