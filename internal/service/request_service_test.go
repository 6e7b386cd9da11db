package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/google/uuid"
)

// memRequests is an in-memory RequestStore.
type memRequests struct {
	classes []model.ClassRequest
	credits []model.CreditRequest
}

func (m *memRequests) CreateClassRequest(ctx context.Context, cr *model.ClassRequest) error {
	cr.ID, cr.Status, cr.CreatedAt = uuid.New(), model.StatusPending, time.Now()
	m.classes = append(m.classes, *cr)
	return nil
}

func (m *memRequests) CreateCreditRequest(ctx context.Context, cr *model.CreditRequest) error {
	cr.ID, cr.Status, cr.CreatedAt = uuid.New(), model.StatusPending, time.Now()
	m.credits = append(m.credits, *cr)
	return nil
}

func (m *memRequests) ListClassRequests(ctx context.Context, f model.RequestFilter, limit, offset int) ([]model.ClassRequest, int, error) {
	var out []model.ClassRequest
	for _, r := range m.classes {
		if (f.UserID == nil || *f.UserID == r.UserID) && (f.Status == "" || f.Status == r.Status) {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (m *memRequests) ListCreditRequests(ctx context.Context, f model.RequestFilter, limit, offset int) ([]model.CreditRequest, int, error) {
	var out []model.CreditRequest
	for _, r := range m.credits {
		if (f.UserID == nil || *f.UserID == r.UserID) && (f.Status == "" || f.Status == r.Status) {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func studentActor() Actor {
	return Actor{UserID: uuid.New(), Name: "Maya", Email: "maya@example.com", Role: model.RoleStudent}
}

func TestSubmitClassRequest(t *testing.T) {
	store := &memRequests{}
	pub := &fakePublisher{}
	svc := NewRequestService(store, pub, testLog)
	actor := studentActor()

	req, err := svc.SubmitClassRequest(context.Background(), actor, " 2025-03-10 ", "17:30")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.Status != model.StatusPending || req.Date != "2025-03-10" || req.UserID != actor.UserID {
		t.Errorf("request = %+v", req)
	}
	if len(pub.events) != 1 || pub.events[0].Type != model.EventRequestCreated {
		t.Errorf("events = %+v", pub.events)
	}
}

func TestSubmitClassRequestValidation(t *testing.T) {
	svc := NewRequestService(&memRequests{}, nil, testLog)

	tests := []struct {
		name, date, clock, field string
	}{
		{"missing date", "", "17:30", "date"},
		{"blank time", "2025-03-10", "   ", "time"},
		{"bad date", "10/03/2025", "17:30", "date"},
		{"bad time", "2025-03-10", "5pm", "time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitClassRequest(context.Background(), studentActor(), tt.date, tt.clock)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want %s", verr.Fields, tt.field)
			}
		})
	}
}

func TestSubmitRequiresStudent(t *testing.T) {
	svc := NewRequestService(&memRequests{}, nil, testLog)
	guest := Actor{UserID: uuid.New(), Role: model.RoleUser}

	if _, err := svc.SubmitClassRequest(context.Background(), guest, "2025-03-10", "17:30"); !errors.Is(err, ErrForbidden) {
		t.Errorf("class err = %v, want ErrForbidden", err)
	}
	if _, err := svc.SubmitCreditRequest(context.Background(), guest, 5, "paid", ""); !errors.Is(err, ErrForbidden) {
		t.Errorf("credit err = %v, want ErrForbidden", err)
	}
}

func TestSubmitCreditRequest(t *testing.T) {
	store := &memRequests{}
	svc := NewRequestService(store, nil, testLog)

	req, err := svc.SubmitCreditRequest(context.Background(), studentActor(), 5, "  sent via UPI  ", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.PaymentMethod != model.DefaultPaymentMethod || req.ProofMessage != "sent via UPI" {
		t.Errorf("request = %+v", req)
	}

	for _, tc := range []struct {
		amount int
		proof  string
	}{{0, "paid"}, {-2, "paid"}, {5, "  "}} {
		if _, err := svc.SubmitCreditRequest(context.Background(), studentActor(), tc.amount, tc.proof, "cash"); !errors.Is(err, ErrValidation) {
			t.Errorf("amount=%d proof=%q err = %v, want ErrValidation", tc.amount, tc.proof, err)
		}
	}
	if len(store.credits) != 1 {
		t.Errorf("stored %d credit requests, want 1", len(store.credits))
	}
}

func TestListRequestsForAdmin(t *testing.T) {
	store := &memRequests{}
	svc := NewRequestService(store, nil, testLog)
	ctx := context.Background()
	a, b := studentActor(), studentActor()

	svc.SubmitClassRequest(ctx, a, "2025-03-10", "17:30")
	svc.SubmitClassRequest(ctx, b, "2025-03-11", "18:00")
	store.classes[1].Status = model.StatusApproved

	pending, total, err := svc.ListClassRequests(ctx, adminActor(), model.StatusPending, 20, 0)
	if err != nil || total != 1 || pending[0].UserID != a.UserID {
		t.Errorf("pending = %+v total = %d err = %v", pending, total, err)
	}
	own, _, _ := svc.ListOwnClassRequests(ctx, b, 20, 0)
	if len(own) != 1 || own[0].UserID != b.UserID {
		t.Errorf("own = %+v", own)
	}
	if _, _, err := svc.ListClassRequests(ctx, a, "", 20, 0); !errors.Is(err, ErrForbidden) {
		t.Errorf("student list err = %v, want ErrForbidden", err)
	}
	if _, _, err := svc.ListCreditRequests(ctx, adminActor(), "archived", 20, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("bad status err = %v, want ErrValidation", err)
	}
}
