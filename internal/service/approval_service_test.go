package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestApproveCreditRequest(t *testing.T) {
	store := newMemStore()
	u := store.addUser("maya", model.RoleStudent, 0)
	req := store.addCredit(u.ID, 5)
	pub := &fakePublisher{}
	svc := NewApprovalService(store, nil, pub, false, testLog)

	res, err := svc.ApproveCreditRequest(context.Background(), adminActor(), req.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if res.User.Credits != 5 || res.Balance.Display != "5 classes left" {
		t.Errorf("balance = %d %q, want 5 \"5 classes left\"", res.User.Credits, res.Balance.Display)
	}
	if res.CreditRequest.Status != model.StatusApproved || res.CreditRequest.ResolvedAt == nil {
		t.Errorf("request = %+v, want approved with resolved_at", res.CreditRequest)
	}
	if got := store.user(u.ID).Credits; got != 5 {
		t.Errorf("stored credits = %d, want 5", got)
	}
	if len(pub.events) != 1 || pub.events[0].Type != model.EventRequestApproved || *pub.events[0].Balance != 5 {
		t.Errorf("events = %+v", pub.events)
	}
}

func TestApproveClassRequest(t *testing.T) {
	store := newMemStore()
	u := store.addUser("maya", model.RoleStudent, 1)
	req := store.addClass(u.ID, "2025-03-10", "17:30")
	hook := &fakeHook{}
	svc := NewApprovalService(store, hook, nil, false, testLog)

	res, err := svc.ApproveClassRequest(context.Background(), adminActor(), req.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if res.User.Credits != 0 || res.Balance.Display != "0 classes left" {
		t.Errorf("balance = %d %q", res.User.Credits, res.Balance.Display)
	}
	if res.GuestListEntry == nil || res.GuestListEntry.ClassRequestID != req.ID || res.GuestListEntry.UserName != "maya" {
		t.Errorf("guest list entry = %+v", res.GuestListEntry)
	}
	if len(store.guests) != 1 {
		t.Errorf("guest list size = %d, want 1", len(store.guests))
	}
	if len(hook.calls) != 1 || hook.calls[0].req.Date != "2025-03-10" || hook.calls[0].req.Time != "17:30" {
		t.Errorf("hook calls = %+v", hook.calls)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", res.Warnings)
	}
}

func TestApproveClassRequestGoesNegative(t *testing.T) {
	store := newMemStore()
	u := store.addUser("maya", model.RoleStudent, 0)
	req := store.addClass(u.ID, "2025-03-10", "17:30")
	svc := NewApprovalService(store, nil, nil, false, testLog)

	res, err := svc.ApproveClassRequest(context.Background(), adminActor(), req.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if res.User.Credits != -1 || res.Balance.Display != "payment due for 1 classes" {
		t.Errorf("balance = %d %q", res.User.Credits, res.Balance.Display)
	}
}

func TestApproveClassRequestEnforcedFloor(t *testing.T) {
	store := newMemStore()
	u := store.addUser("maya", model.RoleStudent, 0)
	req := store.addClass(u.ID, "2025-03-10", "17:30")
	svc := NewApprovalService(store, nil, nil, true, testLog)

	_, err := svc.ApproveClassRequest(context.Background(), adminActor(), req.ID)
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("err = %v, want ErrInsufficientCredits", err)
	}
	if store.classStatus(req.ID) != model.StatusPending || store.user(u.ID).Credits != 0 {
		t.Error("state changed after rejected approval")
	}
}

func TestApproveClassRequestHookFailureIsWarning(t *testing.T) {
	store := newMemStore()
	u := store.addUser("maya", model.RoleStudent, 2)
	req := store.addClass(u.ID, "2025-03-10", "17:30")
	hook := &fakeHook{err: errors.New("calendar unavailable")}
	svc := NewApprovalService(store, hook, nil, false, testLog)

	res, err := svc.ApproveClassRequest(context.Background(), adminActor(), req.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one", res.Warnings)
	}
	if store.classStatus(req.ID) != model.StatusApproved || store.user(u.ID).Credits != 1 {
		t.Error("hook failure must not undo the approval")
	}
}

func TestApproveClassRequestWithoutScheduleSkipsHook(t *testing.T) {
	store := newMemStore()
	u := store.addUser("maya", model.RoleStudent, 2)
	req := store.addClass(u.ID, "", "")
	hook := &fakeHook{}
	svc := NewApprovalService(store, hook, nil, false, testLog)

	if _, err := svc.ApproveClassRequest(context.Background(), adminActor(), req.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if len(hook.calls) != 0 {
		t.Errorf("hook called %d times, want 0", len(hook.calls))
	}
}

func TestApproveTwiceMutatesOnce(t *testing.T) {
	store := newMemStore()
	u := store.addUser("maya", model.RoleStudent, 0)
	req := store.addCredit(u.ID, 3)
	svc := NewApprovalService(store, nil, nil, false, testLog)
	ctx := context.Background()

	if _, err := svc.ApproveCreditRequest(ctx, adminActor(), req.ID); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if _, err := svc.ApproveCreditRequest(ctx, adminActor(), req.ID); !errors.Is(err, ErrRequestAlreadyResolved) {
		t.Fatalf("second approve err = %v, want ErrRequestAlreadyResolved", err)
	}
	if got := store.user(u.ID).Credits; got != 3 {
		t.Errorf("credits = %d, want 3", got)
	}
}

func TestConcurrentApprovalsMutateOnce(t *testing.T) {
	store := newMemStore()
	u := store.addUser("maya", model.RoleStudent, 1)
	req := store.addClass(u.ID, "2025-03-10", "17:30")
	hook := &fakeHook{}
	svc := NewApprovalService(store, hook, nil, false, testLog)

	const workers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		resolved int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ApproveClassRequest(context.Background(), adminActor(), req.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrRequestAlreadyResolved):
				resolved++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || resolved != workers-1 {
		t.Errorf("ok = %d resolved = %d, want 1 and %d", ok, resolved, workers-1)
	}
	if store.adjusted != 1 || store.user(u.ID).Credits != 0 {
		t.Errorf("adjusted = %d credits = %d, want 1 and 0", store.adjusted, store.user(u.ID).Credits)
	}
	if len(store.guests) != 1 || len(hook.calls) != 1 {
		t.Errorf("guests = %d hook calls = %d, want 1 each", len(store.guests), len(hook.calls))
	}
}

func TestApproveMissingUserRollsBack(t *testing.T) {
	store := newMemStore()
	req := store.addCredit(uuid.New(), 4)
	svc := NewApprovalService(store, nil, nil, false, testLog)

	_, err := svc.ApproveCreditRequest(context.Background(), adminActor(), req.ID)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
	if store.creditStatus(req.ID) != model.StatusPending {
		t.Error("request must stay pending when the user is missing")
	}
}

func TestApproveMissingRequest(t *testing.T) {
	svc := NewApprovalService(newMemStore(), nil, nil, false, testLog)
	_, err := svc.ApproveClassRequest(context.Background(), adminActor(), uuid.New())
	if !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("err = %v, want ErrRequestNotFound", err)
	}
}

func TestApproveRequiresAdmin(t *testing.T) {
	store := newMemStore()
	u := store.addUser("maya", model.RoleStudent, 0)
	req := store.addCredit(u.ID, 5)
	svc := NewApprovalService(store, nil, nil, false, testLog)

	_, err := svc.ApproveCreditRequest(context.Background(), ActorFromUser(u), req.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestApproveSerializationFailure(t *testing.T) {
	store := newMemStore()
	store.txErr = &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
	svc := NewApprovalService(store, nil, nil, false, testLog)

	_, err := svc.ApproveCreditRequest(context.Background(), adminActor(), uuid.New())
	if !errors.Is(err, ErrTransactionConflict) {
		t.Fatalf("err = %v, want ErrTransactionConflict", err)
	}
}

func TestDeclineRequest(t *testing.T) {
	store := newMemStore()
	u := store.addUser("maya", model.RoleStudent, 2)
	class := store.addClass(u.ID, "2025-03-10", "17:30")
	credit := store.addCredit(u.ID, 5)
	pub := &fakePublisher{}
	svc := NewApprovalService(store, nil, pub, false, testLog)
	ctx := context.Background()

	res, err := svc.DeclineRequest(ctx, adminActor(), model.CollectionClassRequests, class.ID)
	if err != nil {
		t.Fatalf("decline class: %v", err)
	}
	if res.ClassRequest.Status != model.StatusDeclined {
		t.Errorf("status = %s, want declined", res.ClassRequest.Status)
	}
	if _, err := svc.DeclineRequest(ctx, adminActor(), model.CollectionCreditRequests, credit.ID); err != nil {
		t.Fatalf("decline credit: %v", err)
	}
	if got := store.user(u.ID).Credits; got != 2 {
		t.Errorf("credits = %d, want 2", got)
	}
	if len(pub.events) != 2 || pub.events[0].Status != model.StatusDeclined {
		t.Errorf("events = %+v", pub.events)
	}

	if _, err := svc.DeclineRequest(ctx, adminActor(), model.CollectionClassRequests, class.ID); !errors.Is(err, ErrRequestAlreadyResolved) {
		t.Errorf("second decline err = %v, want ErrRequestAlreadyResolved", err)
	}
	if _, err := svc.ApproveClassRequest(ctx, adminActor(), class.ID); !errors.Is(err, ErrRequestAlreadyResolved) {
		t.Errorf("approve after decline err = %v, want ErrRequestAlreadyResolved", err)
	}
	if _, err := svc.DeclineRequest(ctx, adminActor(), model.CollectionCreditRequests, uuid.New()); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("missing decline err = %v, want ErrRequestNotFound", err)
	}
	if _, err := svc.DeclineRequest(ctx, adminActor(), model.CollectionNotices, class.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("notices decline err = %v, want ErrValidation", err)
	}
}
