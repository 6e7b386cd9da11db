package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/calendar"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/middleware"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/roster"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeApprover struct {
	classFn   func(id uuid.UUID) (*service.ApprovalResult, error)
	creditFn  func(id uuid.UUID) (*service.ApprovalResult, error)
	declineFn func(c model.Collection, id uuid.UUID) (*service.ApprovalResult, error)
}

func (f *fakeApprover) ApproveClassRequest(_ context.Context, _ service.Actor, id uuid.UUID) (*service.ApprovalResult, error) {
	return f.classFn(id)
}

func (f *fakeApprover) ApproveCreditRequest(_ context.Context, _ service.Actor, id uuid.UUID) (*service.ApprovalResult, error) {
	return f.creditFn(id)
}

func (f *fakeApprover) DeclineRequest(_ context.Context, _ service.Actor, c model.Collection, id uuid.UUID) (*service.ApprovalResult, error) {
	return f.declineFn(c, id)
}

type fakeLister struct {
	gotStatus model.RequestStatus
	gotLimit  int
	gotOffset int
}

func (f *fakeLister) ListClassRequests(_ context.Context, _ service.Actor, status model.RequestStatus, limit, offset int) ([]model.ClassRequest, int, error) {
	f.gotStatus, f.gotLimit, f.gotOffset = status, limit, offset
	return []model.ClassRequest{{ID: uuid.New(), Status: model.StatusPending}}, 41, nil
}

func (f *fakeLister) ListCreditRequests(_ context.Context, _ service.Actor, status model.RequestStatus, limit, offset int) ([]model.CreditRequest, int, error) {
	f.gotStatus, f.gotLimit, f.gotOffset = status, limit, offset
	return nil, 0, nil
}

func withActor(actor service.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyActor, actor)
		c.Next()
	}
}

var admin = service.Actor{UserID: uuid.New(), Name: "Anirban", Role: model.RoleAdmin}

func newRequestRouter(a Approver, l RequestLister) *gin.Engine {
	h := NewRequestHandler(a, l)
	r := gin.New()
	g := r.Group("/admin", withActor(admin))
	g.GET("/class-requests", h.ListClassRequests)
	g.POST("/class-requests/:id/approve", h.ApproveClassRequest)
	g.POST("/credit-requests/:id/approve", h.ApproveCreditRequest)
	g.POST("/requests/:collection/:id/decline", h.DeclineRequest)
	return r
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
	Pagination *struct {
		Page       int `json:"page"`
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestApproveClassRequestReturnsWarnings(t *testing.T) {
	id := uuid.New()
	r := newRequestRouter(&fakeApprover{
		classFn: func(got uuid.UUID) (*service.ApprovalResult, error) {
			if got != id {
				t.Errorf("id = %s, want %s", got, id)
			}
			bal := model.NewBalance(-1)
			return &service.ApprovalResult{
				ClassRequest: &model.ClassRequest{ID: id, Status: model.StatusApproved},
				Balance:      &bal,
				Warnings:     []string{"calendar notification failed: boom"},
			}, nil
		},
	}, &fakeLister{})

	w, env := do(t, r, http.MethodPost, "/admin/class-requests/"+id.String()+"/approve", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var data struct {
		ClassRequest model.ClassRequest `json:"class_request"`
		Balance      model.Balance      `json:"balance"`
		Warnings     []string           `json:"warnings"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.ClassRequest.Status != model.StatusApproved {
		t.Errorf("status = %q", data.ClassRequest.Status)
	}
	if data.Balance.Display != "payment due for 1 classes" {
		t.Errorf("display = %q", data.Balance.Display)
	}
	if len(data.Warnings) != 1 {
		t.Errorf("warnings = %v", data.Warnings)
	}
}

func TestApproveMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{service.ErrRequestAlreadyResolved, http.StatusConflict, "REQUEST_ALREADY_RESOLVED"},
		{service.ErrRequestNotFound, http.StatusNotFound, "REQUEST_NOT_FOUND"},
		{service.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{service.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{service.ErrInsufficientCredits, http.StatusUnprocessableEntity, "INSUFFICIENT_CREDITS"},
		{service.ErrTransactionConflict, http.StatusConflict, "TRANSACTION_CONFLICT"},
		{service.ErrInUse, http.StatusConflict, "IN_USE"},
		{errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			r := newRequestRouter(&fakeApprover{
				creditFn: func(uuid.UUID) (*service.ApprovalResult, error) { return nil, tc.err },
			}, &fakeLister{})

			w, env := do(t, r, http.MethodPost, "/admin/credit-requests/"+uuid.NewString()+"/approve", "")
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			if env.Error == nil || env.Error.Code != tc.code {
				t.Errorf("error = %+v, want %s", env.Error, tc.code)
			}
		})
	}
}

func TestApproveRejectsMalformedID(t *testing.T) {
	r := newRequestRouter(&fakeApprover{}, &fakeLister{})
	w, env := do(t, r, http.MethodPost, "/admin/credit-requests/not-a-uuid/approve", "")
	if w.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "INVALID_ID" {
		t.Fatalf("status = %d error = %+v", w.Code, env.Error)
	}
}

func TestDeclineRequestCollections(t *testing.T) {
	var got model.Collection
	r := newRequestRouter(&fakeApprover{
		declineFn: func(c model.Collection, id uuid.UUID) (*service.ApprovalResult, error) {
			got = c
			return &service.ApprovalResult{CreditRequest: &model.CreditRequest{ID: id, Status: model.StatusDeclined}}, nil
		},
	}, &fakeLister{})

	w, _ := do(t, r, http.MethodPost, "/admin/requests/creditRequests/"+uuid.NewString()+"/decline", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got != model.CollectionCreditRequests {
		t.Errorf("collection = %q", got)
	}

	w, env := do(t, r, http.MethodPost, "/admin/requests/notices/"+uuid.NewString()+"/decline", "")
	if w.Code != http.StatusNotFound || env.Error.Code != "UNKNOWN_COLLECTION" {
		t.Errorf("notices decline: status = %d error = %+v", w.Code, env.Error)
	}
}

func TestListClassRequestsPaginates(t *testing.T) {
	lister := &fakeLister{}
	r := newRequestRouter(&fakeApprover{}, lister)

	w, env := do(t, r, http.MethodGet, "/admin/class-requests?status=pending&page=3&per_page=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if lister.gotStatus != model.StatusPending || lister.gotLimit != 10 || lister.gotOffset != 20 {
		t.Errorf("got status=%q limit=%d offset=%d", lister.gotStatus, lister.gotLimit, lister.gotOffset)
	}
	if env.Pagination == nil || env.Pagination.TotalItems != 41 || env.Pagination.TotalPages != 5 {
		t.Errorf("pagination = %+v", env.Pagination)
	}
}

type fakeEventCreator struct {
	got calendar.Event
	res *calendar.Result
	err error
}

func (f *fakeEventCreator) CreateEvent(_ context.Context, _ service.Actor, e calendar.Event) (*calendar.Result, error) {
	f.got = e
	return f.res, f.err
}

func newCalendarRouter(creator EventCreator) *gin.Engine {
	r := gin.New()
	r.POST("/calendar/events", withActor(admin), NewCalendarHandler(creator).CreateEvent)
	return r
}

func TestCreateEventSuccessShape(t *testing.T) {
	creator := &fakeEventCreator{res: &calendar.Result{EventID: "evt1", EventLink: "https://calendar/evt1"}}
	r := newCalendarRouter(creator)

	w, _ := do(t, r, http.MethodPost, "/calendar/events",
		`{"summary":"Violin class","startDateTime":"2025-03-10T17:30:00","timeZone":"Asia/Kolkata"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != true || body["eventId"] != "evt1" || body["eventLink"] != "https://calendar/evt1" {
		t.Errorf("body = %v", body)
	}
	if creator.got.Summary != "Violin class" || creator.got.Start != "2025-03-10T17:30:00" {
		t.Errorf("event = %+v", creator.got)
	}
}

func TestCreateEventErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid", calendar.ErrInvalidEvent, http.StatusBadRequest},
		{"unconfigured", calendar.ErrNotConfigured, http.StatusInternalServerError},
		{"upstream 403", &calendar.UpstreamError{Code: 403, Message: "forbidden"}, http.StatusForbidden},
		{"upstream 404", &calendar.UpstreamError{Code: 404, Message: "calendar not found"}, http.StatusNotFound},
		{"upstream 503", &calendar.UpstreamError{Code: 503, Message: "unavailable"}, http.StatusInternalServerError},
		{"non-admin", service.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newCalendarRouter(&fakeEventCreator{err: tc.err})
			w, _ := do(t, r, http.MethodPost, "/calendar/events", `{"summary":"x","startDateTime":"2025-03-10T17:30:00"}`)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			var body map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body["success"] != false || body["message"] == "" || body["code"] == "" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestCreateEventMalformedBody(t *testing.T) {
	r := newCalendarRouter(&fakeEventCreator{})
	w, _ := do(t, r, http.MethodPost, "/calendar/events", `{"summary":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

type fakeChecker struct {
	got string
	ok  bool
	err error
}

func (f *fakeChecker) CheckSubmission(_ context.Context, email string) (bool, error) {
	f.got = email
	return f.ok, f.err
}

func TestCheckSubmission(t *testing.T) {
	cases := []struct {
		name    string
		checker *fakeChecker
		body    string
		status  int
		want    string
	}{
		{"submitted", &fakeChecker{ok: true}, `{"email":"a@b.com"}`, http.StatusOK, `{"hasSubmitted":true}`},
		{"not submitted", &fakeChecker{}, `{"email":"a@b.com"}`, http.StatusOK, `{"hasSubmitted":false}`},
		{"missing email", &fakeChecker{err: &service.ValidationError{Fields: map[string]string{"email": "required"}}}, `{}`, http.StatusBadRequest, ""},
		{"unconfigured", &fakeChecker{err: roster.ErrNotConfigured}, `{"email":"a@b.com"}`, http.StatusInternalServerError, ""},
		{"sheets down", &fakeChecker{err: errors.New("sheets: 503")}, `{"email":"a@b.com"}`, http.StatusInternalServerError, ""},
		{"empty body", &fakeChecker{err: &service.ValidationError{Fields: map[string]string{"email": "required"}}}, ``, http.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/forms/check", NewFormHandler(tc.checker).CheckSubmission)

			w, _ := do(t, r, http.MethodPost, "/forms/check", tc.body)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			if tc.want != "" && strings.TrimSpace(w.Body.String()) != tc.want {
				t.Errorf("body = %s, want %s", w.Body.String(), tc.want)
			}
			if tc.status != http.StatusOK {
				var body map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
					t.Errorf("error body = %s", w.Body.String())
				}
			}
		})
	}
}

func TestCheckSubmissionMalformedBody(t *testing.T) {
	for _, body := range []string{`{"email":`, `["a@b.com"]`, `{"email":42}`} {
		checker := &fakeChecker{got: "untouched", ok: true}
		r := gin.New()
		r.POST("/forms/check", NewFormHandler(checker).CheckSubmission)

		w, _ := do(t, r, http.MethodPost, "/forms/check", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, w.Code)
		}
		if checker.got != "untouched" {
			t.Errorf("%s: checker called with %q", body, checker.got)
		}
		if strings.Contains(w.Body.String(), "hasSubmitted") {
			t.Errorf("%s: body = %s", body, w.Body.String())
		}
	}
}

func TestActorRequired(t *testing.T) {
	r := gin.New()
	h := NewRequestHandler(&fakeApprover{}, &fakeLister{})
	r.POST("/approve/:id", h.ApproveCreditRequest)

	w, env := do(t, r, http.MethodPost, "/approve/"+uuid.NewString(), "")
	if w.Code != http.StatusUnauthorized || env.Error == nil || env.Error.Code != "TOKEN_REQUIRED" {
		t.Fatalf("status = %d error = %+v", w.Code, env.Error)
	}
}
