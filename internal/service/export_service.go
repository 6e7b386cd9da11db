package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/export"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/rs/zerolog"
)

// exportRowLimit caps how many rows one download may contain.
const exportRowLimit = 10000

// GuestListStore lists guest list entries.
type GuestListStore interface {
	List(ctx context.Context, date string, limit, offset int) ([]model.GuestListEntry, int, error)
}

// TableRenderer renders a table in a download format.
type TableRenderer interface {
	Render(w io.Writer, f export.Format, t export.Table) error
}

// ExportService renders collections as PDF or XLSX downloads.
type ExportService struct {
	users    UserStore
	requests RequestStore
	guests   GuestListStore
	renderer TableRenderer
	now      func() time.Time
	log      zerolog.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(users UserStore, requests RequestStore, guests GuestListStore, renderer TableRenderer, log zerolog.Logger) *ExportService {
	return &ExportService{
		users:    users,
		requests: requests,
		guests:   guests,
		renderer: renderer,
		now:      time.Now,
		log:      log.With().Str("component", "export_service").Logger(),
	}
}

// Export renders collection c and returns the file body and a download name.
func (s *ExportService) Export(ctx context.Context, actor Actor, c model.Collection, f export.Format) ([]byte, string, error) {
	if !actor.IsAdmin() {
		return nil, "", ErrForbidden
	}

	t, err := s.BuildTable(ctx, c)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, f, *t); err != nil {
		return nil, "", fmt.Errorf("render %s: %w", f, err)
	}

	filename := fmt.Sprintf("%s-%s.%s", c, s.now().Format("20060102"), f)
	s.log.Info().
		Str("collection", string(c)).
		Str("format", string(f)).
		Int("rows", len(t.Rows)).
		Str("admin_id", actor.UserID.String()).
		Msg("Collection exported")
	return buf.Bytes(), filename, nil
}

// BuildTable loads collection c as a table.
func (s *ExportService) BuildTable(ctx context.Context, c model.Collection) (*export.Table, error) {
	switch c {
	case model.CollectionUsers:
		users, _, err := s.users.List(ctx, model.UserFilter{}, exportRowLimit, 0)
		if err != nil {
			return nil, err
		}
		t := &export.Table{
			Title:   "Users",
			Headers: []string{"Name", "Email", "Role", "Credits", "Balance", "Last class", "Joined"},
		}
		for _, u := range users {
			last := ""
			if u.LastClassDate != nil {
				last = *u.LastClassDate
			}
			t.Rows = append(t.Rows, []string{
				u.Name, u.Email, string(u.Role), strconv.Itoa(u.Credits),
				model.BalanceDisplay(u.Credits), last, u.CreatedAt.Format("2006-01-02"),
			})
		}
		return t, nil

	case model.CollectionClassRequests:
		reqs, _, err := s.requests.ListClassRequests(ctx, model.RequestFilter{}, exportRowLimit, 0)
		if err != nil {
			return nil, err
		}
		t := &export.Table{
			Title:   "Class requests",
			Headers: []string{"Student", "Date", "Time", "Status", "Requested", "Resolved"},
		}
		for _, r := range reqs {
			t.Rows = append(t.Rows, []string{
				r.UserName, r.Date, r.Time, string(r.Status),
				r.CreatedAt.Format("2006-01-02 15:04"), formatResolved(r.ResolvedAt),
			})
		}
		return t, nil

	case model.CollectionCreditRequests:
		reqs, _, err := s.requests.ListCreditRequests(ctx, model.RequestFilter{}, exportRowLimit, 0)
		if err != nil {
			return nil, err
		}
		t := &export.Table{
			Title:   "Credit requests",
			Headers: []string{"Student", "Amount", "Payment method", "Proof", "Status", "Requested", "Resolved"},
		}
		for _, r := range reqs {
			t.Rows = append(t.Rows, []string{
				r.UserName, strconv.Itoa(r.Amount), r.PaymentMethod, r.ProofMessage, string(r.Status),
				r.CreatedAt.Format("2006-01-02 15:04"), formatResolved(r.ResolvedAt),
			})
		}
		return t, nil

	case model.CollectionGuestList:
		entries, _, err := s.guests.List(ctx, "", exportRowLimit, 0)
		if err != nil {
			return nil, err
		}
		t := &export.Table{
			Title:   "Guest list",
			Headers: []string{"Student", "Date", "Time", "Approved"},
		}
		for _, e := range entries {
			t.Rows = append(t.Rows, []string{e.UserName, e.Date, e.Time, e.CreatedAt.Format("2006-01-02 15:04")})
		}
		return t, nil
	}
	return nil, invalid("collection", fmt.Sprintf("%s cannot be exported", c))
}

func formatResolved(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
