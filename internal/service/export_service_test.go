package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/export"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/google/uuid"
)

type memGuests struct {
	entries []model.GuestListEntry
}

func (m *memGuests) List(ctx context.Context, date string, limit, offset int) ([]model.GuestListEntry, int, error) {
	return m.entries, len(m.entries), nil
}

func TestExportGuestListXLSX(t *testing.T) {
	guests := &memGuests{entries: []model.GuestListEntry{
		{ID: uuid.New(), UserName: "Maya", Date: "2025-03-10", Time: "17:30", CreatedAt: time.Now()},
	}}
	svc := NewExportService(newMemUsers(), &memRequests{}, guests, export.NewRenderer(""), testLog)
	svc.now = func() time.Time { return time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC) }

	body, name, err := svc.Export(context.Background(), adminActor(), model.CollectionGuestList, export.FormatXLSX)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if name != "guestList-20250311.xlsx" {
		t.Errorf("filename = %q", name)
	}

	rows, err := export.ReadXLSX(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "Student" || rows[1][0] != "Maya" || rows[1][2] != "17:30" {
		t.Errorf("rows = %v", rows)
	}
}

func TestBuildUsersTableShowsBalance(t *testing.T) {
	u := &model.User{ID: uuid.New(), Name: "Maya", Email: "maya@example.com", Role: model.RoleStudent, Credits: -3}
	svc := NewExportService(newMemUsers(u), &memRequests{}, &memGuests{}, export.NewRenderer(""), testLog)

	table, err := svc.BuildTable(context.Background(), model.CollectionUsers)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}
	if len(table.Rows) != 1 || !strings.Contains(strings.Join(table.Rows[0], "|"), "payment due for 3 classes") {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestExportRejects(t *testing.T) {
	svc := NewExportService(newMemUsers(), &memRequests{}, &memGuests{}, export.NewRenderer(""), testLog)
	ctx := context.Background()

	if _, _, err := svc.Export(ctx, studentActor(), model.CollectionUsers, export.FormatPDF); !errors.Is(err, ErrForbidden) {
		t.Errorf("student export err = %v, want ErrForbidden", err)
	}
	if _, _, err := svc.Export(ctx, adminActor(), model.CollectionNotices, export.FormatXLSX); !errors.Is(err, ErrValidation) {
		t.Errorf("notices export err = %v, want ErrValidation", err)
	}
}
