package model

import (
	"math"
	"strconv"
	"testing"
)

func TestBalanceDisplay(t *testing.T) {
	cases := []struct {
		balance int
		want    string
	}{
		{0, "0 classes left"},
		{3, "3 classes left"},
		{1, "1 classes left"},
		{-2, "payment due for 2 classes"},
		{-1, "payment due for 1 classes"},
	}
	for _, tc := range cases {
		if got := BalanceDisplay(tc.balance); got != tc.want {
			t.Errorf("BalanceDisplay(%d) = %q, want %q", tc.balance, got, tc.want)
		}
	}
}

func TestBalanceDisplayExtremes(t *testing.T) {
	want := "payment due for " + strconv.FormatUint(uint64(math.MaxInt)+1, 10) + " classes"
	if got := BalanceDisplay(math.MinInt); got != want {
		t.Errorf("BalanceDisplay(MinInt) = %q, want %q", got, want)
	}
	want = "payment due for " + strconv.Itoa(math.MaxInt) + " classes"
	if got := BalanceDisplay(-math.MaxInt); got != want {
		t.Errorf("BalanceDisplay(-MaxInt) = %q, want %q", got, want)
	}
}

func TestNewBalance(t *testing.T) {
	b := NewBalance(-4)
	if b.Credits != -4 || b.Display != "payment due for 4 classes" {
		t.Fatalf("unexpected balance %+v", b)
	}
}

func TestRoleHomePath(t *testing.T) {
	cases := map[Role]string{
		RoleAdmin:   "/admin",
		RoleStudent: "/dashboard",
		RoleUser:    "/register",
	}
	for role, want := range cases {
		if got := role.HomePath(); got != want {
			t.Errorf("%s: expected %s, got %s", role, want, got)
		}
	}
	if Role("superuser").Valid() {
		t.Error("unknown role should be invalid")
	}
}

func TestParseCollection(t *testing.T) {
	c, err := ParseCollection("guestlist")
	if err != nil || c != CollectionGuestList {
		t.Fatalf("guestlist alias: got %q, %v", c, err)
	}
	if _, err := ParseCollection("exams"); err == nil {
		t.Fatal("expected error for unknown collection")
	}
	if CollectionClassRequests.Table() != "class_requests" {
		t.Errorf("unexpected table %s", CollectionClassRequests.Table())
	}
	if !CollectionCreditRequests.IsRequest() || CollectionNotices.IsRequest() {
		t.Error("IsRequest misclassifies collections")
	}
}
