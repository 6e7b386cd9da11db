package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type classPayload struct {
	Date string `json:"date" binding:"required,isodate"`
	Time string `json:"time" binding:"required,clocktime"`
}

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func bindBody(t *testing.T, body string) map[string]string {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var p classPayload
	return Bind(c, &p)
}

func TestBindAcceptsValidDateAndTime(t *testing.T) {
	if fields := bindBody(t, `{"date":"2025-11-01","time":"18:00"}`); fields != nil {
		t.Fatalf("expected no errors, got %v", fields)
	}
}

func TestBindRejectsMalformedDateAndTime(t *testing.T) {
	fields := bindBody(t, `{"date":"01/11/2025","time":"6pm"}`)
	if fields == nil {
		t.Fatal("expected validation errors")
	}
	if !strings.Contains(fields["date"], "YYYY-MM-DD") {
		t.Errorf("unexpected date message %q", fields["date"])
	}
	if !strings.Contains(fields["time"], "HH:MM") {
		t.Errorf("unexpected time message %q", fields["time"])
	}
}

func TestBindReportsMissingFieldsByJSONName(t *testing.T) {
	fields := bindBody(t, `{}`)
	if _, ok := fields["date"]; !ok {
		t.Errorf("expected date error, got %v", fields)
	}
	if _, ok := fields["time"]; !ok {
		t.Errorf("expected time error, got %v", fields)
	}
}

func TestBindMalformedJSON(t *testing.T) {
	fields := bindBody(t, `{"date":`)
	if _, ok := fields["detail"]; !ok {
		t.Fatalf("expected detail key, got %v", fields)
	}
}
