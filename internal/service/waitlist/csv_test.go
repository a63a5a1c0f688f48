package waitlist

import (
	"strings"
	"testing"
	"time"

	"github.com/intentional-app/waitlist-service/internal/domain"
)

func TestRenderCSVEmpty(t *testing.T) {
	out, err := renderCSV(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := strings.TrimRight(string(out), "\n")
	want := "ID,First Name,Last Name,Age,City,Province/State,Country,Email,Phone Number,Looking For,Additional Information,Status,Created At,Updated At"
	if got != want {
		t.Fatalf("expected header only, got %q", got)
	}
}

func TestRenderCSVRow(t *testing.T) {
	phone := "555-0100"
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	out, err := renderCSV([]domain.Application{{
		ID:            "abc-123",
		FirstName:     "Ana",
		LastName:      "Lee",
		Age:           25,
		City:          "Reno",
		ProvinceState: "NV",
		Country:       "USA",
		Email:         "ana@mail.com",
		PhoneNumber:   &phone,
		LookingFor:    []string{"Marriage", "Life partner"},
		Status:        domain.StatusPending,
		CreatedAt:     created,
		UpdatedAt:     created,
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	want := "abc-123,Ana,Lee,25,Reno,NV,USA,ana@mail.com,555-0100,Marriage; Life partner,,pending,2025-03-01T12:00:00Z,2025-03-01T12:00:00Z"
	if lines[1] != want {
		t.Fatalf("row mismatch:\n got %q\nwant %q", lines[1], want)
	}
}

func TestRenderCSVEscaping(t *testing.T) {
	info := `He said "hi", then
left`

	out, err := renderCSV([]domain.Application{{
		ID:                    "id-1",
		FirstName:             "Ana, Maria",
		LastName:              `O"Neil`,
		Age:                   30,
		City:                  "Reno",
		ProvinceState:         "NV",
		Country:               "USA",
		Email:                 "ana@mail.com",
		LookingFor:            []string{"Marriage"},
		AdditionalInformation: &info,
		Status:                domain.StatusApproved,
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	s := string(out)
	if !strings.Contains(s, `"Ana, Maria"`) {
		t.Error("comma field should be quoted")
	}
	if !strings.Contains(s, `"O""Neil"`) {
		t.Error("embedded quotes should be doubled")
	}
	if !strings.Contains(s, "\"He said \"\"hi\"\", then\nleft\"") {
		t.Error("newline field should be quoted with inner quotes doubled")
	}
}

func TestRenderCSVOrderPreserved(t *testing.T) {
	apps := []domain.Application{
		{ID: "first", FirstName: "A", LookingFor: []string{"Marriage"}},
		{ID: "second", FirstName: "B", LookingFor: []string{"Marriage"}},
	}
	out, err := renderCSV(apps)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(out)
	if strings.Index(s, "first") > strings.Index(s, "second") {
		t.Fatal("rows must keep input order")
	}
}
