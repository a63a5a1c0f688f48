package waitlist

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/intentional-app/waitlist-service/internal/domain"
)

// csvHeader is the fixed export column set. Operators import this file into
// spreadsheets, so the order and labels must stay stable.
var csvHeader = []string{
	"ID",
	"First Name",
	"Last Name",
	"Age",
	"City",
	"Province/State",
	"Country",
	"Email",
	"Phone Number",
	"Looking For",
	"Additional Information",
	"Status",
	"Created At",
	"Updated At",
}

// renderCSV serializes applications in the given order. encoding/csv applies
// RFC 4180 quoting: fields containing commas, quotes, or newlines are wrapped
// in double quotes with embedded quotes doubled.
func renderCSV(apps []domain.Application) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, a := range apps {
		row := []string{
			a.ID,
			a.FirstName,
			a.LastName,
			strconv.Itoa(a.Age),
			a.City,
			a.ProvinceState,
			a.Country,
			a.Email,
			optional(a.PhoneNumber),
			strings.Join(a.LookingFor, "; "),
			optional(a.AdditionalInformation),
			string(a.Status),
			a.CreatedAt.UTC().Format(time.RFC3339),
			a.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
