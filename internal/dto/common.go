package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

// DateLayout is the calendar date format accepted in bodies and query strings.
const DateLayout = "2006-01-02"

// Date is a calendar date encoded as "YYYY-MM-DD". RFC 3339 timestamps are accepted on input
// and truncated to their day.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: domain.DateOnly(t)}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// Ptr returns nil for the zero date.
func (d Date) Ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// ParseDate parses YYYY-MM-DD or RFC 3339 into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return domain.DateOnly(t), nil
}

// ListParams are the offset pagination query parameters shared by list endpoints.
type ListParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListResponse wraps a page of items with its pagination metadata.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func NewListResponse[T any](items []T, p ListParams) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Limit: p.Limit, Offset: p.Offset}
}
