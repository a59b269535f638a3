package domain

import (
	"time"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
)

// TimestampLayout is the ISO-8601 layout used in primitives.
const TimestampLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewInvalidArgument("%s %q is not an ISO-8601 timestamp", field, value)
	}
	return t.UTC(), nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
