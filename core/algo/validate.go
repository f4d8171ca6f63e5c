package algo

import (
	"errors"
	"fmt"

	"github.com/huangsam/timelane/core/calendar"
	"github.com/huangsam/timelane/schema"
)

// Validation errors returned by ValidateItems.
var (
	ErrInvalidRange = errors.New("end date is before start date")
	ErrEmptyID      = errors.New("item has no id")
	ErrDuplicateID  = errors.New("duplicate item id")
)

// ValidateItems rejects items that cannot be laid out: a missing id, an id
// used twice, or an end date before the start date.
func ValidateItems(items []schema.TimelineItem) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item at index %d: %w", i, ErrEmptyID)
		}
		if _, ok := seen[item.ID]; ok {
			return fmt.Errorf("item %q: %w", item.ID, ErrDuplicateID)
		}
		seen[item.ID] = struct{}{}

		if calendar.Midnight(item.EndDate).Before(calendar.Midnight(item.StartDate)) {
			return fmt.Errorf("item %q (%s > %s): %w", item.ID,
				item.StartDate.Format(schema.DateFormat), item.EndDate.Format(schema.DateFormat), ErrInvalidRange)
		}
	}
	return nil
}
