package algo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/timelane/core/calendar"
	"github.com/huangsam/timelane/schema"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// KeyFunc extracts the group title of an item. A false or empty result
// places the item in the Unknown group.
type KeyFunc func(item schema.TimelineItem) (string, bool)

// Comparer orders group titles. It returns a negative number when a sorts
// before b, zero when they are equal and a positive number otherwise.
type Comparer func(a, b string) int

// NewComparer returns a locale-aware Comparer for the BCP 47 tag in locale.
// The returned Comparer is not safe for concurrent use.
func NewComparer(locale string) (Comparer, error) {
	if locale == "" {
		locale = schema.DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	c := collate.New(tag)
	return c.CompareString, nil
}

// FieldKey returns a KeyFunc reading the named field of an item.
// Built-in fields are matched case-insensitively; any other name is looked
// up in the item's attributes.
func FieldKey(field string) KeyFunc {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "id":
		return func(item schema.TimelineItem) (string, bool) { return item.ID, item.ID != "" }
	case "name":
		return func(item schema.TimelineItem) (string, bool) { return item.Name, item.Name != "" }
	case "team":
		return func(item schema.TimelineItem) (string, bool) { return item.Team, item.Team != "" }
	case "status":
		return func(item schema.TimelineItem) (string, bool) { return item.Status, item.Status != "" }
	case "priority":
		return func(item schema.TimelineItem) (string, bool) { return item.Priority, item.Priority != "" }
	case "category":
		return func(item schema.TimelineItem) (string, bool) { return item.Category, item.Category != "" }
	case "progress":
		return func(item schema.TimelineItem) (string, bool) {
			if item.Progress == nil {
				return "", false
			}
			return strconv.FormatFloat(*item.Progress, 'f', -1, 64), true
		}
	}
	return func(item schema.TimelineItem) (string, bool) {
		v, ok := item.Attributes[field]
		return v, ok
	}
}

// GroupBy partitions items by key. Items in each group are stable-sorted by
// start date, and groups are ordered by title with cmp.
func GroupBy(items []schema.TimelineItem, key KeyFunc, cmp Comparer) []schema.Group {
	groups := []schema.Group{}
	index := make(map[string]int)

	for _, item := range items {
		title, ok := key(item)
		if !ok || title == "" {
			title = schema.UnknownGroup
		}
		i, seen := index[title]
		if !seen {
			i = len(groups)
			index[title] = i
			groups = append(groups, schema.Group{GroupTitle: title})
		}
		groups[i].GroupItems = append(groups[i].GroupItems, item)
	}

	for i := range groups {
		slices.SortStableFunc(groups[i].GroupItems, byStartDate)
	}
	slices.SortStableFunc(groups, func(a, b schema.Group) int {
		return cmp(a.GroupTitle, b.GroupTitle)
	})
	return groups
}

func byStartDate(a, b schema.TimelineItem) int {
	return calendar.Midnight(a.StartDate).Compare(calendar.Midnight(b.StartDate))
}
