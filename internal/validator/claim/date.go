package claim

import (
	"fmt"
	"strings"
	"time"
)

// Month-first layouts are tried before day-first ones.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01/02/06",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"January 02, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"Mon, Jan 2, 2006",
}

// ParseDate converts a printed date into ISO 8601 (YYYY-MM-DD).
func ParseDate(s string) (string, error) {
	text := strings.Join(strings.Fields(s), " ")
	if text == "" {
		return "", fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date: %s", s)
}
