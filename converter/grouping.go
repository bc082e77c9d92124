package converter

import (
	"strings"
	"unicode"

	"github.com/bcroads/drivebc-kml/drivebc"
)

// group is an ordered bucket of records sharing a grouping key.
type group struct {
	key     string
	records []drivebc.Record
}

// groupRecords buckets records by keyFn with stable ordering: the first
// occurrence of a key fixes the group's position, and records keep their
// arrival order within each group.
func groupRecords(records []drivebc.Record, keyFn func(drivebc.Record) string) []group {
	index := make(map[string]int, len(records))
	groups := make([]group, 0)
	for _, rec := range records {
		key := keyFn(rec)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{key: key})
		}
		groups[i].records = append(groups[i].records, rec)
	}
	return groups
}

// titleCaseEventType turns an upstream event type like "ROAD_CONDITION"
// into a folder label like "Road Condition". Underscores become spaces;
// any other non-letter passes through and starts a new word.
func titleCaseEventType(eventType string) string {
	var b strings.Builder
	startOfWord := true
	for _, c := range eventType {
		if c == '_' {
			b.WriteRune(' ')
			startOfWord = true
			continue
		}
		if !unicode.IsLetter(c) {
			b.WriteRune(c)
			startOfWord = true
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(c))
			startOfWord = false
		} else {
			b.WriteRune(unicode.ToLower(c))
		}
	}
	return b.String()
}
