// Where: internal/infra/config/timestamp.go
// What: Archive timestamp policy.
// Why: Repeated builds of unchanged input must produce byte-identical archives.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/poruru-code/jlinkasm/internal/constants"
)

// DefaultArchiveTimestamp is the earliest time a zip entry can carry.
var DefaultArchiveTimestamp = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// ArchiveTimestamp returns the modification time stamped on archive entries:
// SOURCE_DATE_EPOCH, then project.archiveTimestamp, then DefaultArchiveTimestamp.
func ArchiveTimestamp(project Project, lookupEnv func(string) (string, bool)) (time.Time, error) {
	if lookupEnv != nil {
		if value, ok := lookupEnv(constants.EnvSourceDateEpoch); ok && strings.TrimSpace(value) != "" {
			ts, err := parseTimestamp(value)
			if err != nil {
				return time.Time{}, fmt.Errorf("%s: %w", constants.EnvSourceDateEpoch, err)
			}
			return ts, nil
		}
	}
	if strings.TrimSpace(project.ArchiveTimestamp) != "" {
		return parseTimestamp(project.ArchiveTimestamp)
	}
	return DefaultArchiveTimestamp, nil
}

// parseTimestamp accepts epoch seconds or RFC 3339.
func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(seconds, 0).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: want epoch seconds or RFC 3339", value)
	}
	return ts.UTC(), nil
}
