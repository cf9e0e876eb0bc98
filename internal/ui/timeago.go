package ui

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idilsaglam/crudadmin/internal/model"
)

// TimeAgo renders ts relative to now ("3 hours ago"); "-" when ts is missing
// or malformed.
func TimeAgo(ts model.Timestamp, now time.Time) string {
	t, ok := ts.Time()
	if !ok {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
