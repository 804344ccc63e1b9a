package render

import (
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/sajals2410/elyx-assignment/core/schedule"
)

// WriteICal writes the schedule as an iCalendar (RFC 5545) document. Event
// UIDs are derived deterministically from the placement so that re-running
// the engine on identical inputs produces an identical calendar.
func WriteICal(w io.Writer, res *schedule.Result) error {
	bw := &errWriter{w: w}
	bw.printf("BEGIN:VCALENDAR\r\n")
	bw.printf("VERSION:2.0\r\n")
	bw.printf("PRODID:-//elyx//allocator//EN\r\n")
	bw.printf("CALSCALE:GREGORIAN\r\n")
	for _, day := range res.Days {
		compact := strings.ReplaceAll(day.Key, "-", "")
		for _, p := range day.Placements {
			uid := uuid.NewSHA1(uuid.NameSpaceOID, []byte(day.Key+"/"+p.ActivityID+"/"+p.Start.String()))
			bw.printf("BEGIN:VEVENT\r\n")
			bw.printf("UID:%s\r\n", uid)
			bw.printf("DTSTART:%sT%02d%02d00\r\n", compact, int(p.Start)/60, int(p.Start)%60)
			bw.printf("DTEND:%sT%02d%02d00\r\n", compact, int(p.End)/60, int(p.End)%60)
			bw.printf("SUMMARY:%s\r\n", escapeText(p.Name))
			if p.Location != "" {
				bw.printf("LOCATION:%s\r\n", escapeText(p.Location))
			}
			if p.IsBackup {
				bw.printf("DESCRIPTION:Backup for %s\r\n", escapeText(p.OriginalID))
			}
			bw.printf("CATEGORIES:%s\r\n", strings.ToUpper(p.Type.String()))
			bw.printf("END:VEVENT\r\n")
		}
	}
	bw.printf("END:VCALENDAR\r\n")
	return bw.err
}

// escapeText escapes the characters RFC 5545 reserves in text values.
func escapeText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
