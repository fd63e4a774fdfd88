// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
)

// Tod = jam rapat (HH:mm), tanpa tanggal & zona.
type Tod struct{ time.Time }

// ParseTod menerima "HH:MM" atau "HH:MM:SS".
func ParseTod(s string) (Tod, error) {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return Tod{}, fmt.Errorf("format jam tidak valid: %q", s)
	}
	return Tod{Time: tt}, nil
}

// String = "HH:MM" (format yang disimpan di sheet)
func (t Tod) String() string {
	return t.Format("15:04")
}

// dateLayouts: input form (HTML date) dulu, lalu format sheet, lalu garis miring.
var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// ParseMeetingDate menerima beberapa format tanggal dan mengembalikan waktu di zona sekolah.
func ParseMeetingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.ParseInLocation(layout, s, SchoolLocation()); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("format tanggal tidak valid: %q", s)
}
