// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"os"
	"strings"
	"sync"
	"time"
)

var (
	schoolLocOnce sync.Once
	schoolLoc     *time.Location
)

// SchoolLocation: zona waktu sekolah.
// 1) SCHOOL_TIMEZONE dari ENV
// 2) Fallback Asia/Jakarta
// 3) Fallback terakhir: WIB tetap (UTC+7) kalau tzdata tidak ada di container
func SchoolLocation() *time.Location {
	schoolLocOnce.Do(func() {
		name := strings.TrimSpace(os.Getenv("SCHOOL_TIMEZONE"))
		if name == "" {
			name = "Asia/Jakarta"
		}
		if loc, err := time.LoadLocation(name); err == nil {
			schoolLoc = loc
			return
		}
		schoolLoc = time.FixedZone("WIB", 7*60*60)
	})
	return schoolLoc
}

// NowWIB = sekarang di zona sekolah.
func NowWIB() time.Time {
	return time.Now().In(SchoolLocation())
}
