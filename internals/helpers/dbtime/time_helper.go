// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"
	_ "time/tzdata" // zona sekolah tetap ada di image minimal
)

const DefaultSchoolTimezone = "Asia/Jakarta"

// SchoolLocation resolves the school's IANA timezone:
// 1) name kalau valid
// 2) fallback Asia/Jakarta
// 3) fallback terakhir UTC (tzdata tidak tersedia)
func SchoolLocation(name string) *time.Location {
	if name = strings.TrimSpace(name); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultSchoolTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// ToSchoolTime mengonversi waktu (biasanya dari DB = UTC) ke timezone sekolah.
// Kalau t.IsZero() atau loc nil → dikembalikan apa adanya.
func ToSchoolTime(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() || loc == nil {
		return t
	}
	return t.In(loc)
}

// Versi pointer, biar gampang dipakai untuk kolom nullable
func ToSchoolTimePtr(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := ToSchoolTime(*t, loc)
	return &v
}
