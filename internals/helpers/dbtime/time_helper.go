// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/configs"
)

// Nama locals untuk cache *time.Location per request
const LocSchoolLoc = "school_loc"

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location: zona waktu sekolah dari SCHOOL_TIMEZONE.
// Fallback: Asia/Jakarta, lalu UTC.
func Location() *time.Location {
	locOnce.Do(func() {
		loc = loadLocation(configs.SchoolTimezone)
	})
	return loc
}

func loadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name != "" {
		if l, err := time.LoadLocation(name); err == nil {
			return l
		}
	}
	if l, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return l
	}
	return time.UTC
}

// GetSchoolLocation: versi per-request (locals dulu, lalu global).
func GetSchoolLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if v, ok := c.Locals(LocSchoolLoc).(*time.Location); ok && v != nil {
			return v
		}
	}
	l := Location()
	if c != nil {
		c.Locals(LocSchoolLoc, l)
	}
	return l
}

// ToSchoolTime mengonversi waktu (biasanya dari DB = UTC) ke timezone sekolah.
func ToSchoolTime(c *fiber.Ctx, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(GetSchoolLocation(c))
}

// NowInSchool: "sekarang" di timezone sekolah
func NowInSchool(c *fiber.Ctx) time.Time {
	return time.Now().In(GetSchoolLocation(c))
}

// TodayIn: tanggal kalender hari ini di lokasi tertentu.
func TodayIn(l *time.Location, now time.Time) civil.Date {
	if l == nil {
		l = time.UTC
	}
	return civil.DateOf(now.In(l))
}

// Today: tanggal hari ini di timezone sekolah.
func Today(c *fiber.Ctx) civil.Date {
	return TodayIn(GetSchoolLocation(c), time.Now())
}

// ParseDate menerima "YYYY-MM-DD" atau "D/M/YYYY".
func ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, fmt.Errorf("tanggal kosong")
	}
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse("2/1/2006", s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("format tanggal %q tidak dikenali (YYYY-MM-DD atau D/M/YYYY)", s)
	}
	return civil.DateOf(t), nil
}
