package service

import (
	"errors"
	"fmt"
	"strings"

	"sekolahku_backend/internals/features/school/attendance_recaps/model"
)

var ErrUnknownStatus = errors.New("status absensi tidak dikenal")

// label mentah (lowercase) → status kanonik
var statusAliases = map[string]model.Status{
	"hadir":     model.StatusPresent,
	"present":   model.StatusPresent,
	"h":         model.StatusPresent,
	"sakit":     model.StatusSick,
	"sick":      model.StatusSick,
	"s":         model.StatusSick,
	"izin":      model.StatusPermitted,
	"ijin":      model.StatusPermitted,
	"permitted": model.StatusPermitted,
	"excused":   model.StatusPermitted,
	"i":         model.StatusPermitted,
	"alpa":      model.StatusAbsent,
	"alpha":     model.StatusAbsent,
	"absent":    model.StatusAbsent,
	"a":         model.StatusAbsent,
}

// ParseStatus memetakan label mentah ke status kanonik.
// Kosong → StatusNone tanpa error; label tak dikenal → StatusNone + ErrUnknownStatus.
func ParseStatus(raw string) (model.Status, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return model.StatusNone, nil
	}
	if st, ok := statusAliases[key]; ok {
		return st, nil
	}
	return model.StatusNone, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// NormalizeStatus versi tanpa error (label tak dikenal jadi StatusNone).
func NormalizeStatus(raw string) model.Status {
	st, _ := ParseStatus(raw)
	return st
}

// StorageLabel: label Indonesia yang disimpan saat input presensi.
func StorageLabel(st model.Status) string {
	return strings.ToLower(st.Label())
}
