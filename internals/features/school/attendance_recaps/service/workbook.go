package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/xuri/excelize/v2"

	"sekolahku_backend/internals/features/school/attendance_recaps/model"
)

const (
	SummarySheet = "Summary"
	DetailSheet  = "Detail Absensi"

	// baris header tabel detail; data mulai baris berikutnya
	detailHeaderRow = 4
	summaryHeadRow  = 7

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// warna per status (font, isi sel kolom total)
var statusColors = map[model.Status][2]string{
	model.StatusPresent:   {"10B981", "D1FAE5"},
	model.StatusSick:      {"F59E0B", "FEF3C7"},
	model.StatusPermitted: {"3B82F6", "DBEAFE"},
	model.StatusAbsent:    {"EF4444", "FECACA"},
}

// urutan kolom total di lembar detail
var detailTotalsOrder = []model.Status{
	model.StatusPresent, model.StatusPermitted, model.StatusSick, model.StatusAbsent,
}

var whitespaceRe = regexp.MustCompile(`\s`)

// FileName: Rekap_Absensi_<kelas>_<periode>.xlsx
func FileName(class, period string) string {
	p := whitespaceRe.ReplaceAllString(period, "_")
	p = strings.ReplaceAll(p, "/", "-")
	c := whitespaceRe.ReplaceAllString(strings.TrimSpace(class), "_")
	return fmt.Sprintf("Rekap_Absensi_%s_%s.xlsx", c, p)
}

// Render menulis rekap ke workbook dua lembar dan mengembalikan byte xlsx.
// Total diambil apa adanya dari rekap (tidak dihitung ulang).
func Render(recaps []model.StudentRecap, dates []civil.Date, meta model.Meta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w := &sheetWriter{f: f, styles: map[string]int{}}
	w.do(func() error { return f.SetSheetName("Sheet1", SummarySheet) })
	w.writeSummary(recaps, dates, meta)

	w.do(func() error {
		_, err := f.NewSheet(DetailSheet)
		return err
	})
	w.writeDetail(recaps, dates, meta)
	if w.err != nil {
		return nil, fmt.Errorf("render workbook: %w", w.err)
	}

	summaryIdx, err := f.GetSheetIndex(SummarySheet)
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	f.SetActiveSheet(summaryIdx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter menyimpan error pertama supaya pemanggilan beruntun tetap ringkas.
type sheetWriter struct {
	f      *excelize.File
	styles map[string]int
	err    error
}

func (w *sheetWriter) do(fn func() error) {
	if w.err != nil {
		return
	}
	w.err = fn()
}

func (w *sheetWriter) set(sheet string, col, row int, v any) {
	w.do(func() error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return w.f.SetCellValue(sheet, cell, v)
	})
}

func (w *sheetWriter) style(sheet string, c1, r1, c2, r2 int, key string, st *excelize.Style) {
	w.do(func() error {
		id, ok := w.styles[key]
		if !ok {
			var err error
			if id, err = w.f.NewStyle(st); err != nil {
				return err
			}
			w.styles[key] = id
		}
		from, err := excelize.CoordinatesToCellName(c1, r1)
		if err != nil {
			return err
		}
		to, err := excelize.CoordinatesToCellName(c2, r2)
		if err != nil {
			return err
		}
		return w.f.SetCellStyle(sheet, from, to, id)
	})
}

func (w *sheetWriter) merge(sheet string, c1, r1, c2, r2 int) {
	w.do(func() error {
		from, err := excelize.CoordinatesToCellName(c1, r1)
		if err != nil {
			return err
		}
		to, err := excelize.CoordinatesToCellName(c2, r2)
		if err != nil {
			return err
		}
		return w.f.MergeCell(sheet, from, to)
	})
}

func (w *sheetWriter) colWidth(sheet string, col int, width float64) {
	w.do(func() error {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		return w.f.SetColWidth(sheet, name, name, width)
	})
}

func (w *sheetWriter) rowHeight(sheet string, row int, h float64) {
	w.do(func() error { return w.f.SetRowHeight(sheet, row, h) })
}

/* =========================================================
   SHEET 1: SUMMARY
   ========================================================= */

func (w *sheetWriter) writeSummary(recaps []model.StudentRecap, dates []civil.Date, meta model.Meta) {
	const sheet = SummarySheet

	w.merge(sheet, 1, 1, 6, 1)
	w.set(sheet, 1, 1, "REKAP ABSENSI - SUMMARY")
	w.style(sheet, 1, 1, 1, 1, "title18", titleStyle(18))
	w.rowHeight(sheet, 1, 30)

	info := [][2]string{
		{"Periode", meta.Period},
		{"Kelas", meta.Class},
		{"Mata Pelajaran", meta.SubjectOrMode},
	}
	for i, kv := range info {
		row := 3 + i
		w.set(sheet, 1, row, kv[0])
		w.set(sheet, 2, row, kv[1])
	}
	w.style(sheet, 1, 3, 1, 5, "infoKey", &excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "1F2937"},
		Fill: solidFill("E5E7EB"),
	})

	w.set(sheet, 1, summaryHeadRow, "Kategori")
	w.set(sheet, 2, summaryHeadRow, "Jumlah")
	w.style(sheet, 1, summaryHeadRow, 2, summaryHeadRow, "header", headerStyle())
	w.rowHeight(sheet, summaryHeadRow, 25)

	rows := []struct {
		label  string
		value  int
		status model.Status
	}{
		{"Total Siswa", len(recaps), model.StatusNone},
		{"Total Hari", len(dates), model.StatusNone},
	}
	totals := Totals(recaps)
	for _, st := range model.Statuses {
		rows = append(rows, struct {
			label  string
			value  int
			status model.Status
		}{st.Label(), totals[st], st})
	}

	for i, r := range rows {
		row := summaryHeadRow + 1 + i
		w.set(sheet, 1, row, r.label)
		w.set(sheet, 2, row, r.value)

		labelFont := &excelize.Font{Bold: true}
		if c, ok := statusColors[r.status]; ok {
			labelFont.Color = c[0]
		}
		w.style(sheet, 1, row, 1, row, "sumLabel"+string(r.status), &excelize.Style{
			Font:   labelFont,
			Border: thinBorder(),
		})
		w.style(sheet, 2, row, 2, row, "sumValue", &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Alignment: centered(),
			Border:    thinBorder(),
		})
	}

	w.colWidth(sheet, 1, 25)
	w.colWidth(sheet, 2, 15)
}

/* =========================================================
   SHEET 2: DETAIL
   ========================================================= */

func (w *sheetWriter) writeDetail(recaps []model.StudentRecap, dates []civil.Date, meta model.Meta) {
	const sheet = DetailSheet
	lastCol := 3 + len(dates) + len(detailTotalsOrder) + 2

	w.merge(sheet, 1, 1, lastCol, 1)
	w.set(sheet, 1, 1, "REKAP PRESENSI KELAS "+meta.Class)
	w.style(sheet, 1, 1, 1, 1, "title16", titleStyle(16))
	w.rowHeight(sheet, 1, 28)

	w.merge(sheet, 1, 2, lastCol, 2)
	w.set(sheet, 1, 2, fmt.Sprintf("%s - %s", strings.ToUpper(meta.SubjectOrMode), meta.Period))
	w.style(sheet, 1, 2, 1, 2, "subtitle", &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "1F2937"},
		Fill:      solidFill("DBEAFE"),
		Alignment: centered(),
	})
	w.rowHeight(sheet, 2, 22)

	headers := []string{"No", "NIS", "Nama Siswa"}
	for _, d := range dates {
		headers = append(headers, fmt.Sprintf("%d/%d", d.Day, int(d.Month)))
	}
	for _, st := range detailTotalsOrder {
		headers = append(headers, st.Label())
	}
	headers = append(headers, "Total", "%")
	for i, h := range headers {
		w.set(sheet, i+1, detailHeaderRow, h)
	}
	w.style(sheet, 1, detailHeaderRow, lastCol, detailHeaderRow, "header", headerStyle())
	w.rowHeight(sheet, detailHeaderRow, 25)

	totalsCol := 4 + len(dates)
	maxName := 0
	for i, r := range recaps {
		row := detailHeaderRow + 1 + i
		nis := r.StudentID
		if nis == "" {
			nis = "-"
		}
		w.set(sheet, 1, row, r.No)
		w.set(sheet, 2, row, nis)
		w.set(sheet, 3, row, r.Name)
		if n := utf8.RuneCountInString(r.Name); n > maxName {
			maxName = n
		}

		w.style(sheet, 1, row, lastCol, row, "cell", &excelize.Style{
			Alignment: centered(),
			Border:    thinBorder(),
		})
		w.style(sheet, 3, row, 3, row, "cellName", &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			Border:    thinBorder(),
		})

		for j, d := range dates {
			st := r.StatusOn(d)
			w.set(sheet, 4+j, row, st.Code())
			if c, ok := statusColors[st]; ok {
				w.style(sheet, 4+j, row, 4+j, row, "code"+string(st), &excelize.Style{
					Font:      &excelize.Font{Bold: true, Color: c[0]},
					Alignment: centered(),
					Border:    thinBorder(),
				})
			}
		}

		for k, st := range detailTotalsOrder {
			col := totalsCol + k
			w.set(sheet, col, row, r.Count(st))
			c := statusColors[st]
			w.style(sheet, col, row, col, row, "total"+string(st), &excelize.Style{
				Font:      &excelize.Font{Bold: true, Color: c[0]},
				Fill:      solidFill(c[1]),
				Alignment: centered(),
				Border:    thinBorder(),
			})
		}
		w.set(sheet, totalsCol+4, row, r.Total)
		w.set(sheet, totalsCol+5, row, fmt.Sprintf("%d%%", r.Percentage))
		w.style(sheet, totalsCol+4, row, totalsCol+5, row, "bold", &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Alignment: centered(),
			Border:    thinBorder(),
		})
	}

	w.colWidth(sheet, 1, 6)
	w.colWidth(sheet, 2, 12)
	w.colWidth(sheet, 3, float64(min(max(maxName+2, 20), 40)))
	for j := range dates {
		w.colWidth(sheet, 4+j, 6)
	}
	for k := 0; k < 5; k++ {
		w.colWidth(sheet, totalsCol+k, 8)
	}
	w.colWidth(sheet, totalsCol+5, 10)

	w.do(func() error {
		return w.f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			XSplit:      3,
			YSplit:      detailHeaderRow,
			TopLeftCell: "D5",
			ActivePane:  "bottomRight",
		})
	})
}

/* =========================================================
   Style helpers
   ========================================================= */

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func centered() *excelize.Alignment {
	return &excelize.Alignment{Horizontal: "center", Vertical: "center"}
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func titleStyle(size float64) *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: size, Color: "FFFFFF"},
		Fill:      solidFill("2563EB"),
		Alignment: centered(),
	}
}

func headerStyle() *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      solidFill("3B82F6"),
		Alignment: centered(),
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 2},
			{Type: "bottom", Color: "000000", Style: 2},
		},
	}
}
