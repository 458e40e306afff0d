// Package main provides the rekap CLI: offline export, migration and seeding.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	"sekolahku_backend/internals/features/school/attendance_recaps/dto"
	recapService "sekolahku_backend/internals/features/school/attendance_recaps/service"
	"sekolahku_backend/internals/helpers/dbtime"
	"sekolahku_backend/internals/seeds"
)

type exportFlags struct {
	class    string
	mode     string
	subject  string
	month    string // YYYY-MM
	semester string
	year     int
	from     string
	to       string
	out      string
}

var (
	exportOpts exportFlags

	seedStudents string
	seedTeachers string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rekap",
		Short:         "Rekap absensi sekolah (export xlsx, migrate, seed)",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configs.LoadEnv()
		},
	}
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd())
	return rootCmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export rekap presensi satu kelas ke file .xlsx",
		Example: `  rekap export --class 7A --month 2025-01
  rekap export --class 7A --mode subject --subject Matematika --semester ganjil --year 2025
  rekap export --class 7A --from 2025-01-06 --to 2025-01-31 --out ./exports`,
		RunE: runExportCmd,
	}
	f := cmd.Flags()
	f.StringVar(&exportOpts.class, "class", "", "kelas (wajib)")
	f.StringVar(&exportOpts.mode, "mode", "homeroom", "homeroom|subject")
	f.StringVar(&exportOpts.subject, "subject", "", "mata pelajaran (untuk mode subject)")
	f.StringVar(&exportOpts.month, "month", "", "bulan YYYY-MM")
	f.StringVar(&exportOpts.semester, "semester", "", "ganjil|genap")
	f.IntVar(&exportOpts.year, "year", 0, "tahun untuk --semester (default: tahun ini)")
	f.StringVar(&exportOpts.from, "from", "", "tanggal awal (YYYY-MM-DD)")
	f.StringVar(&exportOpts.to, "to", "", "tanggal akhir (YYYY-MM-DD)")
	f.StringVar(&exportOpts.out, "out", ".", "direktori output")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}

// query menerjemahkan flag ke RecapQuery (dipakai bersama dengan HTTP).
func (f exportFlags) query() (dto.RecapQuery, error) {
	q := dto.RecapQuery{
		Class:   f.class,
		Mode:    f.mode,
		Subject: f.subject,
		Year:    f.year,
	}

	set := 0
	if f.month != "" {
		set++
	}
	if f.semester != "" {
		set++
	}
	if f.from != "" || f.to != "" {
		set++
	}
	if set > 1 {
		return q, fmt.Errorf("pilih salah satu: --month, --semester, atau --from/--to")
	}

	switch {
	case f.month != "":
		y, m, ok := strings.Cut(f.month, "-")
		year, err1 := strconv.Atoi(y)
		month, err2 := strconv.Atoi(m)
		if !ok || err1 != nil || err2 != nil {
			return q, fmt.Errorf("--month harus berformat YYYY-MM, dapat %q", f.month)
		}
		q.Period, q.Year, q.Month = string(recapService.PeriodMonth), year, month
	case f.semester != "":
		q.Period, q.Semester = string(recapService.PeriodSemester), strings.ToLower(f.semester)
	case f.from != "" || f.to != "":
		q.Period, q.From, q.To = string(recapService.PeriodCustom), f.from, f.to
	default:
		q.Period = string(recapService.PeriodMonth)
	}
	return q, nil
}

func (f exportFlags) selector(today civil.Date) (recapService.Selector, error) {
	q, err := f.query()
	if err != nil {
		return recapService.Selector{}, err
	}
	return q.ToSelector(today)
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	log := configs.Log()

	sel, err := exportOpts.selector(dbtime.TodayIn(dbtime.Location(), time.Now()))
	if err != nil {
		return err
	}

	db, err := configs.InitCLIDB()
	if err != nil {
		return err
	}

	svc := recapService.NewRecapService(recapService.NewGormGateway(db), recapService.Options{
		Timeout:   configs.RecapConfig.Timeout,
		Logger:    log.Named("recap"),
		ExportLog: recapService.NewGormExportLog(db),
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	exp, err := svc.Export(ctx, sel)
	if err != nil {
		return fmt.Errorf("export gagal: %w", err)
	}

	if err := os.MkdirAll(exportOpts.out, 0o755); err != nil {
		return fmt.Errorf("buat direktori output: %w", err)
	}
	path := filepath.Join(exportOpts.out, exp.FileName)
	if err := os.WriteFile(path, exp.Content, 0o644); err != nil {
		return fmt.Errorf("tulis file: %w", err)
	}

	svc.LogExport(ctx, exp)

	log.Info("✅ Export selesai",
		zap.String("file", path),
		zap.Int("students", len(exp.Recap.Recaps)),
		zap.Int("dates", len(exp.Recap.Dates)),
		zap.Int("unrecognized", len(exp.Recap.Unrecognized)))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Buat/sesuaikan tabel students, teachers, attendance, attendance_export_logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := configs.InitCLIDB()
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			configs.Log().Info("✅ Migrasi selesai")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Isi data awal siswa & guru dari file JSON/YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := configs.InitCLIDB()
			if err != nil {
				return err
			}
			res, err := seeds.RunAllSeeds(db, seedStudents, seedTeachers)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "siswa: %d, guru: %d\n", res.Students, res.Teachers)
			return nil
		},
	}
	cmd.Flags().StringVar(&seedStudents, "students", seeds.DefaultStudentsFile, "file siswa (.json/.yaml)")
	cmd.Flags().StringVar(&seedTeachers, "teachers", seeds.DefaultTeachersFile, "file guru (.json/.yaml)")
	return cmd
}
