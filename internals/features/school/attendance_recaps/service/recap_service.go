package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	attModel "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance_recaps/model"
)

var (
	ErrInvalidSelector = errors.New("seleksi rekap tidak valid")
	ErrTimeout         = errors.New("rekap melewati batas waktu")
)

const homeroomLabel = "Presensi Harian"

// Selector: (kelas, jenis sesi, mapel, periode) yang dipilih pengguna.
type Selector struct {
	Class       string               `json:"class"`
	SessionType attModel.SessionType `json:"session_type"`
	Subject     *string              `json:"subject,omitempty"`
	Period      Period               `json:"period"`
}

// Normalize merapikan & memvalidasi selector.
func (s Selector) Normalize() (Selector, error) {
	s.Class = strings.TrimSpace(s.Class)
	if s.Class == "" {
		return s, fmt.Errorf("%w: kelas wajib diisi", ErrInvalidSelector)
	}
	st, ok := attModel.ParseSessionType(string(s.SessionType))
	if !ok {
		return s, fmt.Errorf("%w: jenis sesi %q", ErrInvalidSelector, s.SessionType)
	}
	s.SessionType = st

	switch st {
	case attModel.SessionSubject:
		if s.Subject == nil || strings.TrimSpace(*s.Subject) == "" {
			return s, fmt.Errorf("%w: mata pelajaran wajib diisi untuk presensi mapel", ErrInvalidSelector)
		}
		subj := strings.TrimSpace(*s.Subject)
		s.Subject = &subj
	default:
		s.Subject = nil
	}
	return s, nil
}

// Meta: label workbook untuk selector ini.
func (s Selector) Meta() model.Meta {
	m := model.Meta{Period: s.Period.Label(), Class: s.Class, SubjectOrMode: homeroomLabel}
	if s.SessionType == attModel.SessionSubject && s.Subject != nil {
		m.SubjectOrMode = *s.Subject
	}
	return m
}

func (s Selector) cacheKey(r DateRange) string {
	subj := ""
	if s.Subject != nil {
		subj = *s.Subject
	}
	return strings.Join([]string{s.Class, string(s.SessionType), subj, r.Start.String(), r.End.String()}, "|")
}

// Recap: hasil pipeline untuk satu selector (dipakai bersama lewat cache, read-only).
type Recap struct {
	Selector    Selector
	Range       DateRange
	PeriodLabel string
	AggregateResult
	GeneratedAt time.Time
}

func (r *Recap) Meta() model.Meta {
	return r.Selector.Meta()
}

// Export: workbook siap unduh.
type Export struct {
	FileName    string
	ContentType string
	Content     []byte
	Recap       *Recap
}

// ExportLogger mencatat export yang berhasil (opsional).
type ExportLogger interface {
	LogExport(ctx context.Context, r *Recap, fileName string) error
}

type Options struct {
	Timeout   time.Duration
	CacheTTL  time.Duration // 0 → tanpa cache
	CacheSize int
	Logger    *zap.Logger
	ExportLog ExportLogger
	Now       func() time.Time
}

type RecapService struct {
	gw        Gateway
	timeout   time.Duration
	log       *zap.Logger
	exportLog ExportLogger
	now       func() time.Time

	cache *expirable.LRU[string, *Recap]
	group singleflight.Group

	mu  sync.Mutex
	gen map[string]uint64 // generasi per kelas, naik setiap invalidasi

	Tracker *Tracker
}

func NewRecapService(gw Gateway, opts Options) *RecapService {
	s := &RecapService{
		gw:        gw,
		timeout:   opts.Timeout,
		log:       opts.Logger,
		exportLog: opts.ExportLog,
		now:       opts.Now,
		gen:       map[string]uint64{},
		Tracker:   NewTracker(),
	}
	if s.timeout <= 0 {
		s.timeout = 15 * time.Second
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.CacheTTL > 0 {
		size := opts.CacheSize
		if size <= 0 {
			size = 256
		}
		s.cache = expirable.NewLRU[string, *Recap](size, nil, opts.CacheTTL)
	}
	return s
}

// Build menjalankan fetch → normalisasi → agregasi. Semua fetch harus berhasil.
func (s *RecapService) Build(ctx context.Context, sel Selector) (*Recap, error) {
	sel, err := sel.Normalize()
	if err != nil {
		return nil, err
	}
	rng, err := sel.Period.Resolve()
	if err != nil {
		return nil, err
	}

	key := sel.cacheKey(rng)
	if s.cache != nil {
		if r, ok := s.cache.Get(key); ok {
			s.log.Debug("recap cache hit", zap.String("key", key))
			return r, nil
		}
	}

	// generasi masuk ke kunci singleflight: build setelah Invalidate tidak
	// boleh menumpang load yang dimulai sebelum data ditulis
	gen := s.generation(sel.Class)
	flightKey := key + "#" + strconv.FormatUint(gen, 10)
	ch := s.group.DoChan(flightKey, func() (any, error) {
		// dilepas dari pembatalan pemanggil pertama; tetap dibatasi timeout
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		r, err := s.load(lctx, sel, rng)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && s.generation(sel.Class) == gen {
			s.cache.Add(key, r)
		}
		return r, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Recap), nil
	}
}

func (s *RecapService) load(ctx context.Context, sel Selector, rng DateRange) (*Recap, error) {
	var (
		roster  []model.Student
		records []model.AttendanceRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.gw.FetchRoster(gctx, sel.Class)
		roster = r
		return err
	})
	g.Go(func() error {
		r, err := s.gw.FetchAttendance(gctx, AttendanceQuery{
			Class:       sel.Class,
			SessionType: sel.SessionType,
			Subject:     sel.Subject,
			Range:       rng,
		})
		records = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.classify(ctx, err)
	}

	res := Aggregate(roster, records)
	for _, u := range res.Unrecognized {
		s.log.Warn("⚠️ status absensi tidak dikenal, tidak dihitung",
			zap.String("class", sel.Class),
			zap.String("student_id", u.StudentID),
			zap.String("date", u.Date.String()),
			zap.String("raw", u.Raw))
	}
	if res.Orphans > 0 {
		s.log.Info("baris presensi tanpa siswa di roster dilewati",
			zap.String("class", sel.Class), zap.Int("rows", res.Orphans))
	}

	return &Recap{
		Selector:        sel,
		Range:           rng,
		PeriodLabel:     sel.Period.Label(),
		AggregateResult: res,
		GeneratedAt:     s.now(),
	}, nil
}

func (s *RecapService) classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ge *GatewayError
	if errors.As(err, &ge) || errors.Is(err, context.Canceled) {
		return err
	}
	return &GatewayError{Op: "fetch", Err: err}
}

// Export: Build + Render. Tidak ada workbook parsial bila fetch gagal.
// Riwayat export tidak ditulis di sini; pemanggil memanggil LogExport
// setelah yakin hasilnya benar-benar dikirim.
func (s *RecapService) Export(ctx context.Context, sel Selector) (*Export, error) {
	r, err := s.Build(ctx, sel)
	if err != nil {
		return nil, err
	}
	content, err := Render(r.Recaps, r.Dates, r.Meta())
	if err != nil {
		return nil, err
	}
	return &Export{
		FileName:    FileName(r.Selector.Class, r.PeriodLabel),
		ContentType: XLSXContentType,
		Content:     content,
		Recap:       r,
	}, nil
}

// LogExport mencatat export yang terkirim. Gagal mencatat hanya di-log.
func (s *RecapService) LogExport(ctx context.Context, exp *Export) {
	if s.exportLog == nil || exp == nil {
		return
	}
	if err := s.exportLog.LogExport(ctx, exp.Recap, exp.FileName); err != nil {
		s.log.Warn("gagal mencatat export log", zap.String("file", exp.FileName), zap.Error(err))
	}
}

// Invalidate membuang semua rekap ter-cache milik kelas (dipanggil setelah presensi ditulis).
func (s *RecapService) Invalidate(class string) int {
	class = strings.TrimSpace(class)
	s.mu.Lock()
	s.gen[class]++
	s.mu.Unlock()

	if s.cache == nil {
		return 0
	}
	prefix := class + "|"
	n := 0
	for _, k := range s.cache.Keys() {
		if strings.HasPrefix(k, prefix) {
			if s.cache.Remove(k) {
				n++
			}
		}
	}
	return n
}

func (s *RecapService) generation(class string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen[class]
}
