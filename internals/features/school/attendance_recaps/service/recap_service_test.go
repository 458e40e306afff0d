package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	attModel "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance_recaps/model"
)

type fakeGateway struct {
	roster    []model.Student
	records   []model.AttendanceRecord
	rosterErr error
	attErr    error
	block     chan struct{} // nil → langsung jawab

	rosterCalls atomic.Int32
	attCalls    atomic.Int32

	mu        sync.Mutex
	lastQuery AttendanceQuery
}

func (g *fakeGateway) FetchRoster(ctx context.Context, class string) ([]model.Student, error) {
	g.rosterCalls.Add(1)
	if g.rosterErr != nil {
		return nil, g.rosterErr
	}
	return g.roster, nil
}

func (g *fakeGateway) FetchAttendance(ctx context.Context, q AttendanceQuery) ([]model.AttendanceRecord, error) {
	g.attCalls.Add(1)
	g.mu.Lock()
	g.lastQuery = q
	g.mu.Unlock()

	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if g.attErr != nil {
		return nil, g.attErr
	}
	return g.records, nil
}

func (g *fakeGateway) query() AttendanceQuery {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastQuery
}

type fakeExportLog struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (l *fakeExportLog) LogExport(_ context.Context, _ *Recap, fileName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, fileName)
	return l.err
}

var fixedNow = time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)

func scenarioGateway() *fakeGateway {
	return &fakeGateway{
		roster: []model.Student{{ID: "S1", Name: "Ann"}, {ID: "S2", Name: "Budi"}},
		records: []model.AttendanceRecord{
			rec("S1", day(2025, 1, 2), "hadir"),
			rec("S1", day(2025, 1, 3), "sakit"),
			rec("S2", day(2025, 1, 2), "alpa"),
		},
	}
}

func homeroomJan(class string) Selector {
	return Selector{Class: class, SessionType: attModel.SessionHomeroom, Period: MonthPeriod(2025, 1)}
}

func TestBuild_Homeroom(t *testing.T) {
	gw := scenarioGateway()
	svc := NewRecapService(gw, Options{Now: func() time.Time { return fixedNow }})

	r, err := svc.Build(context.Background(), homeroomJan(" 7A "))
	require.NoError(t, err)

	assert.Equal(t, "7A", r.Selector.Class)
	assert.Equal(t, "Januari 2025", r.PeriodLabel)
	assert.Equal(t, DateRange{Start: day(2025, 1, 1), End: day(2025, 1, 31)}, r.Range)
	assert.Equal(t, fixedNow, r.GeneratedAt)
	require.Len(t, r.Recaps, 2)
	assert.Equal(t, 50, r.Recaps[0].Percentage)

	q := gw.query()
	assert.Equal(t, "7A", q.Class)
	assert.Equal(t, attModel.SessionHomeroom, q.SessionType)
	assert.Nil(t, q.Subject)
	assert.Equal(t, r.Range, q.Range)

	assert.Equal(t, model.Meta{Period: "Januari 2025", Class: "7A", SubjectOrMode: "Presensi Harian"}, r.Meta())
}

func TestBuild_SubjectMode(t *testing.T) {
	gw := scenarioGateway()
	svc := NewRecapService(gw, Options{})

	subj := " Matematika "
	r, err := svc.Build(context.Background(), Selector{
		Class: "7A", SessionType: "mapel", Subject: &subj, Period: SemesterPeriod(2025, "ganjil"),
	})
	require.NoError(t, err)

	q := gw.query()
	require.NotNil(t, q.Subject)
	assert.Equal(t, "Matematika", *q.Subject)
	assert.Equal(t, attModel.SessionSubject, q.SessionType)
	assert.Equal(t, "Matematika", r.Meta().SubjectOrMode)
}

func TestBuild_HomeroomIgnoresSubject(t *testing.T) {
	gw := scenarioGateway()
	svc := NewRecapService(gw, Options{})

	subj := "Matematika"
	sel := homeroomJan("7A")
	sel.Subject = &subj
	_, err := svc.Build(context.Background(), sel)
	require.NoError(t, err)
	assert.Nil(t, gw.query().Subject)
}

func TestBuild_InvalidSelector(t *testing.T) {
	gw := scenarioGateway()
	svc := NewRecapService(gw, Options{})

	bad := []Selector{
		{Class: "  ", Period: MonthPeriod(2025, 1)},
		{Class: "7A", SessionType: "weekly", Period: MonthPeriod(2025, 1)},
		{Class: "7A", SessionType: attModel.SessionSubject, Period: MonthPeriod(2025, 1)},
	}
	for _, sel := range bad {
		_, err := svc.Build(context.Background(), sel)
		assert.True(t, errors.Is(err, ErrInvalidSelector), "%+v → %v", sel, err)
	}

	_, err := svc.Build(context.Background(), Selector{Class: "7A", Period: MonthPeriod(2025, 13)})
	assert.True(t, errors.Is(err, ErrInvalidPeriod))

	assert.Zero(t, gw.rosterCalls.Load())
	assert.Zero(t, gw.attCalls.Load())
}

func TestBuild_GatewayFailureAborts(t *testing.T) {
	for name, gw := range map[string]*fakeGateway{
		"roster":     {rosterErr: &GatewayError{Op: "fetch roster", Err: errors.New("connection refused")}},
		"attendance": {attErr: errors.New("relation \"attendance\" does not exist")},
	} {
		t.Run(name, func(t *testing.T) {
			logs := &fakeExportLog{}
			svc := NewRecapService(gw, Options{ExportLog: logs})

			exp, err := svc.Export(context.Background(), homeroomJan("7A"))
			require.Error(t, err)
			assert.Nil(t, exp)

			var ge *GatewayError
			assert.True(t, errors.As(err, &ge), "error harus bisa dikenali sebagai GatewayError: %v", err)
			assert.Empty(t, logs.names)
		})
	}
}

func TestBuild_Timeout(t *testing.T) {
	gw := scenarioGateway()
	gw.block = make(chan struct{}) // tidak pernah dibuka
	svc := NewRecapService(gw, Options{Timeout: 30 * time.Millisecond})
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	start := time.Now()
	_, err := svc.Build(context.Background(), homeroomJan("7A"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestBuild_CallerCancel(t *testing.T) {
	gw := scenarioGateway()
	gw.block = make(chan struct{})
	svc := NewRecapService(gw, Options{Timeout: time.Second})
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := svc.Build(ctx, homeroomJan("7A"))
		errc <- err
	}()

	require.Eventually(t, func() bool { return gw.attCalls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("Build tidak kembali setelah context dibatalkan")
	}
	close(gw.block) // biarkan load di belakang selesai
}

func TestBuild_SingleflightSharesLoad(t *testing.T) {
	gw := scenarioGateway()
	gw.block = make(chan struct{})
	svc := NewRecapService(gw, Options{Timeout: 5 * time.Second})
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	const n = 5
	var (
		wg      sync.WaitGroup
		ready   sync.WaitGroup
		results = make([]*Recap, n)
		errs    = make([]error, n)
	)
	ready.Add(n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ready.Done()
			results[i], errs[i] = svc.Build(context.Background(), homeroomJan("7A"))
		}(i)
	}
	ready.Wait()
	require.Eventually(t, func() bool { return gw.attCalls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(gw.block)
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, int32(1), gw.attCalls.Load())
}

func TestBuild_CacheAndInvalidate(t *testing.T) {
	gw := scenarioGateway()
	svc := NewRecapService(gw, Options{CacheTTL: time.Minute, CacheSize: 8})

	r1, err := svc.Build(context.Background(), homeroomJan("7A"))
	require.NoError(t, err)
	r2, err := svc.Build(context.Background(), homeroomJan("7A"))
	require.NoError(t, err)
	assert.Same(t, r1, r2)
	assert.Equal(t, int32(1), gw.attCalls.Load())

	// kelas lain tidak ikut terhapus
	_, err = svc.Build(context.Background(), homeroomJan("7B"))
	require.NoError(t, err)
	assert.Equal(t, 0, svc.Invalidate("7C"))
	assert.Equal(t, 1, svc.Invalidate("7A"))

	r3, err := svc.Build(context.Background(), homeroomJan("7A"))
	require.NoError(t, err)
	assert.NotSame(t, r1, r3)
	assert.Equal(t, int32(3), gw.attCalls.Load())

	_, err = svc.Build(context.Background(), homeroomJan("7B"))
	require.NoError(t, err)
	assert.Equal(t, int32(3), gw.attCalls.Load(), "7B masih dari cache")
}

func TestBuild_CacheKeyIncludesSubjectAndRange(t *testing.T) {
	gw := scenarioGateway()
	svc := NewRecapService(gw, Options{CacheTTL: time.Minute})

	subj := "IPA"
	sels := []Selector{
		homeroomJan("7A"),
		{Class: "7A", SessionType: attModel.SessionSubject, Subject: &subj, Period: MonthPeriod(2025, 1)},
		{Class: "7A", Period: MonthPeriod(2025, 2)},
	}
	for _, sel := range sels {
		_, err := svc.Build(context.Background(), sel)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), gw.attCalls.Load())
}

func TestExport(t *testing.T) {
	gw := scenarioGateway()
	logs := &fakeExportLog{}
	svc := NewRecapService(gw, Options{ExportLog: logs})

	exp, err := svc.Export(context.Background(), homeroomJan("7A"))
	require.NoError(t, err)

	assert.Equal(t, "Rekap_Absensi_7A_Januari_2025.xlsx", exp.FileName)
	assert.Equal(t, XLSXContentType, exp.ContentType)
	assert.NotEmpty(t, exp.Content)
	assert.Empty(t, logs.names, "Export sendiri tidak menulis riwayat")

	svc.LogExport(context.Background(), exp)
	assert.Equal(t, []string{exp.FileName}, logs.names)

	f := openWorkbook(t, exp.Content)
	assert.Equal(t, "REKAP PRESENSI KELAS 7A", cell(t, f, DetailSheet, "A1"))
}

func TestExport_LogFailureIsNotFatal(t *testing.T) {
	logs := &fakeExportLog{err: errors.New("disk full")}
	svc := NewRecapService(scenarioGateway(), Options{ExportLog: logs})

	exp, err := svc.Export(context.Background(), homeroomJan("7A"))
	require.NoError(t, err)
	assert.NotPanics(t, func() { svc.LogExport(context.Background(), exp) })
	assert.Len(t, logs.names, 1)

	// tanpa ExportLog: no-op
	NewRecapService(scenarioGateway(), Options{}).LogExport(context.Background(), exp)
}

// versionedGateway: isi presensi bergantung pada versi data saat dibaca;
// fetch pertama ditahan sampai gate dibuka.
type versionedGateway struct {
	version  atomic.Int32
	gate     chan struct{}
	attCalls atomic.Int32
}

func (g *versionedGateway) FetchRoster(context.Context, string) ([]model.Student, error) {
	return []model.Student{{ID: "S1", Name: "Ann"}}, nil
}

func (g *versionedGateway) FetchAttendance(ctx context.Context, _ AttendanceQuery) ([]model.AttendanceRecord, error) {
	n := g.attCalls.Add(1)
	raw := "alpa"
	if g.version.Load() > 0 {
		raw = "hadir"
	}
	if n == 1 {
		select {
		case <-g.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []model.AttendanceRecord{rec("S1", day(2025, 1, 2), raw)}, nil
}

func TestBuild_AfterInvalidateDoesNotJoinOlderLoad(t *testing.T) {
	gw := &versionedGateway{gate: make(chan struct{})}
	svc := NewRecapService(gw, Options{Timeout: 5 * time.Second, CacheTTL: time.Minute})

	type result struct {
		r   *Recap
		err error
	}
	first := make(chan result, 1)
	go func() {
		r, err := svc.Build(context.Background(), homeroomJan("7A"))
		first <- result{r, err}
	}()
	require.Eventually(t, func() bool { return gw.attCalls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// presensi disimpan ketika load pertama masih berjalan
	gw.version.Store(1)
	svc.Invalidate("7A")

	after, err := svc.Build(context.Background(), homeroomJan("7A"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), gw.attCalls.Load(), "build setelah invalidasi harus fetch ulang")
	assert.Equal(t, 1, after.Recaps[0].Present)
	assert.Equal(t, 0, after.Recaps[0].Absent)

	close(gw.gate)
	old := <-first
	require.NoError(t, old.err)
	assert.Equal(t, 1, old.r.Recaps[0].Absent, "load lama tetap melihat data lama")

	// hasil lama tidak menimpa cache
	again, err := svc.Build(context.Background(), homeroomJan("7A"))
	require.NoError(t, err)
	assert.Same(t, after, again)
	assert.Equal(t, int32(2), gw.attCalls.Load())
}
