package service

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/attendance_recaps/model"
)

// GormExportLog menyimpan riwayat export ke tabel attendance_export_logs.
type GormExportLog struct {
	DB *gorm.DB
}

func NewGormExportLog(db *gorm.DB) *GormExportLog {
	return &GormExportLog{DB: db}
}

type exportSnapshot struct {
	Selector Selector  `json:"selector"`
	Range    DateRange `json:"range"`
	Orphans  int       `json:"orphans"`
	Unknown  int       `json:"unrecognized"`
}

// BuildExportLog menyusun baris log dari rekap yang diexport.
func BuildExportLog(r *Recap, fileName string) (*model.ExportLogModel, error) {
	snap, err := sonic.Marshal(exportSnapshot{
		Selector: r.Selector,
		Range:    r.Range,
		Orphans:  r.Orphans,
		Unknown:  len(r.Unrecognized),
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot selector: %w", err)
	}
	return &model.ExportLogModel{
		ExportLogClass:        r.Selector.Class,
		ExportLogSessionType:  string(r.Selector.SessionType),
		ExportLogSubject:      r.Selector.Subject,
		ExportLogPeriod:       r.PeriodLabel,
		ExportLogFileName:     fileName,
		ExportLogStudentCount: len(r.Recaps),
		ExportLogDateCount:    len(r.Dates),
		ExportLogSelector:     datatypes.JSON(snap),
	}, nil
}

func (l *GormExportLog) LogExport(ctx context.Context, r *Recap, fileName string) error {
	row, err := BuildExportLog(r, fileName)
	if err != nil {
		return err
	}
	return l.DB.WithContext(ctx).Create(row).Error
}

// List: riwayat export terbaru, opsional difilter per kelas.
func (l *GormExportLog) List(ctx context.Context, class string, limit, offset int) ([]model.ExportLogModel, int64, error) {
	q := l.DB.WithContext(ctx).Model(&model.ExportLogModel{})
	if class != "" {
		q = q.Where("export_log_class = ?", class)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ExportLogModel
	if err := q.Order("export_log_created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
