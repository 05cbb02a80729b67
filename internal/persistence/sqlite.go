package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/terraincognita07/cyclia/internal/models"
)

type periodDayRow struct {
	Date  string `gorm:"primaryKey;size:10"`
	Level int    `gorm:"not null"`
}

func (periodDayRow) TableName() string { return "period_days" }

type sexEventRow struct {
	Date string `gorm:"primaryKey;size:10"`
	Note string
}

func (sexEventRow) TableName() string { return "sex_events" }

type settingsRow struct {
	ID          uint `gorm:"primaryKey"`
	CycleLength int  `gorm:"not null"`
	LutealPhase int  `gorm:"not null"`
	Theme       string
	UpdatedAt   time.Time
}

func (settingsRow) TableName() string { return "settings" }

// periodIntervalRow is the stored periods projection: written on every
// save for external tools, never read back by Load.
type periodIntervalRow struct {
	Start string `gorm:"primaryKey;size:10"`
	End   string `gorm:"size:10;not null"`
	Level int    `gorm:"not null"`
}

func (periodIntervalRow) TableName() string { return "period_intervals" }

// SQLite persists the snapshot in a sqlite database. Save replaces the
// whole snapshot inside one transaction, keeping the checkpoint atomic.
type SQLite struct {
	db       *gorm.DB
	defaults models.Settings
}

func OpenSQLite(dbPath string, defaults models.Settings) (*SQLite, error) {
	if !strings.Contains(dbPath, ":memory:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := database.AutoMigrate(&periodDayRow{}, &sexEventRow{}, &settingsRow{}, &periodIntervalRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot tables: %w", err)
	}

	return &SQLite{db: database, defaults: defaults}, nil
}

func (s *SQLite) Load() (models.Snapshot, error) {
	snapshot := emptySnapshot(s.defaults)

	var dayRows []periodDayRow
	if err := s.db.Find(&dayRows).Error; err != nil {
		return emptySnapshot(s.defaults), fmt.Errorf("load period days: %w", err)
	}
	for _, row := range dayRows {
		if row.Level > 0 {
			snapshot.PeriodLevels[row.Date] = row.Level
		}
	}

	var eventRows []sexEventRow
	if err := s.db.Order("date").Find(&eventRows).Error; err != nil {
		return emptySnapshot(s.defaults), fmt.Errorf("load sex events: %w", err)
	}
	for _, row := range eventRows {
		snapshot.SexEvents = append(snapshot.SexEvents, models.SexEvent{Date: row.Date, Note: row.Note})
	}

	var settings settingsRow
	err := s.db.First(&settings, 1).Error
	switch {
	case err == nil:
		snapshot.Settings = models.Settings{
			CycleLength: settings.CycleLength,
			LutealPhase: settings.LutealPhase,
			Theme:       settings.Theme,
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fresh database, keep defaults
	default:
		return emptySnapshot(s.defaults), fmt.Errorf("load settings: %w", err)
	}

	return normalize(snapshot, s.defaults), nil
}

func (s *SQLite) Save(snapshot models.Snapshot) error {
	snapshot = projectPeriods(snapshot)

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"period_days", "sex_events", "period_intervals"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for day, level := range snapshot.PeriodLevels {
			if level <= 0 {
				continue
			}
			if err := tx.Create(&periodDayRow{Date: day, Level: level}).Error; err != nil {
				return fmt.Errorf("store period day %s: %w", day, err)
			}
		}

		for _, event := range snapshot.SexEvents {
			if err := tx.Create(&sexEventRow{Date: event.Date, Note: event.Note}).Error; err != nil {
				return fmt.Errorf("store sex event %s: %w", event.Date, err)
			}
		}

		for _, interval := range snapshot.Periods {
			if err := tx.Create(&periodIntervalRow{Start: interval.Start, End: interval.End, Level: interval.Level}).Error; err != nil {
				return fmt.Errorf("store interval %s: %w", interval.Start, err)
			}
		}

		settings := settingsRow{
			ID:          1,
			CycleLength: snapshot.Settings.CycleLength,
			LutealPhase: snapshot.Settings.LutealPhase,
			Theme:       snapshot.Settings.Theme,
		}
		if err := tx.Save(&settings).Error; err != nil {
			return fmt.Errorf("store settings: %w", err)
		}
		return nil
	})
}
