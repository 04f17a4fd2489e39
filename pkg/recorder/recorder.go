// Package recorder stores telemetry samples of simulation runs in SQLite.
package recorder

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opd-ai/go-glide/pkg/telemetry"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

const batchSize = 500

// ErrUnknownSession is returned when appending to a session that was never created
var ErrUnknownSession = errors.New("recorder: unknown session")

// Session is one recorded run
type Session struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string
	StartedAt time.Time
}

// SampleRow is the stored form of a telemetry sample
type SampleRow struct {
	ID              uint   `gorm:"primaryKey"`
	SessionID       string `gorm:"size:36;index"`
	Tick            uint64
	Time            float64
	State           string `gorm:"size:16"`
	Transitions     uint64
	Speed           float64
	MeasuredSpeed   float64
	Boost           float64
	BoostNormalized float64
	CanBoost        bool
	Bank            float64
	PosX            float64
	PosY            float64
	PosZ            float64
}

// Recorder is a handle to a recording database
type Recorder struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path and migrates the schema
func Open(path string) (*Recorder, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        batchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open recording database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// one connection keeps an in-memory database alive and serializes writes
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Session{}, &SampleRow{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate recording schema: %w", err)
	}
	return &Recorder{db: db}, nil
}

// NewSession starts a named recording session
func (r *Recorder) NewSession(name string) (Session, error) {
	s := Session{
		ID:        uuid.NewString(),
		Name:      name,
		StartedAt: time.Now().UTC(),
	}
	if err := r.db.Create(&s).Error; err != nil {
		return Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

// Sessions lists recorded sessions, oldest first
func (r *Recorder) Sessions() ([]Session, error) {
	var sessions []Session
	if err := r.db.Order("started_at").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// Append stores samples under a session in batches
func (r *Recorder) Append(sessionID string, samples []telemetry.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	var count int64
	if err := r.db.Model(&Session{}).Where("id = ?", sessionID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}

	rows := make([]SampleRow, len(samples))
	for i, s := range samples {
		rows[i] = toRow(sessionID, s)
	}
	if err := r.db.CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("failed to store samples: %w", err)
	}
	return nil
}

// Samples returns the samples of a session in the order they were appended.
// Ticks restart at zero when the simulation reloads, so they are not a sort key.
func (r *Recorder) Samples(sessionID string) ([]telemetry.Sample, error) {
	var rows []SampleRow
	if err := r.db.Where("session_id = ?", sessionID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}

	samples := make([]telemetry.Sample, len(rows))
	for i, row := range rows {
		samples[i] = row.sample()
	}
	return samples, nil
}

// Close releases the database
func (r *Recorder) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(sessionID string, s telemetry.Sample) SampleRow {
	return SampleRow{
		SessionID:       sessionID,
		Tick:            s.Tick,
		Time:            s.Time,
		State:           s.State,
		Transitions:     s.Transitions,
		Speed:           s.Speed,
		MeasuredSpeed:   s.MeasuredSpeed,
		Boost:           s.Boost,
		BoostNormalized: s.BoostNormalized,
		CanBoost:        s.CanBoost,
		Bank:            s.Bank,
		PosX:            s.Position[0],
		PosY:            s.Position[1],
		PosZ:            s.Position[2],
	}
}

func (row SampleRow) sample() telemetry.Sample {
	return telemetry.Sample{
		Tick:            row.Tick,
		Time:            row.Time,
		State:           row.State,
		Transitions:     row.Transitions,
		Speed:           row.Speed,
		MeasuredSpeed:   row.MeasuredSpeed,
		Boost:           row.Boost,
		BoostNormalized: row.BoostNormalized,
		CanBoost:        row.CanBoost,
		Bank:            row.Bank,
		Position:        [3]float64{row.PosX, row.PosY, row.PosZ},
	}
}
