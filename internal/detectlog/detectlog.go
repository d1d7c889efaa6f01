// Package detectlog reads and writes the detection log the camera pipeline
// keeps in SQLite, and derives emotion percentages from its recent rows.
package detectlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/garrettladley/moodwatch/internal/emotion"
)

const (
	driverName = "sqlite3"
	memoryDSN  = ":memory:"

	// Window is how many of the newest detections the percentages cover.
	Window = 10

	timeLayout = "03:04:05 PM"
	dayLayout  = "Monday"
	dateLayout = "2006-01-02"
)

var ErrReadOnly = errors.New("detectlog: log opened read-only")

type Detection struct {
	Name    string
	Emotion emotion.Emotion
	At      time.Time
}

type Log struct {
	db       *sql.DB
	readOnly bool
}

// OpenMemory creates an empty in-memory log.
func OpenMemory(ctx context.Context) (*Log, error) {
	return open(ctx, memoryDSN, false)
}

// Open opens or creates a log file and brings its schema up to date.
func Open(ctx context.Context, path string) (*Log, error) {
	return open(ctx, "file:"+path, false)
}

// OpenReadOnly opens an existing log, such as one written by the camera
// pipeline, without touching its schema.
func OpenReadOnly(ctx context.Context, path string) (*Log, error) {
	return open(ctx, "file:"+path+"?mode=ro", true)
}

func open(ctx context.Context, dsn string, readOnly bool) (*Log, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open detection log: %w", err)
	}
	// an in-memory database lives on a single connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open detection log: %w", err)
	}

	if !readOnly {
		if err := migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &Log{db: db, readOnly: readOnly}, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends a detection using the same column formats as the camera
// pipeline.
func (l *Log) Record(ctx context.Context, d Detection) error {
	if l.readOnly {
		return ErrReadOnly
	}
	if d.At.IsZero() {
		d.At = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		"INSERT INTO logs (name, emotion, time, day, date) VALUES (?, ?, ?, ?, ?)",
		d.Name,
		d.Emotion.String(),
		d.At.Format(timeLayout),
		d.At.Format(dayLayout),
		d.At.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record detection: %w", err)
	}
	return nil
}

// Recent returns the emotion column of the newest n rows, newest first.
func (l *Log) Recent(ctx context.Context, n int) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, "SELECT emotion FROM logs ORDER BY id DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var e sql.NullString
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		out = append(out, e.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read detections: %w", err)
	}
	return out, nil
}

// Stats returns, for every category, its share of the newest Window
// detections as a percentage. Rows with unrecognised emotions still count
// towards the total. An empty log yields all zeros.
func (l *Log) Stats(ctx context.Context) (emotion.Snapshot, error) {
	recent, err := l.Recent(ctx, Window)
	if err != nil {
		return nil, err
	}
	return Percentages(recent), nil
}

func Percentages(detections []string) emotion.Snapshot {
	counts := make(map[string]int, emotion.Count)
	for _, d := range detections {
		counts[d]++
	}

	out := make(emotion.Snapshot, emotion.Count)
	for _, e := range emotion.All {
		if len(detections) == 0 {
			out[e.String()] = 0
			continue
		}
		out[e.String()] = float64(counts[e.String()]) / float64(len(detections)) * 100
	}
	return out
}
