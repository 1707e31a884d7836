package dataloader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/SathwikBadda/Relai/internal/models"
)

var (
	// ErrNotFound means the data file or database does not exist
	ErrNotFound = errors.New("data file not found")

	// ErrDecodeFailed means every candidate encoding was exhausted
	ErrDecodeFailed = errors.New("unable to decode file with any supported encoding")

	// ErrUnsupportedFormat means the file extension maps to no known source kind
	ErrUnsupportedFormat = errors.New("unsupported data file format")
)

// Kind identifies the storage form behind a data path.
type Kind string

const (
	KindCSV    Kind = "csv"
	KindSQLite Kind = "sqlite"
)

// DetectSource inspects the file extension to decide how a data path should
// be read. The path must exist.
func DetectSource(path string) (Kind, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return KindCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Result is the unified view returned by Load. For CSV sources Records holds
// the parsed rows; for SQLite sources DatabasePath points at the store and
// callers query it directly.
type Result struct {
	Kind         Kind
	Records      []models.PropertyRecord
	DatabasePath string
}

type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Loader{logger: logger}
}

// Load detects the source kind behind path and returns the unified view.
// Any underlying failure is wrapped into a single load error carrying the
// original message.
func (l *Loader) Load(path string) (*Result, error) {
	kind, err := DetectSource(path)
	if err != nil {
		return nil, fmt.Errorf("error loading data: %w", err)
	}

	switch kind {
	case KindCSV:
		records, err := l.ReadCSV(path)
		if err != nil {
			return nil, fmt.Errorf("error loading data: %w", err)
		}
		return &Result{Kind: KindCSV, Records: records}, nil
	default:
		l.logger.WithField("path", path).Info("Using SQLite database")
		return &Result{Kind: KindSQLite, DatabasePath: path}, nil
	}
}

// ReadCSV parses a property CSV into records, trying candidate encodings in
// order. Rows that fail to parse are logged and skipped; the read never
// aborts because of one bad row.
func (l *Loader) ReadCSV(path string) ([]models.PropertyRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading property data: %w", err)
	}

	text, encName, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("error loading property data: %w", err)
	}

	records, err := ParseRecords(text, func(line int, rowErr error) {
		l.logger.WithError(rowErr).WithField("line", line).Warn("Skipping property row")
	})
	if err != nil {
		return nil, fmt.Errorf("error loading property data: %w", err)
	}

	l.logger.WithFields(logrus.Fields{
		"count":    len(records),
		"encoding": encName,
	}).Info("Loaded properties from CSV")

	return records, nil
}

// ParseRecords reads decoded CSV text into property records. The header row
// maps columns by name, so column order in the file does not matter. onErr
// is invoked for each skipped row.
func ParseRecords(text string, onErr func(line int, err error)) ([]models.PropertyRecord, error) {
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	colIx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		colIx[h] = i
	}

	var records []models.PropertyRecord
	line := 1
	for {
		line++
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if onErr != nil {
				onErr(line, fmt.Errorf("csv read: %w", err))
			}
			continue
		}

		record, err := parseRecord(colIx, rec)
		if err != nil {
			if onErr != nil {
				onErr(line, err)
			}
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRecord(colIx map[string]int, rec []string) (models.PropertyRecord, error) {
	get := func(col string) string {
		ix, ok := colIx[col]
		if !ok || ix >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[ix])
	}

	out := models.PropertyRecord{
		ProjectName:    stringOr(get("ProjectName"), models.DefaultProjectName),
		PropertyType:   stringOr(get("PropertyType"), models.DefaultPropertyType),
		Area:           stringOr(get("Area"), models.DefaultArea),
		PossessionDate: stringOr(get("PossessionDate"), models.DefaultPossessionDate),
		Configurations: get("Configurations"),
	}

	var err error
	if out.TotalUnits, err = intOr(get("TotalUnits"), models.DefaultTotalUnits); err != nil {
		return out, fmt.Errorf("TotalUnits: %w", err)
	}
	if out.AreaSizeAcres, err = floatOr(get("AreaSizeAcres"), models.DefaultAreaSizeAcres); err != nil {
		return out, fmt.Errorf("AreaSizeAcres: %w", err)
	}
	if out.MinSizeSqft, err = intOr(get("MinSizeSqft"), models.DefaultMinSizeSqft); err != nil {
		return out, fmt.Errorf("MinSizeSqft: %w", err)
	}
	if out.MaxSizeSqft, err = intOr(get("MaxSizeSqft"), models.DefaultMaxSizeSqft); err != nil {
		return out, fmt.Errorf("MaxSizeSqft: %w", err)
	}
	if out.PricePerSqft, err = intOr(get("PricePerSqft"), models.DefaultPricePerSqft); err != nil {
		return out, fmt.Errorf("PricePerSqft: %w", err)
	}

	return out, nil
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("invalid integer %q", v)
	}
	return n, nil
}

func floatOr(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("invalid number %q", v)
	}
	return f, nil
}

// SplitConfigurations turns the comma-joined label field into a clean label
// list. Empty input yields no labels.
func SplitConfigurations(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}
