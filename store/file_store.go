package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"link_tracker/models"
)

// ErrUnwritable wraps every failure to persist the click log.
var ErrUnwritable = errors.New("click store unwritable")

var csvHeader = []string{"IP Address", "Timestamp", "User Agent"}

// FileStore keeps the click log in a JSON document and mirrors it to a CSV
// file. It holds no lock: concurrent load/append/save sequences can lose
// updates or record the same IP twice.
type FileStore struct {
	dataFile string
	csvFile  string
	logger   *zap.SugaredLogger

	// unreadable is set while the last Load hit a data file that exists but
	// could not be read. Save refuses to replace such a file.
	unreadable atomic.Bool
}

func NewFileStore(dataFile, csvFile string, logger *zap.SugaredLogger) *FileStore {
	return &FileStore{
		dataFile: dataFile,
		csvFile:  csvFile,
		logger:   logger,
	}
}

func (s *FileStore) DataFile() string { return s.dataFile }
func (s *FileStore) CSVFile() string  { return s.csvFile }

// Load reads the JSON document. A missing, unreadable or corrupt file yields
// an empty log.
func (s *FileStore) Load() models.ClickLog {
	data, err := os.ReadFile(s.dataFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.unreadable.Store(false)
			s.logger.Debugw("click data file not found, starting empty", "path", s.dataFile)
		} else {
			s.unreadable.Store(true)
			s.logger.Warnw("click data file unreadable, treating as empty", "path", s.dataFile, "error", err)
		}
		return models.NewClickLog()
	}
	s.unreadable.Store(false)

	var clickLog models.ClickLog
	if err := json.Unmarshal(data, &clickLog); err != nil {
		s.logger.Warnw("click data file is not valid JSON, treating as empty", "path", s.dataFile, "error", err)
		return models.NewClickLog()
	}

	if clickLog.Clicks == nil {
		clickLog.Clicks = []models.ClickRecord{}
	}
	return clickLog
}

// Save replaces the JSON document and then regenerates the CSV file. It
// will not replace a data file that exists but cannot be read.
func (s *FileStore) Save(clickLog models.ClickLog) error {
	if s.unreadable.Load() {
		return fmt.Errorf("%w: %s could not be read, refusing to replace it", ErrUnwritable, s.dataFile)
	}
	if err := checkReplaceable(s.dataFile); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritable, err)
	}

	if clickLog.Clicks == nil {
		clickLog.Clicks = []models.ClickRecord{}
	}

	data, err := json.MarshalIndent(clickLog, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrUnwritable, s.dataFile, err)
	}

	if err := writeFileAtomic(s.dataFile, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritable, err)
	}

	if err := writeFileAtomic(s.csvFile, func(f *os.File) error {
		return writeCSV(f, clickLog.Clicks)
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritable, err)
	}

	return nil
}

// checkReplaceable fails when path exists but is a directory or cannot be
// opened for reading.
func checkReplaceable(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("refusing to replace %s: %w", path, err)
	}
	return f.Close()
}

func writeCSV(f *os.File, clicks []models.ClickRecord) error {
	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, click := range clicks {
		userAgent := click.UserAgent
		if click.UserAgentMissing() {
			userAgent = "N/A"
		}
		if err := writer.Write([]string{click.IP, click.Timestamp, userAgent}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeFileAtomic writes path through a uniquely named temp file in the same
// directory and renames it into place, so readers see either the old or the
// new content in full and concurrent writers never share a temp file.
func writeFileAtomic(path string, write func(f *os.File) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmp := f.Name()

	var result *multierror.Error
	if err := write(f); err != nil {
		result = multierror.Append(result, fmt.Errorf("write %s: %w", tmp, err))
	}
	if err := f.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close %s: %w", tmp, err))
	}
	if result == nil {
		if err := os.Chmod(tmp, 0o644); err != nil {
			result = multierror.Append(result, fmt.Errorf("chmod %s: %w", tmp, err))
		}
	}
	if result == nil {
		if err := os.Rename(tmp, path); err != nil {
			result = multierror.Append(result, fmt.Errorf("rename %s: %w", tmp, err))
		}
	}

	if result != nil {
		if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
			result = multierror.Append(result, err)
		}
		result.ErrorFormat = inlineErrorFormat
	}
	return result.ErrorOrNil()
}

// inlineErrorFormat keeps aggregated errors on one line for structured logs.
func inlineErrorFormat(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
