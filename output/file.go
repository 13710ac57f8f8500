package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/format"
)

// ErrWrite is returned when the output file could not be written.
var ErrWrite = errors.New("output file could not be written")

const timestampLayout = "20060102_150405"

// FileName returns <prefix>_<YYYYMMDD_HHMMSS>.csv for the given time.
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format(timestampLayout))
}

// File writes rows to a CSV file. The write is not atomic: a crash midway
// leaves a partial file behind.
type File struct {
	fileName  string
	log       core.Logger
	formatter *format.CSV
}

func NewFile(fileName string, logger core.Logger) *File {
	return &File{
		fileName:  fileName,
		log:       logger,
		formatter: format.NewCSV(),
	}
}

// Path returns the absolute path of the file if it can be resolved.
func (co *File) Path() string {
	abs, err := filepath.Abs(co.fileName)
	if err != nil {
		return co.fileName
	}
	return abs
}

// Write creates or truncates the file, writes the header and then every row
// in input order. It returns the number of data rows written.
func (co *File) Write(header core.Header, rows []core.Row) (int, error) {
	file, err := os.Create(co.fileName)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	n, err := co.formatter.Write(file, header, rows, nil)
	if err != nil {
		_ = file.Close()
		return n, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := file.Close(); err != nil {
		return n, fmt.Errorf("%w: file.Close: %w", ErrWrite, err)
	}

	co.log.Infof("successfully saved %d rows to %s", n, co.fileName)
	return n, nil
}
