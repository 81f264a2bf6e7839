package logging

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"galab/internal/ga"
	"galab/internal/stats"
)

// Logger handles all run output and artifact saving
type Logger struct {
	csvPath     string
	jsonPath    string
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	console     io.Writer
	log         *logrus.Entry
	initialized bool
}

// NewLogger creates a new logger. console receives the per-generation
// progress lines and may be nil to run quietly.
func NewLogger(csvPath, jsonPath string, console io.Writer, log *logrus.Entry) (*Logger, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	l := &Logger{
		csvPath:  csvPath,
		jsonPath: jsonPath,
		console:  console,
		log:      log,
	}

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return l, nil
}

// Init initializes the log files
func (l *Logger) Init() error {
	var err error

	// Open CSV file
	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = csv.NewWriter(l.csvFile)

	// Write CSV header
	header := []string{"gen", "nevals", "avg", "std", "min", "max"}
	if err := l.csvWriter.Write(header); err != nil {
		return err
	}

	// Open JSON file
	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if l.console != nil {
		fmt.Fprintf(l.console, "%-6s %-8s %-14s %-14s %-14s %-14s\n", "gen", "nevals", "avg", "std", "min", "max")
	}

	l.initialized = true
	return nil
}

// Close closes all log files
func (l *Logger) Close() {
	if l.csvWriter != nil {
		l.csvWriter.Flush()
	}
	if l.csvFile != nil {
		l.csvFile.Close()
	}
	if l.jsonFile != nil {
		l.jsonFile.Close()
	}
}

// LogGeneration appends one record to the CSV and JSONL logs and prints it
func (l *Logger) LogGeneration(rec stats.Record) error {
	if !l.initialized {
		return nil
	}

	row := []string{
		strconv.Itoa(rec.Generation),
		strconv.Itoa(rec.Evaluations),
		strconv.FormatFloat(rec.Mean, 'g', -1, 64),
		strconv.FormatFloat(rec.Std, 'g', -1, 64),
		strconv.FormatFloat(rec.Min, 'g', -1, 64),
		strconv.FormatFloat(rec.Max, 'g', -1, 64),
	}
	if err := l.csvWriter.Write(row); err != nil {
		return err
	}
	l.csvWriter.Flush()
	if err := l.csvWriter.Error(); err != nil {
		return err
	}

	jsonLine, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := l.jsonFile.Write(append(jsonLine, '\n')); err != nil {
		return err
	}

	if l.console != nil {
		fmt.Fprintf(l.console, "%-6d %-8d %-14.6g %-14.6g %-14.6g %-14.6g\n",
			rec.Generation, rec.Evaluations, rec.Mean, rec.Std, rec.Min, rec.Max)
	}
	return nil
}

// LogTopK logs debug info for the top K hall-of-fame entries
func (l *Logger) LogTopK(hof *ga.HallOfFame, k int) {
	if k > hof.Len() {
		k = hof.Len()
	}
	for i := 0; i < k; i++ {
		ind := hof.At(i)
		l.log.WithFields(logrus.Fields{
			"rank":    i + 1,
			"fitness": ind.Fitness,
		}).Debug("hall of fame")
	}
}

// LoadRecords reads a JSONL generation log written by a Logger
func LoadRecords(path string) ([]stats.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var log []stats.Record
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec stats.Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		log = append(log, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return log, nil
}
