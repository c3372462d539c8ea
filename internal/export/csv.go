package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/willfong/finfixture/internal/models"
)

// TransactionHeaders is the column layout of the transactions CSV
var TransactionHeaders = []string{"Date", "Account", "Merchant", "Category", "Amount", "Status"}

// CategorySeparator joins category levels in the CSV Category column
const CategorySeparator = " > "

// CSVWriter provides a buffered CSV writer over a file, an xz stream or any
// io.Writer. Quoting of commas, quotes and newlines follows RFC 4180.
type CSVWriter struct {
	closer   io.Closer
	buffer   *bufio.Writer
	writer   *csv.Writer
	path     string
	mu       sync.Mutex
	rowCount int64
	closed   bool
}

// CSVWriterConfig holds configuration for creating a CSV writer
type CSVWriterConfig struct {
	// Directory where the file will be created
	OutputDir string
	// Filename without extension (e.g., "transactions")
	Filename string
	// Column headers
	Headers []string
	// Buffer size in bytes (default: 64KB)
	BufferSize int
	// Enable xz compression (creates .csv.xz files)
	Compress bool
	// XZ compression preset 0-9 (default: 6)
	XZPreset int
}

// NewCSVWriter creates a CSV file and writes its headers.
// If Compress is true, output is piped through xz.
func NewCSVWriter(cfg CSVWriterConfig) (*CSVWriter, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var (
		underlying io.WriteCloser
		path       string
	)
	if cfg.Compress {
		xzw, err := NewXZWriter(XZWriterConfig{
			OutputDir: cfg.OutputDir,
			Filename:  cfg.Filename + ".csv",
			Preset:    cfg.XZPreset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		underlying, path = xzw, xzw.Path()
	} else {
		path = filepath.Join(cfg.OutputDir, cfg.Filename+".csv")
		file, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create file %s: %w", path, err)
		}
		underlying = file
	}

	cw, err := newCSVWriter(underlying, underlying, cfg.Headers, cfg.BufferSize)
	if err != nil {
		underlying.Close()
		return nil, err
	}
	cw.path = path
	return cw, nil
}

// NewCSVStreamWriter writes CSV to w. Close flushes but leaves w open.
func NewCSVStreamWriter(w io.Writer, headers []string) (*CSVWriter, error) {
	return newCSVWriter(w, nil, headers, 0)
}

func newCSVWriter(w io.Writer, closer io.Closer, headers []string, bufSize int) (*CSVWriter, error) {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	buffer := bufio.NewWriterSize(w, bufSize)
	cw := &CSVWriter{
		closer: closer,
		buffer: buffer,
		writer: csv.NewWriter(buffer),
	}

	if len(headers) > 0 {
		if err := cw.writer.Write(headers); err != nil {
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	return cw, nil
}

// WriteRow writes a single row. This method is thread-safe.
func (w *CSVWriter) WriteRow(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.rowCount++

	return nil
}

// WriteRows writes multiple rows. This method is thread-safe.
func (w *CSVWriter) WriteRows(rows [][]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	for _, row := range rows {
		if err := w.writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		w.rowCount++
	}

	return nil
}

// Close flushes remaining data and closes the underlying file, if any.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.closeUnderlying()
		return fmt.Errorf("csv flush error: %w", err)
	}

	if err := w.buffer.Flush(); err != nil {
		w.closeUnderlying()
		return fmt.Errorf("buffer flush error: %w", err)
	}

	return w.closeUnderlying()
}

func (w *CSVWriter) closeUnderlying() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// RowCount returns the number of data rows written (excludes header).
func (w *CSVWriter) RowCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rowCount
}

// Path returns the output file path, or "" for stream writers
func (w *CSVWriter) Path() string {
	return w.path
}

// TransactionRows projects added then modified transactions onto
// TransactionHeaders. Account is the account name when known.
func TransactionRows(result *models.GenerationResult) [][]string {
	names := make(map[string]string, len(result.Accounts))
	for _, a := range result.Accounts {
		names[a.AccountID] = a.Name
	}

	rows := make([][]string, 0, len(result.Added)+len(result.Modified))
	for _, feed := range [][]models.Transaction{result.Added, result.Modified} {
		for _, txn := range feed {
			rows = append(rows, transactionRow(txn, names))
		}
	}
	return rows
}

func transactionRow(txn models.Transaction, names map[string]string) []string {
	account, ok := names[txn.AccountID]
	if !ok {
		account = txn.AccountID
	}
	return []string{
		txn.Date,
		account,
		txn.MerchantName,
		strings.Join(txn.Category, CategorySeparator),
		FormatAmount(txn.Amount),
		FormatStatus(txn.Pending),
	}
}

// FormatAmount renders a dollar amount with exactly two decimals
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatStatus renders the pending flag as Pending or Posted
func FormatStatus(pending bool) string {
	if pending {
		return "Pending"
	}
	return "Posted"
}

// WriteTransactionsCSV writes the transactions CSV for result to w
func WriteTransactionsCSV(w io.Writer, result *models.GenerationResult) error {
	cw, err := NewCSVStreamWriter(w, TransactionHeaders)
	if err != nil {
		return err
	}
	if err := cw.WriteRows(TransactionRows(result)); err != nil {
		cw.Close()
		return err
	}
	return cw.Close()
}
