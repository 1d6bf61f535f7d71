package repositories

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ps-vitor/sales-events/backend/internal/domain"
)

// CSVSaleRepository keeps sales in a single CSV file with a
// Suburb,Address,Price header.
type CSVSaleRepository struct {
	path string
	mu   sync.RWMutex
}

func NewCSVSaleRepository(path string) *CSVSaleRepository {
	return &CSVSaleRepository{path: path}
}

func (r *CSVSaleRepository) Path() string {
	return r.path
}

// Begin truncates the file and writes the header.
func (r *CSVSaleRepository) Begin(ctx context.Context) (SaleWriter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Create(r.path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r.path, err)
	}

	w := csv.NewWriter(f)
	w.Write(domain.CSVHeader)
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &csvSaleWriter{repo: r, file: f, csv: w}, nil
}

// FindAll returns every data row. A file that does not exist yet holds no rows.
func (r *CSVSaleRepository) FindAll(ctx context.Context) ([]domain.SaleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.SaleRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(domain.CSVHeader)

	sales := []domain.SaleRecord{}
	for line := 0; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", r.path, err)
		}
		if line == 0 {
			continue
		}
		sales = append(sales, domain.SaleRecord{Suburb: rec[0], Address: rec[1], Price: rec[2]})
	}
	return sales, nil
}

type csvSaleWriter struct {
	repo *CSVSaleRepository
	file *os.File
	csv  *csv.Writer
}

// Save writes one row per sale and flushes, so rows of finished suburbs
// survive a crash later in the run.
func (w *csvSaleWriter) Save(ctx context.Context, sales []domain.SaleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(sales) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, s.Row())
	}
	return w.writeRows(rows)
}

func (w *csvSaleWriter) writeRows(rows [][]string) error {
	w.repo.mu.Lock()
	defer w.repo.mu.Unlock()

	if w.file == nil {
		return os.ErrClosed
	}
	for _, row := range rows {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

func (w *csvSaleWriter) Close() error {
	w.repo.mu.Lock()
	defer w.repo.mu.Unlock()

	if w.file == nil {
		return nil
	}
	w.csv.Flush()
	flushErr := w.csv.Error()
	closeErr := w.file.Close()
	w.file = nil
	return errors.Join(flushErr, closeErr)
}
