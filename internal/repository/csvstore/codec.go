package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"liftlog/internal/models"
	"liftlog/internal/training"
)

var (
	statsHeader   = []string{"chat_id", "date", "group", "exercise", "run", "weight", "reps"}
	catalogHeader = []string{"group", "exercise"}
)

// ErrMalformedRow строка CSV не соответствует схеме
var ErrMalformedRow = errors.New("некорректная строка CSV")

// WriteRecords пишет журнал подходов в CSV вместе с заголовком
func WriteRecords(w io.Writer, records []models.SetRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statsHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ChatID, 10),
			r.Date.Format(models.DateLayout),
			r.Group,
			r.Exercise,
			strconv.Itoa(r.Run),
			training.FormatNumber(r.Weight),
			training.FormatNumber(r.Reps),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRecords читает журнал подходов из CSV
func ReadRecords(r io.Reader) ([]models.SetRecord, error) {
	rows, err := readRows(r, len(statsHeader))
	if err != nil {
		return nil, err
	}

	records := make([]models.SetRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("строка %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (models.SetRecord, error) {
	chatID, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return models.SetRecord{}, fmt.Errorf("%w: chat_id %q", ErrMalformedRow, row[0])
	}
	date, err := models.ParseDay(row[1])
	if err != nil {
		return models.SetRecord{}, fmt.Errorf("%w: date %q", ErrMalformedRow, row[1])
	}
	run, err := strconv.Atoi(row[4])
	if err != nil {
		return models.SetRecord{}, fmt.Errorf("%w: run %q", ErrMalformedRow, row[4])
	}
	weight, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return models.SetRecord{}, fmt.Errorf("%w: weight %q", ErrMalformedRow, row[5])
	}
	reps, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return models.SetRecord{}, fmt.Errorf("%w: reps %q", ErrMalformedRow, row[6])
	}

	return models.SetRecord{
		ChatID:   chatID,
		Date:     date,
		Group:    row[2],
		Exercise: row[3],
		Run:      run,
		Weight:   weight,
		Reps:     reps,
	}, nil
}

// WriteCatalog пишет каталог упражнений в CSV
func WriteCatalog(w io.Writer, entries []models.CatalogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(catalogHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Group, e.Exercise}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCatalog читает каталог упражнений из CSV
func ReadCatalog(r io.Reader) ([]models.CatalogEntry, error) {
	rows, err := readRows(r, len(catalogHeader))
	if err != nil {
		return nil, err
	}
	entries := make([]models.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.CatalogEntry{Group: row[0], Exercise: row[1]})
	}
	return entries, nil
}

// readRows читает строки без заголовка, пустой файл даёт пустой результат
func readRows(r io.Reader, columns int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = columns

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}
