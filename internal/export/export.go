package export

import (
	"bytes"
	"fmt"
	"strconv"

	"liftlog/internal/models"
	"liftlog/internal/repository/csvstore"

	"github.com/xuri/excelize/v2"
)

// SheetLog лист с журналом подходов
const SheetLog = "Журнал"

var logColumns = []struct {
	title string
	width float64
}{
	{"Дата", 12},
	{"Группа", 16},
	{"Упражнение", 28},
	{"Подход", 8},
	{"Вес", 8},
	{"Повторения", 12},
}

// CSVName имя файла журнала при отправке
func CSVName(chatID int64) string {
	return strconv.FormatInt(chatID, 10) + "_stats.csv"
}

// XLSXName имя Excel файла журнала
func XLSXName(chatID int64) string {
	return strconv.FormatInt(chatID, 10) + "_stats.xlsx"
}

// CSV журнал в том же виде, в каком он хранится на диске
func CSV(records []models.SetRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := csvstore.WriteRecords(&buf, records); err != nil {
		return nil, fmt.Errorf("ошибка формирования CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX книга Excel с одним листом журнала
func XLSX(records []models.SetRecord) ([]byte, error) {
	f, err := Workbook(records)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка записи книги: %w", err)
	}
	return buf.Bytes(), nil
}

// Workbook создаёт книгу с журналом подходов
func Workbook(records []models.SetRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fillLog(f, records); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillLog(f *excelize.File, records []models.SetRecord) error {
	if err := f.SetSheetName("Sheet1", SheetLog); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("ошибка создания стиля: %w", err)
	}

	header := make([]any, len(logColumns))
	var last string
	for i, c := range logColumns {
		header[i] = c.title
		if last, err = excelize.ColumnNumberToName(i + 1); err != nil {
			return err
		}
		if err := f.SetColWidth(SheetLog, last, last, c.width); err != nil {
			return fmt.Errorf("ширина колонки %s: %w", last, err)
		}
	}
	if err := f.SetSheetRow(SheetLog, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetLog, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("стиль заголовка: %w", err)
	}

	for i, r := range records {
		row := []any{r.Date.Format(models.DateLayout), r.Group, r.Exercise, r.Run, r.Weight, r.Reps}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetLog, cell, &row); err != nil {
			return fmt.Errorf("строка %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetLog, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("закрепление заголовка: %w", err)
	}
	return nil
}
