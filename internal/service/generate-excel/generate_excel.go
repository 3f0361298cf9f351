package generate_excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"atelier-backend/internal/service/recompute"
)

type GenerateExcelService struct{}

func NewGenerateService() *GenerateExcelService {
	return &GenerateExcelService{}
}

// GenerateExcel собирает отчёт по результату пересчёта: лист по
// производителям и лист по браку.
func (g *GenerateExcelService) GenerateExcel(res *recompute.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	producersSheet := "Производители"
	f.SetSheetName("Sheet1", producersSheet)

	headers := []string{"Производитель", "Завершено", "В работе", "Заказано, шт", "Среднее время, дн"}
	for i, name := range headers {
		f.SetCellValue(producersSheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(producersSheet, "A1", cellName(len(headers), 1), headerStyle)

	for rowIdx, stat := range res.ProducerStats {
		rowNum := rowIdx + 2
		name := stat.Producer
		if name == "" {
			name = "— не назначен —"
		}
		f.SetCellValue(producersSheet, cellName(1, rowNum), name)
		f.SetCellValue(producersSheet, cellName(2, rowNum), stat.CompletedOrders)
		f.SetCellValue(producersSheet, cellName(3, rowNum), stat.InProgressOrders)
		f.SetCellValue(producersSheet, cellName(4, rowNum), stat.TotalOrdered)
		if stat.AvgCompletionDays != nil {
			f.SetCellValue(producersSheet, cellName(5, rowNum), *stat.AvgCompletionDays)
		} else {
			f.SetCellValue(producersSheet, cellName(5, rowNum), "-")
		}
	}

	// --- БРАК ---
	defectsSheet := "Брак"
	f.NewSheet(defectsSheet)

	// динамические колонки по производителям, как в отчёте по сотрудникам
	producerCols := make(map[string]int)
	defectHeaders := []string{"Причина", "Использовано, шт"}
	for _, d := range res.Defects {
		for producer := range d.ByProducer {
			if _, ok := producerCols[producer]; !ok {
				producerCols[producer] = len(defectHeaders) + len(producerCols) + 1
			}
		}
	}
	for i, name := range defectHeaders {
		f.SetCellValue(defectsSheet, cellName(i+1, 1), name)
	}
	for producer, colIdx := range producerCols {
		name := producer
		if name == "" {
			name = "— не назначен —"
		}
		f.SetCellValue(defectsSheet, cellName(colIdx, 1), name)
	}
	f.SetCellStyle(defectsSheet, "A1", cellName(len(defectHeaders)+len(producerCols), 1), headerStyle)

	for rowIdx, d := range res.Defects {
		rowNum := rowIdx + 2
		f.SetCellValue(defectsSheet, cellName(1, rowNum), d.Reason)
		f.SetCellValue(defectsSheet, cellName(2, rowNum), d.TotalDefectiveUsed)
		for producer, qty := range d.ByProducer {
			f.SetCellValue(defectsSheet, cellName(producerCols[producer], rowNum), qty)
		}
	}

	// итоговая строка: доля брака от подтверждённого раскроя
	pctRow := len(res.Defects) + 2
	f.SetCellValue(defectsSheet, cellName(1, pctRow), "Доля брака")
	f.SetCellValue(defectsSheet, cellName(2, pctRow), fmt.Sprintf("%.1f%%", res.DefectPercentage*100))

	f.SetPanes(producersSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(producersSheet, "A", colName(len(headers)), 18)
	f.SetColWidth(defectsSheet, "A", colName(len(defectHeaders)+len(producerCols)), 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
