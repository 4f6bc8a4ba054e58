package service

import (
	"context"
	"fmt"

	"github.com/atelierlab/aurum/internal/erp/production"
	"github.com/xuri/excelize/v2"
)

// ReportService 导出服务：生产看板xlsx
type ReportService struct {
	productionSvc *ProductionService
}

func NewReportService(productionSvc *ProductionService) *ReportService {
	return &ReportService{productionSvc: productionSvc}
}

var boardExportHeaders = []string{
	"Batch", "SKU", "Size", "Qty", "Type", "Order", "Customer", "Hours In Stage", "Delayed", "Notes",
}

// ExportBoard 导出整板：每道工序一个工作表
func (s *ReportService) ExportBoard(ctx context.Context) (*excelize.File, string, error) {
	boards, err := s.productionSvc.Board(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("组装看板失败: %w", err)
	}

	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	delayedStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#B91C1C", Bold: true},
	})

	for si, board := range boards {
		sheet := production.StageLabel(board.Stage)
		if si == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			f.NewSheet(sheet)
		}

		for i, h := range boardExportHeaders {
			col, _ := excelize.ColumnNumberToName(i + 1)
			cell := col + "1"
			f.SetCellValue(sheet, cell, h)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}

		row := 2
		for _, group := range board.Groups {
			for _, collection := range group.Collections {
				for _, b := range collection.Batches {
					orderID := ""
					if b.OrderID != nil {
						orderID = *b.OrderID
					}
					delayed := ""
					if b.IsDelayed {
						delayed = "YES"
					}
					values := []interface{}{
						b.BatchCode,
						b.SKU + b.VariantSuffix,
						b.SizeInfo,
						b.Quantity,
						b.Type,
						orderID,
						b.CustomerName,
						b.DiffHours,
						delayed,
						b.Notes,
					}
					for i, v := range values {
						col, _ := excelize.ColumnNumberToName(i + 1)
						f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
					}
					if b.IsDelayed {
						cell, _ := excelize.ColumnNumberToName(len(values))
						f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", cell, row), delayedStyle)
					}
					row++
				}
			}
		}
	}

	filename := "production-board.xlsx"
	return f, filename, nil
}
