package samples

import (
	"context"
	"fmt"
	"strings"
	"time"

	"numune-katalog/internal/database"
	"numune-katalog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ColumnSource liste kolon ayarlarını sıralı döner.
type ColumnSource interface {
	Columns(ctx context.Context, entity string) ([]models.ColumnConfig, error)
}

const exportSheet = "Numuneler"

// VisibleColumns görünür kolonları ayar sırasıyla döner.
func VisibleColumns(cols []models.ColumnConfig) []models.ColumnConfig {
	out := make([]models.ColumnConfig, 0, len(cols))
	for _, c := range cols {
		if c.IsVisible {
			out = append(out, c)
		}
	}
	return out
}

// BuildWorkbook listeyi sadece görünür kolonlarla tek sheet'e yazar.
func BuildWorkbook(cols []models.ColumnConfig, items []models.SampleListItem) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c.DisplayName
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	if len(cols) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			f.Close()
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := f.SetCellStyle(exportSheet, "A1", last, style); err != nil {
			f.Close()
			return nil, err
		}
	}

	for r, item := range items {
		row := make([]interface{}, len(cols))
		for i, c := range cols {
			row[i] = item.Text(c.ColumnName)
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// GET /api/samples/export.xlsx?product_group=
func (h *Handler) Export() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cols, err := h.columns.Columns(c.UserContext(), database.SamplesEntity)
		if err != nil {
			return err
		}

		items, err := h.store.List(c.UserContext(), Filter{
			ProductGroup: strings.TrimSpace(c.Query("product_group")),
		})
		if err != nil {
			return err
		}

		f, err := BuildWorkbook(VisibleColumns(cols), items)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel oluşturulamadı: "+err.Error())
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel oluşturulamadı: "+err.Error())
		}

		filename := fmt.Sprintf("numuneler-%s.xlsx", time.Now().Format("20060102"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
