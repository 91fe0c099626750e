package params

import (
	"fmt"
	"io"
	"strings"

	"numune-katalog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type ImportResult struct {
	Success        bool     `json:"success"`
	MatchedCount   int      `json:"matched_count"`
	UnmatchedNames []string `json:"unmatched_names"`
	Message        string   `json:"message"`
}

var turkishASCII = map[rune]rune{
	'ç': 'c',
	'ğ': 'g',
	'ı': 'i',
	'ö': 'o',
	'ş': 's',
	'ü': 'u',
}

// normalizeName: Türkçe kurallarla küçük harfe çevirir, Türkçe karakterleri ASCII yapar,
// boşlukları tekler. Örn: "  KIRIK  Beyaz " -> "kirik beyaz", "İPEK" -> "ipek"
func normalizeName(s string) string {
	lower := cases.Lower(language.Turkish).String(strings.TrimSpace(s))

	var b strings.Builder
	for _, r := range lower {
		if rep, ok := turkishASCII[r]; ok {
			b.WriteRune(rep)
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

var headerNames = map[string]struct{}{
	"ad":        {},
	"adi":       {},
	"isim":      {},
	"name":      {},
	"sira":      {},
	"parametre": {},
}

func isHeader(cell string) bool {
	n := normalizeName(cell)
	if _, ok := headerNames[n]; ok {
		return true
	}
	return strings.HasSuffix(n, " adi")
}

// ReadOrderSheet ilk sheet'in ilk kolonundaki isimleri sırasıyla okur.
// İlk satır başlıksa atlanır, boş satırlar geçilir.
func ReadOrderSheet(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("Excel dosyası okunamadı: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel dosyasında sheet bulunamadı")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("Sheet okunamadı: %w", err)
	}

	names := make([]string, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		if i == 0 && isHeader(name) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("Excel dosyası boş")
	}
	return names, nil
}

// BuildOrder dosyadaki isimleri mevcut satırlarla eşleştirir. Eşleşenler dosya sırasıyla
// başa, listede olmayan satırlar mevcut sıralarını koruyarak sona gelir.
func BuildOrder(rows []models.LookupRow, names []string) ([]models.LookupOrder, []string, int) {
	byName := make(map[string]uint, len(rows))
	for _, r := range rows {
		key := normalizeName(r.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = r.ID
		}
	}

	ids := make([]uint, 0, len(rows))
	placed := make(map[uint]bool, len(rows))
	unmatched := make([]string, 0)

	for _, name := range names {
		id, ok := byName[normalizeName(name)]
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}
		if placed[id] {
			continue
		}
		placed[id] = true
		ids = append(ids, id)
	}
	matched := len(ids)

	for _, r := range rows {
		if !placed[r.ID] {
			ids = append(ids, r.ID)
		}
	}

	return OrdersFromIDs(ids), unmatched, matched
}

// POST /api/params/:table/import-order
// XLSX dosyasındaki sıraya göre tabloyu yeniden sıralar
func (h *Handler) ImportOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := ResolveTable(c.Params("table"))
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		names, err := ReadOrderSheet(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rows, err := h.store.List(c.UserContext(), cat)
		if err != nil {
			return err
		}

		orders, unmatched, matched := BuildOrder(rows, names)
		if matched == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Dosyadaki isimlerin hiçbiri eşleşmedi")
		}

		if err := h.reorder(c, cat, orders); err != nil {
			return err
		}

		return c.JSON(ImportResult{
			Success:        true,
			MatchedCount:   matched,
			UnmatchedNames: unmatched,
			Message:        fmt.Sprintf("%d satır sıralandı. %d isim eşleşmedi.", matched, len(unmatched)),
		})
	}
}
