package samples

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"numune-katalog/internal/httperr"
	"numune-katalog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/spf13/cast"
)

// RequiredFields sunucu tarafında her zaman zorunlu olan alanlar
var RequiredFields = []string{
	"model_kodu",
	"product_group_id",
	"line_id",
	"fabric_type_id",
	"fabric_supplier_id",
	"fit_type_id",
	"sample_status_id",
}

// Payload: form ve API'den gelen ham gövde. Sayılar string ya da number gelebilir.
type Payload map[string]interface{}

type decoder struct {
	p       Payload
	invalid []string
}

func (d *decoder) present(key string) (interface{}, bool) {
	v, ok := d.p[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

// id: 0, "" ve null yok sayılır
func (d *decoder) id(key string) *uint {
	v, ok := d.present(key)
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr {
		v = strings.TrimSpace(s)
	}
	if !integral(v) {
		d.invalid = append(d.invalid, key)
		return nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil || n < 0 {
		d.invalid = append(d.invalid, key)
		return nil
	}
	if n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}

// integral: 1.5 gibi kesirli sayılar id olamaz
func integral(v interface{}) bool {
	switch f := v.(type) {
	case float64:
		return f == math.Trunc(f)
	case float32:
		return float64(f) == math.Trunc(float64(f))
	case json.Number:
		_, err := f.Int64()
		return err == nil
	}
	return true
}

func (d *decoder) text(key string) *string {
	v, ok := d.present(key)
	if !ok {
		return nil
	}
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return nil
	}
	return &s
}

// number: "12,5" gibi virgüllü değerler de kabul edilir
func (d *decoder) number(key string) *float64 {
	v, ok := d.present(key)
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr {
		v = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		d.invalid = append(d.invalid, key)
		return nil
	}
	return &f
}

// colors: color_ids esas alan, color_list eski istemciler için. Pozitif olmayan ve
// sayıya çevrilemeyen elemanlar atılır, tekrarlar ilk görülen sırayla tekilleşir.
func (d *decoder) colors() pq.Int64Array {
	raw, ok := d.present("color_ids")
	if !ok {
		raw, ok = d.present("color_list")
	}
	if !ok {
		return nil
	}

	var items []interface{}
	switch v := raw.(type) {
	case []interface{}:
		items = v
	case string:
		for _, part := range strings.Split(v, ",") {
			items = append(items, strings.TrimSpace(part))
		}
	default:
		items = []interface{}{v}
	}

	out := make(pq.Int64Array, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		n, err := cast.ToInt64E(it)
		if err != nil || n <= 0 {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

// Decode gövdeyi Sample'a çevirir. Zorunlu alan eksikse hiçbir şey döndürmeden
// eksik alan listesiyle 400 hatası verir.
func (p Payload) Decode() (models.Sample, error) {
	d := &decoder{p: p}

	model := d.text("model_kodu")
	productGroup := d.id("product_group_id")
	line := d.id("line_id")
	fabricType := d.id("fabric_type_id")
	fabricSupplier := d.id("fabric_supplier_id")
	fitType := d.id("fit_type_id")
	status := d.id("sample_status_id")

	s := models.Sample{
		ProductGroupID:          derefID(productGroup),
		LineID:                  derefID(line),
		FabricTypeID:            derefID(fabricType),
		FabricSupplierID:        derefID(fabricSupplier),
		FitTypeID:               derefID(fitType),
		SampleStatusID:          derefID(status),
		CollarTypeID:            d.id("collar_type_id"),
		DesignResponsibleID:     d.id("design_responsible_id"),
		ProductionResponsibleID: d.id("production_responsible_id"),
		FabricContent:           d.text("fabric_content"),
		FabricName:              d.text("fabric_name"),
		FabricWidth:             d.number("fabric_width"),
		FabricWeight:            d.number("fabric_weight"),
		ProductDescription:      d.text("product_description"),
		FabricUnitPrice:         d.number("fabric_unit_price"),
		PrintSupplier:           d.text("print_supplier"),
		EmbroiderySupplier:      d.text("embroidery_supplier"),
		DyeingSupplier:          d.text("dyeing_supplier"),
		ColorList:               d.colors(),
	}
	if model != nil {
		s.ModelKodu = *model
	}

	if missing := MissingRequired(s); len(missing) > 0 {
		return models.Sample{}, httperr.MissingFields(missing)
	}
	if len(d.invalid) > 0 {
		return models.Sample{}, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Geçersiz değer: %s", strings.Join(d.invalid, ", ")))
	}
	return s, nil
}

// MissingRequired zorunlu alanlardan boş olanları RequiredFields sırasıyla döner.
func MissingRequired(s models.Sample) []string {
	values := map[string]bool{
		"model_kodu":         s.ModelKodu != "",
		"product_group_id":   s.ProductGroupID != 0,
		"line_id":            s.LineID != 0,
		"fabric_type_id":     s.FabricTypeID != 0,
		"fabric_supplier_id": s.FabricSupplierID != 0,
		"fit_type_id":        s.FitTypeID != 0,
		"sample_status_id":   s.SampleStatusID != 0,
	}

	missing := make([]string, 0)
	for _, f := range RequiredFields {
		if !values[f] {
			missing = append(missing, f)
		}
	}
	return missing
}

// Overlay kayıtlı numunenin üzerine yalnızca gönderilen alanları yazar. Gönderilmeyen
// alanlar kayıttaki değeriyle kalır, color_ids gelirse color_list yerine geçer.
func Overlay(stored models.Sample, update Payload) (Payload, error) {
	raw, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	base := Payload{}
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, err
	}
	delete(base, "id")
	delete(base, "created_at")
	delete(base, "updated_at")

	for k, v := range update {
		base[k] = v
	}
	if _, ok := update["color_ids"]; ok {
		delete(base, "color_list")
	}
	return base, nil
}
