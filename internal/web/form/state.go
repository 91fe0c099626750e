package form

import (
	"encoding/json"
	"fmt"
	"strings"

	"numune-katalog/internal/models"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

var (
	ErrAllColorsChosen = errors.New("Tüm renkler zaten eklendi.")
	ErrColorTaken      = errors.New("Bu renk başka bir satırda seçili.")
	ErrUnknownColor    = errors.New("Geçersiz renk")
	ErrNoSuchRow       = errors.New("Renk satırı bulunamadı")
)

// ColorRow: tek renk seçici. Options diğer satırlarda seçilmiş renkleri içermez.
type ColorRow struct {
	Selected uint
	Options  []Option
}

// State formun tek sayfa ömrü boyunca durumu. Mod NewState'te bir kez belirlenir.
type State struct {
	mode   Mode
	id     uint
	fields []Field
	values map[string]string
	colors []Option
	rows   []ColorRow
}

// NewState id > 0 ise düzenleme, değilse oluşturma modunda başlar.
func NewState(id uint, fields []Field, colors []models.LookupRow) *State {
	s := &State{
		mode:   ModeCreate,
		id:     id,
		fields: fields,
		values: map[string]string{},
		colors: toOptions(colors),
	}
	if id > 0 {
		s.mode = ModeEdit
	}
	return s
}

func (s *State) Mode() Mode { return s.mode }
func (s *State) ID() uint { return s.id }
func (s *State) Fields() []Field { return s.fields }
func (s *State) Rows() []ColorRow { return s.rows }
func (s *State) Colors() []Option { return s.colors }
func (s *State) IsEdit() bool { return s.mode == ModeEdit }

func (s *State) Value(col string) string {
	return s.values[col]
}

func (s *State) Set(column, value string) {
	s.values[column] = strings.TrimSpace(value)
}

// Prefill kayıtlı numuneyi forma yükler, renk satırlarını color_list'ten yeniden kurar.
// Artık olmayan renkler atlanır.
func (s *State) Prefill(sample models.Sample) error {
	raw, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}

	for _, f := range s.fields {
		v, ok := m[f.Column]
		if !ok || v == nil {
			s.values[f.Column] = ""
			continue
		}
		s.values[f.Column] = cast.ToString(v)
	}

	s.rows = nil
	known := make(map[uint]bool, len(s.colors))
	for _, c := range s.colors {
		known[c.ID] = true
	}
	seen := map[uint]bool{}
	for _, id := range sample.ColorList {
		cid := uint(id)
		if id <= 0 || !known[cid] || seen[cid] {
			continue
		}
		seen[cid] = true
		s.rows = append(s.rows, ColorRow{Selected: cid})
	}
	if len(s.rows) == 0 && len(s.colors) > 0 {
		s.rows = append(s.rows, ColorRow{})
	}
	s.resync()
	return nil
}

// resync her satırın seçeneklerini diğer satırlarda seçili olanlar hariç yeniden hesaplar.
func (s *State) resync() {
	for i := range s.rows {
		taken := make(map[uint]bool, len(s.rows))
		for j, r := range s.rows {
			if j != i && r.Selected != 0 {
				taken[r.Selected] = true
			}
		}

		opts := make([]Option, 0, len(s.colors))
		for _, c := range s.colors {
			if !taken[c.ID] {
				opts = append(opts, c)
			}
		}
		s.rows[i].Options = opts
	}
}

func (s *State) AddColorRow() error {
	if len(s.rows) >= len(s.colors) {
		return ErrAllColorsChosen
	}
	s.rows = append(s.rows, ColorRow{})
	s.resync()
	return nil
}

func (s *State) RemoveColorRow(i int) error {
	if i < 0 || i >= len(s.rows) {
		return ErrNoSuchRow
	}
	s.rows = append(s.rows[:i:i], s.rows[i+1:]...)
	s.resync()
	return nil
}

// SetColor satırın rengini değiştirir. 0 seçimi temizler.
func (s *State) SetColor(i int, colorID uint) error {
	if i < 0 || i >= len(s.rows) {
		return ErrNoSuchRow
	}
	if colorID != 0 {
		available := false
		for _, o := range s.rows[i].Options {
			if o.ID == colorID {
				available = true
				break
			}
		}
		if !available {
			for j, r := range s.rows {
				if j != i && r.Selected == colorID {
					return ErrColorTaken
				}
			}
			return ErrUnknownColor
		}
	}
	s.rows[i].Selected = colorID
	s.resync()
	return nil
}

// SelectedColors boş olmayan satırların renkleri, satır sırasıyla
func (s *State) SelectedColors() []uint {
	out := make([]uint, 0, len(s.rows))
	for _, r := range s.rows {
		if r.Selected != 0 {
			out = append(out, r.Selected)
		}
	}
	return out
}

// ValidationError zorunlu olup boş bırakılan alanların etiketleri
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Zorunlu alanlar boş: %s", strings.Join(e.Missing, ", "))
}

// Validate görünür zorunlu alanlar dolu mu kontrol eder.
func (s *State) Validate() error {
	var missing []string
	for _, f := range s.fields {
		if f.Required && s.values[f.Column] == "" {
			missing = append(missing, f.Label)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Payload sadece formdaki alanları ve color_ids'i içerir. Boş değerler null gider.
func (s *State) Payload() map[string]interface{} {
	p := make(map[string]interface{}, len(s.fields)+1)
	for _, f := range s.fields {
		v := s.values[f.Column]
		if v == "" {
			p[f.Column] = nil
			continue
		}
		p[f.Column] = v
	}

	ids := make([]interface{}, 0, len(s.rows))
	for _, id := range s.SelectedColors() {
		ids = append(ids, id)
	}
	p["color_ids"] = ids
	return p
}
