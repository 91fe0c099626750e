// Package web sunucu tarafında çizilen yönetim sayfaları.
package web

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"strconv"

	"numune-katalog/internal/audit"
	"numune-katalog/internal/metrics"
	"numune-katalog/internal/models"
	"numune-katalog/internal/options"
	"numune-katalog/internal/params"
	"numune-katalog/internal/samples"
	"numune-katalog/internal/uiconfig"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// LookupStore parametre tabloları ve ada göre renk listesi
type LookupStore interface {
	params.Store
	ListByName(ctx context.Context, cat models.LookupCategory) ([]models.LookupRow, error)
}

type Pages struct {
	lookups LookupStore
	samples samples.Store
	ui      uiconfig.Store
	options *options.Aggregator
	audit   audit.Writer
	metrics *metrics.Metrics
}

func NewPages(lookups LookupStore, s samples.Store, ui uiconfig.Store, w audit.Writer, m *metrics.Metrics) *Pages {
	if w == nil {
		w = audit.Nop{}
	}
	return &Pages{
		lookups: lookups,
		samples: s,
		ui:      ui,
		options: options.NewAggregator(lookups),
		audit:   w,
		metrics: m,
	}
}

// Message sayfadaki bilgi alanı. OK yeşil, değilse kırmızı gösterilir.
type Message struct {
	Text string
	OK   bool
}

func okMessage(text string) *Message  { return &Message{Text: text, OK: true} }
func errMessage(text string) *Message { return &Message{Text: text} }

// NewEngine gömülü şablonlardan html engine kurar.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("idstr", func(id uint) string {
		return strconv.FormatUint(uint64(id), 10)
	})
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("derefInt", func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	})
	return engine
}

// Register sayfa rotalarını ekler.
func (p *Pages) Register(app fiber.Router) {
	app.Get("/", p.ListPage())
	app.Get("/form", p.FormPage())
	app.Post("/form", p.FormSubmit())
	app.Get("/columns", p.ColumnsPage())
	app.Post("/columns", p.ColumnsSubmit())
	app.Get("/params", p.ParamsPage())
	app.Post("/params", p.ParamsSubmit())
}

func render(c *fiber.Ctx, name string, data fiber.Map) error {
	return c.Render(name, data, "layout")
}

func queryID(c *fiber.Ctx) uint {
	id := c.QueryInt("id", 0)
	if id < 0 {
		return 0
	}
	return uint(id)
}
