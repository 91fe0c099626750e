package web

import (
	"net/url"
	"strings"

	"numune-katalog/internal/database"
	"numune-katalog/internal/models"
	"numune-katalog/internal/samples"
	"numune-katalog/internal/web/list"

	"github.com/gofiber/fiber/v2"
)

type headerLink struct {
	list.Header
	Href string
}

func viewStateFromQuery(c *fiber.Ctx) list.ViewState {
	v := list.NewViewState()
	if col := strings.TrimSpace(c.Query("sort")); col != "" {
		v.SortColumn = col
		v.SortAsc = c.Query("dir") != "desc"
	}
	v.GroupFilter = strings.TrimSpace(c.Query("group"))
	return v
}

// sortHref görünüm durumunu liste linkine çevirir.
func sortHref(v list.ViewState) string {
	q := url.Values{}
	q.Set("sort", v.SortColumn)
	if v.SortAsc {
		q.Set("dir", "asc")
	} else {
		q.Set("dir", "desc")
	}
	if v.GroupFilter != "" {
		q.Set("group", v.GroupFilter)
	}
	return "/?" + q.Encode()
}

// GET /?sort=model_kodu&dir=desc&group=Gömlek
func (p *Pages) ListPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		v := viewStateFromQuery(c)

		cols, err := p.ui.Columns(ctx, database.SamplesEntity)
		if err != nil {
			return err
		}
		items, err := p.samples.List(ctx, samples.Filter{})
		if err != nil {
			return err
		}
		groupCat, _ := models.FindLookupCategory("product_groups")
		groups, err := p.lookups.ListActive(ctx, groupCat)
		if err != nil {
			return err
		}

		table := list.Render(cols, items, v)

		headers := make([]headerLink, len(table.Headers))
		for i, h := range table.Headers {
			next := v
			next.Toggle(h.Column)
			headers[i] = headerLink{Header: h, Href: sortHref(next)}
		}

		return render(c, "list", fiber.Map{
			"Title":   "Numuneler",
			"Active":  "list",
			"Headers": headers,
			"Rows":    table.Rows,
			"Groups":  groups,
			"View":    v,
		})
	}
}
