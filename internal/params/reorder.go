package params

import (
	"numune-katalog/internal/models"

	"github.com/pkg/errors"
)

var ErrInvalidOrder = errors.New("geçersiz sıralama")

// ValidateOrders sıralama isteğini kontrol eder: boş olamaz, id tekrar edemez,
// sort_order gönderim sırasıyla 1..n olmalı.
func ValidateOrders(orders []models.LookupOrder) error {
	if len(orders) == 0 {
		return errors.WithMessage(ErrInvalidOrder, "sıralama listesi boş")
	}

	seen := make(map[uint]struct{}, len(orders))
	for i, o := range orders {
		if o.ID == 0 {
			return errors.WithMessagef(ErrInvalidOrder, "%d. satırda id eksik", i+1)
		}
		if _, dup := seen[o.ID]; dup {
			return errors.WithMessagef(ErrInvalidOrder, "id %d birden fazla kez gönderildi", o.ID)
		}
		seen[o.ID] = struct{}{}

		if o.SortOrder != i+1 {
			return errors.WithMessagef(ErrInvalidOrder, "id %d için sort_order %d olmalı", o.ID, i+1)
		}
	}
	return nil
}

// OrdersFromIDs id listesini 1'den başlayan sıralamaya çevirir.
func OrdersFromIDs(ids []uint) []models.LookupOrder {
	orders := make([]models.LookupOrder, len(ids))
	for i, id := range ids {
		orders[i] = models.LookupOrder{ID: id, SortOrder: i + 1}
	}
	return orders
}
