package database

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("kayıt bulunamadı")
	ErrReferenced = errors.New("kayıt başka yerde kullanılıyor")
	ErrConflict   = errors.New("kayıt zaten mevcut")
)

// Classify postgres hatasını uygulama hatasına çevirir. Sınıflanamayan hata aynen döner.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			// Foreign key violation
			return errors.WithMessage(ErrReferenced, pgErr.Message)
		case "23505":
			// Unique violation
			return errors.WithMessage(ErrConflict, pgErr.Message)
		}
	}
	return err
}

// IsTransient tekrar denenebilecek hataları ayırt eder.
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", // serialization_failure
		"40P01", // deadlock_detected
		"57P01": // admin_shutdown
		return true
	}
	// 08xxx: connection exception
	return strings.HasPrefix(pgErr.Code, "08")
}
