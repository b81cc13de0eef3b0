// Package pgerr классифицирует ошибки PostgreSQL, полученные через lib/pq
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL (SQLSTATE)
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeExclusionViolation   = "23P01"
	CodeForeignKeyViolation  = "23503"
	CodeUniqueViolation      = "23505"
	CodeCheckViolation       = "23514"
)

// Code возвращает SQLSTATE из цепочки ошибок или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsSerializationFailure true для ошибок, после которых транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}

// IsExclusionViolation true, если сработало ограничение EXCLUDE (пересечение интервалов комнаты)
func IsExclusionViolation(err error) bool {
	return Code(err) == CodeExclusionViolation
}

// IsForeignKeyViolation true при нарушении внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsUniqueViolation true при нарушении уникальности
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsCheckViolation true при нарушении CHECK-ограничения
func IsCheckViolation(err error) bool {
	return Code(err) == CodeCheckViolation
}
