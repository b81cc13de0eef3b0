package domain

import "math"

// Ограничения входных данных
const (
	MaxTitleLength        = 255
	MaxNameLength         = 255
	MaxDescriptionLength  = 2000
	MinAllocationQuantity = 1

	// MaxQuantity верхняя граница количеств, вместимости и числа участников (INTEGER в PostgreSQL)
	MaxQuantity = math.MaxInt32
)

// Форматы времени
const (
	TimeFormat        = "2006-01-02T15:04:05Z07:00" // RFC 3339
	DisplayTimeFormat = "2006-01-02 15:04"
)

// Роли пользователей (выставляются шлюзом аутентификации)
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
