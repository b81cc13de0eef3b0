package userservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не зарегистрирован в UserService
	ErrUserNotFound = errors.New("userservice client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается, когда UserService недоступен.
	// Вызывающая сторона может продолжить без проверки пользователя.
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
