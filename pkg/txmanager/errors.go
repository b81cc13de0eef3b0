package txmanager

import "errors"

var (
	// ErrBeginTx возвращается, когда не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается, когда не удалось зафиксировать транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted возвращается, когда сериализуемая транзакция так и не прошла
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)
