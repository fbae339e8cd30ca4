package storages

import "errors"

// Сентинельные ошибки хранилища; сервисный слой и обработчики
// сопоставляют их с HTTP-статусами
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrInvalidStatus      = errors.New("invalid withdrawal status")
	ErrSnapshotNotFound   = errors.New("market snapshot not found")
)
