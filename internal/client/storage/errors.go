package storage

import "errors"

var (
	// ErrAuthNotFound означает, что сессии нет (пользователь не входил или вышел)
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrStorageClosed возвращается при обращении к закрытому хранилищу
	ErrStorageClosed = errors.New("storage is closed")
)
