package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
)
