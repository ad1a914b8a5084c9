package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Query-параметры приходят строками, парсим явно и отклоняем мусор
// вместо тихого приведения, иначе математика пагинации теряет смысл

// parsePositiveInt читает целочисленный параметр строго больше нуля
// Отсутствующий параметр заменяется значением по умолчанию
func parsePositiveInt(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}

	return value, nil
}

// parseOptionalFloat читает необязательный числовой параметр
// Возвращает nil, если параметр не передан
func parseOptionalFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}

	return &value, nil
}
