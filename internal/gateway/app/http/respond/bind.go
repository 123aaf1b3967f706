package respond

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

const errDecodeBody = "decoding request body"

// BindJSON разбирает тело запроса. Пустое тело оставляет out нетронутым.
func BindJSON(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().JSON(out); err != nil {
		return fmt.Errorf("%s: %w", errDecodeBody, err)
	}
	return nil
}
