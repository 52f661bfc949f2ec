package presenters

import "github.com/gofiber/fiber/v2"

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	resp := fiber.Map{
		"status":  "error",
		"message": message,
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	return c.Status(statusCode).JSON(resp)
}
