package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// slotParam reads the :slotId route parameter
func slotParam(c *fiber.Ctx) (int, bool) {
	slotID, err := c.ParamsInt("slotId")
	if err != nil || slotID < 1 {
		return 0, false
	}
	return slotID, true
}

// uintParam reads a numeric route parameter as uint
func uintParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
