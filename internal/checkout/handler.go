package checkout

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/techmarket/storefront-backend/internal/cart"
	"github.com/techmarket/storefront-backend/internal/user"
)

// Handler is the checkout stub: it validates the posted cart snapshot behind
// the user session gate and hands back an order reference. No payment and no
// order persistence, by design.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/checkout", h.placeOrder)
}

type checkoutRequest struct {
	Items []cart.Item `json:"items"`
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	if !user.HasUserSession(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false, "message": "Unauthorized", "redirect": cart.LoginRoute,
		})
	}

	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if len(payload.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "cart cannot be empty"})
	}

	totalItems := 0
	totalPrice := 0
	for _, it := range payload.Items {
		if it.Quantity < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "quantity must be positive"})
		}
		if it.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "prices must be non-negative"})
		}
		totalItems += it.Quantity
		totalPrice += it.Price * it.Quantity
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"orderId":    uuid.NewString(),
		"totalItems": totalItems,
		"totalPrice": totalPrice,
		"placedAt":   time.Now().UTC().Format(time.RFC3339),
	})
}
