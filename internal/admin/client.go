package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/techmarket/storefront-backend/internal/cart"
	"github.com/techmarket/storefront-backend/internal/product"
	"github.com/techmarket/storefront-backend/internal/user"
)

// Client talks to the storefront API with the session cookies a browser
// would carry. It backs the admin table and the cart drawer's session check.
type Client struct {
	baseURL      string
	adminSession string
	userSession  string
}

func NewClient(baseURL, adminSession, userSession string) *Client {
	return &Client{baseURL: baseURL, adminSession: adminSession, userSession: userSession}
}

type envelope struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Products []product.Product `json:"products"`
	Product  product.Product   `json:"product"`
	Path     string            `json:"path"`
}

// Products fetches the full catalog from the authenticated admin endpoint.
func (c *Client) Products() ([]product.Product, error) {
	a := fiber.Get(c.baseURL + "/api/admin/products")
	a.Cookie(user.AdminSessionCookie, c.adminSession)

	env, err := c.send(a)
	if err != nil {
		return nil, err
	}
	return env.Products, nil
}

// Update issues a partial update by slug and returns the server's canonical
// record.
func (c *Client) Update(slug string, patch product.Patch) (product.Product, error) {
	a := fiber.Patch(c.baseURL + "/api/admin/products/" + slug)
	a.Cookie(user.AdminSessionCookie, c.adminSession)
	a.JSON(patch)

	env, err := c.send(a)
	if err != nil {
		return product.Product{}, err
	}
	return env.Product, nil
}

// Delete removes a product by slug or id string.
func (c *Client) Delete(slugOrID string) error {
	a := fiber.Delete(c.baseURL + "/api/admin/products/" + slugOrID)
	a.Cookie(user.AdminSessionCookie, c.adminSession)

	_, err := c.send(a)
	return err
}

// Upload stores an image and returns the public path to reference it by.
func (c *Client) Upload(name string, data []byte) (string, error) {
	a := fiber.Post(c.baseURL + "/api/upload")
	a.Cookie(user.AdminSessionCookie, c.adminSession)
	a.FileData(&fiber.FormFile{Fieldname: "image", Name: name, Content: data})
	a.MultipartForm(nil)

	env, err := c.send(a)
	if err != nil {
		return "", err
	}
	return env.Path, nil
}

// CheckSession asks the server whether a user session exists. It satisfies
// cart.SessionChecker for the drawer's checkout gate.
func (c *Client) CheckSession(ctx context.Context) error {
	a := fiber.Get(c.baseURL + "/api/check-session")
	a.Cookie(user.UserSessionCookie, c.userSession)
	if err := a.Parse(); err != nil {
		return err
	}

	code, _, errs := a.Bytes()
	if len(errs) > 0 {
		return errs[0]
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("session check failed: status %d", code)
	}
	return nil
}

// SessionChecker exposes the client as the drawer's checkout gate.
func (c *Client) SessionChecker() cart.SessionChecker {
	return cart.SessionCheckerFunc(c.CheckSession)
}

func (c *Client) send(a *fiber.Agent) (envelope, error) {
	if err := a.Parse(); err != nil {
		return envelope{}, err
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return envelope{}, errs[0]
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, err
	}
	if code < 200 || code >= 300 || !env.Success {
		if env.Message != "" {
			return envelope{}, errors.New(env.Message)
		}
		return envelope{}, fmt.Errorf("request failed: status %d", code)
	}
	return env, nil
}
