package product

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ImageSaver stores an uploaded image and returns the public path it is
// reachable under. Satisfied by upload.Saver.
type ImageSaver interface {
	Save(name string, data []byte) (string, error)
}

type Handler struct {
	service *Service
	images  ImageSaver
}

func NewHandler(service *Service, images ImageSaver) *Handler {
	return &Handler{service: service, images: images}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products", h.getProducts)
	app.Post("/api/products/add", h.addProduct)
	app.Get("/api/products/:slug", h.getProduct)
}

// RegisterAdminRoutes attaches the product CRUD used by the admin table.
// The router is expected to carry the admin session guard already.
func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Get("/products", h.getProductsAdmin)
	admin.Patch("/products/:slug", h.updateProduct)
	admin.Delete("/products/:slug", h.deleteProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "products": h.service.List()})
}

func (h *Handler) getProductsAdmin(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "products": h.service.List()})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, ok := h.service.Resolve(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Not found"})
	}
	return c.JSON(fiber.Map{"success": true, "product": p})
}

// addProduct is the public multipart add flow: image files are stored first,
// then the product record is created with the returned paths.
func (h *Handler) addProduct(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	name := formValue(form, "name")
	category := formValue(form, "category")
	condition := formValue(form, "condition")
	priceStr := formValue(form, "price")
	specs := formValue(form, "specs")
	files := form.File["images"]

	if name == "" || category == "" || condition == "" || priceStr == "" || specs == "" || len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Missing required fields"})
	}

	price, err := strconv.Atoi(priceStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid price"})
	}

	paths := make(ImageList, 0, len(files))
	for _, fh := range files {
		data, err := readFormFile(fh)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
		}
		path, err := h.images.Save(fh.Filename, data)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
		}
		paths = append(paths, path)
	}

	created, err := h.service.Create(Product{
		Name:      name,
		Category:  category,
		Condition: condition,
		Price:     price,
		Specs:     specs,
		Images:    paths,
	})
	if err != nil {
		switch err {
		case ErrInvalidCondition, ErrNegativePrice, ErrNoImages:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "product": created})
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	patch := new(Patch)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	updated, ok := h.service.UpdateBySlug(c.Params("slug"), *patch)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Not found"})
	}
	return c.JSON(fiber.Map{"success": true, "product": updated})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if !h.service.DeleteBySlug(c.Params("slug")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func formValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
