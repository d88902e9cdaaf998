package http

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

const maxImageBytes = 5 << 20

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  Acepta JSON o multipart/form-data con un archivo opcional "image".
// @Tags         products
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, image, err := parseProductRequest(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	if in.Name == "" || in.CategoryID == "" {
		return badRequest(c, "VALIDATION", "name e id_categories son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCategory godoc
// @Summary      Listar productos de una categoría
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id_categories  path  string  true  "ID de la categoría"
// @Success      200  {array}   dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/category/{id_categories} [get]
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ListByCategory(c.UserContext(), c.Params("id_categories"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	in, image, err := parseProductRequest(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProductRequest lee JSON o multipart. En multipart los campos llegan como texto.
func parseProductRequest(c *fiber.Ctx) (dto.ProductRequest, *dto.ImageUpload, error) {
	var in dto.ProductRequest
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&in); err != nil {
			return in, nil, fmt.Errorf("cuerpo inválido")
		}
		return in, nil, nil
	}

	in.Name = c.FormValue("name")
	in.Description = c.FormValue("description")
	in.CategoryID = c.FormValue("id_categories")
	if v := c.FormValue("price"); v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil {
			return in, nil, fmt.Errorf("price inválido")
		}
		in.Price = p
	}
	if v := c.FormValue("stock"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return in, nil, fmt.Errorf("stock inválido")
		}
		in.Stock = s
	}

	form, err := c.MultipartForm()
	if err != nil {
		return in, nil, fmt.Errorf("multipart inválido")
	}
	files := form.File["image"]
	if len(files) == 0 {
		return in, nil, nil
	}
	fh := files[0]
	if fh.Size > maxImageBytes {
		return in, nil, fmt.Errorf("image supera %d MB", maxImageBytes>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return in, nil, fmt.Errorf("image ilegible")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return in, nil, fmt.Errorf("image ilegible")
	}
	return in, &dto.ImageUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}
