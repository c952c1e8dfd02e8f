package handler

import (
	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/response"
	"candlepin/src/app/translate"
	"candlepin/src/core/domain"
	"candlepin/src/core/usecase"
)

// ProductHandler serves the products and content of an owner.
type ProductHandler struct {
	productService *usecase.ProductService
	contentService *usecase.ContentService
	mt             *translate.ModelTranslator
}

func NewProductHandler(productService *usecase.ProductService, contentService *usecase.ContentService, mt *translate.ModelTranslator) *ProductHandler {
	return &ProductHandler{productService: productService, contentService: contentService, mt: mt}
}

// GET /owners/:key/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context(), c.Param("key"))
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.Product, dto.ProductDTO](c, h.mt, products)
}

// GET /owners/:key/products/:product_id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.productService.Get(c.Request.Context(), c.Param("key"), c.Param("product_id"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Product, dto.ProductDTO](c, h.mt, p, response.OK)
}

// POST /owners/:key/products
func (h *ProductHandler) Create(c *gin.Context) {
	p, ok := h.bindProduct(c)
	if !ok {
		return
	}
	created, err := h.productService.Create(c.Request.Context(), c.Param("key"), p)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Product, dto.ProductDTO](c, h.mt, created, response.Created)
}

// PUT /owners/:key/products/:product_id
func (h *ProductHandler) Update(c *gin.Context) {
	p, ok := h.bindProduct(c)
	if !ok {
		return
	}
	updated, err := h.productService.Update(c.Request.Context(), c.Param("key"), c.Param("product_id"), p)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Product, dto.ProductDTO](c, h.mt, updated, response.OK)
}

func (h *ProductHandler) bindProduct(c *gin.Context) (*domain.Product, bool) {
	var req dto.ProductDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return nil, false
	}
	p, err := translate.Translate[dto.ProductDTO, domain.Product](h.mt, &req)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return p, true
}

// GET /owners/:key/content
func (h *ProductHandler) ListContent(c *gin.Context) {
	content, err := h.contentService.List(c.Request.Context(), c.Param("key"))
	if err != nil {
		fail(c, err)
		return
	}
	renderList[domain.Content, dto.ContentDTO](c, h.mt, content)
}

// GET /owners/:key/content/:content_id
func (h *ProductHandler) GetContent(c *gin.Context) {
	content, err := h.contentService.Get(c.Request.Context(), c.Param("key"), c.Param("content_id"))
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Content, dto.ContentDTO](c, h.mt, content, response.OK)
}

// POST /owners/:key/content
func (h *ProductHandler) CreateContent(c *gin.Context) {
	var req dto.ContentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	content, err := translate.Translate[dto.ContentDTO, domain.Content](h.mt, &req)
	if err != nil {
		fail(c, err)
		return
	}

	created, err := h.contentService.Create(c.Request.Context(), c.Param("key"), content)
	if err != nil {
		fail(c, err)
		return
	}
	render[domain.Content, dto.ContentDTO](c, h.mt, created, response.Created)
}
