// Package handler contains HTTP handlers for the API.
// Handlers are responsible for:
// - Parsing and validating HTTP requests
// - Calling use case methods
// - Translating results into DTOs and HTTP responses
package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/response"
	"candlepin/src/app/middleware"
	"candlepin/src/app/translate"
)

func fail(c *gin.Context, err error) {
	response.FromDomainError(c, err, middleware.GetRequestID(c))
}

func badRequest(c *gin.Context, err error) {
	response.BadRequest(c, err.Error(), middleware.GetRequestID(c))
}

// render translates src and sends it with the given success writer.
func render[S, D any](c *gin.Context, mt *translate.ModelTranslator, src *S, send func(*gin.Context, any)) {
	out, err := translate.Translate[S, D](mt, src)
	if err != nil {
		fail(c, err)
		return
	}
	send(c, out)
}

// renderList translates items and sends the page selected by the query.
// Without a page parameter the whole list is returned.
func renderList[S, D any](c *gin.Context, mt *translate.ModelTranslator, items []*S) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}

	lo, hi := page.Bounds(len(items))
	out, err := translate.TranslateAll[S, D](mt, items[lo:hi])
	if err != nil {
		fail(c, err)
		return
	}
	if out == nil {
		out = []*D{}
	}
	if page.Page == 0 {
		response.OK(c, out)
		return
	}
	perPage := page.PerPage
	if perPage == 0 {
		perPage = dto.DefaultPerPage
	}
	response.Page(c, out, len(items), page.Page, perPage)
}

// splitList parses a comma separated query value.
func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// nonEmpty returns a pointer to v, or nil when v is empty.
func nonEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
