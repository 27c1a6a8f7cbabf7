package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/rafiq/internal/edition"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api/reader/packets"
	"github.com/Nixie-Tech-LLC/rafiq/internal/mushaf"
)

// CatalogModule mounts the public, read-only lookups: editions, page
// images, surah search and canonical page positions.
func CatalogModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/editions", listEditions)
		c.PUBLIC_GET("/editions/:id/pages/:page/image", pageImage)
		c.PUBLIC_GET("/surahs", searchSurahs)
		c.PUBLIC_GET("/sajdas", listSajdas)
		c.PUBLIC_GET("/positions/:page", locatePage)
	})
}

// GET /api/editions
func listEditions(ctx *gin.Context) (any, *api.APIError) {
	all := edition.All()
	out := make([]packets.EditionResponse, 0, len(all))
	for _, e := range all {
		out = append(out, packets.NewEditionResponse(e))
	}
	return out, nil
}

// GET /api/editions/:id/pages/:page/image
func pageImage(ctx *gin.Context) (any, *api.APIError) {
	ed, err := edition.Lookup(edition.ID(ctx.Param("id")))
	if err != nil {
		return nil, api.NotFound("unknown edition")
	}
	page, apiErr := intParam(ctx, "page")
	if apiErr != nil {
		return nil, apiErr
	}
	if !ed.Contains(page) {
		return nil, api.NotFound("page out of range for this edition")
	}
	return packets.PageImageResponse{Edition: string(ed.ID), Page: page, URL: edition.ImageURL(ed, page)}, nil
}

// GET /api/surahs?q=
func searchSurahs(ctx *gin.Context) (any, *api.APIError) {
	q := ctx.Query("q")
	if q == "" {
		return mushaf.Surahs(), nil
	}
	found := mushaf.SearchSurahs(q)
	if found == nil {
		found = []mushaf.Surah{}
	}
	return found, nil
}

// GET /api/sajdas
func listSajdas(ctx *gin.Context) (any, *api.APIError) {
	return mushaf.Sajdas(), nil
}

// GET /api/positions/:page
func locatePage(ctx *gin.Context) (any, *api.APIError) {
	page, apiErr := intParam(ctx, "page")
	if apiErr != nil {
		return nil, apiErr
	}
	if page < mushaf.FirstPage || page > mushaf.LastPage {
		return nil, api.BadRequest("page must be between 1 and 604")
	}
	return packets.NewPositionResponse(mushaf.Locate(page)), nil
}
