package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jihyekwon/scrapbook/internal/apperr"
	"github.com/jihyekwon/scrapbook/internal/dto"
	"github.com/jihyekwon/scrapbook/internal/search"
	"github.com/jihyekwon/scrapbook/internal/storage"
)

// SearchRouter exposes the multi-term search surface.
type SearchRouter struct {
	e          *echo.Echo
	aggregator *search.Aggregator
}

func NewSearchRouter(e *echo.Echo, store storage.Searcher) *SearchRouter {
	return &SearchRouter{
		e:          e,
		aggregator: search.NewAggregator(store),
	}
}

func (r *SearchRouter) Bind() {
	r.e.GET("/api/search", r.searchHandler)
}

// searchHandler godoc
// @Summary Multi-term search over titles, contents, and keywords
// @Param term query string true "comma-separated search terms"
// @Param tab query string false "all, title, or keyword (default all)"
// @Success 200 {object} dto.SearchResponse
// @Router /api/search [get]
func (r *SearchRouter) searchHandler(c echo.Context) error {
	terms := search.ParseTerms(c.QueryParam("term"))
	if len(terms) == 0 {
		return apperr.NewValidation("term parameter is required")
	}
	tab := search.ParseTab(c.QueryParam("tab"))

	result, err := r.aggregator.Search(c.Request().Context(), terms)
	if err != nil {
		// A failed fetch must not look like zero matches; the global
		// handler turns this into a retryable 5xx.
		return err
	}
	return c.JSON(http.StatusOK, dto.NewSearchResponse(result, tab))
}
