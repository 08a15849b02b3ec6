package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jihyekwon/scrapbook/internal/apperr"
	"github.com/jihyekwon/scrapbook/internal/domain"
	"github.com/jihyekwon/scrapbook/internal/dto"
	"github.com/jihyekwon/scrapbook/internal/storage"
)

// PostRouter exposes the post CRUD surface.
type PostRouter struct {
	e     *echo.Echo
	store storage.Store
}

func NewPostRouter(e *echo.Echo, store storage.Store) *PostRouter {
	return &PostRouter{e: e, store: store}
}

func (r *PostRouter) Bind() {
	g := r.e.Group("/api/posts")
	g.GET("", r.listHandler)
	g.GET("/:id", r.getHandler)
	g.POST("", r.createHandler)
	g.PUT("/:id", r.updateHandler)
	g.DELETE("/:id", r.deleteHandler)
	g.POST("/batch-delete", r.batchDeleteHandler)
}

// listHandler godoc
// @Summary List posts
// @Param category query string false "filter by category"
// @Success 200 {array} dto.Post
// @Router /api/posts [get]
func (r *PostRouter) listHandler(c echo.Context) error {
	ctx := c.Request().Context()

	rawCategory := c.QueryParam("category")
	if rawCategory == "" {
		posts, err := r.store.ListAll(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.FromDomainList(posts))
	}

	category := domain.Category(rawCategory)
	if !category.Valid() {
		return apperr.NewValidation("unknown category: " + rawCategory)
	}
	posts, err := r.store.ListByCategory(ctx, category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromDomainList(posts))
}

// getHandler godoc
// @Summary Get a post by id
// @Param id path string true "post id"
// @Success 200 {object} dto.Post
// @Router /api/posts/{id} [get]
func (r *PostRouter) getHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	post, err := r.store.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromDomain(post))
}

// createHandler godoc
// @Summary Create a post
// @Param post body dto.CreatePostRequest true "post payload"
// @Success 201 {object} dto.Post
// @Router /api/posts [post]
func (r *PostRouter) createHandler(c echo.Context) error {
	var req dto.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	post, err := r.store.Create(c.Request().Context(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.FromDomain(post))
}

// updateHandler godoc
// @Summary Partially update a post
// @Param id path string true "post id"
// @Param post body dto.UpdatePostRequest true "fields to change"
// @Success 200 {object} dto.Post
// @Router /api/posts/{id} [put]
func (r *PostRouter) updateHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	update := req.ToDomain()
	if update.Empty() {
		return apperr.NewValidation("no fields to update")
	}
	post, err := r.store.Update(c.Request().Context(), id, update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromDomain(post))
}

// deleteHandler godoc
// @Summary Delete a post
// @Param id path string true "post id"
// @Success 204
// @Router /api/posts/{id} [delete]
func (r *PostRouter) deleteHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := r.store.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// batchDeleteHandler godoc
// @Summary Delete several posts at once
// @Param ids body dto.BatchDeleteRequest true "post ids"
// @Success 200 {object} dto.BatchDeleteResponse
// @Router /api/posts/batch-delete [post]
func (r *PostRouter) batchDeleteHandler(c echo.Context) error {
	var req dto.BatchDeleteRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	count, err := r.store.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.BatchDeleteResponse{Count: count})
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.NewValidationWrap("invalid post id", err)
	}
	return id, nil
}
