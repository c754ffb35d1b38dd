package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	taxonomyapp "github.com/morabaat/backend/internal/application/taxonomy"
)

// TaxonomyHandler serves the public location and category trees plus the
// admin CRUD for all five levels.
type TaxonomyHandler struct {
	BaseHandler
	taxonomies *taxonomyapp.Service
}

// NewTaxonomyHandler creates a TaxonomyHandler
func NewTaxonomyHandler(taxonomies *taxonomyapp.Service) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomies: taxonomies}
}

// RegisterRoutes mounts the public read endpoints
func (h *TaxonomyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/countries", h.ListCountries)
	rg.GET("/countries/:code", h.GetCountry)
	rg.GET("/countries/:code/cities", h.ListCitiesByCountryCode)
	rg.GET("/cities/:id/sub-areas", h.ListSubAreas)
	rg.GET("/categories", h.ListCategories)
	rg.GET("/categories/:slug", h.GetCategory)
	rg.GET("/categories/:slug/sub-categories", h.ListSubCategoriesBySlug)
}

// RegisterAdminRoutes mounts the taxonomy management endpoints
func (h *TaxonomyHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	countries := rg.Group("/countries")
	countries.POST("", h.CreateCountry)
	countries.PUT("/:id", h.UpdateCountry)
	countries.DELETE("/:id", h.DeleteCountry)

	cities := rg.Group("/cities")
	cities.POST("", h.CreateCity)
	cities.PUT("/:id", h.UpdateCity)
	cities.DELETE("/:id", h.DeleteCity)

	subAreas := rg.Group("/sub-areas")
	subAreas.POST("", h.CreateSubArea)
	subAreas.PUT("/:id", h.UpdateSubArea)
	subAreas.DELETE("/:id", h.DeleteSubArea)

	categories := rg.Group("/categories")
	categories.POST("", h.CreateCategory)
	categories.PUT("/:id", h.UpdateCategory)
	categories.DELETE("/:id", h.DeleteCategory)

	subCategories := rg.Group("/sub-categories")
	subCategories.POST("", h.CreateSubCategory)
	subCategories.PUT("/:id", h.UpdateSubCategory)
	subCategories.DELETE("/:id", h.DeleteSubCategory)

	rg.POST("/taxonomy/refresh-counts", h.RefreshCounts)
}

// ListCountries returns every country with its active company count
func (h *TaxonomyHandler) ListCountries(c *gin.Context) {
	views, err := h.taxonomies.ListCountries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// GetCountry looks a country up by its ISO-style code
func (h *TaxonomyHandler) GetCountry(c *gin.Context) {
	view, err := h.taxonomies.GetCountryByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ListCitiesByCountryCode returns a country's cities
func (h *TaxonomyHandler) ListCitiesByCountryCode(c *gin.Context) {
	country, err := h.taxonomies.GetCountryByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	views, err := h.taxonomies.ListCities(c.Request.Context(), country.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// ListSubAreas returns a city's sub-areas
func (h *TaxonomyHandler) ListSubAreas(c *gin.Context) {
	cityID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	views, err := h.taxonomies.ListSubAreas(c.Request.Context(), cityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// ListCategories returns the full category list
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	views, err := h.taxonomies.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// GetCategory looks a category up by slug
func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	view, err := h.taxonomies.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ListSubCategoriesBySlug returns a category's sub-categories
func (h *TaxonomyHandler) ListSubCategoriesBySlug(c *gin.Context) {
	category, err := h.taxonomies.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	views, err := h.taxonomies.ListSubCategories(c.Request.Context(), category.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// CreateCountry adds a country
func (h *TaxonomyHandler) CreateCountry(c *gin.Context) {
	var input taxonomyapp.CountryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.taxonomies.CreateCountry(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// UpdateCountry edits a country
func (h *TaxonomyHandler) UpdateCountry(c *gin.Context) {
	h.update(c, func(id uuid.UUID) (any, error) {
		var input taxonomyapp.CountryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return nil, bindError(err)
		}
		return h.taxonomies.UpdateCountry(c.Request.Context(), id, input)
	})
}

// DeleteCountry removes a country; refused while companies still use it
func (h *TaxonomyHandler) DeleteCountry(c *gin.Context) {
	h.delete(c, h.taxonomies.DeleteCountry)
}

// CreateCity adds a city under a country
func (h *TaxonomyHandler) CreateCity(c *gin.Context) {
	var input taxonomyapp.CityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.taxonomies.CreateCity(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// UpdateCity edits a city
func (h *TaxonomyHandler) UpdateCity(c *gin.Context) {
	h.update(c, func(id uuid.UUID) (any, error) {
		var input taxonomyapp.CityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return nil, bindError(err)
		}
		return h.taxonomies.UpdateCity(c.Request.Context(), id, input)
	})
}

// DeleteCity removes a city; refused while companies still use it
func (h *TaxonomyHandler) DeleteCity(c *gin.Context) {
	h.delete(c, h.taxonomies.DeleteCity)
}

// CreateSubArea adds a sub-area under a city
func (h *TaxonomyHandler) CreateSubArea(c *gin.Context) {
	var input taxonomyapp.SubAreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.taxonomies.CreateSubArea(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// UpdateSubArea edits a sub-area
func (h *TaxonomyHandler) UpdateSubArea(c *gin.Context) {
	h.update(c, func(id uuid.UUID) (any, error) {
		var input taxonomyapp.SubAreaInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return nil, bindError(err)
		}
		return h.taxonomies.UpdateSubArea(c.Request.Context(), id, input)
	})
}

// DeleteSubArea removes a sub-area; refused while companies still use it
func (h *TaxonomyHandler) DeleteSubArea(c *gin.Context) {
	h.delete(c, h.taxonomies.DeleteSubArea)
}

// CreateCategory adds a category
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var input taxonomyapp.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.taxonomies.CreateCategory(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// UpdateCategory edits a category
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	h.update(c, func(id uuid.UUID) (any, error) {
		var input taxonomyapp.CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return nil, bindError(err)
		}
		return h.taxonomies.UpdateCategory(c.Request.Context(), id, input)
	})
}

// DeleteCategory removes a category; refused while companies still use it
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	h.delete(c, h.taxonomies.DeleteCategory)
}

// CreateSubCategory adds a sub-category under a category
func (h *TaxonomyHandler) CreateSubCategory(c *gin.Context) {
	var input taxonomyapp.SubCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.taxonomies.CreateSubCategory(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// UpdateSubCategory edits a sub-category
func (h *TaxonomyHandler) UpdateSubCategory(c *gin.Context) {
	h.update(c, func(id uuid.UUID) (any, error) {
		var input taxonomyapp.SubCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return nil, bindError(err)
		}
		return h.taxonomies.UpdateSubCategory(c.Request.Context(), id, input)
	})
}

// DeleteSubCategory removes a sub-category; refused while companies still use it
func (h *TaxonomyHandler) DeleteSubCategory(c *gin.Context) {
	h.delete(c, h.taxonomies.DeleteSubCategory)
}

// RefreshCounts recomputes the denormalized company counters on demand
func (h *TaxonomyHandler) RefreshCounts(c *gin.Context) {
	if err := h.taxonomies.RefreshCounts(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *TaxonomyHandler) update(c *gin.Context, fn func(id uuid.UUID) (any, error)) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := fn(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

func (h *TaxonomyHandler) delete(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
