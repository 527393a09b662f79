package handler

import (
	"github.com/labstack/echo/v4"

	"mazhets/internal/usecase"
	"mazhets/pkg/errors"
	"mazhets/pkg/response"
	"mazhets/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{listingUseCase: listingUseCase}
}

// Browse serves the merged local+remote view with query, category and
// subcategory filters applied.
func (h *ListingHandler) Browse(c echo.Context) error {
	params := usecase.BrowseParams{
		Query:       c.QueryParam("query"),
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
	}

	return response.Success(c, h.listingUseCase.Browse(c.Request().Context(), params))
}

func (h *ListingHandler) Publish(c echo.Context) error {
	var input usecase.PublishInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.Publish(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) Storefront(c echo.Context) error {
	sellerID := c.Param("sellerId")
	if sellerID == "" {
		return response.Error(c, errors.BadRequest("Seller ID is required", nil))
	}

	sortOrder := utils.GetSortParam(c, usecase.SortNewest, usecase.SortPriceAsc, usecase.SortPriceDesc)
	return response.Success(c, h.listingUseCase.Storefront(c.Request().Context(), sellerID, sortOrder))
}
