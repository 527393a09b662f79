package handler

import (
	"github.com/labstack/echo/v4"

	"mazhets/internal/usecase"
	"mazhets/pkg/errors"
	"mazhets/pkg/response"
)

type SavedHandler struct {
	savedUseCase *usecase.SavedUseCase
}

func NewSavedHandler(savedUseCase *usecase.SavedUseCase) *SavedHandler {
	return &SavedHandler{savedUseCase: savedUseCase}
}

func (h *SavedHandler) List(c echo.Context) error {
	return response.Success(c, h.savedUseCase.SavedListings(c.Request().Context()))
}

func (h *SavedHandler) Toggle(c echo.Context) error {
	listingID := c.Param("listingId")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	saved, err := h.savedUseCase.Toggle(c.Request().Context(), listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"saved": saved})
}

func (h *SavedHandler) Status(c echo.Context) error {
	listingID := c.Param("listingId")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	return response.Success(c, map[string]bool{
		"saved": h.savedUseCase.Contains(c.Request().Context(), listingID),
	})
}
