package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/viewpost-app/backend/pkg/assets"
)

// AssetHandler hands out asset reference tokens. Media bytes never pass
// through this service; clients upload to external storage and register
// the resulting URL here.
type AssetHandler struct {
	store assets.Store
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(store assets.Store) *AssetHandler {
	return &AssetHandler{store: store}
}

// RegisterAssetRoutes registers asset-related routes
func (h *AssetHandler) RegisterAssetRoutes(g *echo.Group) {
	g.POST("/assets", h.RegisterAsset)
	g.GET("/assets/:token", h.ResolveAsset)
}

// RegisterAssetRequest defines the request body for registering an asset
type RegisterAssetRequest struct {
	URL         string `json:"url" validate:"required,url"`
	ContentType string `json:"content_type" validate:"required"`
}

// RegisterAsset mints a reference token for an uploaded asset.
func (h *AssetHandler) RegisterAsset(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req RegisterAssetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ref, err := h.store.Register(c.Request().Context(), userID, req.URL, req.ContentType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, ref)
}

// ResolveAsset returns the record behind a reference token.
func (h *AssetHandler) ResolveAsset(c echo.Context) error {
	ref, err := h.store.Resolve(c.Request().Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Asset not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ref)
}
