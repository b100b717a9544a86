package matching

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/models"
)

var validate = validator.New()

// Register registers contractor matching routes
func Register(g *echo.Group) {
	g.POST("/:id/matches", ComputeMatches)
	g.GET("/:id/matches", GetMatches)
}

// ComputeMatches recomputes and stores matches for a contractor
func ComputeMatches(c echo.Context) error {
	ctx := c.Request().Context()

	contractorID := c.Param("id")
	if contractorID == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "contractor id is required")
	}

	var req models.ComputeMatchesRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, svc, err := ectoinject.GetContext[*matching.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	bundle, err := svc.ComputeMatches(ctx, contractorID, req.FocusArea)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bundle)
}

// GetMatches returns the stored partner matches for a contractor
func GetMatches(c echo.Context) error {
	ctx := c.Request().Context()

	contractorID := c.Param("id")
	if contractorID == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "contractor id is required")
	}

	ctx, svc, err := ectoinject.GetContext[*matching.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	matches, err := svc.GetMatches(ctx, contractorID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, matches)
}
