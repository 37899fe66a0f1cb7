package echo

import (
	"errors"
	"net/http"

	app "github.com/YaRavva/Fiction-Library-sub007/internal/application/library"
	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/labstack/echo/v4"
)

type InspectHandler struct {
	useCase app.Inspect
}

func NewInspectHandler(useCase app.Inspect) *InspectHandler {
	return &InspectHandler{useCase: useCase}
}

func (h *InspectHandler) Inspect(c echo.Context) error {
	rows, err := h.useCase.Execute(c.Request().Context(), app.InspectInput{
		Source: c.Param("source"),
		Filter: domain.Filter{
			Status: c.QueryParam("status"),
			Key:    c.QueryParam("key"),
		},
	})
	if err != nil {
		if errors.Is(err, app.ErrUnknownSource) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "unknown_source",
				Message: "source not found",
			}})
		}

		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to read rows",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: app.NewRowOutputs(rows)})
}

func (h *InspectHandler) ListSources(c echo.Context) error {
	return c.JSON(http.StatusOK, apiResponse{Data: h.useCase.Sources()})
}
