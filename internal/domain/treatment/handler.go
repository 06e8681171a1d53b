package treatment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lifespring/clinic/internal/platform/auth"
	"github.com/lifespring/clinic/pkg/pagination"
	"github.com/lifespring/clinic/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "doctor"))
	g.POST("/treatment-cycles", h.CreateCycle)
	g.PUT("/treatment-cycles/:id", h.UpdateCycle)
	g.DELETE("/treatment-cycles/:id", h.DeleteCycle)
	g.POST("/treatment-cycles/:id/advance-step", h.AdvanceStep)

	ro := api.Group("", auth.RequireRole("admin", "doctor", "receptionist", "patient"))
	ro.GET("/treatment-cycles", h.ListCycles)
	ro.GET("/treatment-cycles/:id", h.GetCycle)
	ro.GET("/treatment-cycles/:id/current-step", h.CurrentStep)
	ro.GET("/treatment-cycles/:id/timeline", h.TimelineForCycle)
	ro.GET("/treatment-steps", h.ListSteps)
	ro.GET("/treatment-plans/phases", h.SuggestPhases)
	ro.GET("/status-badges/:status", h.GetBadge)
}

func (h *Handler) CreateCycle(c echo.Context) error {
	var cycle TreatmentCycle
	if err := c.Bind(&cycle); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateCycle(c.Request().Context(), &cycle); err != nil {
		if errors.Is(err, ErrAgreementRequired) || errors.Is(err, ErrAgreementNotSigned) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, cycle)
}

func (h *Handler) GetCycle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cycle, err := h.svc.GetCycle(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "treatment cycle not found")
	}
	return respond.OK(c, cycle)
}

func (h *Handler) ListCycles(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := map[string]string{}
	for _, key := range []string{"patient_id", "doctor_id", "status", "treatment_type"} {
		if v := c.QueryParam(key); v != "" {
			params[key] = v
		}
	}
	items, total, err := h.svc.SearchCycles(c.Request().Context(), params, pg.Limit(), pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) UpdateCycle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var cycle TreatmentCycle
	if err := c.Bind(&cycle); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cycle.ID = id
	if err := h.svc.UpdateCycle(c.Request().Context(), &cycle); err != nil {
		if errors.Is(err, ErrCycleFinished) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, cycle)
}

func (h *Handler) DeleteCycle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteCycle(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AdvanceStep(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cycle, err := h.svc.AdvanceStep(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrCycleFinished) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, "treatment cycle not found")
	}
	return respond.OK(c, cycle)
}

func (h *Handler) CurrentStep(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	idx, stepID, err := h.svc.CurrentStepIndex(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "treatment cycle not found")
	}
	return respond.OK(c, map[string]interface{}{"index": idx, "step_id": stepID})
}

func (h *Handler) TimelineForCycle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var liveIndex *int
	if raw := c.QueryParam("stepIndex"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "stepIndex must be an integer")
		}
		liveIndex = &n
	}
	cycle, state, err := h.svc.State(c.Request().Context(), id, liveIndex)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "treatment cycle not found")
	}
	return respond.OK(c, Timeline(CatalogueFor(cycle.TreatmentType), state))
}

func (h *Handler) ListSteps(c echo.Context) error {
	treatmentType := c.QueryParam("treatmentType")
	catalogue := CatalogueFor(treatmentType)
	if catalogue == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "treatmentType must be IVF or IUI")
	}
	return respond.OK(c, catalogue)
}

func (h *Handler) SuggestPhases(c echo.Context) error {
	treatmentType := c.QueryParam("treatmentType")
	start, err := time.Parse("2006-01-02", c.QueryParam("startDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startDate must be YYYY-MM-DD")
	}
	phases, err := GeneratePhases(treatmentType, start)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, phases)
}

func (h *Handler) GetBadge(c echo.Context) error {
	return respond.OK(c, BadgeFor(c.Param("status")))
}
