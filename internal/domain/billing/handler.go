package billing

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lifespring/clinic/internal/platform/auth"
	"github.com/lifespring/clinic/pkg/pagination"
	"github.com/lifespring/clinic/pkg/respond"
)

type Handler struct {
	svc           *Service
	clinic        ClinicInfo
	webhookSecret string
}

func NewHandler(svc *Service, clinic ClinicInfo, webhookSecret string) *Handler {
	return &Handler{svc: svc, clinic: clinic, webhookSecret: webhookSecret}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "receptionist"))
	g.POST("/transactions", h.CreateTransaction)
	g.POST("/transactions/:id/cancel", h.CancelTransaction)
	g.GET("/transactions/export", h.Export)

	ro := api.Group("", auth.RequireRole("admin", "doctor", "receptionist", "patient"))
	ro.GET("/transactions", h.ListTransactions)
	ro.GET("/transactions/:id", h.GetTransaction)
	ro.GET("/transactions/:id/invoice", h.GetInvoice)
	ro.GET("/cryo-contracts", h.ListContracts)
	ro.GET("/cryo-contracts/:id", h.GetContract)

	staff := api.Group("", auth.RequireRole("admin", "doctor"))
	staff.POST("/cryo-contracts", h.CreateContract)
	staff.PUT("/cryo-contracts/:id", h.UpdateContract)
	staff.DELETE("/cryo-contracts/:id", h.DeleteContract)
}

// RegisterWebhook mounts the gateway callback outside the authenticated API
// group; the gateway authenticates with the shared webhook secret instead
// of a user token.
func (h *Handler) RegisterWebhook(e *echo.Echo) {
	e.POST("/webhooks/payment", h.PaymentCallback)
}

// -- Transactions --

func (h *Handler) CreateTransaction(c echo.Context) error {
	var t Transaction
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateTransaction(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, t)
}

func (h *Handler) GetTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, err := h.svc.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	return respond.OK(c, t)
}

func (h *Handler) ListTransactions(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := map[string]string{}
	for _, key := range []string{"patient_id", "status", "type", "related_entity_type"} {
		if v := c.QueryParam(key); v != "" {
			params[key] = v
		}
	}
	items, total, err := h.svc.SearchTransactions(c.Request().Context(), params, pg.Limit(), pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) CancelTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, err := h.svc.CancelTransaction(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrIllegalTransition) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	return respond.OK(c, t)
}

func (h *Handler) PaymentCallback(c echo.Context) error {
	secret := c.Request().Header.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid webhook secret")
	}

	var cb GatewayCallback
	if err := c.Bind(&cb); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t, err := h.svc.SettleTransaction(c.Request().Context(), &cb)
	if err != nil {
		if errors.Is(err, ErrIllegalTransition) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		if !Terminal(cb.Status) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	return respond.OK(c, t)
}

func (h *Handler) GetInvoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, err := h.svc.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	inv, err := BuildInvoice(t, h.clinic)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return respond.OK(c, inv)
}

func (h *Handler) Export(c echo.Context) error {
	from, err := time.Parse("2006-01-02", c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD")
	}
	items, err := h.svc.transactions.ListBetween(c.Request().Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	f, err := ExportTransactions(items)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	filename := fmt.Sprintf("transactions_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

// -- Cryo contracts --

func (h *Handler) CreateContract(c echo.Context) error {
	var contract CryoContract
	if err := c.Bind(&contract); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateContract(c.Request().Context(), &contract); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.Created(c, contract)
}

func (h *Handler) GetContract(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	contract, err := h.svc.GetContract(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "cryo contract not found")
	}
	return respond.OK(c, contract)
}

func (h *Handler) ListContracts(c echo.Context) error {
	patientID, err := uuid.Parse(c.QueryParam("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patientId is required")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ContractsForPatient(c.Request().Context(), patientID, pg.Limit(), pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) UpdateContract(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var contract CryoContract
	if err := c.Bind(&contract); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	contract.ID = id
	if err := h.svc.UpdateContract(c.Request().Context(), &contract); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return respond.OK(c, contract)
}

func (h *Handler) DeleteContract(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteContract(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
