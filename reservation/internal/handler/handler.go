package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Astemirdum/room-reservation/pkg/auth"
	mw "github.com/Astemirdum/room-reservation/pkg/middleware"
	"github.com/Astemirdum/room-reservation/pkg/validate"
	"github.com/Astemirdum/room-reservation/reservation/internal/model"
	_ "github.com/Astemirdum/room-reservation/reservation/swagger"
)

type Handler struct {
	reservationSvc ReservationService
	log            *zap.Logger
}

func New(reservationSvc ReservationService, log *zap.Logger) *Handler {
	return &Handler{
		reservationSvc: reservationSvc,
		log:            log.Named("handler"),
	}
}

func NewValidator() *validate.CustomValidator {
	v := validate.NewCustomValidator()
	v.RegisterCustomTypeFunc(model.DateValue, model.Date{})
	return v
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = NewValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
		mw.AuthContext,
	)
	h.register(api)

	return e
}

func (h *Handler) register(api *echo.Group) {
	api.POST("/reservations", h.CreateReservation)
	api.GET("/reservations", h.GetReservations)
	api.GET("/reservations/:id", h.GetReservation)
	api.PATCH("/reservations/:id", h.ModifyReservation)
	api.DELETE("/reservations/:id", h.DeleteReservation, mw.AdminOnly)
	api.POST("/reservations/:id/accept", h.AcceptReservation)
	api.POST("/reservations/:id/reject", h.RejectReservation)
	api.POST("/reservations/:id/cancel", h.CancelReservation)
	api.GET("/rooms/:roomId/reservations", h.QueryReservations)
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// CreateReservation
// @Summary  create a pending reservation
// @Tags     reservations
// @Accept   json
// @Produce  json
// @Param    X-User-Id header string true "caller"
// @Param    input body model.CreateReservationRequest true "reservation"
// @Success  200 {object} model.Reservation
// @Failure  400 {object} errs.ValidationErrorResponse
// @Router   /api/v1/reservations [post]
func (h *Handler) CreateReservation(c echo.Context) error {
	var req model.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	p, _ := auth.FromContext(c.Request().Context())
	req.UserID = p.UserID
	if err := c.Validate(req); err != nil {
		return h.mapError(err, notFoundIsError)
	}

	rsv, err := h.reservationSvc.CreateReservation(c.Request().Context(), req)
	if err != nil {
		return h.mapError(err, notFoundIsError)
	}
	return c.JSON(http.StatusOK, rsv)
}

// GetReservations
// @Summary  reservations of the caller
// @Tags     reservations
// @Produce  json
// @Param    X-User-Id header string true "caller"
// @Success  200 {array} model.Reservation
// @Router   /api/v1/reservations [get]
func (h *Handler) GetReservations(c echo.Context) error {
	p, _ := auth.FromContext(c.Request().Context())
	items, err := h.reservationSvc.GetReservations(c.Request().Context(), p.UserID)
	if err != nil {
		return h.mapError(err, notFoundIsError)
	}
	return c.JSON(http.StatusOK, items)
}

// GetReservation
// @Summary  reservation by id, null when unknown
// @Tags     reservations
// @Produce  json
// @Param    id path string true "reservation id"
// @Success  200 {object} model.Reservation
// @Router   /api/v1/reservations/{id} [get]
func (h *Handler) GetReservation(c echo.Context) error {
	rsv, err := h.reservationSvc.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(err, notFoundIsNull(c))
	}
	return c.JSON(http.StatusOK, rsv)
}

// ModifyReservation
// @Summary  move a reservation to new dates, back to PENDING
// @Tags     reservations
// @Accept   json
// @Produce  json
// @Param    id path string true "reservation id"
// @Param    input body model.ModifyReservationRequest true "new dates"
// @Success  200 {object} model.Reservation
// @Failure  400 {object} errs.ErrorResponse
// @Failure  403 {object} errs.ErrorResponse
// @Router   /api/v1/reservations/{id} [patch]
func (h *Handler) ModifyReservation(c echo.Context) error {
	var req model.ModifyReservationRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(req); err != nil {
		return h.mapError(err, notFoundIsError)
	}
	rsv, err := h.reservationSvc.ModifyReservation(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.mapError(err, notFoundIsError)
	}
	return c.JSON(http.StatusOK, rsv)
}

// AcceptReservation
// @Summary  accept, rejecting overlapping pending reservations
// @Tags     reservations
// @Produce  json
// @Param    id path string true "reservation id"
// @Success  200 {object} model.Reservation
// @Failure  400 {object} errs.ConflictErrorResponse
// @Failure  403 {object} errs.ErrorResponse
// @Router   /api/v1/reservations/{id}/accept [post]
func (h *Handler) AcceptReservation(c echo.Context) error {
	rsv, err := h.reservationSvc.AcceptReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(err, notFoundIsError)
	}
	return c.JSON(http.StatusOK, rsv)
}

// RejectReservation
// @Summary  reject a reservation
// @Tags     reservations
// @Produce  json
// @Param    id path string true "reservation id"
// @Success  200 {object} model.Reservation
// @Router   /api/v1/reservations/{id}/reject [post]
func (h *Handler) RejectReservation(c echo.Context) error {
	rsv, err := h.reservationSvc.RejectReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(err, notFoundIsNull(c))
	}
	return c.JSON(http.StatusOK, rsv)
}

// CancelReservation
// @Summary  cancel a reservation
// @Tags     reservations
// @Produce  json
// @Param    id path string true "reservation id"
// @Success  200 {object} model.Reservation
// @Router   /api/v1/reservations/{id}/cancel [post]
func (h *Handler) CancelReservation(c echo.Context) error {
	rsv, err := h.reservationSvc.CancelReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(err, notFoundIsNull(c))
	}
	return c.JSON(http.StatusOK, rsv)
}

type deleteResponse struct {
	ID string `json:"id"`
}

// DeleteReservation
// @Summary  hard delete, admin only
// @Tags     reservations
// @Produce  json
// @Param    id path string true "reservation id"
// @Success  200 {object} deleteResponse
// @Router   /api/v1/reservations/{id} [delete]
func (h *Handler) DeleteReservation(c echo.Context) error {
	id, err := h.reservationSvc.DeleteReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(err, notFoundIsNull(c))
	}
	if id == "" {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, deleteResponse{ID: id})
}

// QueryReservations
// @Summary  reservations of a room overlapping [from,to]
// @Tags     rooms
// @Produce  json
// @Param    roomId path string true "room id"
// @Param    from query string false "YYYY-MM-DD"
// @Param    to query string false "YYYY-MM-DD"
// @Param    status query string false "comma separated statuses"
// @Success  200 {array} model.Reservation
// @Failure  400 {object} errs.ValidationErrorResponse
// @Router   /api/v1/rooms/{roomId}/reservations [get]
func (h *Handler) QueryReservations(c echo.Context) error {
	q, err := parseQuery(c)
	if err != nil {
		return h.mapError(err, notFoundIsError)
	}
	items, err := h.reservationSvc.QueryReservations(c.Request().Context(), q)
	if err != nil {
		return h.mapError(err, notFoundIsError)
	}
	return c.JSON(http.StatusOK, items)
}

func parseQuery(c echo.Context) (model.ReservationQuery, error) {
	q := model.ReservationQuery{RoomID: c.Param("roomId")}
	var fields []validate.FieldError

	from, to := c.QueryParam("from"), c.QueryParam("to")
	switch {
	case from == "" && to == "":
	case from == "" || to == "":
		fields = append(fields, validate.FieldError{Field: "from", Message: "from and to go together"})
	default:
		var in model.Interval
		var err error
		if in.From, err = model.ParseDate(from); err != nil {
			fields = append(fields, validate.FieldError{Field: "from", Message: err.Error()})
		}
		if in.To, err = model.ParseDate(to); err != nil {
			fields = append(fields, validate.FieldError{Field: "to", Message: err.Error()})
		}
		q.Interval = &in
	}

	for _, raw := range c.QueryParams()["status"] {
		for _, st := range strings.Split(raw, ",") {
			if st = strings.TrimSpace(st); st != "" {
				q.Statuses = append(q.Statuses, model.Status(strings.ToUpper(st)))
			}
		}
	}
	if len(fields) > 0 {
		return q, &validate.Error{Fields: fields}
	}
	return q, nil
}
