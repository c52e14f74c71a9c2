package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/room-reservation/pkg/auth"
	"github.com/Astemirdum/room-reservation/reservation/internal/errs"
	"github.com/Astemirdum/room-reservation/reservation/internal/handler"
	"github.com/Astemirdum/room-reservation/reservation/internal/model"

	service_mocks "github.com/Astemirdum/room-reservation/reservation/internal/handler/mocks"
)

const rsvJSON = `{"id":"a","roomId":"room-1","userId":"alice","fromDate":"2024-01-01","toDate":"2024-01-02",` +
	`"pricePerDay":"10.5","totalPrice":"21","status":"PENDING",` +
	`"createDate":"2024-01-01T00:00:00Z","updateDate":"2024-01-01T00:00:00Z"}`

func mustDate(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixture() model.Reservation {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.Reservation{
		ID:          "a",
		RoomID:      "room-1",
		UserID:      "alice",
		FromDate:    mustDate("2024-01-01"),
		ToDate:      mustDate("2024-01-02"),
		PricePerDay: decimal.RequireFromString("10.5"),
		TotalPrice:  decimal.RequireFromString("21"),
		Status:      model.StatusPending,
		CreateDate:  ts,
		UpdateDate:  ts,
	}
}

type request struct {
	method string
	target string
	body   string
	user   string
	role   auth.Role
}

type response struct {
	expectedCode int
	expectedBody string
}

type mockBehavior func(r *service_mocks.MockReservationService)

func TestHandler(t *testing.T) {
	t.Parallel()
	selfRejected := fixture()
	selfRejected.Status = model.StatusRejected

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		request      request
		response     response
	}{
		{
			name: "create ok",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					CreateReservation(gomock.Any(), model.CreateReservationRequest{
						RoomID:   "room-1",
						UserID:   "alice",
						FromDate: mustDate("2024-01-01"),
						ToDate:   mustDate("2024-01-02"),
					}).
					Return(fixture(), nil)
			},
			request: request{
				method: http.MethodPost, target: "/api/v1/reservations", user: "alice",
				body: `{"roomId":"room-1","fromDate":"2024-01-01","toDate":"2024-01-02"}`,
			},
			response: response{expectedCode: http.StatusOK, expectedBody: rsvJSON},
		},
		{
			name:         "create err. roomId required",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			request: request{
				method: http.MethodPost, target: "/api/v1/reservations", user: "alice",
				body: `{"fromDate":"2024-01-01","toDate":"2024-01-02"}`,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"validation failed","errors":[{"field":"roomId","message":"is required"}]}`,
			},
		},
		{
			name:         "create err. bad date",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			request: request{
				method: http.MethodPost, target: "/api/v1/reservations", user: "alice",
				body: `{"roomId":"room-1","fromDate":"01.01.2024","toDate":"2024-01-02"}`,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"date \"01.01.2024\": expected YYYY-MM-DD"}`,
			},
		},
		{
			name: "create err. overlap",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, errs.NewConflict(errs.MsgOverlapExists))
			},
			request: request{
				method: http.MethodPost, target: "/api/v1/reservations", user: "alice",
				body: `{"roomId":"room-1","fromDate":"2024-01-01","toDate":"2024-01-02"}`,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"` + errs.MsgOverlapExists + `","selfRejected":false}`,
			},
		},
		{
			name:         "err. no user",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			request:      request{method: http.MethodGet, target: "/api/v1/reservations"},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"user-id is empty"}`,
			},
		},
		{
			name: "list ok",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().GetReservations(gomock.Any(), "alice").Return([]model.Reservation{fixture()}, nil)
			},
			request:  request{method: http.MethodGet, target: "/api/v1/reservations", user: "alice"},
			response: response{expectedCode: http.StatusOK, expectedBody: "[" + rsvJSON + "]"},
		},
		{
			name: "get unknown is null",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().GetReservation(gomock.Any(), "nope").Return(model.Reservation{}, errs.ErrNotFound)
			},
			request:  request{method: http.MethodGet, target: "/api/v1/reservations/nope", user: "alice"},
			response: response{expectedCode: http.StatusOK, expectedBody: `null`},
		},
		{
			name: "accept err. not found",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().AcceptReservation(gomock.Any(), "nope").Return(model.Reservation{}, errs.ErrNotFound)
			},
			request: request{method: http.MethodPost, target: "/api/v1/reservations/nope/accept", user: "owner"},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name: "accept err. self rejected",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().AcceptReservation(gomock.Any(), "a").Return(model.Reservation{}, errs.NewSelfRejected(selfRejected))
			},
			request: request{method: http.MethodPost, target: "/api/v1/reservations/a/accept", user: "owner"},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"` + errs.MsgSelfRejected + `","selfRejected":true,"reservation":` +
					strings.Replace(rsvJSON, "PENDING", "REJECTED", 1) + `}`,
			},
		},
		{
			name: "accept err. already accepted",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().AcceptReservation(gomock.Any(), "a").
					Return(model.Reservation{}, errs.InvalidState(model.StatusAccepted, "accept"))
			},
			request: request{method: http.MethodPost, target: "/api/v1/reservations/a/accept", user: "owner"},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"cannot accept reservation in status ACCEPTED: invalid reservation state"}`,
			},
		},
		{
			name: "reject unknown is null",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().RejectReservation(gomock.Any(), "nope").Return(model.Reservation{}, errs.ErrNotFound)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/reservations/nope/reject", user: "owner"},
			response: response{expectedCode: http.StatusOK, expectedBody: `null`},
		},
		{
			name: "cancel err. forbidden",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().CancelReservation(gomock.Any(), "a").
					Return(model.Reservation{}, errors.Wrap(errs.ErrForbidden, "not the reservation owner"))
			},
			request: request{method: http.MethodPost, target: "/api/v1/reservations/a/cancel", user: "bob"},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"not the reservation owner: forbidden"}`,
			},
		},
		{
			name: "modify ok",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().ModifyReservation(gomock.Any(), "a", model.ModifyReservationRequest{
					FromDate: mustDate("2024-01-01"),
					ToDate:   mustDate("2024-01-02"),
				}).Return(fixture(), nil)
			},
			request: request{
				method: http.MethodPatch, target: "/api/v1/reservations/a", user: "alice",
				body: `{"fromDate":"2024-01-01","toDate":"2024-01-02"}`,
			},
			response: response{expectedCode: http.StatusOK, expectedBody: rsvJSON},
		},
		{
			name:         "delete err. no admin",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			request:      request{method: http.MethodDelete, target: "/api/v1/reservations/a", user: "alice"},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"no admin"}`,
			},
		},
		{
			name: "delete ok",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().DeleteReservation(gomock.Any(), "a").Return("a", nil)
			},
			request:  request{method: http.MethodDelete, target: "/api/v1/reservations/a", user: "root", role: auth.RoleAdmin},
			response: response{expectedCode: http.StatusOK, expectedBody: `{"id":"a"}`},
		},
		{
			name: "delete unknown is null",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().DeleteReservation(gomock.Any(), "a").Return("", nil)
			},
			request:  request{method: http.MethodDelete, target: "/api/v1/reservations/a", user: "root", role: auth.RoleAdmin},
			response: response{expectedCode: http.StatusOK, expectedBody: `null`},
		},
		{
			name: "query ok",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().QueryReservations(gomock.Any(), model.ReservationQuery{
					RoomID:   "room-1",
					Interval: &model.Interval{From: mustDate("2024-01-01"), To: mustDate("2024-01-31")},
					Statuses: []model.Status{model.StatusPending, model.StatusAccepted},
				}).Return([]model.Reservation{}, nil)
			},
			request: request{
				method: http.MethodGet, user: "alice",
				target: "/api/v1/rooms/room-1/reservations?from=2024-01-01&to=2024-01-31&status=pending,ACCEPTED",
			},
			response: response{expectedCode: http.StatusOK, expectedBody: `[]`},
		},
		{
			name:         "query err. half interval",
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			request: request{
				method: http.MethodGet, user: "alice",
				target: "/api/v1/rooms/room-1/reservations?from=2024-01-01",
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"validation failed","errors":[{"field":"from","message":"from and to go together"}]}`,
			},
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().GetReservations(gomock.Any(), "alice").
					Return(nil, errs.Persistence("Find", errors.New("db internal")))
			},
			request: request{method: http.MethodGet, target: "/api/v1/reservations", user: "alice"},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"persistence failure: Find: db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReservationService(c)
			h := handler.New(svc, zap.NewNop())
			e := h.NewRouter()

			var body io.Reader = http.NoBody
			if tt.request.body != "" {
				body = strings.NewReader(tt.request.body)
			}
			r := httptest.NewRequest(tt.request.method, tt.request.target, body)
			r.Header.Set("Content-Type", "application/json")
			if tt.request.user != "" {
				r.Header.Set(auth.XUserIDHeader, tt.request.user)
			}
			if tt.request.role != "" {
				r.Header.Set(auth.XUserRoleHeader, string(tt.request.role))
			}
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.JSONEq(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Health(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()
	e := handler.New(service_mocks.NewMockReservationService(c), zap.NewNop()).NewRouter()

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/health", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}
