package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"respawn/internal/app/auth"
	"respawn/internal/app/calendar"
	"respawn/internal/app/catalog"
	"respawn/internal/app/day"
	"respawn/internal/app/encounter"
	"respawn/internal/app/history"
	"respawn/internal/app/ports"
	"respawn/internal/app/status"
	"respawn/internal/domain/player"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

type Handler struct {
	RegisterUC  auth.RegisterUseCase
	LoginUC     auth.LoginUseCase
	AuthUC      auth.VerifyUseCase
	DayUC       day.UseCase
	StatusUC    status.UseCase
	HistoryUC   history.UseCase
	CalendarUC  calendar.UseCase
	EncounterUC encounter.UseCase
	CatalogUC   catalog.UseCase
	KPI         kpiSnapshotProvider
	Logger      *slog.Logger
	// AllowedOrigins feeds the CORS middleware. Empty disables CORS headers.
	AllowedOrigins []string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowedOrigins))

	authGroup := s.Group("/api/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)

	p := s.Group("/api/player")
	p.POST("/day", h.submitDay)
	p.GET("/status", h.status)
	p.GET("/history", h.history)
	p.PUT("/calendar-event", h.setCalendarEvent)
	p.DELETE("/calendar-event", h.clearCalendarEvent)
	p.POST("/encounter", h.summonEncounter)

	s.GET("/api/objectives", h.objectives)
	s.GET("/ops/kpi", h.kpi)
	s.GET("/healthz", h.healthz)
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type dayRequest struct {
	Day    string            `json:"day"`
	Input  player.DailyInput `json:"input"`
	Manual []string          `json:"completed_quests"`
}

type calendarRequest struct {
	Name     string `json:"name"`
	DaysLeft *int   `json:"days_left"`
}

type encounterRequest struct {
	Name string `json:"name"`
	Days int    `json:"days"`
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	var body registerRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RegisterUC.Execute(c, auth.RegisterRequest{
		Email:       body.Email,
		Password:    body.Password,
		DisplayName: body.DisplayName,
	})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) login(c context.Context, ctx *app.RequestContext) {
	var body loginRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.LoginUC.Execute(c, auth.LoginRequest{Email: body.Email, Password: body.Password})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) submitDay(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	var body dayRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.DayUC.Execute(c, day.Request{
		PlayerID: playerID,
		Day:      body.Day,
		Input:    body.Input,
		Manual:   body.Manual,
	})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{PlayerID: playerID})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	limit := 0
	if raw := strings.TrimSpace(string(ctx.Query("limit"))); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "limit must be an integer")
			return
		}
	}
	resp, err := h.HistoryUC.Execute(c, history.Request{
		PlayerID: playerID,
		Limit:    limit,
		From:     string(ctx.Query("from")),
		To:       string(ctx.Query("to")),
	})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) setCalendarEvent(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	var body calendarRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.DaysLeft == nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "days_left is required")
		return
	}
	resp, err := h.CalendarUC.Execute(c, calendar.Request{
		PlayerID: playerID,
		Name:     body.Name,
		DaysLeft: *body.DaysLeft,
	})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) clearCalendarEvent(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	resp, err := h.CalendarUC.Execute(c, calendar.Request{PlayerID: playerID, Clear: true})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) summonEncounter(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requireAuthenticatedPlayer(c, ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	var body encounterRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.EncounterUC.Execute(c, encounter.Request{PlayerID: playerID, Name: body.Name, Days: body.Days})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) objectives(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CatalogUC.Execute(c, catalog.Request{Category: string(ctx.Query("category"))})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingBearerToken = errors.New("missing bearer token")

func (h Handler) requireAuthenticatedPlayer(c context.Context, ctx *app.RequestContext) (string, error) {
	header := strings.TrimSpace(string(ctx.GetHeader(authorizationHeader)))
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", ErrMissingBearerToken
	}
	return h.AuthUC.Execute(c, auth.VerifyRequest{Token: header[len(bearerPrefix):]})
}

func (h Handler) writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingBearerToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_token", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, day.ErrDayOutOfOrder):
		writeErrorBody(ctx, consts.StatusConflict, "day_out_of_order", err.Error())
	case errors.Is(err, encounter.ErrEncounterActive):
		writeErrorBody(ctx, consts.StatusConflict, "encounter_active", err.Error())
	case errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, day.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest),
		errors.Is(err, calendar.ErrInvalidRequest),
		errors.Is(err, encounter.ErrInvalidRequest),
		errors.Is(err, catalog.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		if h.Logger != nil {
			h.Logger.Error("request failed", "path", string(ctx.Path()), "method", string(ctx.Method()), "error", err)
		}
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
