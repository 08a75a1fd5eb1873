package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-webhook/internal/weather"
)

var validate = validator.New()

type handler struct {
	service *weather.Service
	logger  *slog.Logger
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{service: service, logger: logger.With("component", "httpapi")}

	app.Post("/api/webhook", h.webhook)

	v1 := app.Group("/api/v1")
	v1.Get("/weather/current", h.current)
	v1.Get("/weather/outlook", h.outlook)
}

// webhook answers Dialogflow fulfillment requests with plain chat text.
func (h *handler) webhook(c *fiber.Ctx) error {
	var req dialogflowRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.QueryResult == nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid Dialogflow request.")
	}

	q := req.QueryResult.toQuery()
	log := h.logger.With("request_id", c.Locals("requestid"), "city", q.City)
	if req.QueryResult.Intent != nil {
		log = log.With("intent", req.QueryResult.Intent.DisplayName)
	}

	if q.City == "" {
		return reply(c, "Please tell me the city name.")
	}
	loc := weather.Location{City: q.City}

	if q.Date == nil {
		cur, err := h.service.Current(c.UserContext(), loc)
		if err != nil {
			log.Warn("current conditions unavailable", "error", err)
			return reply(c, "Could not retrieve current weather for "+q.City+".")
		}
		return reply(c, weather.RenderCurrent(q.City, cur))
	}

	out, err := h.service.Outlook(c.UserContext(), loc, *q.Date)
	if err != nil {
		log.Warn("forecast unavailable", "error", err)
		return reply(c, "Could not retrieve forecast for "+q.City+".")
	}

	days := h.service.OutlookDays()
	switch out.Window.Status {
	case weather.WindowNoData:
		return reply(c, "Could not retrieve forecast for "+q.City+".")
	case weather.WindowOutOfRange:
		return reply(c, weather.RenderOutOfRange(q.City, days, out.Window))
	default:
		return reply(c, weather.RenderOutlook(q.City, days, out))
	}
}

func reply(c *fiber.Ctx, text string) error {
	return c.JSON(dialogflowResponse{FulfillmentText: text})
}

func (h *handler) current(c *fiber.Ctx) error {
	locReq, err := parseLocationQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	cur, err := h.service.Current(c.UserContext(), locReq.toLocation())
	if err != nil {
		h.logger.Warn("current conditions unavailable", "city", locReq.City, "error", err)
		return upstreamError(err)
	}

	return c.JSON(fiber.Map{
		"current":   cur,
		"condition": weather.ClassifyDescription(cur.Description),
	})
}

func (h *handler) outlook(c *fiber.Ctx) error {
	var req outlookQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	start, err := weather.ParseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	out, err := h.service.Outlook(c.UserContext(), req.Location.toLocation(), start)
	if err != nil {
		h.logger.Warn("forecast unavailable", "city", req.Location.City, "error", err)
		return upstreamError(err)
	}
	if out.Window.Status == weather.WindowNoData {
		return fiber.NewError(fiber.StatusNotFound, "no forecast data for requested location")
	}

	return c.JSON(out)
}

func upstreamError(err error) error {
	if errors.Is(err, weather.ErrNoProviders) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "no weather providers configured")
	}
	return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string `validate:"omitempty,max=56"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = strings.TrimSpace(c.Query("city"))
	q.Country = strings.TrimSpace(c.Query("country"))

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// outlookQuery holds query parameters for the outlook endpoint.
type outlookQuery struct {
	Location locationQuery
	Date     string `validate:"required,datetime=2006-01-02"`
}

func (o *outlookQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	o.Location = loc
	o.Date = strings.TrimSpace(c.Query("date"))

	return validate.Struct(o)
}
