package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-command/internal/command"
)

var validate = validator.New()

// Handler runs weather commands; *command.Dispatcher satisfies it.
type Handler interface {
	Handle(ctx context.Context, cmd command.Command) command.Reply
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// A nil limiter disables throttling.
func RegisterRoutes(app *fiber.App, handler Handler, limiter *rate.Limiter) {
	v1 := app.Group("/api/v1")
	if limiter != nil {
		v1.Use(throttle(limiter))
	}

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(handler.Handle(c.UserContext(), command.Command{Kind: command.KindCurrent, City: q.City}))
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(handler.Handle(c.UserContext(), command.Command{Kind: command.KindForecast, City: q.City}))
	})

	v1.Get("/help", func(c *fiber.Ctx) error {
		return c.JSON(handler.Handle(c.UserContext(), command.Command{Kind: command.KindHelp}))
	})

	v1.Post("/commands", func(c *fiber.Ctx) error {
		var req commandRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		cmd, err := req.toCommand()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(handler.Handle(c.UserContext(), cmd))
	})
}

func throttle(limiter *rate.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests")
		}
		return c.Next()
	}
}

// cityQuery holds query parameters for the weather endpoints. City is optional.
type cityQuery struct {
	City string `validate:"max=64"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	q := cityQuery{City: strings.TrimSpace(c.Query("city"))}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// commandRequest is either a structured command or raw chat text.
type commandRequest struct {
	Command string `json:"command" validate:"omitempty,oneof=current forecast help"`
	City    string `json:"city" validate:"max=64"`
	Text    string `json:"text" validate:"max=128"`
}

func (r commandRequest) toCommand() (command.Command, error) {
	r.Command = strings.ToLower(strings.TrimSpace(r.Command))
	r.City = strings.TrimSpace(r.City)
	if err := validate.Struct(r); err != nil {
		return command.Command{}, err
	}
	if r.Command == "" && strings.TrimSpace(r.Text) == "" {
		return command.Command{}, errors.New("command or text is required")
	}

	if r.Command == "" {
		cmd, err := command.Parse(r.Text)
		if err != nil {
			return command.Command{}, errors.New("unrecognized command text")
		}
		return cmd, nil
	}

	kind, err := command.ParseKind(r.Command)
	if err != nil {
		return command.Command{}, err
	}
	return command.Command{Kind: kind, City: r.City}, nil
}
