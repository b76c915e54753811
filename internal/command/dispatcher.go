package command

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/i474232898/weather-command/internal/format"
	"github.com/i474232898/weather-command/internal/render"
	"github.com/i474232898/weather-command/internal/weather"
)

// HelpText is returned for the help command.
const HelpText = `天气查询指令:
天气 <城市>      查询实时天气
天气预报 <城市>  查询未来几天天气预报
天气帮助         显示本帮助
未指定城市时使用配置的默认城市。`

// User-facing replies. Internal causes are only logged.
const (
	msgAskCity       = "请提供城市名称，例如: 天气 北京"
	msgUnknownCity   = "无法识别城市: %s"
	msgNoData        = "未查询到 %s 的天气数据"
	msgRetryLater    = "天气服务暂时不可用，请稍后再试"
	msgMalformed     = "天气服务返回了无法识别的数据，请稍后再试"
	msgMisconfigured = "请先在配置中设置 api_key 后再使用天气查询"
)

// WeatherService is the lookup side the dispatcher needs; *weather.Client satisfies it.
type WeatherService interface {
	CityOrDefault(city string) string
	Current(ctx context.Context, city string) (weather.CurrentConditions, error)
	Forecast(ctx context.Context, city string) (weather.ForecastSet, error)
}

// Reply is what the host delivers back to the user: text, or a rendered image reference.
type Reply struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
}

// Dispatcher runs commands end to end. It never returns an error: every
// failure becomes an apology reply.
type Dispatcher struct {
	weather  WeatherService
	renderer render.Renderer
	mode     weather.OutputMode
}

// NewDispatcher creates a Dispatcher. renderer may be nil in text mode.
func NewDispatcher(svc WeatherService, renderer render.Renderer, mode weather.OutputMode) *Dispatcher {
	if mode == "" {
		mode = weather.OutputText
	}
	return &Dispatcher{
		weather:  svc,
		renderer: renderer,
		mode:     mode,
	}
}

// HandleText parses chat text and runs it.
func (d *Dispatcher) HandleText(ctx context.Context, text string) (Reply, error) {
	cmd, err := Parse(text)
	if err != nil {
		return Reply{}, err
	}
	return d.Handle(ctx, cmd), nil
}

// Handle runs one command.
func (d *Dispatcher) Handle(ctx context.Context, cmd Command) Reply {
	if cmd.Kind == KindHelp {
		return Reply{Text: HelpText}
	}

	reqID := uuid.NewString()
	city := d.weather.CityOrDefault(cmd.City)
	log.Printf("INFO: [%s] %s command for %q", reqID, cmd.Kind, city)

	switch cmd.Kind {
	case KindCurrent:
		cur, err := d.weather.Current(ctx, city)
		if err != nil {
			return d.failure(reqID, city, err)
		}
		return d.deliver(ctx, reqID, render.TemplateCurrent, format.CurrentPayload(cur), format.CurrentText(cur))

	case KindForecast:
		set, err := d.weather.Forecast(ctx, city)
		if err != nil {
			return d.failure(reqID, city, err)
		}
		return d.deliver(ctx, reqID, render.TemplateForecast, format.ForecastPayload(set, city), format.ForecastText(set, city))

	default:
		log.Printf("ERROR: [%s] unsupported command kind %q", reqID, cmd.Kind)
		return Reply{Text: HelpText}
	}
}

// deliver returns text, or in image mode a rendered image with text as fallback.
func (d *Dispatcher) deliver(ctx context.Context, reqID, templateID string, payload map[string]any, text string) Reply {
	if d.mode != weather.OutputImage || d.renderer == nil {
		return Reply{Text: text}
	}

	url, err := d.renderer.Render(ctx, templateID, payload)
	if err != nil {
		log.Printf("ERROR: [%s] render %s failed, falling back to text: %v", reqID, templateID, err)
		return Reply{Text: text}
	}
	return Reply{ImageURL: url}
}

func (d *Dispatcher) failure(reqID, city string, err error) Reply {
	kind := weather.KindOf(err)
	log.Printf("ERROR: [%s] lookup for %q failed (%s): %v", reqID, city, kind, err)

	return Reply{Text: Message(kind, city)}
}

// Message is the user-facing text for a failure kind.
func Message(kind weather.Kind, city string) string {
	switch kind {
	case weather.KindMisconfigured:
		return msgMisconfigured
	case weather.KindGeocodingFailure:
		if city == "" {
			return msgAskCity
		}
		return fmt.Sprintf(msgUnknownCity, city)
	case weather.KindNoData:
		return fmt.Sprintf(msgNoData, city)
	case weather.KindMalformedResponse:
		return msgMalformed
	default:
		return msgRetryLater
	}
}
