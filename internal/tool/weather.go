package tool

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/humate-ai/lisa-agent/internal/weather"
)

// GetWeatherRequest asks for current conditions at a spoken location.
type GetWeatherRequest struct {
	Location string `json:"location" jsonschema:"the location to get the weather for"`
}

type weatherSvc interface {
	CurrentByCity(ctx context.Context, city string) (*weather.Report, error)
}

// NewGetWeather creates the weather tool.
func NewGetWeather(svc weatherSvc) *GetWeather {
	return &GetWeather{svc: svc}
}

// GetWeather answers weather questions with a single spoken description.
type GetWeather struct {
	svc weatherSvc
}

// GetWeather handles the tool call.
func (t *GetWeather) GetWeather(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetWeatherRequest,
) (*mcp.CallToolResult, SpokenResponse, error) {
	return respond("get_weather", t.Lookup(ctx, input.Location))
}

// Lookup fetches current conditions and phrases them for speech.
func (t *GetWeather) Lookup(ctx context.Context, location string) Outcome {
	if strings.TrimSpace(location) == "" {
		return fail(KindBadInput, "Which location would you like the weather for?", nil)
	}

	report, err := t.svc.CurrentByCity(ctx, location)
	switch {
	case errors.Is(err, weather.ErrMissingAPIKey):
		return fail(KindConfigMissing,
			"I'm sorry, but I can't access the weather service right now due to missing API key.", err)
	case errors.Is(err, weather.ErrNotFound):
		return fail(KindNotFound,
			fmt.Sprintf("I'm sorry, but I couldn't find weather information for %s. Could you please check if the location name is correct?", location), err)
	case err != nil:
		return fail(KindRemoteFailure, "I'm having trouble getting the weather information right now.", err)
	}

	return ok(describeWeather(report))
}

func kelvinToCelsius(kelvin float64) int {
	return int(math.Round(kelvin - 273.15))
}

// describeWeather phrases a report conversationally. The comfort
// thresholds are fixed: warm above 25°C, cool below 15°C, humid above
// 70%, windy above 20 m/s.
func describeWeather(r *weather.Report) string {
	temp := kelvinToCelsius(r.Main.Temp)
	feelsLike := kelvinToCelsius(r.Main.FeelsLike)

	var b strings.Builder
	fmt.Fprintf(&b, "In %s, it's %s right now. The temperature is %d°C, but it feels like %d°C. ",
		r.Name, r.Condition(), temp, feelsLike)

	switch {
	case temp > 25:
		b.WriteString("It is quite warm. ")
	case temp < 15:
		b.WriteString("It is quite cool. ")
	default:
		b.WriteString("The temperature is pleasant. ")
	}

	if r.Main.Humidity > 70 {
		fmt.Fprintf(&b, "The humidity is quite high at %d%%. ", r.Main.Humidity)
	} else {
		fmt.Fprintf(&b, "The humidity is comfortable at %d%%. ", r.Main.Humidity)
	}

	if r.Wind.Speed > 20 {
		fmt.Fprintf(&b, "It is quite windy with wind speeds of %g meters per second.", r.Wind.Speed)
	} else {
		fmt.Fprintf(&b, "There is a gentle breeze with wind speeds of %g meters per second.", r.Wind.Speed)
	}

	return b.String()
}
