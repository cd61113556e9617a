package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const nwsBaseURL = "https://api.weather.gov"

// The NWS API rejects requests without an identifying User-Agent.
const nwsUserAgent = "weatherserver/1.0 (mcp tool backend)"

type nwsClient struct {
	httpClient *http.Client
	baseURL    string
}

func newNWSClient() *nwsClient {
	return &nwsClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    nwsBaseURL,
	}
}

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastPeriod struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	DetailedForecast string `json:"detailedForecast"`
}

type forecastResponse struct {
	Properties struct {
		Periods []forecastPeriod `json:"periods"`
	} `json:"properties"`
}

type alertFeature struct {
	Properties struct {
		Event       string `json:"event"`
		AreaDesc    string `json:"areaDesc"`
		Severity    string `json:"severity"`
		Description string `json:"description"`
		Instruction string `json:"instruction"`
	} `json:"properties"`
}

type alertsResponse struct {
	Features []alertFeature `json:"features"`
}

// Forecast resolves the forecast grid for the coordinates and returns a
// plain-text summary of the upcoming periods.
func (c *nwsClient) Forecast(ctx context.Context, latitude, longitude float64) (string, error) {
	var points pointsResponse
	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, latitude, longitude)
	if err := c.get(ctx, pointsURL, &points); err != nil {
		return "", fmt.Errorf("resolve forecast grid: %w", err)
	}
	if points.Properties.Forecast == "" {
		return "", fmt.Errorf("no forecast available for %.4f,%.4f", latitude, longitude)
	}

	var forecast forecastResponse
	if err := c.get(ctx, points.Properties.Forecast, &forecast); err != nil {
		return "", fmt.Errorf("fetch forecast: %w", err)
	}
	return formatPeriods(forecast.Properties.Periods), nil
}

// Alerts returns a plain-text summary of the active alerts for a state.
func (c *nwsClient) Alerts(ctx context.Context, state string) (string, error) {
	state = strings.ToUpper(strings.TrimSpace(state))

	var alerts alertsResponse
	alertsURL := fmt.Sprintf("%s/alerts/active/area/%s", c.baseURL, state)
	if err := c.get(ctx, alertsURL, &alerts); err != nil {
		return "", fmt.Errorf("fetch alerts: %w", err)
	}
	return formatAlerts(state, alerts.Features), nil
}

func (c *nwsClient) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", nwsUserAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

const maxForecastPeriods = 5

func formatPeriods(periods []forecastPeriod) string {
	if len(periods) == 0 {
		return "No forecast periods available."
	}
	if len(periods) > maxForecastPeriods {
		periods = periods[:maxForecastPeriods]
	}

	var b strings.Builder
	for i, p := range periods {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s:\nTemperature: %d°%s\nWind: %s %s\n%s",
			p.Name, p.Temperature, p.TemperatureUnit, p.WindSpeed, p.WindDirection, p.DetailedForecast)
	}
	return b.String()
}

func formatAlerts(state string, features []alertFeature) string {
	if len(features) == 0 {
		return fmt.Sprintf("No active alerts for %s.", state)
	}

	var b strings.Builder
	for i, f := range features {
		if i > 0 {
			b.WriteString("\n\n")
		}
		p := f.Properties
		fmt.Fprintf(&b, "Event: %s\nArea: %s\nSeverity: %s\nDescription: %s",
			p.Event, p.AreaDesc, p.Severity, p.Description)
		if p.Instruction != "" {
			fmt.Fprintf(&b, "\nInstructions: %s", p.Instruction)
		}
	}
	return b.String()
}
