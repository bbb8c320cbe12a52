package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tkonda/AgentAPI/internal/config"
	"github.com/tkonda/AgentAPI/internal/customHttpClient"
	"github.com/tkonda/AgentAPI/internal/metrics"
	"github.com/tkonda/AgentAPI/internal/rag/llm"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

const extractionSystem = "Extract the city name from the query."

// Client answers free-form weather questions: an LLM call pulls the city
// name out of the question, then the provider is queried for current
// conditions. Every failure is reported as a readable context string so the
// generation step can present it, never as an error.
type Client struct {
	httpClient *http.Client
	llm        llm.Provider
	apiKey     string
	baseURL    string
	logger     *logger_i.Logger
}

func NewClient(provider llm.Provider, apiKey string, baseURL string) *Client {
	return &Client{
		httpClient: customHttpClient.NewPooledClient(config.WeatherCallTimeout),
		llm:        provider,
		apiKey:     apiKey,
		baseURL:    baseURL,
		logger:     logger_i.NewLogger("Weather"),
	}
}

// Lookup resolves a question like "what's the weather in Paris" to a
// formatted current-conditions summary in metric units.
func (c *Client) Lookup(ctx context.Context, question string) string {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("weather_lookup", time.Since(start)) }()

	city, err := c.extractCity(ctx, question)
	if err != nil || city == "" {
		c.logger.Error("City extraction failed", "error", err)
		return "Error: Could not extract city name."
	}
	return c.fetch(ctx, city)
}

func (c *Client) extractCity(ctx context.Context, question string) (string, error) {
	raw, err := c.llm.ChatStructured(ctx, extractionSystem, question, llm.Schema{
		Fields: []llm.Field{{Name: "city"}},
	})
	if err != nil {
		return "", err
	}

	var out struct {
		City string `json:"city"`
	}
	if err := json.Unmarshal([]byte(llm.StripCodeFences(raw)), &out); err != nil {
		return "", fmt.Errorf("unparseable extraction result: %w", err)
	}
	return strings.TrimSpace(out.City), nil
}

type providerResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (c *Client) fetch(ctx context.Context, city string) string {
	if c.apiKey == "" {
		return "Error: OpenWeatherMap API key not found."
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Sprintf("Error fetching weather data: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Weather provider call failed", "city", city, "error", err)
		return fmt.Sprintf("Error fetching weather data: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Weather provider returned non-200", "city", city, "status", resp.StatusCode)
		return fmt.Sprintf("Error fetching weather data: provider returned status %d for city '%s'.", resp.StatusCode, city)
	}

	var data providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || len(data.Weather) == 0 {
		return fmt.Sprintf("Error: Could not parse weather data for city '%s'.", city)
	}

	return fmt.Sprintf("Weather in %s: %s. Temperature: %.1f°C (Feels like: %.1f°C). Humidity: %d%%. Wind Speed: %.1f m/s.",
		city, data.Weather[0].Description, data.Main.Temp, data.Main.FeelsLike, data.Main.Humidity, data.Wind.Speed)
}
