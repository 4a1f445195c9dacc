package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SpaceNomad/internal/domain"
	"github.com/sony/gobreaker"
)

type spacexLaunch struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	DateUTC  time.Time `json:"date_utc"`
	Success  *bool     `json:"success"`
	Upcoming bool      `json:"upcoming"`
	Details  string    `json:"details"`
	Links    struct {
		Patch struct {
			Small string `json:"small"`
		} `json:"patch"`
	} `json:"links"`
}

// SpaceXGateway fetches the launch list from the SpaceX API. Calls go
// through a circuit breaker so a flapping upstream does not keep the sync
// loop hammering it.
type SpaceXGateway struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
}

func NewSpaceXGateway(baseURL string) *SpaceXGateway {
	cbSettings := gobreaker.Settings{
		Name:        "spacex",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if we have 3 consecutive failures
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("CircuitBreaker state changed", "name", name, "from", from, "to", to)
		},
	}

	return &SpaceXGateway{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cb: gobreaker.NewCircuitBreaker(cbSettings),
	}
}

func (g *SpaceXGateway) FetchLaunches(ctx context.Context) ([]domain.Launch, error) {
	url := g.baseURL + "/v4/launches"

	result, err := g.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := g.client.Do(req)
		if err != nil {
			return nil, &domain.NetworkError{URL: url, Err: err}
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			return nil, &domain.NetworkError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
		}

		var raw []spacexLaunch
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, &domain.NetworkError{URL: url, Err: fmt.Errorf("decoding response: %w", err)}
		}

		launches := make([]domain.Launch, 0, len(raw))
		for _, l := range raw {
			launches = append(launches, domain.Launch{
				ID:       l.ID,
				Name:     l.Name,
				DateUTC:  l.DateUTC,
				Success:  l.Success,
				Upcoming: l.Upcoming,
				Details:  l.Details,
				PatchURL: l.Links.Patch.Small,
			})
		}
		return launches, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.Launch), nil
}
