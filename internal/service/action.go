package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/flowcore/engine/pkg/api"
)

// ActionRunner performs action node operations. Browser and terminal
// actions resolve to deterministic descriptions of the requested
// operation; api actions issue a real HTTP GET through a shared resty
// client
type ActionRunner struct {
	client *resty.Client
}

const actionTimeout = 30 * time.Second

func NewActionRunner(baseURL string) *ActionRunner {
	client := resty.New().
		SetTimeout(actionTimeout).
		SetHeader("Content-Type", "application/json")
	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}
	return &ActionRunner{client: client}
}

func (r *ActionRunner) Perform(
	ctx context.Context, actionType, action string, input any,
) (any, error) {
	switch actionType {
	case api.ActionBrowser:
		return fmt.Sprintf("browser: %s", action), nil
	case api.ActionTerminal:
		return fmt.Sprintf("terminal: %s", action), nil
	case api.ActionAPI:
		return r.performAPI(ctx, action)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, actionType)
	}
}

func (r *ActionRunner) performAPI(
	ctx context.Context, url string,
) (any, error) {
	var out map[string]any
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("api action failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("api action: GET %s: %s", url, resp.Status())
	}
	if out != nil {
		return out, nil
	}
	return resp.String(), nil
}
