// Package client provides remote HTTP implementations of the capability
// interfaces in internal/port, for deployments where the goods and account
// services run standalone. They speak the same {code,message,data} envelope
// the HTTP handlers emit, so business errors round-trip to the same
// sentinel errors the local services return.
package client

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

// userIDHeader carries the authenticated user id between services. The
// upstream auth layer sets it on external traffic.
const userIDHeader = "X-User-Id"

const successCode = 0

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newRestyClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
}

func formatUserID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// decode unpacks an envelope response, mapping business error codes back to
// sentinel errors and unmarshalling data into out when out is non-nil.
func decode(resp *resty.Response, out any) error {
	if resp.IsError() && len(resp.Body()) == 0 {
		return fmt.Errorf("remote call %s: status %d", resp.Request.URL, resp.StatusCode())
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("decode response from %s: %w", resp.Request.URL, err)
	}
	if env.Code != successCode {
		return domain.ErrorByCode(env.Code, env.Message)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data from %s: %w", resp.Request.URL, err)
	}
	return nil
}
