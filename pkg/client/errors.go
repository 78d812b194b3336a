package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	api "github.com/aretw0/conform/pkg/adapters/http"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	var decoded api.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err == nil && decoded.Error != "" {
		body = decoded.Error
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrSchemaNotFound, body)
	case resp.StatusCode() == http.StatusBadRequest:
		if strings.Contains(body, domain.ErrInvalidSchemaName.Error()) {
			return fmt.Errorf("%w: %w: %s", ErrBadRequest, domain.ErrInvalidSchemaName, body)
		}
		if strings.Contains(body, domain.ErrSchemaRequired.Error()) {
			return fmt.Errorf("%w: %w", ErrBadRequest, domain.ErrSchemaRequired)
		}
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case resp.StatusCode() == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrReadOnlyStore, body)
	case resp.StatusCode() >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrServer, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
