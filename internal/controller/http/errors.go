package http

import (
	"errors"
	"net/http"

	authentity "github.com/vadim/linkedin-mcp/internal/domain/auth/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
	settingsentity "github.com/vadim/linkedin-mcp/internal/domain/settings/entity"
	"github.com/vadim/linkedin-mcp/internal/httpx/oauth"
	"github.com/vadim/linkedin-mcp/internal/httpx/response"
	"github.com/vadim/linkedin-mcp/internal/httpx/upstream/linkedin"
)

func handleDomainError(w http.ResponseWriter, err error) {
	var apiErr *linkedin.APIError

	switch {
	case errors.Is(err, entity.ErrPostNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, entity.ErrNotDraft), errors.Is(err, entity.ErrAlreadyPublished), errors.Is(err, entity.ErrPublishInProgress),
		errors.Is(err, entity.ErrPublishedImmutable), errors.Is(err, entity.ErrNotDeletable),
		errors.Is(err, oauth.ErrAlreadyWaiting):
		response.Conflict(w, err.Error())
	case errors.Is(err, entity.ErrEmptyTopic), errors.Is(err, entity.ErrEmptyContent),
		errors.Is(err, entity.ErrContentTooLong), errors.Is(err, entity.ErrScheduledTimeInPast),
		errors.Is(err, entity.ErrInvalidStatus), errors.Is(err, entity.ErrInvalidTime),
		errors.Is(err, settingsentity.ErrInvalidTone):
		response.BadRequest(w, err.Error())
	case errors.Is(err, authentity.ErrNotAuthenticated), errors.Is(err, authentity.ErrTokenExpired):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, authentity.ErrMissingClient), errors.Is(err, entity.ErrExportDisabled):
		response.ServiceUnavailable(w, err.Error())
	case errors.Is(err, authentity.ErrInvalidToken), errors.As(err, &apiErr):
		response.BadGateway(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
