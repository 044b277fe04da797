package apiclient

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nadiahindrianti/shesafe/internal/domain/shared"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/tokenstore"
)

// TokenSource supplies the saved bearer token.
// tokenstore.Store implementations satisfy it.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
}

// bearer returns the token to send, or "" to send none.
// A required token that is missing or expired yields ErrUnauthorized
// without touching the network. A store failure only fails requests that
// require the token.
func (c *Client) bearer(ctx context.Context, required bool) (string, error) {
	if c.tokens == nil {
		if required {
			return "", shared.ErrUnauthorized
		}
		return "", nil
	}

	token, err := c.tokens.Load(ctx)
	switch {
	case errors.Is(err, tokenstore.ErrNoToken):
		if required {
			return "", shared.ErrUnauthorized
		}
		return "", nil
	case err != nil:
		if required {
			return "", fmt.Errorf("loading token: %w", err)
		}
		c.logger.Warn("Failed to load token, sending request without it", zap.Error(err))
		return "", nil
	}

	if tokenstore.Expired(token, c.now()) {
		c.logger.Debug("Saved token has expired")
		if required {
			return "", shared.ErrUnauthorized
		}
		return "", nil
	}
	return token, nil
}
