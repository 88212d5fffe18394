package mytimetable

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/eveoh/mytimetable-api-client/model"
)

// UserEventsResult contains the outcome of a batch upcoming events lookup
type UserEventsResult struct {
	Events map[string][]model.Event
	Failed []UserEventsError
}

// UserEventsError contains information about a failed lookup for one user
type UserEventsError struct {
	Username string
	Err      error
}

// Error implements the error interface
func (e UserEventsError) Error() string {
	return fmt.Sprintf("failed to get events for %s: %v", e.Username, e.Err)
}

func (e UserEventsError) Unwrap() error {
	return e.Err
}

// GetUpcomingEventsForUsers fetches upcoming events for several users concurrently,
// never using more connections than the configured pool allows.
// Failures for individual users are collected instead of aborting the batch.
func (c *Client) GetUpcomingEventsForUsers(ctx context.Context, usernames []string, locale language.Tag) UserEventsResult {
	result := UserEventsResult{
		Events: make(map[string][]model.Event, len(usernames)),
	}

	if len(usernames) == 0 {
		return result
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.APIMaxConnections, 1))

	var mu sync.Mutex
	seen := make(map[string]bool, len(usernames))

	for _, username := range usernames {
		if seen[username] {
			continue
		}
		seen[username] = true

		g.Go(func() error {
			events, err := c.GetUpcomingEventsWithLocale(ctx, username, locale)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("username", username).
					Msg("Failed to get upcoming events")
				result.Failed = append(result.Failed, UserEventsError{Username: username, Err: err})
				return nil // Don't stop on individual errors
			}

			result.Events[username] = events
			return nil
		})
	}

	_ = g.Wait()

	return result
}
