package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/eveoh/mytimetable-api-client/filter"
)

var (
	eventsLocale string
	eventsWhere  string
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events USER...",
	Short: "Show the upcoming events of one or more users",
	Long: `Show the upcoming events of one or more users. Usernames are decorated with the
configured domain prefix and postfix before they are sent.

Several users are looked up concurrently, bounded by apiMaxConnections.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().StringVarP(&eventsLocale, "locale", "l", "", "locale of the event descriptions, e.g. nl or en-GB")
	eventsCmd.Flags().StringVarP(&eventsWhere, "where", "w", "", "filter expression applied to the events")
}

func runEvents(cmd *cobra.Command, args []string) error {
	locale := language.Und
	if eventsLocale != "" {
		var err error
		locale, err = language.Parse(eventsLocale)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", eventsLocale, err)
		}
	}

	var where filter.CompiledFilter
	if eventsWhere != "" {
		var err error
		where, err = filter.Compile(eventsWhere)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	c, err := connect()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	f := newFormatter()

	if len(args) == 1 {
		events, err := c.GetUpcomingEventsWithLocale(ctx, args[0], locale)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, f.FormatEvents(filter.Events(where, events)))
		return nil
	}

	result := c.GetUpcomingEventsForUsers(ctx, args, locale)
	printed := make(map[string]bool, len(args))
	for _, username := range args {
		events, ok := result.Events[username]
		if !ok || printed[username] {
			continue
		}
		printed[username] = true
		fmt.Fprintf(out, "%s:\n", username)
		fmt.Fprintln(out, f.FormatEvents(filter.Events(where, events)))
	}

	if len(result.Failed) > 0 {
		for _, failure := range result.Failed {
			logger.Error().Err(failure.Err).Str("username", failure.Username).Msg("Lookup failed")
		}
		return fmt.Errorf("%d of %d lookups failed", len(result.Failed), len(result.Events)+len(result.Failed))
	}

	return nil
}
