package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eveoh/mytimetable-api-client/filter"
	"github.com/eveoh/mytimetable-api-client/model"
	"github.com/eveoh/mytimetable-api-client/request"
)

var (
	searchType       string
	searchDataSource string
	searchQuery      string
	searchFilters    []string
	searchLimit      int
	searchOffset     int
	searchWhere      string
)

// timetablesCmd represents the timetables command
var timetablesCmd = &cobra.Command{
	Use:   "timetables",
	Short: "Search timetables of a type",
	Long: `Search the timetables of a type, optionally narrowed down by data source,
a free-text query and filter attribute options.

Filter options are given as attribute=option, with the ids listed by filter-types:

  mytimetable timetables --type module --filter department=646ADCA666D4A88402CA46C26A73803C`,
	RunE: runTimetables,
}

// timetableCmd represents the timetable command
var timetableCmd = &cobra.Command{
	Use:   "timetable ID",
	Short: "Show a single timetable",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimetable,
}

func init() {
	timetablesCmd.Flags().StringVarP(&searchType, "type", "t", "", "timetable type, e.g. module (required)")
	timetablesCmd.Flags().StringVar(&searchDataSource, "ds", "", "data source, e.g. an academic year")
	timetablesCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "free-text search")
	timetablesCmd.Flags().StringArrayVarP(&searchFilters, "filter", "f", nil, "filter option as attribute=option (repeatable)")
	timetablesCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum number of results")
	timetablesCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	timetablesCmd.Flags().StringVarP(&searchWhere, "where", "w", "", "filter expression applied to the results")
	_ = timetablesCmd.MarkFlagRequired("type")
}

// parseFilterOptions turns attribute=option pairs into request filters
func parseFilterOptions(pairs []string) ([]request.Filter, error) {
	options := make(map[string]model.TimetableFilterOption, len(pairs))
	for _, pair := range pairs {
		attr, option, ok := strings.Cut(pair, "=")
		attr, option = strings.TrimSpace(attr), strings.TrimSpace(option)
		if !ok || attr == "" || option == "" {
			return nil, fmt.Errorf("invalid filter %q, expected attribute=option", pair)
		}
		options[attr] = model.TimetableFilterOption{ID: option}
	}
	return request.SortedFilters(options), nil
}

func runTimetables(cmd *cobra.Command, args []string) error {
	filters, err := parseFilterOptions(searchFilters)
	if err != nil {
		return err
	}

	var where filter.CompiledFilter
	if searchWhere != "" {
		where, err = filter.Compile(searchWhere)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	c, err := connect()
	if err != nil {
		return err
	}

	logger.Debug().
		Str("type", searchType).
		Int("filters", len(filters)).
		Msg("Searching timetables")

	timetables, err := c.GetTimetables(cmd.Context(), request.TimetablesQuery{
		Type:       searchType,
		DataSource: searchDataSource,
		Query:      searchQuery,
		Filters:    filters,
		Limit:      searchLimit,
		Offset:     searchOffset,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), newFormatter().FormatTimetables(filter.Timetables(where, timetables)))
	return nil
}

func runTimetable(cmd *cobra.Command, args []string) error {
	c, err := connect()
	if err != nil {
		return err
	}

	timetable, err := c.GetTimetable(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), newFormatter().FormatTimetables([]model.Timetable{timetable}))
	return nil
}
