package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var filterTypesType string

// filterTypesCmd represents the filter-types command
var filterTypesCmd = &cobra.Command{
	Use:   "filter-types",
	Short: "List the filter attributes of a timetable type",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}

		types, err := c.GetTimetableFilterTypes(cmd.Context(), filterTypesType)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), newFormatter().FormatFilterTypes(types))
		return nil
	},
}

func init() {
	filterTypesCmd.Flags().StringVarP(&filterTypesType, "type", "t", "", "timetable type, e.g. module (required)")
	_ = filterTypesCmd.MarkFlagRequired("type")
}
