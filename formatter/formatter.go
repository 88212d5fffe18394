// Package formatter renders timetable data for the console, applying the
// presentation settings of a configuration.
package formatter

import (
	"fmt"
	"strings"

	"github.com/eveoh/mytimetable-api-client/config"
	"github.com/eveoh/mytimetable-api-client/model"
)

const (
	dayLayout  = "Mon 02 Jan"
	timeLayout = "15:04"
)

// ConsoleFormatter provides console output formatting for timetable data
type ConsoleFormatter struct {
	cfg *config.Configuration
}

// NewConsoleFormatter creates a new console formatter. A nil configuration uses the defaults.
func NewConsoleFormatter(cfg *config.Configuration) *ConsoleFormatter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &ConsoleFormatter{cfg: cfg}
}

// branch returns the tree prefix and the indent of the lines below an item
func branch(isLast bool) (string, string) {
	if isLast {
		return "╰", "    "
	}
	return "├", "│   "
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// FormatEvents formats upcoming events, at most MaxNumberOfEvents of them
func (f *ConsoleFormatter) FormatEvents(events []model.Event) string {
	if len(events) == 0 {
		return "No upcoming events"
	}

	if limit := f.cfg.MaxNumberOfEvents; limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nUpcoming event%s (%d):\n\n", plural(len(events)), len(events))

	for i, event := range events {
		isLast := i == len(events)-1
		prefix, indent := branch(isLast)

		fmt.Fprintf(&sb, "%s── %s  %s\n", prefix, f.when(event), f.activity(event))

		if where := f.where(event); where != "" {
			fmt.Fprintf(&sb, "%sLocation: %s\n", indent, where)
		}
		if len(event.StaffMembers) > 0 {
			fmt.Fprintf(&sb, "%sStaff: %s\n", indent, strings.Join(event.StaffMembers, ", "))
		}
		if notes := strings.TrimSpace(event.Notes); notes != "" {
			fmt.Fprintf(&sb, "%sNotes: %s\n", indent, notes)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	if link := f.ApplicationLink(); link != "" {
		fmt.Fprintf(&sb, "\n%s\n", link)
	}

	sb.WriteString("\n")
	return sb.String()
}

// when renders the day and the time span of an event
func (f *ConsoleFormatter) when(event model.Event) string {
	start, end := event.StartDate.Time, event.EndDate.Time
	switch {
	case start.IsZero():
		return "(no start time)"
	case end.IsZero():
		return start.Format(dayLayout + " " + timeLayout)
	case start.YearDay() != end.YearDay() || start.Year() != end.Year():
		return start.Format(dayLayout+" "+timeLayout) + " - " + end.Format(dayLayout+" "+timeLayout)
	default:
		return start.Format(dayLayout+" "+timeLayout) + "-" + end.Format(timeLayout)
	}
}

func (f *ConsoleFormatter) activity(event model.Event) string {
	description := event.ActivityDescription
	if description == "" {
		description = event.ID
	}
	if f.cfg.ShowActivityType && event.ActivityType != "" {
		return fmt.Sprintf("%s (%s)", description, event.ActivityType)
	}
	return description
}

// where joins the event locations, falling back to UnknownLocationDescription
func (f *ConsoleFormatter) where(event model.Event) string {
	if locations := event.LocationDescriptions(); len(locations) > 0 {
		return strings.Join(locations, ", ")
	}
	return f.cfg.UnknownLocationDescription
}

// ApplicationLink returns the line pointing at the MyTimetable web application,
// or an empty string when no application URI is configured
func (f *ConsoleFormatter) ApplicationLink() string {
	uri := strings.TrimSpace(f.cfg.ApplicationURI)
	if uri == "" {
		return ""
	}
	if target := f.cfg.ApplicationTarget; target != "" {
		return fmt.Sprintf("Full timetable: %s (target %s)", uri, target)
	}
	return "Full timetable: " + uri
}

// FormatTimetables formats timetable search results
func (f *ConsoleFormatter) FormatTimetables(timetables []model.Timetable) string {
	if len(timetables) == 0 {
		return "No timetables found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nTimetable%s (%d):\n\n", plural(len(timetables)), len(timetables))

	for i, t := range timetables {
		isLast := i == len(timetables)-1
		prefix, indent := branch(isLast)

		title := t.Description
		if title == "" {
			title = t.ID
		}
		if t.Key != "" {
			title += " [" + t.Key + "]"
		}
		fmt.Fprintf(&sb, "%s── %s\n", prefix, title)
		fmt.Fprintf(&sb, "%sID: %s\n", indent, t.ID)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatFilterTypes formats filter attributes with their options
func (f *ConsoleFormatter) FormatFilterTypes(types []model.TimetableFilterType) string {
	if len(types) == 0 {
		return "No filter types found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nFilter type%s (%d):\n\n", plural(len(types)), len(types))

	for i, ft := range types {
		isLast := i == len(types)-1
		prefix, indent := branch(isLast)

		fmt.Fprintf(&sb, "%s── %s (%s)\n", prefix, ft.Description, ft.ID)

		if len(ft.Options) == 0 {
			fmt.Fprintf(&sb, "%sNo options\n", indent)
		}
		for _, opt := range ft.Options {
			fmt.Fprintf(&sb, "%s%s  %s\n", indent, opt.ID, opt.Description)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}
