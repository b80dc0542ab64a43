package message

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/model"
)

// Locale controls how a datapoint is rendered into text.
type Locale struct {
	Name       string
	DateLayout string
	// Template receives the rendered date and cost, in that order.
	Template string
}

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "ja"

var locales = map[string]Locale{
	"ja": {
		Name:       "ja",
		DateLayout: "2006年01月02日",
		Template:   "%sまでのAWSの料金は、$%sです。",
	},
	"en": {
		Name:       "en",
		DateLayout: "2006-01-02",
		Template:   "As of %s, the estimated AWS charge is $%s.",
	},
}

// LookupLocale returns the named locale.
func LookupLocale(name string) (Locale, error) {
	if name == "" {
		name = DefaultLocale
	}
	l, ok := locales[strings.ToLower(name)]
	if !ok {
		return Locale{}, fmt.Errorf("unknown locale %q (supported: %s)", name, strings.Join(Locales(), ", "))
	}
	return l, nil
}

// Locales returns the supported locale names in sorted order.
func Locales() []string {
	names := make([]string, 0, len(locales))
	for name := range locales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Formatter turns estimated-charge datapoints into notification messages.
type Formatter struct {
	locale Locale
}

// NewFormatter creates a formatter for the given locale.
func NewFormatter(locale Locale) *Formatter {
	return &Formatter{locale: locale}
}

// Format renders the datapoint. It has no side effects and never fails.
func (f *Formatter) Format(dp model.MetricDatapoint) model.FormattedMessage {
	date := dp.Timestamp.UTC().Format(f.locale.DateLayout)
	return model.FormattedMessage{
		Text:  fmt.Sprintf(f.locale.Template, date, FormatCost(dp.Maximum)),
		Color: ColorFor(dp.Maximum),
	}
}

// FormatCost renders a USD amount using the fewest digits that round-trip,
// so 0.42 prints as "0.42" and 1 as "1".
func FormatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', -1, 64)
}

// ColorFor maps a cost to its severity color.
func ColorFor(cost float64) model.Color {
	switch {
	case cost < 0.5:
		return model.ColorGood
	case cost < 1.0:
		return model.ColorWarning
	default:
		return model.ColorDanger
	}
}
