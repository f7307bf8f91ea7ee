package catalog

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"
)

// Placeholder stands in for any value the record does not have.
const Placeholder = "-"

// Style selects how absent and present values are phrased. One style is
// used for a whole deployment so that every record reads the same way.
type Style string

const (
	// StyleNarrative phrases each field as a sentence spoken by the plant.
	StyleNarrative Style = "narrative"
	// StyleTerse shows raw values and the placeholder glyph.
	StyleTerse Style = "terse"
)

// ParseStyle validates a configured display style. Empty means narrative.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleNarrative:
		return StyleNarrative, nil
	case StyleTerse:
		return StyleTerse, nil
	default:
		return "", fmt.Errorf("unknown display style %q (want %q or %q)", s, StyleNarrative, StyleTerse)
	}
}

// phrasing holds the narrative sentence for a present value and the fallback
// sentence for an absent one.
type phrasing struct {
	present string // fmt pattern with one %s
	absent  string
}

// fieldPhrases is keyed by the display label.
var fieldPhrases = map[string]phrasing{
	LabelCategory:          {"I belong to the %s category.", "I’m still discovering my category."},
	LabelDateOfPlanting:    {"I was planted on %s.", "I don't remember the exact date I was planted, but I’ve been growing happily here 🌱."},
	LabelMaxHeight:         {"I can grow up to %s.", "My height is still a surprise!"},
	LabelOrigin:            {"My roots trace back to %s.", "My origin is a mystery."},
	LabelWaterRequirement:  {"I thrive best with %s.", "I’m not too picky about water."},
	LabelSeasonalFlowering: {"I bloom during %s.", "I may surprise you with my flowers!"},
	LabelMedicinalValue:    {"People value me for: %s.", "I don’t have known medicinal uses."},
	LabelQuantitativeData:  {"Fun fact: %s.", "No extra data about me yet."},
	LabelGeoLocation:       {"You can find me at: %s.", "My exact location is not shared."},
}

const (
	additionalInfoPrefix = "Did you know? "
	additionalInfoAbsent = "I have no extra stories to share right now 🌱."
	ageAbsent            = "My age is a little secret 🤫."
	notYetPlanted        = "I haven't been planted yet."
	notYetPlantedTerse   = "not yet planted"
)

// phrase renders a simple text field.
func (s Style) phrase(label, value string, ok bool) string {
	if s == StyleTerse {
		if !ok {
			return Placeholder
		}
		return value
	}
	p := fieldPhrases[label]
	if !ok {
		return p.absent
	}
	return fmt.Sprintf(p.present, value)
}

// age renders the Age row.
func (s Style) age(a Age) string {
	switch {
	case !a.Known && s == StyleTerse:
		return Placeholder
	case !a.Known:
		return ageAbsent
	case a.NotYetPlanted() && s == StyleTerse:
		return notYetPlantedTerse
	case a.NotYetPlanted():
		return notYetPlanted
	case s == StyleTerse:
		return a.String()
	}
	return fmt.Sprintf("I am around %d %s old.", a.Years, yearWord(a.Years))
}

// heading renders the page title from both names.
func (s Style) heading(common string, commonOK bool, scientific string, scientificOK bool, site string) string {
	if !scientificOK {
		scientific = Placeholder
	}
	if s == StyleTerse {
		if !commonOK {
			common = Placeholder
		}
		return fmt.Sprintf("%s (%s)", common, scientific)
	}
	if !commonOK {
		common = "a plant"
	}
	return fmt.Sprintf("Hi! I’m %s, flourishing at %s 🌿. My scientific name is %s.", common, site, scientific)
}

// yearWord pluralizes "year" for the given count.
func yearWord(n int) string {
	if n == 1 || n == -1 {
		return "year"
	}
	return inflection.Plural("year")
}
