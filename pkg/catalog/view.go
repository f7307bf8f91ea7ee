package catalog

import (
	"net/url"
	"strings"
	"time"

	"github.com/hkbk-garden/plant-catalog/pkg/models"
)

// Row labels, in display order.
const (
	LabelCategory          = "Category"
	LabelDateOfPlanting    = "Date of Planting"
	LabelAge               = "Age"
	LabelMaxHeight         = "Max Height"
	LabelOrigin            = "Origin"
	LabelWaterRequirement  = "Water Requirement"
	LabelSeasonalFlowering = "Seasonal Flowering"
	LabelMedicinalValue    = "Medicinal Value"
	LabelQuantitativeData  = "Quantitative Data"
	LabelGeoLocation       = "Geo Location"
	LabelAdditionalInfo    = "Additional Info"
	LabelImages            = "Images"
)

// Row is one line of the detail table. Image rows carry Images; every other
// row carries Segments. An image row without images falls back to a
// placeholder segment.
type Row struct {
	Label    string    `json:"label"`
	Segments []Segment `json:"segments,omitempty"`
	Images   []Image   `json:"images,omitempty"`
}

// Text is the row as plain text.
func (r Row) Text() string {
	return PlainText(r.Segments)
}

// DetailView is everything the detail page shows for one plant.
type DetailView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Heading string `json:"heading"`
	Age     Age    `json:"age"`
	Rows    []Row  `json:"rows"`
}

// SpeechText concatenates the heading and every displayed text value in
// display order. The gallery has no text and is left out, and placeholder
// glyphs are dropped.
func (v *DetailView) SpeechText() string {
	var parts []string
	if h := spoken(v.Heading); h != "" {
		parts = append(parts, h)
	}
	for _, r := range v.Rows {
		if r.Label == LabelImages {
			continue
		}
		if t := spoken(r.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// spoken removes standalone placeholders such as "-" and "(-)".
func spoken(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if w == Placeholder || w == "("+Placeholder+")" {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Card is the listing summary of one plant.
type Card struct {
	ID             string `json:"id"`
	Image          string `json:"image,omitempty"`
	CommonName     string `json:"common_name"`
	ScientificName string `json:"scientific_name"`
	DetailURL      string `json:"detail_url"`
}

// Renderer turns plant records into display views.
type Renderer struct {
	style     Style
	siteName  string
	annotator TextAnnotator
	now       func() time.Time
}

// NewRenderer creates a renderer for the given style. siteName is the garden
// the narrative heading mentions.
func NewRenderer(style Style, siteName string) *Renderer {
	if siteName == "" {
		siteName = "HKBK"
	}
	return &Renderer{
		style:     style,
		siteName:  siteName,
		annotator: URLMatcher{},
		now:       time.Now,
	}
}

// WithClock replaces the clock used for age derivation.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// WithAnnotator replaces the free-text link matcher.
func (r *Renderer) WithAnnotator(a TextAnnotator) *Renderer {
	r.annotator = a
	return r
}

// Style returns the configured display style.
func (r *Renderer) Style() Style {
	return r.style
}

// RenderFields derives every display field of a plant.
func (r *Renderer) RenderFields(p *models.Plant) *DetailView {
	common, commonOK := models.Value(p.CommonName)
	scientific, scientificOK := models.Value(p.ScientificName)

	name := common
	if !commonOK {
		name = Placeholder
	}

	age := FormatAge(p.DateOfPlanting, r.now())

	view := &DetailView{
		ID:      p.ID,
		Name:    name,
		Heading: r.style.heading(common, commonOK, scientific, scientificOK, r.siteName),
		Age:     age,
	}

	text := func(label string, field *string) Row {
		v, ok := models.Value(field)
		return Row{Label: label, Segments: []Segment{{Text: r.style.phrase(label, v, ok)}}}
	}

	view.Rows = []Row{
		text(LabelCategory, p.Category),
		text(LabelDateOfPlanting, p.DateOfPlanting),
		{Label: LabelAge, Segments: []Segment{{Text: r.style.age(age)}}},
		text(LabelMaxHeight, p.MaxHeight),
		text(LabelOrigin, p.Origin),
		text(LabelWaterRequirement, p.WaterRequirement),
		text(LabelSeasonalFlowering, p.SeasonalFlowering),
		text(LabelMedicinalValue, p.MedicinalValue),
		text(LabelQuantitativeData, p.QuantitativeData),
		text(LabelGeoLocation, p.GeoLocation),
		r.additionalInfo(p.AdditionalInfo),
		r.images(p.ImageURLs, name),
	}
	return view
}

func (r *Renderer) additionalInfo(field *string) Row {
	row := Row{Label: LabelAdditionalInfo}
	info, ok := models.Value(field)
	switch {
	case !ok && r.style == StyleTerse:
		row.Segments = []Segment{{Text: Placeholder}}
	case !ok:
		row.Segments = []Segment{{Text: additionalInfoAbsent}}
	case r.style == StyleTerse:
		row.Segments = r.annotator.Annotate(info)
	default:
		row.Segments = append([]Segment{{Text: additionalInfoPrefix}}, r.annotator.Annotate(info)...)
	}
	return row
}

func (r *Renderer) images(field *string, name string) Row {
	images := SplitImages(field, name)
	if len(images) == 0 {
		return Row{Label: LabelImages, Segments: []Segment{{Text: Placeholder}}}
	}
	return Row{Label: LabelImages, Images: images}
}

// Summaries builds the listing cards. Names fall back to the placeholder
// glyph regardless of style since a card has no room for sentences.
func (r *Renderer) Summaries(plants []*models.Plant) []Card {
	cards := make([]Card, 0, len(plants))
	for _, p := range plants {
		if p == nil {
			continue
		}
		card := Card{
			ID:             p.ID,
			CommonName:     valueOr(p.CommonName, Placeholder),
			ScientificName: valueOr(p.ScientificName, Placeholder),
			DetailURL:      DetailURL(p.ID),
		}
		if p.ImageURLs != nil {
			if urls := SplitImageURLs(*p.ImageURLs); len(urls) > 0 {
				card.Image = urls[0]
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// DetailURL is the page link for one plant.
func DetailURL(id string) string {
	return "/plant?" + url.Values{"id": {id}}.Encode()
}

func valueOr(field *string, fallback string) string {
	if v, ok := models.Value(field); ok {
		return v
	}
	return fallback
}
