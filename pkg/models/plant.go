package models

import (
	"encoding/json"
	"strings"

	"github.com/hkbk-garden/plant-catalog/pkg/jsonutil"
)

// Plant is one catalog entry as held by the Record Store.
// Every field except ID is optional; nil means the store had no value.
type Plant struct {
	ID                string  `json:"id" yaml:"id"`
	CommonName        *string `json:"common_name,omitempty" yaml:"common_name,omitempty"`
	ScientificName    *string `json:"scientific_name,omitempty" yaml:"scientific_name,omitempty"`
	Category          *string `json:"category,omitempty" yaml:"category,omitempty"`
	DateOfPlanting    *string `json:"date_of_planting,omitempty" yaml:"date_of_planting,omitempty"`
	MaxHeight         *string `json:"max_height,omitempty" yaml:"max_height,omitempty"`
	Origin            *string `json:"origin,omitempty" yaml:"origin,omitempty"`
	WaterRequirement  *string `json:"water_requirement,omitempty" yaml:"water_requirement,omitempty"`
	SeasonalFlowering *string `json:"seasonal_flowering,omitempty" yaml:"seasonal_flowering,omitempty"`
	MedicinalValue    *string `json:"medicinal_value,omitempty" yaml:"medicinal_value,omitempty"`
	QuantitativeData  *string `json:"quantitative_data,omitempty" yaml:"quantitative_data,omitempty"`
	// GeoLocation is the canonical name. Older catalog rows call it "location".
	GeoLocation    *string `json:"geo_location,omitempty" yaml:"geo_location,omitempty"`
	AdditionalInfo *string `json:"additional_info,omitempty" yaml:"additional_info,omitempty"`
	ImageURLs      *string `json:"image_urls,omitempty" yaml:"image_urls,omitempty"`
}

// plantAlias drops the methods of Plant so the custom decoders can reuse
// the default field mapping.
type plantAlias Plant

// UnmarshalJSON decodes a plant, accepting a numeric id and the legacy
// "location" column as an alias for geo_location.
func (p *Plant) UnmarshalJSON(data []byte) error {
	var raw struct {
		plantAlias
		ID       json.RawMessage `json:"id"`
		Location *string         `json:"location"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Plant(raw.plantAlias)
	p.ID = jsonutil.FlexibleString(raw.ID)
	if p.GeoLocation == nil && raw.Location != nil {
		p.GeoLocation = raw.Location
	}
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for catalog files.
func (p *Plant) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		plantAlias `yaml:",inline"`
		Location   *string `yaml:"location"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*p = Plant(raw.plantAlias)
	if p.GeoLocation == nil && raw.Location != nil {
		p.GeoLocation = raw.Location
	}
	return nil
}

// Value returns the trimmed field value and whether it is present.
// Blank strings count as absent.
func Value(field *string) (string, bool) {
	if field == nil {
		return "", false
	}
	v := strings.TrimSpace(*field)
	return v, v != ""
}

// StringPtr is a small helper for building fixtures.
func StringPtr(s string) *string {
	return &s
}
