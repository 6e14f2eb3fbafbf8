// Package feed downloads GTFS archives and reconciles declared line
// identifiers against their routes.txt.
package feed

import (
	"net/url"
	"strings"
)

// AgencyPlaceholder is replaced by the agency identifier in URL templates.
const AgencyPlaceholder = "{agency}"

// Source names a descriptor format and the GTFS endpoint it is checked
// against.
type Source struct {
	Name        string `yaml:"name" validate:"required"`
	Descriptor  string `yaml:"descriptor" validate:"required"`
	URLTemplate string `yaml:"url_template" validate:"required,contains={agency}"`
}

// URL returns the feed URL for agency.
func (s Source) URL(agency string) string {
	return strings.ReplaceAll(s.URLTemplate, AgencyPlaceholder, url.PathEscape(agency))
}

// DefaultSources returns the two upstream GTFS providers.
func DefaultSources() []Source {
	return []Source{
		{
			Name:        "picto",
			Descriptor:  "picto",
			URLTemplate: "https://hexatransit.fr/datasets/gtfs/{agency}.zip",
		},
		{
			Name:        "trafic",
			Descriptor:  "trafic",
			URLTemplate: "https://clarifygdps.com/bridge/gtfs/{agency}.zip",
		},
	}
}

// FindSource returns the source called name.
func FindSource(sources []Source, name string) (Source, bool) {
	for _, s := range sources {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Source{}, false
}
