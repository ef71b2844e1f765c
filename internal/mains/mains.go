// SPDX-License-Identifier: EPL-2.0

// Package mains works out which mains hum frequencies to notch out.
package mains

import (
	"fmt"
	"strings"

	tz "github.com/medama-io/go-timezone-country"
	"github.com/thlib/go-timezone-local/tzlocal"
)

const (
	Hz50 = 50.0
	Hz60 = 60.0
)

// Mode values accepted by Candidates.
const (
	ModeAuto = "auto"
	Mode50   = "50"
	Mode60   = "60"
	ModeBoth = "both"
	ModeOff  = "off"
)

// Frequency returns the mains frequency of the host's timezone, falling
// back to 50 Hz when it cannot be determined.
func Frequency() float64 {
	zone, err := tzlocal.RuntimeTZ()
	if err != nil {
		return Hz50
	}
	return FrequencyForTimezone(zone)
}

// FrequencyForTimezone maps an IANA timezone to its country's mains
// frequency. Zones without a country map to 50 Hz.
func FrequencyForTimezone(zone string) float64 {
	if zone == "" || zone == "UTC" || zone == "GMT" || strings.HasPrefix(zone, "Etc/") {
		return Hz50
	}

	countries, err := tz.NewTimezoneCountryMap()
	if err != nil {
		return Hz50
	}
	country, err := countries.GetCountry(zone)
	if err != nil {
		return Hz50
	}

	if _, ok := sixtyHz[country]; ok {
		return Hz60
	}
	// Japan runs both; the Tokyo grid is 50 Hz.
	return Hz50
}

// Candidates turns a --hum mode into the ordered notch frequencies.
// ModeAuto detects the local frequency, ModeOff returns nil.
func Candidates(mode string) ([]float64, error) {
	switch strings.ToLower(mode) {
	case ModeAuto, "":
		return []float64{Frequency()}, nil
	case Mode50:
		return []float64{Hz50}, nil
	case Mode60:
		return []float64{Hz60}, nil
	case ModeBoth:
		return []float64{Hz50, Hz60}, nil
	case ModeOff:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown hum mode %q (want auto, 50, 60, both or off)", mode)
}

// sixtyHz holds the countries on 60 Hz grids, keyed by the names
// go-timezone-country reports.
var sixtyHz = map[string]struct{}{
	"American Samoa":      {},
	"Bahamas":             {},
	"Barbados":            {},
	"Belize":              {},
	"Brazil":              {},
	"Canada":              {},
	"Cayman Islands":      {},
	"Colombia":            {},
	"Costa Rica":          {},
	"Cuba":                {},
	"Dominican Republic":  {},
	"Ecuador":             {},
	"El Salvador":         {},
	"Guam":                {},
	"Guatemala":           {},
	"Guyana":              {},
	"Haiti":               {},
	"Honduras":            {},
	"Jamaica":             {},
	"Marshall Islands":    {},
	"Mexico":              {},
	"Micronesia":          {},
	"Nicaragua":           {},
	"Palau":               {},
	"Panama":              {},
	"Peru":                {},
	"Philippines":         {},
	"Puerto Rico":         {},
	"Saudi Arabia":        {},
	"South Korea":         {},
	"Suriname":            {},
	"Taiwan":              {},
	"Trinidad and Tobago": {},
	"U.S. Virgin Islands": {},
	"United States":       {},
	"Venezuela":           {},
}
