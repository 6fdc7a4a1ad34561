package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Style is the closed body-style vocabulary. The zero value means the
// listing carried no recognisable style fragment.
type Style string

const (
	StyleSaloon      Style = "Saloon"
	StyleHatchback   Style = "Hatchback"
	StyleConvertible Style = "Convertible"
	StyleCoupe       Style = "Coupe"
	StyleEstate      Style = "Estate"
	StyleMPV         Style = "MPV"
	StyleSUV         Style = "SUV"
)

// Transmission is the closed gearbox vocabulary, zero value missing.
type Transmission string

const (
	TransmissionManual    Transmission = "Manual"
	TransmissionAutomatic Transmission = "Automatic"
)

// Fuel is the closed fuel-type vocabulary, zero value missing.
type Fuel string

const (
	FuelDiesel             Fuel = "Diesel"
	FuelPetrol             Fuel = "Petrol"
	FuelElectric           Fuel = "Electric"
	FuelDieselHybrid       Fuel = "Diesel Hybrid"
	FuelPetrolHybrid       Fuel = "Petrol Hybrid"
	FuelPetrolPluginHybrid Fuel = "Petrol Plug-in Hybrid"
)

// Field patterns are anchored at the start of the fragment text. A
// fragment like "around 20,000 miles" is deliberately not a mileage.
var (
	yearRe    = regexp.MustCompile(`^(\d{4})\s\(`)
	styleRe   = regexp.MustCompile(`(?i)^(Saloon|Hatchback|Convertible|Coupe|Estate|MPV|SUV)`)
	mileageRe = regexp.MustCompile(`(?i)^(\d+,?\d+)\smiles`)
	engineRe  = regexp.MustCompile(`^(\d\.?\d?)L`)
	transRe   = regexp.MustCompile(`(?i)^(Manual|Automatic)`)

	// Longest alternatives first: "Petrol Plug-in Hybrid" must never be
	// consumed by the bare "Petrol" alternative.
	fuelRe = regexp.MustCompile(`(?i)^(Petrol Plug-in Hybrid|Petrol Hybrid|Diesel Hybrid|Diesel|Petrol|Electric)`)
)

var canonicalStyle = map[string]Style{
	"saloon":      StyleSaloon,
	"hatchback":   StyleHatchback,
	"convertible": StyleConvertible,
	"coupe":       StyleCoupe,
	"estate":      StyleEstate,
	"mpv":         StyleMPV,
	"suv":         StyleSUV,
}

var canonicalTransmission = map[string]Transmission{
	"manual":    TransmissionManual,
	"automatic": TransmissionAutomatic,
}

var canonicalFuel = map[string]Fuel{
	"diesel":                FuelDiesel,
	"petrol":                FuelPetrol,
	"electric":              FuelElectric,
	"diesel hybrid":         FuelDieselHybrid,
	"petrol hybrid":         FuelPetrolHybrid,
	"petrol plug-in hybrid": FuelPetrolPluginHybrid,
}

// classifySpec matches one spec fragment against every field pattern and
// overwrites each matching field unconditionally. Listings are not
// guaranteed to carry unique fragment types, so for a repeated type the
// last fragment in document order wins. A single fragment may populate
// several fields.
func (l *Listing) classifySpec(text string) {
	if m := yearRe.FindStringSubmatch(text); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			l.Year = &y
		}
	}
	if m := styleRe.FindStringSubmatch(text); m != nil {
		l.Style = canonicalStyle[strings.ToLower(m[1])]
	}
	if m := mileageRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			l.Mileage = &n
		}
	}
	if m := engineRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(m[1], "."), 64); err == nil {
			l.Engine = &v
		}
	}
	if m := transRe.FindStringSubmatch(text); m != nil {
		l.Transmission = canonicalTransmission[strings.ToLower(m[1])]
	}
	if m := fuelRe.FindStringSubmatch(text); m != nil {
		l.Fuel = canonicalFuel[strings.ToLower(m[1])]
	}
}
