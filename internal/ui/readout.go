// ABOUTME: Proximity readout formatting for the terminal
// ABOUTME: Band colors, compass labels, distance humanization, readout lines

package ui

import (
	"fmt"
	"math"

	"github.com/fatih/color"

	"github.com/maxboss2005/item-radar/internal/geo"
)

// windNames are the 16-wind compass rose labels, clockwise from north.
var windNames = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// CompassLabel returns the 16-wind compass label for a bearing in degrees.
func CompassLabel(bearingDeg float64) string {
	deg := math.Mod(bearingDeg, 360)
	if deg < 0 {
		deg += 360
	}
	return windNames[int((deg+11.25)/22.5)%16]
}

// BandLabel returns the human form of a proximity band.
func BandLabel(band geo.Band) string {
	switch band {
	case geo.AtTarget:
		return "at target"
	case geo.VeryClose:
		return "very close"
	case geo.Nearby:
		return "nearby"
	case geo.Moderate:
		return "moderate"
	case geo.Far:
		return "far"
	default:
		return band.String()
	}
}

// BandColor returns the display color for a proximity band. Hotter colors
// mean closer, mirroring the hot-and-cold feedback the readout gives.
func BandColor(band geo.Band) *color.Color {
	switch band {
	case geo.AtTarget:
		return color.New(color.FgHiGreen, color.Bold)
	case geo.VeryClose:
		return color.New(color.FgGreen)
	case geo.Nearby:
		return color.New(color.FgYellow)
	case geo.Moderate:
		return color.New(color.FgCyan)
	default:
		return color.New(color.Faint)
	}
}

// FormatBand renders a band as its colored human label.
func FormatBand(band geo.Band) string {
	return BandColor(band).Sprint(BandLabel(band))
}

// FormatDistance humanizes a distance in meters.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.1f m", meters)
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

// FormatReading renders one proximity readout line: distance, compass
// direction with degrees, and the colored band. At the target there is no
// meaningful heading, so the direction is omitted.
func FormatReading(r geo.Reading) string {
	if r.Band == geo.AtTarget {
		return fmt.Sprintf("%s - %s",
			color.CyanString(FormatDistance(r.DistanceMeters)),
			FormatBand(r.Band))
	}

	deg := math.Mod(math.Round(r.BearingDegrees), 360)
	return fmt.Sprintf("%s %s %s - %s",
		color.CyanString(FormatDistance(r.DistanceMeters)),
		CompassLabel(r.BearingDegrees),
		color.New(color.Faint).Sprintf("(%.0f°)", deg),
		FormatBand(r.Band))
}

// FormatRSSI renders a simulated signal strength reading.
func FormatRSSI(dbm float64) string {
	return color.New(color.Faint).Sprintf("%.0f dBm", dbm)
}
