package ruler

import (
	"math/big"

	"screenruler/unit"
)

// ReadingDigits is the number of decimals shown in a reading.
const ReadingDigits = 2

// Reading converts a pixel offset into u.
func Reading(c Converter, px int64, u unit.Unit) (*big.Rat, error) {
	return c.Convert(big.NewRat(px, 1), unit.Pixel, u)
}

// FormatReading renders the reading at a pixel offset, e.g. "26.46 mm".
func FormatReading(c Converter, px int64, u unit.Unit) (string, error) {
	v, err := Reading(c, px, u)
	if err != nil {
		return "", err
	}

	return v.FloatString(ReadingDigits) + " " + string(u), nil
}
