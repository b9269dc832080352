package barchart

import (
	"strings"
)

type SignPalette struct {
	Positive string `json:"positive" yaml:"positive"`
	Negative string `json:"negative" yaml:"negative"`
}

var DefaultPalette = SignPalette{
	Positive: PositiveColor,
	Negative: NegativeColor,
}

func (p SignPalette) Color(v float64) string {
	if v >= 0 {
		return fallbackColor(p.Positive, PositiveColor)
	}
	return fallbackColor(p.Negative, NegativeColor)
}

func SignColor(v float64) string {
	return DefaultPalette.Color(v)
}

func fallbackColor(str, def string) string {
	str = strings.TrimSpace(str)
	if str == "" {
		return def
	}
	if len(str) == 6 && isHex(str) {
		return "#" + str
	}
	return str
}

func isHex(str string) bool {
	for _, c := range str {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
