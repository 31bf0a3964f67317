package strings

import (
	"math"
	"strconv"
)

// DefaultByteDecimals is the number of decimal places FormatBytesDefault rounds to.
const DefaultByteDecimals = 2

// byteUnits are the base-1024 unit labels, smallest first.
var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// FormatBytes renders a byte count using base-1024 units, rounded to decimals
// places with trailing zeros dropped, e.g. 1536 -> "1.5 KB".
//
// Zero, negative, NaN and infinite sizes render as "0 Bytes". Sizes beyond the
// largest unit are expressed in YB.
func FormatBytes(size float64, decimals int) string {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return "0 Bytes"
	}
	if decimals < 0 {
		decimals = 0
	}

	// floor(log1024(size)), computed by division to avoid float drift at exact powers
	i := 0
	value := size
	for value >= 1024 && i < len(byteUnits)-1 {
		value /= 1024
		i++
	}

	return strconv.FormatFloat(roundTo(value, decimals), 'f', -1, 64) + " " + byteUnits[i]
}

// FormatBytesDefault is FormatBytes with DefaultByteDecimals.
func FormatBytesDefault(size float64) string {
	return FormatBytes(size, DefaultByteDecimals)
}

// FormatBytesValue formats a decoded JSON value as a byte size. Numbers and
// numeric strings are accepted; anything else renders as "0 Bytes".
func FormatBytesValue(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return FormatBytesDefault(n)
	case float32:
		return FormatBytesDefault(float64(n))
	case int:
		return FormatBytesDefault(float64(n))
	case int64:
		return FormatBytesDefault(float64(n))
	case uint64:
		return FormatBytesDefault(float64(n))
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return "0 Bytes"
		}
		return FormatBytesDefault(f)
	default:
		return "0 Bytes"
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
