package provider

import (
	"math"
	"strconv"
	"strings"

	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
)

// text returns v as a string. Missing, null, empty and zero values as
// well as objects and arrays all come back as "".
func text(v jsoniter.Any) string {
	switch v.ValueType() {
	case jsoniter.StringValue:
		return v.ToString()
	case jsoniter.NumberValue:
		if v.ToFloat64() == 0 {
			return ""
		}

		return v.ToString()
	}

	return ""
}

func textOr(v jsoniter.Any, fallback string) string {
	if s := text(v); s != "" {
		return s
	}

	return fallback
}

func orUnknown(v jsoniter.Any) string {
	return textOr(v, utils.Unknown)
}

// number reads numbers and numeric strings, anything else is 0.
func number(v jsoniter.Any) float64 {
	var rv float64

	switch v.ValueType() {
	case jsoniter.NumberValue:
		rv = v.ToFloat64()
	case jsoniter.StringValue:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.ToString()), 64)
		if err != nil {
			return 0
		}

		rv = parsed
	}

	if math.IsNaN(rv) || math.IsInf(rv, 0) {
		return 0
	}

	return rv
}

// flag is true only for a literal JSON true.
func flag(v jsoniter.Any) bool {
	return v.ValueType() == jsoniter.BoolValue && v.ToBool()
}
