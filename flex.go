package gaggiuino

import (
	"errors"
	"strconv"
	"strings"
)

// errInvalidBoolToken flags a string that is part of neither boolean token set
var errInvalidBoolToken = errors.New("not a valid boolean token")

// FlexInt denotes an integer field that the API may transmit either as a
// native JSON number or as its string representation
type FlexInt int64

// FlexFloat denotes a floating-point field that the API may transmit either as
// a native JSON number or as its string representation
type FlexFloat float64

// FlexBool denotes a boolean field that the API may transmit either as a
// native JSON boolean or as one of the string tokens
// {"true","1","yes"} / {"false","0","no"} (case-insensitive)
type FlexBool bool

// UnmarshalJSON implements the json.Unmarshaler interface, accepting both
// native numbers and numeric strings
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw, err := unquoteRaw(data)
	if err != nil {
		return err
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*f = FlexInt(v)
		return nil
	}

	// Tolerate integral values transmitted in floating-point notation
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &DecodeError{Value: raw, Err: err}
	}
	*f = FlexInt(v)

	return nil
}

// UnmarshalJSON implements the json.Unmarshaler interface, accepting both
// native numbers and numeric strings
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	raw, err := unquoteRaw(data)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &DecodeError{Value: raw, Err: err}
	}
	*f = FlexFloat(v)

	return nil
}

// UnmarshalJSON implements the json.Unmarshaler interface, accepting native
// booleans and the documented string token sets (and nothing else)
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	raw, err := unquoteRaw(data)
	if err != nil {
		return err
	}
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		*f = true
	case "false", "0", "no":
		*f = false
	default:
		return &DecodeError{Value: raw, Err: errInvalidBoolToken}
	}

	return nil
}

// unquoteRaw strips the quotes from a raw JSON scalar if it is a string,
// returning the bare token otherwise
func unquoteRaw(data []byte) (string, error) {
	raw := strings.TrimSpace(string(data))
	if len(raw) >= 2 && raw[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return "", &DecodeError{Value: raw, Err: err}
		}
		return unquoted, nil
	}

	return raw, nil
}
