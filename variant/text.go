package variant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseText stores the value written in text into v using the text format
// of v's kind. Collections, tuples and sequences have no text form.
func ParseText(v *Variable, text string) error {
	switch v.Kind() {
	case KindBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return &FormatError{What: "boolean", Input: text, Reason: "expected true or false"}
		}
		return v.AsBoolean().Set(b)
	case KindInteger:
		return parseInteger(v.AsInteger(), strings.TrimSpace(text))
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return &FormatError{What: "float", Input: text, Reason: "not a number"}
		}
		return v.AsFloat().SetFloat64(f)
	case KindString:
		return v.AsString().Set(text)
	case KindGuid:
		return v.AsGuid().SetString(strings.TrimSpace(text))
	case KindDate:
		return v.AsDate().Parse(strings.TrimSpace(text))
	case KindTime:
		return v.AsTime().Parse(strings.TrimSpace(text))
	case KindDateTime:
		return v.AsDateTime().Parse(strings.TrimSpace(text))
	case KindDuration:
		return v.AsDuration().Parse(strings.TrimSpace(text))
	default:
		return fmt.Errorf("%w: parsing %s from text", ErrNotSupported, v.Kind())
	}
}

func parseInteger(a *IntegerAccessor, s string) error {
	if strings.HasPrefix(s, "-") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return integerSyntax(a, s, err)
		}
		return a.SetInt64(n)
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64)
	if err != nil {
		return integerSyntax(a, s, err)
	}
	return a.SetUint64(n)
}

func integerSyntax(a *IntegerAccessor, s string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		lo, hi := a.Range()
		return newOverflow(s, lo, hi)
	}
	return &FormatError{What: "integer", Input: s, Reason: "not a decimal integer"}
}
