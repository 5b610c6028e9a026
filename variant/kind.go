package variant

import "strings"

// Kind identifies one primitive kind of value.
type Kind uint8

const (
	KindBoolean Kind = iota + 1
	KindInteger
	KindFloat
	KindString
	KindGuid
	KindBlob
	KindIdentifier
	KindDate
	KindTime
	KindDateTime
	KindDuration
	KindList
	KindSet
	KindMap
	KindTuple
	KindSequence
	KindEnumObject
	KindReference
	KindObject
	KindSchema
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindGuid:
		return "Guid"
	case KindBlob:
		return "Blob"
	case KindIdentifier:
		return "Identifier"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindDateTime:
		return "DateTime"
	case KindDuration:
		return "Duration"
	case KindList:
		return "List"
	case KindSet:
		return "Set"
	case KindMap:
		return "Map"
	case KindTuple:
		return "Tuple"
	case KindSequence:
		return "Sequence"
	case KindEnumObject:
		return "EnumObject"
	case KindReference:
		return "Reference"
	case KindObject:
		return "Object"
	case KindSchema:
		return "Schema"
	default:
		return "Unknown"
	}
}

// ParseKind returns the kind with the given name, matched case-insensitively.
func ParseKind(name string) (Kind, bool) {
	for k := KindBoolean; k <= KindSchema; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return 0, false
}

// ============================================================
// Categories
// ============================================================

// PrimitiveCategory is a coarse classification of kinds, used when a consumer
// needs "any numeric value" rather than one exact shape.
type PrimitiveCategory uint8

const (
	CategoryNumeric PrimitiveCategory = iota + 1
	CategoryString
	CategoryBasic
	CategoryInterval
	CategoryDateTime
	CategoryTime
	CategorySimple
	CategoryObjectOrReference
	CategoryCollection
	CategorySequenceable
	CategorySchema
	CategoryAll
)

var categoryNames = map[PrimitiveCategory]string{
	CategoryNumeric:           "Numeric",
	CategoryString:            "String",
	CategoryBasic:             "Basic",
	CategoryInterval:          "Interval",
	CategoryDateTime:          "DateTime",
	CategoryTime:              "Time",
	CategorySimple:            "Simple",
	CategoryObjectOrReference: "ObjectOrReference",
	CategoryCollection:        "Collection",
	CategorySequenceable:      "Sequenceable",
	CategorySchema:            "Schema",
	CategoryAll:               "All",
}

// String returns the category name.
func (c PrimitiveCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// ParseCategory returns the category with the given name.
func ParseCategory(name string) (PrimitiveCategory, bool) {
	for c, n := range categoryNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

var categoryKinds = map[PrimitiveCategory][]Kind{
	CategoryNumeric:  {KindInteger, KindFloat},
	CategoryString:   {KindString},
	CategoryBasic:    {KindBoolean, KindInteger, KindFloat, KindString},
	CategoryInterval: {KindDuration},
	CategoryDateTime: {KindDate, KindTime, KindDateTime},
	CategoryTime:     {KindTime, KindDateTime},
	CategorySimple: {
		KindBoolean, KindInteger, KindFloat, KindString, KindGuid, KindBlob,
		KindIdentifier, KindDate, KindTime, KindDateTime, KindDuration, KindEnumObject,
	},
	CategoryObjectOrReference: {KindObject, KindReference},
	CategoryCollection:        {KindList, KindSet, KindMap},
	CategorySequenceable:      {KindList, KindSet, KindMap, KindTuple, KindSequence},
	CategorySchema:            {KindSchema},
}

// Contains reports whether kind belongs to the category. CategoryAll
// contains every kind.
func (c PrimitiveCategory) Contains(kind Kind) bool {
	if c == CategoryAll {
		return true
	}
	for _, k := range categoryKinds[c] {
		if k == kind {
			return true
		}
	}
	return false
}

// IsCompatibleWith reports whether a value described by category c may stand
// in for one required to be in category required. All is compatible with
// everything in both directions; Collection widens to Sequenceable and not
// the other way round.
func (c PrimitiveCategory) IsCompatibleWith(required PrimitiveCategory) bool {
	switch {
	case c == required:
		return true
	case c == CategoryAll, required == CategoryAll:
		return true
	case c == CategoryCollection && required == CategorySequenceable:
		return true
	default:
		return false
	}
}
