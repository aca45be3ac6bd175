package theme

// StyleID names one of the default styles a grammar refers to from itemData/@defStyleNum.
type StyleID string

const (
	StyleNormal       StyleID = "dsNormal"
	StyleKeyword      StyleID = "dsKeyword"
	StyleDataType     StyleID = "dsDataType"
	StyleDecVal       StyleID = "dsDecVal"
	StyleBaseN        StyleID = "dsBaseN"
	StyleFloat        StyleID = "dsFloat"
	StyleChar         StyleID = "dsChar"
	StyleString       StyleID = "dsString"
	StyleComment      StyleID = "dsComment"
	StyleOthers       StyleID = "dsOthers"
	StyleAlert        StyleID = "dsAlert"
	StyleFunction     StyleID = "dsFunction"
	StyleRegionMarker StyleID = "dsRegionMarker"
	StyleError        StyleID = "dsError"
	StyleCustomDebug  StyleID = "CustomTmpForDebugging"
)

// KnownStyles lists every style id in declaration order.
func KnownStyles() []StyleID {
	return []StyleID{
		StyleNormal,
		StyleKeyword,
		StyleDataType,
		StyleDecVal,
		StyleBaseN,
		StyleFloat,
		StyleChar,
		StyleString,
		StyleComment,
		StyleOthers,
		StyleAlert,
		StyleFunction,
		StyleRegionMarker,
		StyleError,
		StyleCustomDebug,
	}
}

// Known reports whether s is one of KnownStyles.
func (s StyleID) Known() bool {
	for _, id := range KnownStyles() {
		if id == s {
			return true
		}
	}
	return false
}

func (s StyleID) String() string {
	return string(s)
}
