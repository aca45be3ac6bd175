package theme

// FormatConverter remaps a resolved format into another theme representation.
// A nil FormatConverter is the identity.
type FormatConverter func(TextFormat) TextFormat

// Apply runs the converter on f, or returns f unchanged when c is nil.
func (c FormatConverter) Apply(f TextFormat) TextFormat {
	if c == nil {
		return f
	}
	return c(f)
}

// Chain composes converters left to right. Nil entries are skipped.
func Chain(converters ...FormatConverter) FormatConverter {
	var active []FormatConverter
	for _, c := range converters {
		if c != nil {
			active = append(active, c)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(f TextFormat) TextFormat {
		for _, c := range active {
			f = c(f)
		}
		return f
	}
}
