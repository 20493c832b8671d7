package marker

import "regexp"

// SectionMarker locates the "III. Additional Information & Supporting
// Documents" header that starts the out-of-scope part of a disclosure form.
func SectionMarker() *Marker {
	return &Marker{
		Name: Section,
		Mode: MatchAny,
		Phrases: []string{
			"iii. additional information & supporting documents",
			"iii additional information & supporting documents",
			"iii. additional information and supporting documents",
			"iii additional information and supporting documents",
			"iii. additional information",
			"iii additional information",
			"additional information & supporting documents",
			"additional information and supporting documents",
			"section iii additional information",
			"section iii: additional information",
			"3. additional information",
		},
		// Lines are compacted, so each pattern pins what follows the numeral.
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`^(?:iii|3)[:.,]?(?:additional|supporting).*?(?:information|documents)`),
			regexp.MustCompile(`^additionalinformation(?:(?:&|and)supportingdocuments)?`),
			regexp.MustCompile(`^(?:section|part)(?:iii|3)(?:[:.,](?:[^0-9]|$)|additional|$)`),
			regexp.MustCompile(`^(?:iii|3)[:.,]additional`),
		},
		MaxLineLength: 100,
	}
}

// SignatureMarker locates the contributor signature block at the end of a
// disclosure form.
func SignatureMarker() *Marker {
	return &Marker{
		Name: Signature,
		Mode: MatchAny,
		Phrases: []string{
			"contributor must sign this form confirming the accuracy",
			"for additional contributors, simply copy the table",
			"at least one contributor must sign",
			"confirming the accuracy of the information provided",
			"copy the table below and paste at the end of the document",
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`contributor.*sign.*form.*accuracy|copy.*table.*end.*document`),
		},
		Keywords:         []string{"contributor", "sign", "form", "accuracy", "table", "copy"},
		MinKeywords:      3,
		FallbackKeywords: []string{"signature", "sign", "contributor"},
	}
}

// DisclosureFormMarker recognizes the title line of a technology disclosure form
func DisclosureFormMarker() *Marker {
	return &Marker{
		Name:    DisclosureForm,
		Mode:    MatchAll,
		Phrases: []string{"technology", "disclosure", "form"},
		Tiers:   []string{"EXACT_LINE"},
	}
}

// Builtin returns the set of built-in markers
func Builtin() *Set {
	return NewSet(SectionMarker(), SignatureMarker(), DisclosureFormMarker())
}
