package document

import "strings"

// Extract converts a raw attachment into its normalized document form,
// dispatching on the declared media type. It is a pure function: the input
// bytes are never modified and nothing is cached.
//
// Failures are typed: ErrUnsupportedFormat for media types outside the
// allowlist, ErrLegacyFormat for binary .doc files, and *ParseError when
// the bytes cannot be parsed as their declared format.
func Extract(raw Raw) (Document, error) {
	switch {
	case strings.Contains(raw.MediaType, MediaTypePDF):
		return extractPDF(raw.Bytes)
	case strings.Contains(raw.MediaType, MediaTypeDocx):
		return extractDocx(raw.Bytes)
	case strings.Contains(raw.MediaType, MediaTypeLegacyDoc):
		return nil, ErrLegacyFormat
	default:
		return nil, ErrUnsupportedFormat
	}
}
