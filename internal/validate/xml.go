package validate

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/marmotdata/schemakit/internal/diagnostics"
)

// WellFormedXML reports whether content parses as well-formed XML, without
// attempting to validate it against any BPMN/DMN schema (spec.md §1
// Non-goals: process-model semantics are out of scope, only well-formedness
// is checked).
func WellFormedXML(content string) diagnostics.Diagnostics {
	var diags diagnostics.Diagnostics
	dec := xml.NewDecoder(strings.NewReader(content))
	for {
		_, err := dec.Token()
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		diags.Addf(diagnostics.Error, "attachment is not well-formed XML: %v", err)
		break
	}
	return diags
}
