package validate

import (
	"regexp"

	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// datatypeRule checks attribute value restrictions against the schema's
// facets: a profile's values list must be a subset of a schema enumeration,
// and values on pattern-constrained attributes must match the pattern where
// it compiles as a Go regexp.
type datatypeRule struct{}

func (datatypeRule) ID() string { return "datatype" }

func (datatypeRule) Check(doc *profile.Document, model *schema.Model, _ profile.LineIndex) []diag.Error {
	var errs []diag.Error
	for _, name := range doc.Elements.Keys() {
		def, ok := model.Element(name)
		if !ok {
			continue
		}
		rest, _ := doc.Elements.Get(name)
		for _, attrName := range rest.Attributes.Keys() {
			restr, _ := rest.Attributes.Get(attrName)
			if len(restr.Values) == 0 {
				continue
			}
			schemaAttr, ok := def.Attribute(attrName)
			if !ok {
				continue // vocabulary's problem
			}
			path := elementPath(name) + ".attributes." + attrName
			switch {
			case len(schemaAttr.EnumValues) > 0:
				for _, v := range restr.Values {
					if !schemaAttr.AllowsValue(v) {
						errs = append(errs, diag.Errorf("datatype.value-not-in-enum", path,
							"value %q is not among the schema's permitted values for attribute %q", v, attrName))
					}
				}
			case schemaAttr.Pattern != "":
				re, err := regexp.Compile("^(?:" + schemaAttr.Pattern + ")$")
				if err != nil {
					// XSD regex dialects beyond Go's reach are left unchecked.
					continue
				}
				for _, v := range restr.Values {
					if !re.MatchString(v) {
						errs = append(errs, diag.Errorf("datatype.pattern-mismatch", path,
							"value %q does not match the schema pattern for attribute %q", v, attrName))
					}
				}
			}
		}
	}
	return errs
}
