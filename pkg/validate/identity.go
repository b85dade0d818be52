package validate

import (
	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// identityAttributes are the Akoma Ntoso identification attributes whose
// presence is policed separately from ordinary attribute strictness.
var identityAttributes = []string{"eId", "wId", "GUID"}

// identityRule keeps a profile's identity attribute declarations consistent
// with what the schema supports per element: declaring one the schema does
// not know is an error, and omitting the whole attributes map while the
// schema requires an identity attribute earns a warning (strictness only
// inspects attribute maps that are present).
type identityRule struct{}

func (identityRule) ID() string { return "identity" }

func (identityRule) Check(doc *profile.Document, model *schema.Model, _ profile.LineIndex) []diag.Error {
	var errs []diag.Error
	for _, name := range doc.Elements.Keys() {
		def, ok := model.Element(name)
		if !ok {
			continue
		}
		rest, _ := doc.Elements.Get(name)
		for _, idAttr := range identityAttributes {
			schemaAttr, supported := def.Attribute(idAttr)
			_, declared := rest.Attributes.Get(idAttr)
			switch {
			case declared && !supported:
				errs = append(errs, diag.Errorf("identity.unsupported-attribute",
					elementPath(name)+".attributes."+idAttr,
					"element %q does not support identity attribute %q", name, idAttr))
			case !declared && supported && schemaAttr.Required && rest.Attributes.Len() == 0:
				errs = append(errs, diag.Warnf("identity.missing-required",
					elementPath(name),
					"element %q requires identity attribute %q but declares no attributes", name, idAttr))
			}
		}
	}
	return errs
}
