package xsd

import (
	"encoding/xml"
	"strings"

	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// Raw decoded form of the schema document. Only the constructs the Akoma
// Ntoso schema actually uses are modeled: elements, complex types, simple
// types with enumeration/pattern facets, named groups, attribute groups, and
// sequence/choice/all particles.

type xsdSchema struct {
	XMLName         xml.Name            `xml:"http://www.w3.org/2001/XMLSchema schema"`
	TargetNamespace string              `xml:"targetNamespace,attr"`
	Elements        []xsdElement        `xml:"http://www.w3.org/2001/XMLSchema element"`
	ComplexTypes    []xsdComplexType    `xml:"http://www.w3.org/2001/XMLSchema complexType"`
	SimpleTypes     []xsdSimpleType     `xml:"http://www.w3.org/2001/XMLSchema simpleType"`
	Groups          []xsdNamedGroup     `xml:"http://www.w3.org/2001/XMLSchema group"`
	AttributeGroups []xsdAttributeGroup `xml:"http://www.w3.org/2001/XMLSchema attributeGroup"`
}

type xsdElement struct {
	Name        string          `xml:"name,attr"`
	Ref         string          `xml:"ref,attr"`
	Type        string          `xml:"type,attr"`
	MinOccurs   string          `xml:"minOccurs,attr"`
	MaxOccurs   string          `xml:"maxOccurs,attr"`
	Doc         []string        `xml:"annotation>documentation"`
	ComplexType *xsdComplexType `xml:"complexType"`
}

type xsdComplexType struct {
	Name           string             `xml:"name,attr"`
	Sequence       *xsdParticle       `xml:"sequence"`
	Choice         *xsdParticle       `xml:"choice"`
	All            *xsdParticle       `xml:"all"`
	Group          *xsdParticle       `xml:"group"`
	ComplexContent *xsdComplexContent `xml:"complexContent"`
	SimpleContent  *xsdSimpleContent  `xml:"simpleContent"`
	Attributes     []xsdAttribute     `xml:"attribute"`
	AttrGroups     []xsdAttrGroupRef  `xml:"attributeGroup"`
}

// particles returns the type's direct content-model particles in the order
// they can legally appear.
func (ct *xsdComplexType) particles() []*xsdParticle {
	var out []*xsdParticle
	for _, p := range []*xsdParticle{ct.Sequence, ct.Choice, ct.All, ct.Group} {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

type xsdComplexContent struct {
	Extension   *xsdDerivation `xml:"extension"`
	Restriction *xsdDerivation `xml:"restriction"`
}

type xsdSimpleContent struct {
	Extension *xsdDerivation `xml:"extension"`
}

type xsdDerivation struct {
	Base       string            `xml:"base,attr"`
	Sequence   *xsdParticle      `xml:"sequence"`
	Choice     *xsdParticle      `xml:"choice"`
	All        *xsdParticle      `xml:"all"`
	Group      *xsdParticle      `xml:"group"`
	Attributes []xsdAttribute    `xml:"attribute"`
	AttrGroups []xsdAttrGroupRef `xml:"attributeGroup"`
}

func (d *xsdDerivation) particles() []*xsdParticle {
	var out []*xsdParticle
	for _, p := range []*xsdParticle{d.Sequence, d.Choice, d.All, d.Group} {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

type xsdNamedGroup struct {
	Name     string       `xml:"name,attr"`
	Sequence *xsdParticle `xml:"sequence"`
	Choice   *xsdParticle `xml:"choice"`
	All      *xsdParticle `xml:"all"`
}

func (g *xsdNamedGroup) particles() []*xsdParticle {
	var out []*xsdParticle
	for _, p := range []*xsdParticle{g.Sequence, g.Choice, g.All} {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

type xsdAttribute struct {
	Name       string         `xml:"name,attr"`
	Ref        string         `xml:"ref,attr"`
	Type       string         `xml:"type,attr"`
	Use        string         `xml:"use,attr"`
	Default    string         `xml:"default,attr"`
	SimpleType *xsdSimpleType `xml:"simpleType"`
}

type xsdAttrGroupRef struct {
	Ref string `xml:"ref,attr"`
}

type xsdAttributeGroup struct {
	Name       string            `xml:"name,attr"`
	Attributes []xsdAttribute    `xml:"attribute"`
	AttrGroups []xsdAttrGroupRef `xml:"attributeGroup"`
}

type xsdSimpleType struct {
	Name        string          `xml:"name,attr"`
	Restriction *xsdRestriction `xml:"restriction"`
}

type xsdRestriction struct {
	Base         string     `xml:"base,attr"`
	Enumerations []xsdFacet `xml:"enumeration"`
	Patterns     []xsdFacet `xml:"pattern"`
}

type xsdFacet struct {
	Value string `xml:"value,attr"`
}

// Particle kinds as they appear in the schema document.
const (
	kindElement  = "element"
	kindGroup    = "group"
	kindSequence = "sequence"
	kindChoice   = "choice"
	kindAll      = "all"
	kindAny      = "any"
)

// xsdParticle is the uniform decoded form of a content-model particle.
// Items preserves document order across mixed element/group/sequence/choice
// children, which struct-tag decoding cannot do; choice branch ids depend on
// that order.
type xsdParticle struct {
	Kind      string
	Name      string
	Ref       string
	MinOccurs string
	MaxOccurs string
	Items     []xsdParticle
}

// UnmarshalXML decodes a particle and its nested particles token by token.
func (p *xsdParticle) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.Kind = start.Name.Local
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "name":
			p.Name = attr.Value
		case "ref":
			p.Ref = attr.Value
		case "minOccurs":
			p.MinOccurs = attr.Value
		case "maxOccurs":
			p.MaxOccurs = attr.Value
		}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case kindElement, kindGroup, kindSequence, kindChoice, kindAll, kindAny:
				var child xsdParticle
				if err := child.UnmarshalXML(d, t); err != nil {
					return err
				}
				p.Items = append(p.Items, child)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// elementName resolves the local name an element particle refers to.
func (p xsdParticle) elementName() string {
	if p.Ref != "" {
		return localName(p.Ref)
	}
	return p.Name
}

// occurs parses the particle's minOccurs/maxOccurs pair applying the XSD
// defaults (both default to 1; "unbounded" opens the upper limit).
func (p xsdParticle) occurs() schema.Occurs {
	return schema.Occurs{
		Min: parseOccursAttr(p.MinOccurs, 1),
		Max: parseMaxOccursAttr(p.MaxOccurs),
	}
}

func parseOccursAttr(raw string, def int) int {
	if raw == "" {
		return def
	}
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func parseMaxOccursAttr(raw string) int {
	if raw == "" {
		return 1
	}
	if raw == "unbounded" {
		return schema.Unbounded
	}
	return parseOccursAttr(raw, 1)
}

// localName strips a namespace prefix from a QName reference.
func localName(qname string) string {
	if idx := strings.LastIndex(qname, ":"); idx >= 0 {
		return qname[idx+1:]
	}
	return qname
}
