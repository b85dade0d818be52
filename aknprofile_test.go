package aknprofile

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
	"github.com/goliatone/go-aknprofile/pkg/testsupport"
)

const starterXSD = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="akomaNtoso">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="act" minOccurs="0"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
  <xs:element name="act" type="actType"/>
  <xs:element name="meta" type="metaType"/>
  <xs:element name="body" type="bodyType"/>
  <xs:element name="section" type="xs:string"/>
  <xs:complexType name="actType">
    <xs:sequence>
      <xs:element ref="meta"/>
      <xs:element ref="body"/>
    </xs:sequence>
    <xs:attribute name="eId" type="xs:string" use="required"/>
  </xs:complexType>
  <xs:complexType name="metaType">
    <xs:sequence>
      <xs:element name="identification"/>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="bodyType">
    <xs:sequence>
      <xs:element ref="section" maxOccurs="unbounded"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

func ingestStarter(t *testing.T) *schema.Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	model, err := IngestSchema(strings.NewReader(starterXSD), WithIngestLogger(logger))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	return model
}

func TestStarterProfileValidatesClean(t *testing.T) {
	t.Parallel()

	model := ingestStarter(t)
	text, err := StarterProfile(model, "my-profile", "1.0.0", []string{"act"})
	if err != nil {
		t.Fatalf("starter profile: %v", err)
	}

	if errs := Validate(text, model); len(errs) != 0 {
		t.Fatalf("starter profile has diagnostics: %+v\n%s", errs, text)
	}

	doc, errs := profile.Parse(text)
	if doc == nil {
		t.Fatalf("parse starter: %+v", errs)
	}
	if doc.Name != "my-profile" || doc.Version != "1.0.0" {
		t.Fatalf("header = %q %q", doc.Name, doc.Version)
	}
	if len(doc.DocumentTypes) != 1 || doc.DocumentTypes[0] != "act" {
		t.Fatalf("documentTypes = %v", doc.DocumentTypes)
	}
	if keys := doc.Elements.Keys(); len(keys) == 0 || keys[0] != model.Root() {
		t.Fatalf("root must lead the elements map: %v", keys)
	}
	root, _ := doc.Elements.Get(model.Root())
	if docType, _ := root.Children.Get("act"); docType == nil || docType.Raw != "1..1" {
		t.Fatalf("document type not wired under root: %+v", docType)
	}
}

func TestStarterProfileRejectsUnknownDocumentType(t *testing.T) {
	t.Parallel()

	model := ingestStarter(t)
	if _, err := StarterProfile(model, "x", "0.1.0", []string{"treaty"}); err == nil {
		t.Fatalf("expected error for unknown document type")
	}
	if _, err := StarterProfile(nil, "x", "0.1.0", nil); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestFacadeExpandCollapseRoundTrip(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	model := testsupport.MustIngest(t, starterXSD, WithIngestLogger(logger))
	expanded := Expand(nil, "act", model)
	if errs := Validate(expanded, model); len(errs) != 0 {
		t.Fatalf("expanded profile has diagnostics: %+v\n%s", errs, expanded)
	}

	collapsed := Collapse(expanded, "act", model)
	doc, errs := profile.Parse(collapsed)
	if doc == nil {
		t.Fatalf("parse collapsed: %+v", errs)
	}
	if doc.Elements.Has("act") || doc.Elements.Has("body") {
		t.Fatalf("collapse left the chain behind: %v", doc.Elements.Keys())
	}
}
