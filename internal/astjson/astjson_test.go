package astjson

import "testing"

const sampleDoc = `{
  "externalDecls": [
    {"kind": "Typedef", "name": "u32", "type":
      {"kind": "TypeDecl", "inner": {"kind": "IdentifierType", "names": ["unsigned", "int"]}}},
    {"kind": "Decl", "name": "count", "type":
      {"kind": "TypeDecl", "inner": {"kind": "IdentifierType", "names": ["u32"]}}},
    {"kind": "Decl", "name": "add", "type": {
      "kind": "FuncDecl",
      "return": {"kind": "TypeDecl", "inner": {"kind": "IdentifierType", "names": ["int"]}},
      "args": {"params": [
        {"kind": "Decl", "name": "a", "type": {"kind": "TypeDecl", "inner": {"kind": "IdentifierType", "names": ["int"]}}},
        {"kind": "EllipsisParam"}
      ]}
    }},
    {"kind": "Decl", "name": "", "type": {
      "kind": "TypeDecl",
      "inner": {
        "kind": "StructOrUnion",
        "name": "Point",
        "decls": [
          {"kind": "Decl", "name": "x", "type": {"kind": "TypeDecl", "inner": {"kind": "IdentifierType", "names": ["int"]}}},
          {"kind": "Decl", "name": "y", "type": {"kind": "TypeDecl", "inner": {"kind": "IdentifierType", "names": ["int"]}},
           "bitsize": {"kind": "IntLiteral", "value": "4"}}
        ]
      }
    }}
  ]
}`

func TestDecodeTranslationUnit(t *testing.T) {
	unit, err := DecodeTranslationUnit([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.ExternalDecls) != 4 {
		t.Fatalf("expected 4 external decls, got %d", len(unit.ExternalDecls))
	}
}

func TestDecodeTranslationUnitRejectsMissingArray(t *testing.T) {
	if _, err := DecodeTranslationUnit([]byte(`{}`)); err == nil {
		t.Error("expected error for missing externalDecls")
	}
}

func TestDecodeTranslationUnitRejectsUnknownKind(t *testing.T) {
	doc := `{"externalDecls": [{"kind": "Bogus"}]}`
	if _, err := DecodeTranslationUnit([]byte(doc)); err == nil {
		t.Error("expected error for unrecognized node kind")
	}
}
