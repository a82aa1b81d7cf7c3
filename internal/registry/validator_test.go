package registry

import (
	"testing"
)

func TestValidateAcceptsMinimalManifest(t *testing.T) {
	result, err := Validate([]byte("name: tiny\ntype: command\nversion: \"1.0.0\"\n"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("Valid = false, issues: %v", result.Issues)
	}
}

func TestValidateReportsMissingRequiredField(t *testing.T) {
	result, err := Validate([]byte("name: tiny\ntype: command\n"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatal("Valid = true for manifest missing version")
	}
	if len(result.Issues) == 0 {
		t.Fatal("no issues reported")
	}
}

func TestValidateReportsBadTypeEnum(t *testing.T) {
	result, err := Validate([]byte("name: tiny\ntype: plugin\nversion: \"1.0.0\"\n"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatal("Valid = true for unknown type")
	}
}

func TestValidateReportsUnknownFields(t *testing.T) {
	result, err := Validate([]byte("name: tiny\ntype: command\nversion: \"1.0.0\"\nextra: true\n"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatal("Valid = true for manifest with unknown field")
	}
}

func TestValidateFailsOnUnparsableYAML(t *testing.T) {
	if _, err := Validate([]byte(": : :")); err == nil {
		t.Error("Validate accepted unparsable YAML")
	}
}
