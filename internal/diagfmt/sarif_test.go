package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSarifLog(t *testing.T) {
	bag, fs, _ := absBag(t, "test.rs", true)

	var buf bytes.Buffer
	err := Sarif(&buf, bag, fs, SarifRunMeta{
		ToolName:       "epslint",
		ToolVersion:    "0.1.0",
		InvocationArgs: []string{"check", "."},
		Rules: []SarifRule{{
			ID:               "float_equality_without_abs",
			Name:             "FloatEqualityWithoutAbs",
			ShortDescription: "float equality check without `.abs()`",
			DefaultLevel:     "error",
		}},
	})
	if err != nil {
		t.Fatalf("Sarif: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF JSON: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "epslint" || len(run.Tool.Driver.Rules) != 1 {
		t.Errorf("unexpected driver: %+v", run.Tool.Driver)
	}
	if len(run.Invocations) != 1 || !run.Invocations[0].ExecutionSuccessful {
		t.Errorf("unexpected invocations: %+v", run.Invocations)
	}
	if len(run.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(run.Results))
	}
	res := run.Results[0]
	if res.RuleID != "float_equality_without_abs" || res.RuleIndex == nil || *res.RuleIndex != 0 {
		t.Errorf("unexpected rule reference: %+v", res)
	}
	if res.Level != "warning" {
		t.Errorf("level = %q, want warning", res.Level)
	}
	region := res.Locations[0].PhysicalLocation.Region
	if region.StartLine != 2 || region.StartColumn != 5 || region.ByteOffset != 35 || region.ByteLength != 22 {
		t.Errorf("unexpected region: %+v", region)
	}
	if len(res.RelatedLocations) != 1 {
		t.Errorf("expected the note as related location")
	}
	if len(res.Fixes) != 1 {
		t.Fatalf("expected 1 fix, got %d", len(res.Fixes))
	}
	rep := res.Fixes[0].ArtifactChanges[0].Replacements[0]
	if rep.InsertedContent.Text != "(a - b).abs()" || rep.DeletedRegion.ByteLength != 7 {
		t.Errorf("unexpected replacement: %+v", rep)
	}
}
