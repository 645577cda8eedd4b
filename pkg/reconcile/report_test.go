package reconcile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/netcheck-network/netcheck/pkg/model"
)

func sampleSummary() *Summary {
	return &Summary{Verdicts: []Verdict{
		{Device: "router1", Kind: model.KindBGPPeer, Key: "10.1.1.2", Outcome: OutcomePass, Expected: "established", Actual: "Established"},
		{Device: "router1", Kind: model.KindLDPPeer, Key: "2.2.2.2", Outcome: OutcomeNotFound, Expected: "operational", Actual: "unknown"},
		{Device: "router2", Kind: model.KindMPLSTunnelCount, Outcome: OutcomeParseError, Detail: "no state captured"},
	}}
}

func TestSummaryCounts(t *testing.T) {
	s := sampleSummary()
	if s.PassCount() != 1 {
		t.Errorf("PassCount = %d, want 1", s.PassCount())
	}
	if s.FailCount() != 2 {
		t.Errorf("FailCount = %d, want 2", s.FailCount())
	}
	if !s.Failed() {
		t.Error("Failed() should be true")
	}
	by := s.ByOutcome()
	if by[OutcomeNotFound] != 1 || by[OutcomeParseError] != 1 {
		t.Errorf("ByOutcome = %v", by)
	}
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	g := &ReportGenerator{Summary: sampleSummary()}
	g.WriteConsole(&buf)

	out := buf.String()
	for _, want := range []string{"DEVICE", "router1", "10.1.1.2", "fail_not_found", "3 checked", "1 passed", "2 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	g := &ReportGenerator{Summary: sampleSummary()}
	if err := g.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	var decoded Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Verdicts) != 3 {
		t.Errorf("round-tripped %d verdicts, want 3", len(decoded.Verdicts))
	}
	if decoded.Verdicts[1].Outcome != OutcomeNotFound {
		t.Errorf("verdict[1] outcome = %s", decoded.Verdicts[1].Outcome)
	}
}

// JSON consumers read the aggregate counts straight from the document.
func TestWriteJSON_IncludesCounts(t *testing.T) {
	var buf bytes.Buffer
	g := &ReportGenerator{Summary: sampleSummary()}
	if err := g.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got, ok := doc["pass_count"].(float64); !ok || got != 1 {
		t.Errorf("pass_count = %v, want 1", doc["pass_count"])
	}
	if got, ok := doc["fail_count"].(float64); !ok || got != 2 {
		t.Errorf("fail_count = %v, want 2", doc["fail_count"])
	}
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "netcheck.md")
	g := &ReportGenerator{Summary: sampleSummary()}
	if err := g.WriteMarkdown(path); err != nil {
		t.Fatalf("WriteMarkdown error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "| router1 | bgp_peer | 10.1.1.2 | pass |") {
		t.Errorf("markdown missing summary row:\n%s", out)
	}
	if !strings.Contains(out, "## Failures") {
		t.Error("markdown missing failures section")
	}
}

func TestWriteJUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "junit.xml")
	g := &ReportGenerator{Summary: sampleSummary()}
	if err := g.WriteJUnit(path); err != nil {
		t.Fatalf("WriteJUnit error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		`<testsuite name="router1" tests="2" failures="1" errors="0"`,
		`<testsuite name="router2" tests="1" failures="0" errors="1"`,
		`type="fail_not_found"`,
		`type="fail_parse_error"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("junit output missing %q:\n%s", want, out)
		}
	}
}

// An undeclared neighbor counts as a test failure, not an
// infrastructure error.
func TestWriteJUnit_UnexpectedNeighborIsFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "junit.xml")
	g := &ReportGenerator{Summary: &Summary{Verdicts: []Verdict{
		{Device: "router1", Kind: model.KindTopologyNeighbor, Key: "sw-rogue",
			Outcome: OutcomeUnexpected, Detail: "unexpected neighbor on Gi0/7 connecting to Fa0/3"},
	}}}
	if err := g.WriteJUnit(path); err != nil {
		t.Fatalf("WriteJUnit error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		`<testsuite name="router1" tests="1" failures="1" errors="0"`,
		`type="fail_unexpected"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("junit output missing %q:\n%s", want, out)
		}
	}
}

func TestCommandTableCoversAllKinds(t *testing.T) {
	for _, kind := range model.Kinds {
		for _, fam := range []model.OSFamily{model.OSIOSXE, model.OSIOSXR} {
			if Command(kind, fam) == "" {
				t.Errorf("no command for (%s, %s)", kind, fam)
			}
		}
	}
	if got := Command(model.KindBGPPeer, model.OSIOSXR); got != "show bgp instance all sessions" {
		t.Errorf("BGP on iosxr = %q", got)
	}
}
