package reconcile

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/netcheck-network/netcheck/pkg/cli"
	"github.com/netcheck-network/netcheck/pkg/util"
)

// ReportGenerator renders a reconciliation summary in the formats the
// CLI and CI pipelines consume.
type ReportGenerator struct {
	Summary *Summary
}

// WriteConsole renders the verdict table to w, one row per entity,
// grouped by device in verdict order.
func (g *ReportGenerator) WriteConsole(w io.Writer) {
	tbl := cli.NewTableTo(w, "DEVICE", "KIND", "KEY", "RESULT", "EXPECTED", "ACTUAL", "DETAIL")
	for _, v := range g.Summary.Verdicts {
		tbl.Row(v.Device, string(v.Kind), v.Key, formatOutcome(v.Outcome), v.Expected, v.Actual, v.Detail)
	}
	tbl.Flush()

	fmt.Fprintf(w, "\n%d checked, %s, %s\n",
		len(g.Summary.Verdicts),
		cli.Green(fmt.Sprintf("%d passed", g.Summary.PassCount())),
		formatFailTotal(g.Summary.FailCount()))
}

func formatOutcome(o Outcome) string {
	switch o {
	case OutcomePass:
		return cli.Green(string(o))
	case OutcomeParseError:
		return cli.Yellow(string(o))
	default:
		return cli.Red(string(o))
	}
}

func formatFailTotal(n int) string {
	s := fmt.Sprintf("%d failed", n)
	if n == 0 {
		return cli.Dim(s)
	}
	return cli.Red(s)
}

// WriteJSON writes the raw summary as JSON.
func (g *ReportGenerator) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g.Summary)
}

// WriteMarkdown writes a markdown report to the given path.
func (g *ReportGenerator) WriteMarkdown(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# netcheck Report - %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Fprintln(f, "| Device | Kind | Key | Result | Expected | Actual |")
	fmt.Fprintln(f, "|--------|------|-----|--------|----------|--------|")
	for _, v := range g.Summary.Verdicts {
		fmt.Fprintf(f, "| %s | %s | %s | %s | %s | %s |\n",
			v.Device, v.Kind, v.Key, v.Outcome, v.Expected, v.Actual)
	}

	hasFailures := false
	for _, v := range g.Summary.Verdicts {
		if !v.Outcome.Failed() {
			continue
		}
		if !hasFailures {
			fmt.Fprintf(f, "\n## Failures\n\n")
			hasFailures = true
		}
		fmt.Fprintf(f, "### %s: %s\n", v.Device, v.Label())
		fmt.Fprintf(f, "%s", v.Outcome)
		if v.Detail != "" {
			fmt.Fprintf(f, ": %s", v.Detail)
		}
		fmt.Fprintf(f, "\n\n")
	}

	return nil
}

// WriteJUnit writes a JUnit XML report for CI integration. Each device
// maps to a test suite and each verdict to a test case, so CI views
// group failures by device.
func (g *ReportGenerator) WriteJUnit(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	byDevice := make(map[string]*junitTestSuite)
	var order []string
	for _, v := range g.Summary.Verdicts {
		suite, ok := byDevice[v.Device]
		if !ok {
			suite = &junitTestSuite{Name: v.Device}
			byDevice[v.Device] = suite
			order = append(order, v.Device)
		}

		suite.Tests++
		tc := junitTestCase{
			Name:      v.Label(),
			ClassName: v.Device,
		}
		switch err := v.Err(); {
		case err == nil:
		case errors.Is(err, util.ErrShapeViolation):
			suite.Errors++
			tc.Error = &junitError{
				Message: v.Detail,
				Type:    string(v.Outcome),
			}
		default:
			suite.Failures++
			msg := fmt.Sprintf("expected %q, got %q", v.Expected, v.Actual)
			if v.Detail != "" {
				msg = v.Detail
			}
			tc.Failure = &junitFailure{
				Message: msg,
				Type:    string(v.Outcome),
			}
		}
		suite.Cases = append(suite.Cases, tc)
	}

	suites := junitTestSuites{}
	for _, dev := range order {
		suites.Suites = append(suites.Suites, *byDevice[dev])
	}

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), data...), 0o644)
}

// JUnit XML types

type junitTestSuites struct {
	XMLName xml.Name         `xml:"testsuites"`
	Suites  []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Errors   int             `xml:"errors,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Error     *junitError   `xml:"error,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

type junitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}
