package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/skilljudge/verdict/internal/models"
	"github.com/skilljudge/verdict/internal/narrative"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one scorecard.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one dimension, or to the composite check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

// JUnitFailure represents a score below its threshold.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts scorecards to JUnit XML. A dimension at or below
// the critical threshold fails, and when minScore is positive a composite test
// case fails below it.
func ConvertToJUnit(cards []models.Scorecard, minScore float64) *JUnitTestSuites {
	out := &JUnitTestSuites{}
	for i := range cards {
		suite := convertScorecard(&cards[i], minScore)
		out.Tests += suite.Tests
		out.Failures += suite.Failures
		out.TestSuites = append(out.TestSuites, suite)
	}
	return out
}

func convertScorecard(card *models.Scorecard, minScore float64) JUnitTestSuite {
	suite := JUnitTestSuite{
		Name:      card.Skill,
		Timestamp: card.Timestamp.UTC().Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "run_id", Value: card.RunID},
			{Name: "grade", Value: card.Grade},
			{Name: "composite", Value: fmt.Sprintf("%.2f", card.CompositeScore)},
			{Name: "rubric", Value: card.RubricUsed},
		},
	}

	for _, d := range models.AllDimensions() {
		ds, ok := card.Dimensions[d]
		if !ok {
			continue
		}
		tc := JUnitTestCase{Name: string(d), Classname: card.Skill}
		if ds.Score <= narrative.CriticalThreshold {
			tc.Failure = &JUnitFailure{
				Message: fmt.Sprintf("%s: score=%d", d, ds.Score),
				Type:    "CriticalDimension",
				Body:    ds.Justification,
			}
		}
		suite.add(tc)
	}

	if minScore > 0 {
		tc := JUnitTestCase{Name: "composite", Classname: card.Skill}
		if card.CompositeScore < minScore {
			tc.Failure = &JUnitFailure{
				Message: fmt.Sprintf("composite %.2f below minimum %.2f", card.CompositeScore, minScore),
				Type:    "BelowThreshold",
				Body:    formatRedFlags(card.RedFlags),
			}
		}
		suite.add(tc)
	}
	return suite
}

func (s *JUnitTestSuite) add(tc JUnitTestCase) {
	s.Tests++
	if tc.Failure != nil {
		s.Failures++
	}
	s.TestCases = append(s.TestCases, tc)
}

func formatRedFlags(flags []string) string {
	var b strings.Builder
	for _, f := range flags {
		fmt.Fprintf(&b, "[RED FLAG] %s\n", f)
	}
	return b.String()
}

// WriteJUnitXML writes the JUnit XML for cards to w.
func WriteJUnitXML(w io.Writer, cards []models.Scorecard, minScore float64) error {
	suites := ConvertToJUnit(cards, minScore)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	output = append(output, '\n')
	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("writing JUnit XML: %w", err)
	}
	return nil
}
