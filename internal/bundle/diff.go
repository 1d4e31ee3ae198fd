package bundle

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// Diff compares two plan files (YAML or JSON) structurally. It returns an
// empty string when they are equivalent.
func Diff(before, after []byte, useColor bool) (string, error) {
	if len(bytes.TrimSpace(before)) == 0 && len(bytes.TrimSpace(after)) == 0 {
		return "", nil
	}

	oldInput, err := parseInput("old", before)
	if err != nil {
		return "", fmt.Errorf("parsing old plan: %w", err)
	}

	newInput, err := parseInput("new", after)
	if err != nil {
		return "", fmt.Errorf("parsing new plan: %w", err)
	}

	report, err := dyff.CompareInputFiles(oldInput, newInput)
	if err != nil {
		return "", fmt.Errorf("comparing plans: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderReport(report, useColor)
}

func parseInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

func renderReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	writer := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := writer.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
