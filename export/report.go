package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/momo-data/momo-indexer/config"
	"github.com/momo-data/momo-indexer/parsers"
)

// ReportToJSON writes the categorized report as 2-space indented JSON followed by a newline.
// Amounts are written as decimal strings.
func ReportToJSON(report parsers.CategoryReport) (bytes.Buffer, error) {
	var b bytes.Buffer
	encoder := json.NewEncoder(&b)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		config.Log.Error("Error encoding category report to json", err)
		return b, err
	}
	return b, nil
}

// WriteReport overwrites path with the JSON report.
func WriteReport(path string, report parsers.CategoryReport) error {
	buffer, err := ReportToJSON(report)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		config.Log.Error(fmt.Sprintf("Error writing %s", path), err)
		return err
	}
	return nil
}
