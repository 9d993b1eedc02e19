package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/momo-data/momo-indexer/config"
	"github.com/momo-data/momo-indexer/parsers"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// GetFormats lists the supported output formats, the default first.
func GetFormats() []string {
	return []string{FormatJSON, FormatCSV}
}

// Render encodes the transactions in the given format.
func Render(format string, transactions []parsers.Transaction) (bytes.Buffer, error) {
	switch format {
	case FormatJSON:
		return ToJSON(transactions)
	case FormatCSV:
		return ToCsv(transactions)
	}
	return bytes.Buffer{}, fmt.Errorf("unsupported output format %q", format)
}

// WriteFile renders the transactions and overwrites path with them. Nothing is written when
// rendering fails. The write itself is not atomic.
func WriteFile(path string, format string, transactions []parsers.Transaction) error {
	buffer, err := Render(format, transactions)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		config.Log.Error(fmt.Sprintf("Error writing %s", path), err)
		return err
	}
	return nil
}

// ToJSON writes a 4-space indented JSON array. Non-ASCII characters and <, >, & are kept
// literally and there is no trailing newline.
func ToJSON(transactions []parsers.Transaction) (bytes.Buffer, error) {
	var b bytes.Buffer
	if transactions == nil {
		transactions = []parsers.Transaction{}
	}

	encoder := json.NewEncoder(&b)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(transactions); err != nil {
		config.Log.Error("Error encoding transactions to json", err)
		return b, err
	}

	// Encode always terminates the value with a newline
	b.Truncate(b.Len() - 1)
	return b, nil
}

// Create the CSV and write it to byte buffer
func ToCsv(transactions []parsers.Transaction) (bytes.Buffer, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	if err := w.Write(parsers.ExportHeaders); err != nil {
		config.Log.Error("Error writing header to csv", err)
		return b, err
	}

	for _, tx := range transactions {
		if err := w.Write(tx.Row()); err != nil {
			config.Log.Error("Error writing row to csv", err)
			return b, err
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		config.Log.Error("Error flushing csv", err)
		return b, err
	}

	return b, nil
}
