package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/momo-data/momo-indexer/parsers"
	"github.com/stretchr/testify/suite"
)

type WriterTestSuite struct {
	suite.Suite
	transactions []parsers.Transaction
}

func (suite *WriterTestSuite) SetupTest() {
	suite.transactions = []parsers.Transaction{
		{
			Type:       parsers.TransferToMobile,
			Amount:     "1000",
			Recipient:  "Samuel Carter",
			RawMessage: "*165*S*1000 RWF transferred to Samuel Carter (250791666666) from 36521838 at 2024-05-10 21:32:32 .",
		},
		{
			Type:       parsers.TransferToMobile,
			Amount:     "",
			Recipient:  "Amélie <Café & Co>",
			RawMessage: "transferred to Amélie <Café & Co> from 1 – ✓",
		},
	}
}

func (suite *WriterTestSuite) TestToJSONLayout() {
	expected := `[
    {
        "Type": "Transfer to Mobile Number",
        "Amount": "1000",
        "Recipient/Details": "Samuel Carter",
        "Raw Message": "*165*S*1000 RWF transferred to Samuel Carter (250791666666) from 36521838 at 2024-05-10 21:32:32 ."
    },
    {
        "Type": "Transfer to Mobile Number",
        "Amount": "",
        "Recipient/Details": "Amélie <Café & Co>",
        "Raw Message": "transferred to Amélie <Café & Co> from 1 – ✓"
    }
]`

	buffer, err := ToJSON(suite.transactions)
	suite.Require().NoError(err)
	suite.Require().Equal(expected, buffer.String())
}

func (suite *WriterTestSuite) TestToJSONEmpty() {
	buffer, err := ToJSON(nil)
	suite.Require().NoError(err)
	suite.Require().Equal("[]", buffer.String())

	buffer, err = ToJSON([]parsers.Transaction{})
	suite.Require().NoError(err)
	suite.Require().Equal("[]", buffer.String())
}

func (suite *WriterTestSuite) TestToJSONRoundTrip() {
	buffer, err := ToJSON(suite.transactions)
	suite.Require().NoError(err)

	var decoded []parsers.Transaction
	suite.Require().NoError(json.Unmarshal(buffer.Bytes(), &decoded))
	suite.Require().Equal(suite.transactions, decoded)

	var generic []map[string]string
	suite.Require().NoError(json.Unmarshal(buffer.Bytes(), &generic))
	suite.Require().Len(generic, 2)
	suite.Require().Equal("Samuel Carter", generic[0]["Recipient/Details"])
	suite.Require().Equal("", generic[1]["Amount"])
}

func (suite *WriterTestSuite) TestToCsv() {
	buffer, err := ToCsv(suite.transactions)
	suite.Require().NoError(err)

	records, err := csv.NewReader(strings.NewReader(buffer.String())).ReadAll()
	suite.Require().NoError(err)
	suite.Require().Len(records, 3)
	suite.Require().Equal(parsers.ExportHeaders, records[0])
	suite.Require().Equal(suite.transactions[0].Row(), records[1])
	suite.Require().Equal(suite.transactions[1].Row(), records[2])
}

func (suite *WriterTestSuite) TestRenderUnknownFormat() {
	_, err := Render("xml", suite.transactions)
	suite.Require().Error(err)
}

func (suite *WriterTestSuite) TestWriteFileOverwrites() {
	path := filepath.Join(suite.T().TempDir(), "transfers_to_mobile.json")
	suite.Require().NoError(os.WriteFile(path, []byte(strings.Repeat("stale content ", 500)), 0o644))

	suite.Require().NoError(WriteFile(path, FormatJSON, suite.transactions))

	contents, err := os.ReadFile(path)
	suite.Require().NoError(err)
	expected, err := ToJSON(suite.transactions)
	suite.Require().NoError(err)
	suite.Require().Equal(expected.Bytes(), contents)
}

func (suite *WriterTestSuite) TestWriteFileIsIdempotent() {
	dir := suite.T().TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	suite.Require().NoError(WriteFile(first, FormatJSON, suite.transactions))
	suite.Require().NoError(WriteFile(second, FormatJSON, suite.transactions))

	firstContents, err := os.ReadFile(first)
	suite.Require().NoError(err)
	secondContents, err := os.ReadFile(second)
	suite.Require().NoError(err)
	suite.Require().Equal(firstContents, secondContents)
}

func (suite *WriterTestSuite) TestWriteFileUnknownFormatWritesNothing() {
	path := filepath.Join(suite.T().TempDir(), "out.xml")

	err := WriteFile(path, "xml", suite.transactions)
	suite.Require().Error(err)

	_, err = os.Stat(path)
	suite.Require().True(os.IsNotExist(err))
}

func (suite *WriterTestSuite) TestWriteFileBadPath() {
	path := filepath.Join(suite.T().TempDir(), "missing-dir", "out.json")

	err := WriteFile(path, FormatJSON, suite.transactions)
	suite.Require().Error(err)
}

func TestWriterSuite(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}
