package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/finfixture/internal/generator"
	"github.com/willfong/finfixture/internal/models"
)

func generated(t *testing.T) *models.GenerationResult {
	t.Helper()
	o, err := generator.NewOrchestrator(generator.OrchestratorConfig{
		Seed:  42,
		Today: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}, generator.OrchestratorOptions{})
	require.NoError(t, err)

	res, err := o.GenerateFinancialData(context.Background(), models.CompanyProfile{
		CompanyName:   "Summit Labs",
		Industry:      models.IndustryTechnology,
		BusinessModel: models.ModelB2BSaaS,
		CompanySize:   models.SizeMedium,
	}, models.GenerationOptions{NumTransactions: 120, IncludeDeposits: true, IncludePayments: true, IncludeInvestments: true, IncludeLoans: true})
	require.NoError(t, err)
	return res
}

func TestJSONRoundTrip(t *testing.T) {
	res := generated(t)

	data, err := FormatDataForDownload(res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("{\n  \"company\"")), "expected indented JSON")

	back, err := ParseDownload(data)
	require.NoError(t, err)
	assert.Equal(t, res, back)
}

func TestJSONNullFields(t *testing.T) {
	res := generated(t)
	data, err := FormatDataForDownload(res)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"limit": null`)
	assert.Contains(t, s, `"next_cursor": ""`)
	assert.Contains(t, s, `"has_more": false`)
	assert.Contains(t, s, `"transactions_update_status": "HISTORICAL_UPDATE_COMPLETE"`)
}

func TestParseDownloadRejectsGarbage(t *testing.T) {
	_, err := ParseDownload([]byte(`{"accounts": [`))
	assert.Error(t, err)

	_, err = ParseDownload([]byte(`{"unexpected": 1}`))
	assert.Error(t, err)
}

func TestWriteTransactionsCSV(t *testing.T) {
	res := &models.GenerationResult{
		Accounts: []models.Account{{AccountID: "a1", Name: "Operating Checking"}},
		Added: []models.Transaction{
			{AccountID: "a1", Date: "2025-06-01", MerchantName: `Joe's "Best", Inc`, Category: []string{"Shops", "Office Supplies"}, Amount: -12.5},
			{AccountID: "a1", Date: "2025-05-30", MerchantName: "Client Payment", Category: []string{"Transfer", "Deposit"}, Amount: 1500, Pending: true},
		},
		Modified: []models.Transaction{
			{AccountID: "gone", Date: "2025-05-01", MerchantName: "Line\nBreak", Category: []string{"Other"}, Amount: -0.1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, res))

	lines := strings.SplitN(buf.String(), "\n", 2)
	assert.Equal(t, "Date,Account,Merchant,Category,Amount,Status", lines[0])
	assert.Contains(t, buf.String(), `"Joe's ""Best"", Inc"`)
	assert.Contains(t, buf.String(), "\"Line\nBreak\"")

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"2025-06-01", "Operating Checking", `Joe's "Best", Inc`, "Shops > Office Supplies", "-12.50", "Posted"}, records[1])
	assert.Equal(t, []string{"2025-05-30", "Operating Checking", "Client Payment", "Transfer > Deposit", "1500.00", "Pending"}, records[2])
	assert.Equal(t, []string{"2025-05-01", "gone", "Line\nBreak", "Other", "-0.10", "Posted"}, records[3])
}

func TestTransactionRowsOrder(t *testing.T) {
	res := generated(t)
	rows := TransactionRows(res)
	require.Len(t, rows, len(res.Added)+len(res.Modified))
	assert.Equal(t, res.Added[0].Date, rows[0][0])
	if len(res.Modified) > 0 {
		assert.Equal(t, res.Modified[0].MerchantName, rows[len(res.Added)][2])
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{
		0:         "0.00",
		12.5:      "12.50",
		-1234.567: "-1234.57",
		1e6:       "1000000.00",
		-0.01:     "-0.01",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(in), "FormatAmount(%v)", in)
	}
}

func TestCSVWriterClosed(t *testing.T) {
	var buf bytes.Buffer
	cw, err := NewCSVStreamWriter(&buf, []string{"a"})
	require.NoError(t, err)
	require.NoError(t, cw.WriteRow([]string{"1"}))
	require.NoError(t, cw.Close())
	require.NoError(t, cw.Close())

	assert.Error(t, cw.WriteRow([]string{"2"}))
	assert.EqualValues(t, 1, cw.RowCount())
	assert.Equal(t, "a\n1\n", buf.String())
	assert.Empty(t, cw.Path())
}

func TestWriteResultFiles(t *testing.T) {
	res := generated(t)
	dir := t.TempDir()

	paths, err := WriteResultFiles(dir, "fixture", res, FileOptions{JSON: true, CSV: true})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "fixture.json"), filepath.Join(dir, "fixture.csv")}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	back, err := ParseDownload(data)
	require.NoError(t, err)
	assert.Equal(t, res.RequestID, back.RequestID)

	f, err := os.Open(paths[1])
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1+len(res.Added)+len(res.Modified))
}

func TestWriteResultFilesCompressed(t *testing.T) {
	if err := CheckXZAvailable(); err != nil {
		t.Skip("xz not installed")
	}
	dir := t.TempDir()
	res := generated(t)
	paths, err := WriteResultFiles(dir, "fixture", res, FileOptions{JSON: true, CSV: true, Compress: true})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.True(t, strings.HasSuffix(paths[0], ".json.xz"))
	assert.True(t, strings.HasSuffix(paths[1], ".csv.xz"))
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	back, err := ReadFile(context.Background(), paths[0])
	require.NoError(t, err)
	assert.Equal(t, res, back)
}

func TestReadFile(t *testing.T) {
	res := generated(t)
	dir := t.TempDir()
	paths, err := WriteResultFiles(dir, "fixture", res, FileOptions{JSON: true})
	require.NoError(t, err)

	back, err := ReadFile(context.Background(), paths[0])
	require.NoError(t, err)
	assert.Equal(t, res, back)

	_, err = ReadFile(context.Background(), filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBatchFiles(t *testing.T) {
	assert.Equal(t, "fixture_001", BatchFilename("fixture", 1, 8))
	assert.Equal(t, "fixture_0042", BatchFilename("fixture", 42, 1000))

	dir := t.TempDir()
	for _, name := range []string{"fixture_002.json", "fixture_001.json", "fixture_001.csv", "other_001.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}
	files, err := FindBatchFiles(dir, "fixture", ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "fixture_001.json"), filepath.Join(dir, "fixture_002.json")}, files)
}
