package scraper

import (
	"fmt"
	"testing"

	"stock-tracker/src/logger"
	"stock-tracker/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

type stubNetwork struct {
	body     []byte
	err      error
	urls     []string
	retrying int
}

func (n *stubNetwork) Get(url string, params map[string]string) ([]byte, error) {
	n.retrying++
	n.urls = append(n.urls, url)
	return n.body, n.err
}

func (n *stubNetwork) GetOnce(url string, params map[string]string) ([]byte, error) {
	n.urls = append(n.urls, url)
	return n.body, n.err
}

// -----------------------------------------------------------------------------

func testScraper(net *stubNetwork) *ConstituentScraper {
	cfg := &models.MConfig{}
	cfg.Scraper.BaseURL = "https://example.com"
	cfg.Scraper.DelaySeconds = 0
	return NewConstituentScraper(cfg, net, logger.NewLogger("test"))
}

var testIndex = models.MIndexSpec{Slug: "sp500", Name: "S&P 500 Index", Path: "/sp500"}

// -----------------------------------------------------------------------------

const holdingsPage = `<html><body>
<table class="table">
<thead><tr><th>#</th><th>Company</th><th>Symbol</th><th>Weight</th></tr></thead>
<tbody>
<tr><td>1</td><td>Apple Inc.</td><td>AAPL</td><td>7.25%</td></tr>
<tr><td>2</td><td>Microsoft Corp</td><td>MSFT</td><td>6.80%</td></tr>
<tr><td>3</td><td>Mystery Corp</td><td></td><td>1.10%</td></tr>
<tr><td colspan="2">ad row</td></tr>
<tr><td>4</td><td>Broken Weights Inc</td><td>BRKN</td><td>n/a</td></tr>
</tbody>
</table>
</body></html>`

// -----------------------------------------------------------------------------

func TestFetchHoldingsParsesRows(t *testing.T) {
	net := &stubNetwork{body: []byte(holdingsPage)}
	s := testScraper(net)

	holdings, err := s.FetchHoldings(testIndex)
	require.NoError(t, err)
	require.Len(t, holdings, 4)

	assert.Equal(t, []string{"https://example.com/sp500"}, net.urls)

	assert.Equal(t, 1, holdings[0].Rank)
	assert.Equal(t, "Apple Inc.", holdings[0].Name)
	assert.Equal(t, "AAPL", holdings[0].Ticker)
	require.NotNil(t, holdings[0].Weight)
	assert.Equal(t, 7.25, *holdings[0].Weight)

	assert.Equal(t, "MSFT", holdings[1].Ticker)
}

// -----------------------------------------------------------------------------

func TestFetchHoldingsEmptyTickerSentinel(t *testing.T) {
	net := &stubNetwork{body: []byte(holdingsPage)}
	s := testScraper(net)

	holdings, err := s.FetchHoldings(testIndex)
	require.NoError(t, err)

	// The empty symbol cell becomes the sentinel; its weight survives.
	assert.Equal(t, UnknownTicker, holdings[2].Ticker)
	require.NotNil(t, holdings[2].Weight)
	assert.Equal(t, 1.1, *holdings[2].Weight)
}

// -----------------------------------------------------------------------------

func TestFetchHoldingsUnparseableWeight(t *testing.T) {
	net := &stubNetwork{body: []byte(holdingsPage)}
	s := testScraper(net)

	holdings, err := s.FetchHoldings(testIndex)
	require.NoError(t, err)

	// An unparseable weight cell yields nil, not a dropped row.
	assert.Equal(t, "BRKN", holdings[3].Ticker)
	assert.Nil(t, holdings[3].Weight)
}

// -----------------------------------------------------------------------------

func TestFetchHoldingsNoTable(t *testing.T) {
	net := &stubNetwork{body: []byte("<html><body><p>maintenance</p></body></html>")}
	s := testScraper(net)

	_, err := s.FetchHoldings(testIndex)
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func TestFetchHoldingsNetworkFailure(t *testing.T) {
	net := &stubNetwork{err: fmt.Errorf("connection refused")}
	s := testScraper(net)

	_, err := s.FetchHoldings(testIndex)
	assert.Error(t, err)

	// A failed scrape issues exactly one request on the single-attempt
	// path; it is never pushed through the retrying one.
	assert.Len(t, net.urls, 1)
	assert.Zero(t, net.retrying)
}

// -----------------------------------------------------------------------------

func TestParseWeight(t *testing.T) {
	w := parseWeight(" 7.25% ")
	require.NotNil(t, w)
	assert.Equal(t, 7.25, *w)

	w = parseWeight("1,234.5%")
	require.NotNil(t, w)
	assert.Equal(t, 1234.5, *w)

	assert.Nil(t, parseWeight(""))
	assert.Nil(t, parseWeight("--"))
}

// -----------------------------------------------------------------------------

func TestParseRankFallback(t *testing.T) {
	assert.Equal(t, 3, parseRank("3", 9))
	assert.Equal(t, 9, parseRank("•", 9))
}
