package polygon

import (
	"encoding/json"
	"fmt"

	"stock-tracker/src/interfaces"
	"stock-tracker/src/logger"
	"stock-tracker/src/models"
	"stock-tracker/src/utils"
)

// -----------------------------------------------------------------------------
// PolygonSource is the upstream market-data provider client. Pure
// producer: it never writes to the database.
// -----------------------------------------------------------------------------

type PolygonSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPolygonSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *PolygonSource {
	return &PolygonSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

func (p *PolygonSource) get(path string, params map[string]string) ([]byte, error) {
	if params == nil {
		params = make(map[string]string)
	}
	params["apiKey"] = p.Config.Provider.APIKey
	return p.Network.Get(p.Config.Provider.BaseURL+path, params)
}

// -----------------------------------------------------------------------------
// Market snapshot
// -----------------------------------------------------------------------------

// FetchMarketSnapshot returns the bulk snapshot of all tradable
// tickers merged with reference metadata. Records missing a required
// field are excluded so partial rows never reach the master table.
func (p *PolygonSource) FetchMarketSnapshot() (map[string]models.MTickerSnapshot, error) {
	result := make(map[string]models.MTickerSnapshot)

	body, err := p.get("/v2/snapshot/locale/us/markets/stocks/tickers", nil)
	if err != nil {
		return result, fmt.Errorf("bulk snapshot fetch failed: %w", err)
	}

	var snap snapshotResponse
	if err := json.Unmarshal(body, &snap); err != nil {
		return result, fmt.Errorf("bulk snapshot parse failed: %w", err)
	}

	meta, err := p.fetchReferenceTickers()
	if err != nil {
		return result, fmt.Errorf("reference tickers fetch failed: %w", err)
	}

	// Unresolved type codes map to a nil description, not a failure.
	typeDescs, err := p.fetchTickerTypes()
	if err != nil {
		p.Logger.Warning("Ticker types fetch failed: %v. Type descriptions will be empty.", err)
		typeDescs = make(map[string]string)
	}

	dropped := 0
	for _, t := range snap.Tickers {
		record, ok := mergeSnapshot(t, meta, typeDescs)
		if !ok {
			dropped++
			continue
		}
		result[record.Ticker] = record
	}

	p.Logger.Info("Market snapshot: %d tickers kept, %d dropped as incomplete", len(result), dropped)
	return result, nil
}

// -----------------------------------------------------------------------------

// mergeSnapshot joins one snapshot record with its reference metadata.
// Every required field must be present; otherwise the record is
// invalid and excluded.
func mergeSnapshot(t snapshotTicker, meta map[string]referenceTicker, typeDescs map[string]string) (models.MTickerSnapshot, bool) {
	var record models.MTickerSnapshot

	ref, ok := meta[t.Ticker]
	if !ok || t.Ticker == "" || ref.Name == "" || ref.Type == "" || ref.PrimaryExchange == "" {
		return record, false
	}

	if t.Day.Open == nil || t.Day.High == nil || t.Day.Low == nil || t.Day.Close == nil ||
		t.Day.Volume == nil || t.TodaysChange == nil || t.TodaysChangePerc == nil || t.Updated == nil {
		return record, false
	}

	record = models.MTickerSnapshot{
		Ticker:           t.Ticker,
		Name:             ref.Name,
		Type:             ref.Type,
		Exchange:         ref.PrimaryExchange,
		Updated:          utils.ToUnixSeconds(*t.Updated, utils.UnitNanos),
		DayOpen:          *t.Day.Open,
		DayHigh:          *t.Day.High,
		DayLow:           *t.Day.Low,
		DayClose:         *t.Day.Close,
		Volume:           *t.Day.Volume,
		TodaysChange:     *t.TodaysChange,
		TodaysChangePerc: *t.TodaysChangePerc,
	}

	if desc, ok := typeDescs[ref.Type]; ok {
		record.TypeDesc = &desc
	}

	return record, true
}

// -----------------------------------------------------------------------------

// fetchReferenceTickers pages through the full active-ticker listing.
func (p *PolygonSource) fetchReferenceTickers() (map[string]referenceTicker, error) {
	meta := make(map[string]referenceTicker)

	params := map[string]string{
		"market": "stocks",
		"active": "true",
		"limit":  "1000",
	}

	body, err := p.get("/v3/reference/tickers", params)
	if err != nil {
		return nil, err
	}

	for {
		var page referenceTickersResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, err
		}

		for _, r := range page.Results {
			meta[r.Ticker] = r
		}

		if page.NextURL == "" {
			break
		}
		// next_url is absolute and already carries the cursor params
		body, err = p.Network.Get(page.NextURL, map[string]string{"apiKey": p.Config.Provider.APIKey})
		if err != nil {
			return nil, err
		}
	}

	return meta, nil
}

// -----------------------------------------------------------------------------

func (p *PolygonSource) fetchTickerTypes() (map[string]string, error) {
	body, err := p.get("/v3/reference/tickers/types", nil)
	if err != nil {
		return nil, err
	}

	var types tickerTypesResponse
	if err := json.Unmarshal(body, &types); err != nil {
		return nil, err
	}

	descs := make(map[string]string, len(types.Results))
	for _, t := range types.Results {
		descs[t.Code] = t.Description
	}
	return descs, nil
}

// -----------------------------------------------------------------------------
// Market status
// -----------------------------------------------------------------------------

func (p *PolygonSource) FetchMarketStatus() (*models.MMarketStatus, error) {
	body, err := p.get("/v1/marketstatus/now", nil)
	if err != nil {
		return nil, fmt.Errorf("market status fetch failed: %w", err)
	}

	var status marketStatusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("market status parse failed: %w", err)
	}

	return &models.MMarketStatus{
		Market:     status.Market,
		ServerTime: status.ServerTime,
	}, nil
}
