package storage

import (
	"database/sql"
	"fmt"

	"stock-tracker/src/helpers"
	"stock-tracker/src/logger"
	"stock-tracker/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	return &PostgresDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	db, err := sql.Open("postgres", d.Config.Storage.DBConnectionString)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db
	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS stock_master (
			ticker TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			type_desc TEXT,
			exchange TEXT NOT NULL,
			updated BIGINT NOT NULL,
			day_open DOUBLE PRECISION NOT NULL,
			day_high DOUBLE PRECISION NOT NULL,
			day_low DOUBLE PRECISION NOT NULL,
			day_close DOUBLE PRECISION NOT NULL,
			volume DOUBLE PRECISION NOT NULL,
			todays_change DOUBLE PRECISION NOT NULL,
			todays_change_perc DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stocks (
			ticker TEXT PRIMARY KEY REFERENCES stock_master(ticker),
			name TEXT NOT NULL,
			description TEXT,
			homepage_url TEXT,
			industry TEXT,
			employees BIGINT,
			market_cap DOUBLE PRECISION,
			icon_url TEXT,
			list_date TEXT,
			day_open DOUBLE PRECISION,
			day_high DOUBLE PRECISION,
			day_low DOUBLE PRECISION,
			day_close DOUBLE PRECISION,
			volume DOUBLE PRECISION,
			todays_change DOUBLE PRECISION,
			todays_change_perc DOUBLE PRECISION,
			dma_50 DOUBLE PRECISION,
			dma_200 DOUBLE PRECISION,
			dma_200_perc_diff DOUBLE PRECISION,
			low_52w DOUBLE PRECISION,
			high_52w DOUBLE PRECISION,
			related_companies TEXT NOT NULL DEFAULT '',
			last_updated BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS indices (
			slug TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			url TEXT NOT NULL,
			last_updated BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS index_holdings (
			index_slug TEXT NOT NULL REFERENCES indices(slug),
			ticker TEXT NOT NULL,
			rank INTEGER NOT NULL,
			weight DOUBLE PRECISION,
			PRIMARY KEY (index_slug, ticker)
		);`,
		`CREATE TABLE IF NOT EXISTS top_movers (
			category TEXT NOT NULL,
			list TEXT NOT NULL,
			rank INTEGER NOT NULL,
			ticker TEXT NOT NULL,
			name TEXT NOT NULL,
			day_close DOUBLE PRECISION NOT NULL,
			todays_change DOUBLE PRECISION NOT NULL,
			todays_change_perc DOUBLE PRECISION NOT NULL,
			volume DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (category, list, rank)
		);`,
	}

	for timespan := range barTables {
		queries = append(queries, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ticker TEXT NOT NULL REFERENCES stocks(ticker),
			timestamp BIGINT NOT NULL,
			close DOUBLE PRECISION NOT NULL,
			ema_30 DOUBLE PRECISION NOT NULL,
			ema_50 DOUBLE PRECISION NOT NULL,
			ema_200 DOUBLE PRECISION NOT NULL,
			volume DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (ticker, timestamp)
		);`, barTables[timespan]))
	}

	for _, q := range queries {
		if _, err := d.DB.Exec(q); err != nil {
			return helpers.NewDatabaseError("failed to create table", err)
		}
	}

	d.Logger.Info("PostgresDB initialized")
	return nil
}

// -----------------------------------------------------------------------------
// Atomic replace
// -----------------------------------------------------------------------------

func (d *PostgresDB) ReplaceAll(staging *models.MStaging) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deletes := []string{
		"DELETE FROM index_holdings",
		"DELETE FROM indices",
		"DELETE FROM minute_bars",
		"DELETE FROM hour_bars",
		"DELETE FROM day_bars",
		"DELETE FROM stocks",
		"DELETE FROM stock_master",
	}
	for _, q := range deletes {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("replace delete failed: %w", err)
		}
	}

	if err := pgInsertMastersTx(tx, staging.Masters); err != nil {
		return err
	}
	if err := pgInsertStocksTx(tx, staging.Stocks); err != nil {
		return err
	}
	if err := pgInsertIndicesTx(tx, staging.Indices); err != nil {
		return err
	}
	if err := pgInsertHoldingsTx(tx, staging.Holdings); err != nil {
		return err
	}
	if err := pgInsertBarsTx(tx, "minute_bars", staging.MinuteBars); err != nil {
		return err
	}
	if err := pgInsertBarsTx(tx, "hour_bars", staging.HourBars); err != nil {
		return err
	}
	if err := pgInsertBarsTx(tx, "day_bars", staging.DayBars); err != nil {
		return err
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func pgInsertMastersTx(tx *sql.Tx, masters []models.MStockMaster) error {
	if len(masters) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO stock_master (ticker, name, type, type_desc, exchange, updated,
			day_open, day_high, day_low, day_close, volume, todays_change, todays_change_perc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range masters {
		_, err := stmt.Exec(m.Ticker, m.Name, m.Type, m.TypeDesc, m.Exchange, m.Updated,
			m.DayOpen, m.DayHigh, m.DayLow, m.DayClose, m.Volume, m.TodaysChange, m.TodaysChangePerc)
		if err != nil {
			return fmt.Errorf("stock_master insert failed for %s: %w", m.Ticker, err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func pgInsertStocksTx(tx *sql.Tx, stocks []models.MStock) error {
	if len(stocks) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO stocks (ticker, name, description, homepage_url, industry, employees,
			market_cap, icon_url, list_date, day_open, day_high, day_low, day_close, volume,
			todays_change, todays_change_perc, dma_50, dma_200, dma_200_perc_diff,
			low_52w, high_52w, related_companies, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range stocks {
		_, err := stmt.Exec(s.Ticker, s.Name, s.Description, s.HomepageURL, s.Industry, s.Employees,
			s.MarketCap, s.IconURL, s.ListDate, s.DayOpen, s.DayHigh, s.DayLow, s.DayClose, s.Volume,
			s.TodaysChange, s.TodaysChangePerc, s.DMA50, s.DMA200, s.DMA200PercDiff,
			s.Low52W, s.High52W, s.RelatedCompanies, s.LastUpdated)
		if err != nil {
			return fmt.Errorf("stocks insert failed for %s: %w", s.Ticker, err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func pgInsertIndicesTx(tx *sql.Tx, indices []models.MIndex) error {
	if len(indices) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO indices (slug, name, url, last_updated) VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, idx := range indices {
		if _, err := stmt.Exec(idx.Slug, idx.Name, idx.URL, idx.LastUpdated); err != nil {
			return fmt.Errorf("indices insert failed for %s: %w", idx.Slug, err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func pgInsertHoldingsTx(tx *sql.Tx, holdings []models.MIndexHolding) error {
	if len(holdings) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO index_holdings (index_slug, ticker, rank, weight) VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, h := range holdings {
		if _, err := stmt.Exec(h.IndexSlug, h.Ticker, h.Rank, h.Weight); err != nil {
			return fmt.Errorf("index_holdings insert failed for %s/%s: %w", h.IndexSlug, h.Ticker, err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func pgInsertBarsTx(tx *sql.Tx, table string, bars []models.MChartBar) error {
	if len(bars) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s (ticker, timestamp, close, ema_30, ema_50, ema_200, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range bars {
		_, err := stmt.Exec(b.Ticker, b.Timestamp, b.Close, b.EMA30, b.EMA50, b.EMA200, b.Volume)
		if err != nil {
			return fmt.Errorf("%s insert failed for %s: %w", table, b.Ticker, err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) InsertStocks(stocks []models.MStock, minute, hour, day []models.MChartBar) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := pgInsertStocksTx(tx, stocks); err != nil {
		return err
	}
	if err := pgInsertBarsTx(tx, "minute_bars", minute); err != nil {
		return err
	}
	if err := pgInsertBarsTx(tx, "hour_bars", hour); err != nil {
		return err
	}
	if err := pgInsertBarsTx(tx, "day_bars", day); err != nil {
		return err
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) ReplaceTopMovers(movers []models.MTopMover) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM top_movers"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO top_movers (category, list, rank, ticker, name, day_close,
			todays_change, todays_change_perc, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range movers {
		_, err := stmt.Exec(m.Category, m.List, m.Rank, m.Ticker, m.Name, m.DayClose,
			m.TodaysChange, m.TodaysChangePerc, m.Volume)
		if err != nil {
			return fmt.Errorf("top_movers insert failed for %s/%s: %w", m.Category, m.Ticker, err)
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------
// Read surface
// -----------------------------------------------------------------------------

func (d *PostgresDB) GetAllIndices() ([]models.MIndex, error) {
	rows, err := d.DB.Query(`SELECT slug, name, url, last_updated FROM indices ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indices []models.MIndex
	for rows.Next() {
		var idx models.MIndex
		if err := rows.Scan(&idx.Slug, &idx.Name, &idx.URL, &idx.LastUpdated); err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}
	return indices, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) GetIndex(slug string) (*models.MIndex, error) {
	var idx models.MIndex
	err := d.DB.QueryRow(`SELECT slug, name, url, last_updated FROM indices WHERE slug = $1`, slug).
		Scan(&idx.Slug, &idx.Name, &idx.URL, &idx.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &idx, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) GetIndexHoldings(slug, sortBy, order string, filters []string) ([]models.MIndexHoldingRow, error) {
	query := fmt.Sprintf(`
		SELECT ih.weight, ih.ticker, COALESCE(s.name, ih.ticker), s.day_close,
			s.low_52w, s.high_52w, s.todays_change, s.todays_change_perc,
			s.dma_200, s.dma_200_perc_diff
		FROM index_holdings ih
		LEFT JOIN stocks s ON s.ticker = ih.ticker
		WHERE ih.index_slug = $1 AND (%s)
		ORDER BY %s
	`, holdingFilter(filters), holdingOrderBy(sortBy, order))

	rows, err := d.DB.Query(query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.MIndexHoldingRow
	for rows.Next() {
		var h models.MIndexHoldingRow
		err := rows.Scan(&h.Weight, &h.Ticker, &h.Name, &h.DayClose,
			&h.Low52W, &h.High52W, &h.TodaysChange, &h.TodaysChangePerc,
			&h.DMA200, &h.DMA200PercDiff)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) GetStockMaster(ticker string) (*models.MStockMaster, error) {
	var m models.MStockMaster
	err := d.DB.QueryRow(`
		SELECT ticker, name, type, type_desc, exchange, updated,
			day_open, day_high, day_low, day_close, volume, todays_change, todays_change_perc
		FROM stock_master WHERE ticker = $1
	`, ticker).Scan(&m.Ticker, &m.Name, &m.Type, &m.TypeDesc, &m.Exchange, &m.Updated,
		&m.DayOpen, &m.DayHigh, &m.DayLow, &m.DayClose, &m.Volume, &m.TodaysChange, &m.TodaysChangePerc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) GetStock(ticker string) (*models.MStock, error) {
	var s models.MStock
	err := d.DB.QueryRow(`
		SELECT ticker, name, description, homepage_url, industry, employees,
			market_cap, icon_url, list_date, day_open, day_high, day_low, day_close, volume,
			todays_change, todays_change_perc, dma_50, dma_200, dma_200_perc_diff,
			low_52w, high_52w, related_companies, last_updated
		FROM stocks WHERE ticker = $1
	`, ticker).Scan(&s.Ticker, &s.Name, &s.Description, &s.HomepageURL, &s.Industry, &s.Employees,
		&s.MarketCap, &s.IconURL, &s.ListDate, &s.DayOpen, &s.DayHigh, &s.DayLow, &s.DayClose, &s.Volume,
		&s.TodaysChange, &s.TodaysChangePerc, &s.DMA50, &s.DMA200, &s.DMA200PercDiff,
		&s.Low52W, &s.High52W, &s.RelatedCompanies, &s.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) GetChartBars(ticker, timespan string, fromTs int64) ([]models.MChartBar, error) {
	table, err := BarTableFor(timespan)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT ticker, timestamp, close, ema_30, ema_50, ema_200, volume
		FROM %s WHERE ticker = $1 AND timestamp >= $2 ORDER BY timestamp ASC
	`, table)

	rows, err := d.DB.Query(query, ticker, fromTs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []models.MChartBar
	for rows.Next() {
		var b models.MChartBar
		if err := rows.Scan(&b.Ticker, &b.Timestamp, &b.Close, &b.EMA30, &b.EMA50, &b.EMA200, &b.Volume); err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SearchStocks(query string, limit int) ([]models.MSearchResult, error) {
	rows, err := d.DB.Query(`
		SELECT ticker, name FROM stock_master
		WHERE ticker ILIKE $1 OR name ILIKE $1
		ORDER BY (COALESCE(day_close, 0) * COALESCE(volume, 0)) DESC
		LIMIT $2
	`, query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.MSearchResult
	for rows.Next() {
		var r models.MSearchResult
		if err := rows.Scan(&r.Ticker, &r.Name); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) GetTopMovers(category string) ([]models.MTopMover, error) {
	rows, err := d.DB.Query(`
		SELECT category, list, rank, ticker, name, day_close,
			todays_change, todays_change_perc, volume
		FROM top_movers WHERE category = $1 ORDER BY list ASC, rank ASC
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovers(rows)
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) GetTickerTape(limit int) ([]models.MStockMaster, error) {
	rows, err := d.DB.Query(`
		SELECT ticker, name, type, type_desc, exchange, updated,
			day_open, day_high, day_low, day_close, volume, todays_change, todays_change_perc
		FROM stock_master ORDER BY volume DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var masters []models.MStockMaster
	for rows.Next() {
		var m models.MStockMaster
		err := rows.Scan(&m.Ticker, &m.Name, &m.Type, &m.TypeDesc, &m.Exchange, &m.Updated,
			&m.DayOpen, &m.DayHigh, &m.DayLow, &m.DayClose, &m.Volume, &m.TodaysChange, &m.TodaysChangePerc)
		if err != nil {
			return nil, err
		}
		masters = append(masters, m)
	}
	return masters, rows.Err()
}

// -----------------------------------------------------------------------------
// Top-movers aggregation
// -----------------------------------------------------------------------------

func (d *PostgresDB) TopMoversOverall(limit int) (gainers, losers, topTraded []models.MTopMover, err error) {
	base := `
		SELECT ticker, name, day_close, todays_change, todays_change_perc, volume
		FROM stock_master
	`

	gainers, err = d.queryMovers(base+` WHERE todays_change > 0 ORDER BY todays_change_perc DESC, ticker ASC LIMIT $1`,
		models.CategoryOverall, models.MoversGainers, limit)
	if err != nil {
		return nil, nil, nil, err
	}

	losers, err = d.queryMovers(base+` WHERE todays_change < 0 ORDER BY todays_change_perc ASC, ticker ASC LIMIT $1`,
		models.CategoryOverall, models.MoversLosers, limit)
	if err != nil {
		return nil, nil, nil, err
	}

	topTraded, err = d.queryMovers(base+` ORDER BY volume DESC, ticker ASC LIMIT $1`,
		models.CategoryOverall, models.MoversTopTraded, limit)
	if err != nil {
		return nil, nil, nil, err
	}

	return gainers, losers, topTraded, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) TopMoversForIndex(slug string, limit int) (gainers, losers, topTraded []models.MTopMover, err error) {
	gainerQ := `
		SELECT s.ticker, s.name, COALESCE(s.day_close, 0), s.todays_change, s.todays_change_perc, COALESCE(s.volume, 0)
		FROM index_holdings ih
		JOIN stocks s ON s.ticker = ih.ticker
		WHERE ih.index_slug = $1 AND s.todays_change > 0
		ORDER BY s.todays_change_perc DESC, s.ticker ASC LIMIT $2`
	loserQ := `
		SELECT s.ticker, s.name, COALESCE(s.day_close, 0), s.todays_change, s.todays_change_perc, COALESCE(s.volume, 0)
		FROM index_holdings ih
		JOIN stocks s ON s.ticker = ih.ticker
		WHERE ih.index_slug = $1 AND s.todays_change < 0
		ORDER BY s.todays_change_perc ASC, s.ticker ASC LIMIT $2`
	tradedQ := `
		SELECT s.ticker, s.name, COALESCE(s.day_close, 0), s.todays_change, s.todays_change_perc, COALESCE(s.volume, 0)
		FROM index_holdings ih
		JOIN stocks s ON s.ticker = ih.ticker
		WHERE ih.index_slug = $1
		ORDER BY s.volume DESC, s.ticker ASC LIMIT $2`

	gainers, err = d.queryMoversArgs(gainerQ, slug, models.MoversGainers, limit, slug)
	if err != nil {
		return nil, nil, nil, err
	}
	losers, err = d.queryMoversArgs(loserQ, slug, models.MoversLosers, limit, slug)
	if err != nil {
		return nil, nil, nil, err
	}
	topTraded, err = d.queryMoversArgs(tradedQ, slug, models.MoversTopTraded, limit, slug)
	if err != nil {
		return nil, nil, nil, err
	}

	return gainers, losers, topTraded, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) queryMovers(query, category, list string, limit int) ([]models.MTopMover, error) {
	rows, err := d.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMoverRows(rows, category, list)
}

func (d *PostgresDB) queryMoversArgs(query, category, list string, limit int, slug string) ([]models.MTopMover, error) {
	rows, err := d.DB.Query(query, slug, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMoverRows(rows, category, list)
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) MissingStockTickers(tickers []string) ([]string, error) {
	rows, err := d.DB.Query(`SELECT ticker FROM stocks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		existing[t] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return missingFrom(existing, tickers), nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
