package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	DataDir  string          `yaml:"data_dir"`
	Storage  MStorageConfig  `yaml:"storage"`
	Network  MNetworkConfig  `yaml:"network"`
	Provider MProviderConfig `yaml:"provider"`
	Scraper  MScraperConfig  `yaml:"scraper"`
	Pipeline MPipelineConfig `yaml:"pipeline"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	MaxRetries     int    `yaml:"retries"`
	UserAgent      string `yaml:"user_agent"`
}

type MProviderConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"` // Overridden by POLYGON_API_KEY env var
}

type MScraperConfig struct {
	BaseURL      string `yaml:"base_url"`
	DelaySeconds int    `yaml:"delay_seconds"`
}

type MPipelineConfig struct {
	NumTopStocks     int  `yaml:"num_top_stocks"`
	IgnoreMarketGate bool `yaml:"ignore_market_gate"`
}
