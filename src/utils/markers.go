package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stock-tracker/src/models"
)

// -----------------------------------------------------------------------------
// On-disk markers shared between the refresh pipeline and the web
// layer: the freshness record and the market-open gate.
// -----------------------------------------------------------------------------

const (
	refreshInfoFile  = "refresh_info.json"
	marketStatusFile = "market_status.json"
)

// -----------------------------------------------------------------------------

func readMarker(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeMarker(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// -----------------------------------------------------------------------------

// ReadRefreshInfo loads the last-successful-refresh marker. A missing
// file is not an error; it returns nil info.
func ReadRefreshInfo(dataDir string) (*models.MRefreshInfo, error) {
	var info models.MRefreshInfo
	path := filepath.Join(dataDir, refreshInfoFile)
	if err := readMarker(path, &info); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read refresh marker: %w", err)
	}
	return &info, nil
}

// -----------------------------------------------------------------------------

// WriteRefreshInfo persists the freshness marker after a committed cycle.
func WriteRefreshInfo(dataDir string, info models.MRefreshInfo) error {
	return writeMarker(filepath.Join(dataDir, refreshInfoFile), info)
}

// -----------------------------------------------------------------------------

// ReadMarketStatus loads the market-open gate marker. A missing file
// is not an error; it returns nil status.
func ReadMarketStatus(dataDir string) (*models.MMarketStatus, error) {
	var status models.MMarketStatus
	path := filepath.Join(dataDir, marketStatusFile)
	if err := readMarker(path, &status); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read market status marker: %w", err)
	}
	return &status, nil
}

// -----------------------------------------------------------------------------

// WriteMarketStatus persists the provider's current market status.
func WriteMarketStatus(dataDir string, status models.MMarketStatus) error {
	return writeMarker(filepath.Join(dataDir, marketStatusFile), status)
}
