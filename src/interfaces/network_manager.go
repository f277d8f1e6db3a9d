package interfaces

// -----------------------------------------------------------------------------
// INetworkManager abstracts outbound HTTP.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// Get performs a GET request with query params and retries.
	Get(url string, params map[string]string) ([]byte, error)

	// GetOnce performs a single GET attempt without retrying.
	GetOnce(url string, params map[string]string) ([]byte, error)
}
