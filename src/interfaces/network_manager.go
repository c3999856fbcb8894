package interfaces

// -----------------------------------------------------------------------------
// INetworkManager abstracts outbound HTTP fetching (remote dataset source).
// -----------------------------------------------------------------------------

type INetworkManager interface {
	// Get performs a GET request with retries and returns the body.
	Get(urlStr string, params map[string]string) ([]byte, error)
}
