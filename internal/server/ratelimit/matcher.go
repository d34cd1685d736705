package ratelimit

// MatchEndpoint resolves the rate tier for a route. The health check is
// never limited; routes without an explicit tier return nil and fall
// through to the default limit.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	return nil
}
