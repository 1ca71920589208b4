package redis

// KeyPrefixOAuthState prefixes pending OAuth CSRF states.
const KeyPrefixOAuthState = "raindrop-mcp:oauth:state:"

// StateKey returns the Redis key of a pending OAuth state.
func StateKey(state string) string {
	return KeyPrefixOAuthState + state
}
