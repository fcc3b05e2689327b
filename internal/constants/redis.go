package constants

// Redis key prefixes
const (
	// RedisKeyRevokedToken prefixes denylisted JWT IDs (logout before expiry).
	RedisKeyRevokedToken = "auth:revoked:"
)
