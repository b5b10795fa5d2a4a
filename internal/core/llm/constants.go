package llm

// Error message templates
const (
	errRateLimiter          = "rate limiter error: %w"
	errOpenAIChatCompletion = "openai chat completion error: %w"
)

// Log key strings
const (
	logKeyOperation = "operation"
	logKeyModel     = "model"
	logKeyMaxTokens = "max_tokens"
)

const (
	rateLimiterBurst = 1
	defaultModel     = "gpt-3.5-turbo"
	fallbackEncoding = "cl100k_base"
	// approxRunesPerToken is used when no BPE table can be loaded.
	approxRunesPerToken = 4
)
