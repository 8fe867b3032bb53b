// Package security classifies ULID usage contexts and produces the advisory
// surfaced by the CLI. ULIDs are fine as identifiers and unsuitable as
// secrets; this package encodes that guidance.
package security

import "strings"

// Rating classifies how risky a usage context is for ULIDs.
type Rating string

const (
	RatingHigh    Rating = "high"
	RatingMedium  Rating = "medium"
	RatingLow     Rating = "low"
	RatingUnknown Rating = "unknown"
)

var sensitiveKeywords = []string{
	"auth", "authentication", "authorize", "authorization",
	"token", "session", "password", "secret", "key", "credential",
	"login", "signin", "signup", "security", "secure",
	"api_key", "apikey", "access_token", "refresh_token",
	"jwt", "oauth", "saml", "oidc",
	"reset", "recovery", "verification", "confirm",
	"nonce", "csrf", "xsrf", "challenge",
}

var (
	highRisk   = []string{"auth", "authentication", "token", "session", "password", "secret", "key", "login", "api_key", "jwt", "oauth"}
	mediumRisk = []string{"user", "account", "profile", "admin", "security", "reset", "verify", "confirm", "access"}
	lowRisk    = []string{"database", "db", "record", "log", "file", "object", "trace", "correlation", "analytics", "monitoring"}
)

// IsSensitiveContext reports whether a usage description suggests a
// security-sensitive purpose.
func IsSensitiveContext(context string) bool {
	lower := strings.ToLower(context)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Rate returns the risk rating for a usage context.
func Rate(context string) Rating {
	lower := strings.ToLower(context)
	contains := func(words []string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
	switch {
	case contains(highRisk):
		return RatingHigh
	case contains(mediumRisk):
		return RatingMedium
	case contains(lowRisk):
		return RatingLow
	default:
		return RatingUnknown
	}
}

// Assessment is the structured verdict for one context.
type Assessment struct {
	Context        string `json:"context"`
	Rating         Rating `json:"rating"`
	Sensitive      bool   `json:"sensitive"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// Assess combines the keyword scan and rating into one verdict.
func Assess(context string) Assessment {
	a := Assessment{
		Context:   context,
		Rating:    Rate(context),
		Sensitive: IsSensitiveContext(context),
	}
	if a.Sensitive {
		a.Message = "The context suggests security-sensitive usage. ULIDs are not appropriate for authentication, session management, or cryptographic purposes."
		a.Recommendation = "Use cryptographically secure random tokens instead. See 'ulidkit security-advice' for detailed guidance."
	} else {
		a.Message = "No security-sensitive keywords detected. ULIDs are well suited to identification and ordering."
		a.Recommendation = "Keep ULIDs out of authentication and authorization paths."
	}
	return a
}

// Advice is the full advisory document.
type Advice struct {
	Warning        string   `json:"warning"`
	Vulnerability  string   `json:"vulnerability"`
	SafeUseCases   []string `json:"safe_use_cases"`
	UnsafeUseCases []string `json:"unsafe_use_cases"`
	BestPractices  []string `json:"best_practices"`
	LearnMore      string   `json:"learn_more"`
}

// GetAdvice returns the advisory shown by `ulidkit security-advice`.
func GetAdvice() Advice {
	return Advice{
		Warning:       "ULIDs have important security limitations due to monotonic generation patterns",
		Vulnerability: "When multiple ULIDs are generated within the same millisecond, the randomness component becomes a counter (incremented by 1). This creates predictable sequences that enable timing-based attacks.",
		SafeUseCases: []string{
			"Database primary keys",
			"Log correlation IDs",
			"File and object naming",
			"Sortable identifiers for analytics",
			"General-purpose unique identifiers",
			"Event tracking and tracing",
			"Data pipeline identifiers",
		},
		UnsafeUseCases: []string{
			"Authentication tokens",
			"Session identifiers",
			"Password reset tokens",
			"API keys or secrets",
			"Security-critical random values",
			"Cryptographic nonces",
			"CSRF tokens",
			"OAuth state parameters",
		},
		BestPractices: []string{
			"Always assess whether your use case requires cryptographic security",
			"Document ULID usage context in your code and architecture",
			"Use ULIDs for identification, not authentication or authorization",
			"Prefer UUIDs or secure random generators for security-sensitive contexts",
			"Consider the trade-offs: sortability vs. cryptographic security",
			"Implement proper security reviews for identifier usage",
		},
		LearnMore: "See the ULID specification: https://github.com/ulid/spec",
	}
}
