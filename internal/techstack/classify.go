// Package techstack maps free-text technology descriptions onto a fixed
// vocabulary of known technologies grouped by domain.
package techstack

import (
	"sort"
	"strings"
)

// Domain tags group technologies by what they are used for.
type Domain string

const (
	DomainLanguage          Domain = "programming_language"
	DomainFrontendFramework Domain = "frontend_framework"
	DomainBackendFramework  Domain = "backend_framework"
	DomainDatabase          Domain = "database"
	DomainDevops            Domain = "devops"
	DomainCloud             Domain = "cloud"
	DomainVersionControl    Domain = "version_control"
	DomainInfrastructure    Domain = "infrastructure"
	DomainMobile            Domain = "mobile"
)

// vocabulary is the static token-to-domain map. Loaded once, read-only.
var vocabulary = map[string]Domain{
	"python":       DomainLanguage,
	"java":         DomainLanguage,
	"javascript":   DomainLanguage,
	"typescript":   DomainLanguage,
	"c#":           DomainLanguage,
	"ruby":         DomainLanguage,
	"go":           DomainLanguage,
	"php":          DomainLanguage,
	"react":        DomainFrontendFramework,
	"angular":      DomainFrontendFramework,
	"vue":          DomainFrontendFramework,
	"svelte":       DomainFrontendFramework,
	"django":       DomainBackendFramework,
	"flask":        DomainBackendFramework,
	"spring":       DomainBackendFramework,
	"laravel":      DomainBackendFramework,
	"express":      DomainBackendFramework,
	"node":         DomainBackendFramework,
	"mysql":        DomainDatabase,
	"postgresql":   DomainDatabase,
	"mongodb":      DomainDatabase,
	"redis":        DomainDatabase,
	"sql server":   DomainDatabase,
	"oracle":       DomainDatabase,
	"docker":       DomainDevops,
	"kubernetes":   DomainDevops,
	"jenkins":      DomainDevops,
	"aws":          DomainCloud,
	"azure":        DomainCloud,
	"gcp":          DomainCloud,
	"git":          DomainVersionControl,
	"terraform":    DomainInfrastructure,
	"react native": DomainMobile,
	"flutter":      DomainMobile,
	"swift":        DomainMobile,
	"kotlin":       DomainMobile,
}

// Classify finds every vocabulary token appearing in the text, grouped by
// domain. Matching is case-insensitive and substring-based, not
// word-bounded: "go" matches inside "google". Tokens within a domain are
// sorted for deterministic output.
func Classify(text string) map[Domain][]string {
	lower := strings.ToLower(text)

	matched := make(map[Domain][]string)
	for token, domain := range vocabulary {
		if strings.Contains(lower, token) {
			matched[domain] = append(matched[domain], token)
		}
	}

	for domain := range matched {
		sort.Strings(matched[domain])
	}

	return matched
}

// Effective returns the flattened, de-duplicated list of matched tokens as
// a comma-separated string, suitable as the tech-stack parameter for
// question generation. When nothing in the vocabulary matches, the raw
// text is returned verbatim.
func Effective(raw string) string {
	matched := Classify(raw)
	if len(matched) == 0 {
		return raw
	}

	tokens := make([]string, 0, len(matched))
	for _, domainTokens := range matched {
		tokens = append(tokens, domainTokens...)
	}
	sort.Strings(tokens)

	return strings.Join(tokens, ", ")
}
