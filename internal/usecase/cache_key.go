package usecase

import "strings"

const (
	analysisKeyPrefix = "analysis:v1:"
	archiveKeyPrefix  = "resumes/"
)

// AnalysisCacheKey scopes a cached result to both the feature schema and the
// file digest, so a lexicon change never serves results computed under the
// old feature layout.
func AnalysisCacheKey(schemaFingerprint, fileFingerprint string) string {
	return analysisKeyPrefix + strings.TrimSpace(schemaFingerprint) + ":" + strings.ToLower(strings.TrimSpace(fileFingerprint))
}

func ArchiveKey(id string) string {
	return archiveKeyPrefix + strings.TrimSpace(id) + ".pdf"
}
