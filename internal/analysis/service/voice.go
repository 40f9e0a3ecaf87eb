package service

import "samakicash_backend/internal/analysis/domain"

// The speech upstream signals several "no usable audio" conditions as
// magic strings instead of errors. Each one is equivalent to producing
// no artifact at all.
var voiceSoftFailures = map[string]struct{}{
	"voice_generation_failed":  {},
	"voice_generation_timeout": {},
	"voice_generation_skipped": {},
	"voice_connection_error":   {},
}

// ResolveVoiceArtifact collapses an upstream synthesis result into a
// tagged artifact: empty results and soft-failure sentinels become the
// skipped variant, any other string is a produced filename.
func ResolveVoiceArtifact(result string) domain.VoiceArtifact {
	if result == "" {
		return domain.SkippedVoice("empty synthesis result")
	}
	if _, ok := voiceSoftFailures[result]; ok {
		return domain.SkippedVoice(result)
	}
	return domain.ProducedVoice(result)
}
