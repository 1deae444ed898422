package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVocabulary_SortsByLengthThenAlphabetical(t *testing.T) {
	vocab := BuildVocabulary([]string{"claims", "ftc", "ftc basic", "appeals"})

	assert.Equal(t, Vocabulary{"ftc basic", "appeals", "claims", "ftc"}, vocab)
}

func TestBuildVocabulary_NormalizesAndDeduplicates(t *testing.T) {
	vocab := BuildVocabulary([]string{"  Claims ", "claims", "CLAIMS"})

	assert.Equal(t, Vocabulary{"claims"}, vocab)
}

func TestBuildVocabulary_DropsBlanksAndSentinels(t *testing.T) {
	vocab := BuildVocabulary([]string{"", "  ", "nan", "NaN", "none", "None", "claims"})

	assert.Equal(t, Vocabulary{"claims"}, vocab)
}

func TestBuildVocabulary_EmptyInput(t *testing.T) {
	vocab := BuildVocabulary(nil)

	assert.Empty(t, vocab)
}

func TestBuildVocabulary_EqualLengthTiesAreAlphabetical(t *testing.T) {
	vocab := BuildVocabulary([]string{"beta", "alfa", "gama"})

	assert.Equal(t, Vocabulary{"alfa", "beta", "gama"}, vocab)
}

func TestVocabulary_Contains(t *testing.T) {
	vocab := BuildVocabulary([]string{"claims", "appeals"})

	assert.True(t, vocab.Contains("claims"))
	assert.False(t, vocab.Contains("enrollment"))
}
