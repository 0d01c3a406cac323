package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerSetAnswer(t *testing.T) {
	answers := AnswerSet{5: "C"}

	assert.Equal(t, "C", answers.Answer(5))
	assert.Empty(t, answers.Answer(6), "missing entry reads as empty")

	var nilSet AnswerSet
	assert.Empty(t, nilSet.Answer(1))
}

func TestSkillDisplayName(t *testing.T) {
	assert.Equal(t, "Grammar & Vocabulary", SkillGrammarVocabulary.DisplayName())
	assert.Equal(t, "Reading & Writing", SkillReadingWriting.DisplayName())
	assert.Equal(t, "Listening", SkillListening.DisplayName())
	assert.Equal(t, "nope", Skill("nope").DisplayName())
}

func TestSkillValid(t *testing.T) {
	assert.True(t, SkillGrammarVocabulary.Valid())
	assert.True(t, SkillReadingWriting.Valid())
	assert.True(t, SkillListening.Valid())
	assert.False(t, Skill("speaking").Valid())
}
