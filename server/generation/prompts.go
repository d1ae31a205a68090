package generation

import (
	"fmt"
	"strings"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

func wordLines(words []*store.Word) string {
	var b strings.Builder
	for _, word := range words {
		fmt.Fprintf(&b, "- id: %s, word: %q, translation: %q\n", word.ID, word.Text, word.Translation)
	}
	return b.String()
}

func questionsPrompt(words []*store.Word, count int, difficulty, targetLanguage, nativeLanguage string) string {
	return fmt.Sprintf(`You are a language-learning quiz generator. Create quiz questions from the vocabulary below into a strict JSON format.

Target language: %s
Native language: %s
Difficulty: %s

Vocabulary (each word has an opaque id; echo the exact id back in "wordId"):
%s
Output Schema (JSON array only, no other text):
[
  {
    "wordId": "exact id copied from the vocabulary above",
    "type": "multiple_choice|fill_blank|sentence_completion",
    "question": "The question text",
    "options": ["only for multiple_choice, 4 options"],
    "correctAnswer": "The expected answer",
    "context": "optional context sentence",
    "difficulty": "%s"
  }
]

Rules:
1. Produce exactly %d questions, mixing the three types.
2. "wordId" must be copied verbatim from the vocabulary list; never invent ids.
3. For multiple_choice, include the correct answer among the options.
4. Answers must be short enough for exact matching.
`, targetLanguage, nativeLanguage, difficulty, wordLines(words), difficulty, count)
}

func sentencesPrompt(words []*store.Word, targetLanguage string) string {
	return fmt.Sprintf(`You are a language-learning assistant. For every vocabulary word below, write three natural example sentences in %s.

Vocabulary (each word has an opaque id; echo the exact id back in "wordId"):
%s
Output Schema (JSON array only, no other text):
[
  {
    "wordId": "exact id copied from the vocabulary above",
    "word": "the word",
    "sentences": ["sentence 1", "sentence 2", "sentence 3"]
  }
]

Rules:
1. Exactly three sentences per word, showing different usages.
2. Keep sentences at an intermediate difficulty level.
`, targetLanguage, wordLines(words))
}

func vocabularyPrompt(topic string, count int, targetLanguage, nativeLanguage string) string {
	return fmt.Sprintf(`You are a language-learning assistant. Generate a vocabulary list for the topic %q.

Target language: %s
Native language (for translations): %s

Output Schema (JSON array only, no other text):
[
  {
    "word": "the word in the target language",
    "translation": "translation in the native language",
    "partOfSpeech": "noun|verb|adjective|adverb|phrase",
    "difficulty": "beginner|intermediate|advanced"
  }
]

Rules:
1. Produce exactly %d entries, all relevant to the topic.
2. No duplicates.
`, topic, targetLanguage, nativeLanguage, count)
}

func complexityPrompt(text string) string {
	return fmt.Sprintf(`You are a text-complexity analyzer for language learners. Analyze the text below.

Output Schema (JSON object only, no other text):
{
  "complexity": "easy|medium|hard",
  "score": 0.0,
  "suggestions": ["suggestion for the learner"]
}

Rules:
1. "score" is a number between 0 and 1, where 1 is the most complex.
2. Give at most three short suggestions.

Text:
%s
`, text)
}
