package ai

import "strings"

// stopwords are filtered out of topic extraction. The list covers the filler
// vocabulary of interview questions, not a general English stopword corpus.
var stopwords = map[string]struct{}{
	"what": {}, "how": {}, "why": {}, "when": {}, "where": {}, "tell": {},
	"describe": {}, "explain": {}, "the": {}, "a": {}, "an": {}, "is": {},
	"are": {}, "you": {}, "me": {}, "about": {}, "your": {}, "can": {},
	"would": {}, "should": {}, "do": {}, "does": {}, "did": {}, "have": {},
	"has": {}, "had": {}, "will": {}, "with": {}, "for": {}, "on": {},
	"in": {}, "at": {}, "by": {}, "from": {}, "to": {}, "of": {},
	"and": {}, "or": {}, "but": {},
}

// ExtractTopics pulls candidate topic tokens out of a question so later
// prompts can be told not to repeat them. Tokens are lowercased, stripped of
// surrounding punctuation, filtered to length > 3 non-stopwords, and
// deduplicated preserving first occurrence order.
func ExtractTopics(questionText string) []string {
	seen := make(map[string]struct{})
	var topics []string

	for _, word := range strings.Fields(strings.ToLower(questionText)) {
		word = strings.Trim(word, ".,!?()[]{}\":;")
		if len(word) <= 3 {
			continue
		}
		if _, isStop := stopwords[word]; isStop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		topics = append(topics, word)
	}

	return topics
}
