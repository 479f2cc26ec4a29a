package engine

import "strings"

// Reply is a prepared answer plus an optional citation label.
type Reply struct {
	Content string
	Source  string
}

// rule pairs keyword triggers with a prepared reply. Matching is
// case-insensitive substring containment; rules are evaluated in order and
// the first match wins.
type rule struct {
	keywords []string
	reply    Reply
}

var rules = []rule{
	{
		keywords: []string{"solid", "مبادئ"},
		reply:    Reply{Content: solidArticle, Source: "SOLID Principles Documentation"},
	},
	{
		keywords: []string{"circuit", "breaker", "نمط"},
		reply:    Reply{Content: circuitBreakerArticle, Source: "Design Patterns Handbook"},
	},
	{
		keywords: []string{"database", "قاعدة", "بيانات"},
		reply:    Reply{Content: databaseArticle, Source: "Database Design Best Practices"},
	},
	{
		keywords: []string{"مرحب", "hello", "hi"},
		reply:    Reply{Content: greetingReply},
	},
	{
		keywords: []string{"من أنت", "who are you"},
		reply:    Reply{Content: biographyReply},
	},
}

var fallback = Reply{Content: fallbackReply}

// Classify picks the prepared reply for a user message.
func Classify(message string) Reply {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}
	return fallback
}
