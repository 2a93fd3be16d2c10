package ingest

import (
	"regexp"
	"strings"
)

type categoryRule struct {
	pattern  *regexp.Regexp
	category Category
}

// Categorizer assigns a category to a raw item by testing title+content
// against an ordered rule list. Rule order is part of the contract: categories
// overlap in text ("autonomous agent" matches both the robotics and agents
// vocabularies), and the first match wins.
type Categorizer struct {
	rules []categoryRule
}

func NewCategorizer() *Categorizer {
	return &Categorizer{
		rules: []categoryRule{
			{regexp.MustCompile(`(?i)\b(gpt|llm|language model|chatgpt|claude|gemini|transformer)\b`), CategoryLLMs},
			{regexp.MustCompile(`(?i)\b(computer vision|cv|image recognition|object detection|yolo|segmentation)\b`), CategoryCV},
			{regexp.MustCompile(`(?i)\b(agi|artificial general intelligence|superintelligence)\b`), CategoryAGI},
			{regexp.MustCompile(`(?i)\b(robot|robotics|autonomous|drone)\b`), CategoryRobotics},
			{regexp.MustCompile(`(?i)\b(agent|autonomous agent|multi-agent|agentic)\b`), CategoryAgents},
			{regexp.MustCompile(`(?i)\b(nlp|natural language processing|sentiment analysis|text classification)\b`), CategoryNLP},
		},
	}
}

// Run is a pure function: no I/O, same input always yields the same category.
// Items matching no rule fall through to the machine-learning catch-all.
func (c *Categorizer) Run(item RawItem) Category {
	text := strings.ToLower(item.Title + " " + item.Content)

	for _, rule := range c.rules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}

	return CategoryML
}
