package quizgen

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/textutil"
)

const blank = "_____"

var (
	definitionPattern      = regexp.MustCompile(`(?i)^([A-Z][a-zA-Z\s]{3,40}?)\s+is\s+([^.]{10,100})`)
	agentPattern           = regexp.MustCompile(`(?i)([A-Z][a-zA-Z\s]{5,40}) (?:is|are) (?:done by|performed by|led by|facilitated by|responsible for) ([A-Z][a-zA-Z\s]{3,50})`)
	quantityPattern        = regexp.MustCompile(`(?i)([A-Z][^.]{5,}) (?:is|are|lasts|takes) (?:typically|usually|generally|about|approximately)?\s*(\d+)\s+(\w+)`)
	capabilityPattern      = regexp.MustCompile(`(?i)^([A-Z][a-zA-Z\s]{3,30}?)\s+(?:performs|facilitates|manages|handles|executes)\s+([^.]{10,80})`)
	compositionPattern     = regexp.MustCompile(`(?i)^([A-Z][a-zA-Z\s]{3,30}?)\s+(?:includes|consists of|has|contains)\s+([^.]{10,100})`)
	purposePattern         = regexp.MustCompile(`(?i)^([A-Z][a-zA-Z\s]{5,40}?)\s+(?:is|are)\s+(?:used for|designed to|aims to|purpose is|role is)\s+([^.]{10,80})`)
	looseDefinitionPattern = regexp.MustCompile(`([A-Z][a-zA-Z\s]{3,35}?)\s+is\s+([^.]{15,100})`)

	definitionVerbs      = regexp.MustCompile(`(?i)\b(uses|does|performs|facilitates|manages|involves)\b`)
	looseDefinitionVerbs = regexp.MustCompile(`(?i)\b(uses|does|performs|facilitates|manages|involves|enables|allows)\b`)
	compositionVerbs     = regexp.MustCompile(`(?i)\b(uses|does|performs|enables)\b`)

	trailingLinkingWord     = regexp.MustCompile(`(?i)\s+(is|are|was|were|the|a|an)$`)
	trailingCompositionWord = regexp.MustCompile(`(?i)\s+(includes|consists|has|contains|are|is|of)$`)
	trailingCapabilityVerb  = regexp.MustCompile(`(?i)\s+(performs|facilitates|manages|handles|executes)$`)
	trailingPurposeWord     = regexp.MustCompile(`(?i)\s+(is|are|used|designed|aims|purpose|role)$`)
	actorSeparator          = regexp.MustCompile(`[,\s]+`)
)

var timeUnits = map[string]struct{}{
	"second": {}, "seconds": {}, "minute": {}, "minutes": {}, "hour": {}, "hours": {},
	"day": {}, "days": {}, "week": {}, "weeks": {}, "month": {}, "months": {}, "year": {}, "years": {},
}

var genericSubjects = map[string]struct{}{
	"finance": {}, "healthcare": {}, "transportation": {}, "e-commerce": {},
	"industry": {}, "field": {}, "domain": {},
}

// definition: "Agile is an iterative methodology" -> "What is Agile?".
func definition(sentence string) (string, string) {
	m := definitionPattern.FindStringSubmatch(sentence)
	if m == nil {
		return "", ""
	}
	subject := strings.TrimSpace(m[1])
	if definitionVerbs.MatchString(subject) {
		return "", ""
	}
	subject = trailingLinkingWord.ReplaceAllString(subject, "")
	return "What is " + subject + "?", textutil.TruncateAtWord(strings.TrimSpace(m[2]), MaxAnswerLength)
}

// agent: "Sprint planning is led by Scrum Master" -> "Who sprint planning?".
func agent(sentence string) (string, string) {
	m := agentPattern.FindStringSubmatch(sentence)
	if m == nil {
		return "", ""
	}
	action := strings.TrimSpace(m[1])
	actor := actorSeparator.Split(strings.TrimSpace(m[2]), 2)[0]
	return "Who " + strings.ToLower(action) + "?", textutil.Prefix(actor, 30)
}

// quantity: "A sprint lasts 2 weeks" -> "How long is a sprint?".
func quantity(sentence string) (string, string) {
	m := quantityPattern.FindStringSubmatch(sentence)
	if m == nil {
		return "", ""
	}
	subject := strings.ToLower(strings.TrimSpace(m[1]))
	number, unit := m[2], m[3]
	if _, ok := timeUnits[strings.ToLower(unit)]; ok {
		return "How long is " + subject + "?", number + " " + unit
	}
	return "How many " + unit + " is " + subject + "?", number + " " + unit
}

// fillInBlank blanks out a noun phrase of the sentence.
func (s *Synthesizer) fillInBlank(sentence string) (string, string) {
	tokens, ok := s.tag(sentence)
	if !ok {
		for _, w := range strings.Fields(sentence) {
			tokens = append(tokens, domain.Token{Text: w, Tag: "NN"})
		}
	}

	term := pickTerm(nounPhrases(tokens))
	if n := textutil.Len(term); n <= 5 || n >= 50 || !strings.Contains(sentence, term) {
		return "", ""
	}

	question := strings.Replace(sentence, term, blank, 1)
	if textutil.Len(question) > 150 {
		if words := strings.Fields(question); len(words) > 20 {
			question = strings.Join(words[:20], " ") + textutil.Ellipsis
		}
	}
	return question, term
}

// nounPhrases collects maximal runs of noun and adjective tokens that are
// two to four tokens long.
func nounPhrases(tokens []domain.Token) []string {
	var phrases, run []string
	flush := func() {
		if len(run) >= 2 && len(run) <= 4 {
			phrases = append(phrases, strings.Join(run, " "))
		}
		run = run[:0]
	}
	for _, tok := range tokens {
		if strings.HasPrefix(tok.Tag, "NN") || strings.HasPrefix(tok.Tag, "JJ") {
			run = append(run, tok.Text)
			continue
		}
		flush()
	}
	flush()
	return phrases
}

// pickTerm prefers the shortest phrase of three to five words, else the
// longest phrase.
func pickTerm(phrases []string) string {
	if len(phrases) == 0 {
		return ""
	}
	sort.SliceStable(phrases, func(a, b int) bool { return textutil.Len(phrases[a]) < textutil.Len(phrases[b]) })
	for _, p := range phrases {
		if n := len(strings.Fields(p)); n >= 3 && n <= 5 {
			return p
		}
	}
	return phrases[len(phrases)-1]
}

// capability: "The scheduler manages worker threads" -> "What does The scheduler do?".
func capability(sentence string) (string, string) {
	m := capabilityPattern.FindStringSubmatch(sentence)
	if m == nil {
		return "", ""
	}
	subject := strings.TrimSpace(m[1])
	if _, generic := genericSubjects[strings.ToLower(subject)]; generic {
		return "", ""
	}
	subject = trailingCapabilityVerb.ReplaceAllString(subject, "")
	return "What does " + subject + " do?", textutil.TruncateAtWord(strings.TrimSpace(m[2]), 80)
}

// composition: "Scrum includes sprints, reviews and retrospectives".
func composition(sentence string) (string, string) {
	m := compositionPattern.FindStringSubmatch(sentence)
	if m == nil {
		return "", ""
	}
	subject := trailingCompositionWord.ReplaceAllString(strings.TrimSpace(m[1]), "")
	if textutil.Len(subject) > 40 || compositionVerbs.MatchString(subject) {
		return "", ""
	}
	return "What are the components or types of " + subject + "?", textutil.TruncateAtWord(strings.TrimSpace(m[2]), 80)
}

// purpose: "Retrospectives are used for improving the process".
func purpose(sentence string) (string, string) {
	m := purposePattern.FindStringSubmatch(sentence)
	if m == nil {
		return "", ""
	}
	subject := trailingPurposeWord.ReplaceAllString(strings.TrimSpace(m[1]), "")
	return "What is the purpose of " + subject + "?", textutil.TruncateAtWord(strings.TrimSpace(m[2]), 80)
}

// looseDefinition finds "X is Y" anywhere in the sentence.
func looseDefinition(sentence string) (string, string) {
	m := looseDefinitionPattern.FindStringSubmatch(sentence)
	if m == nil {
		return "", ""
	}
	subject := strings.TrimSpace(m[1])
	def := strings.TrimSpace(m[2])
	if looseDefinitionVerbs.MatchString(subject) {
		return "", ""
	}
	subject = trailingLinkingWord.ReplaceAllString(subject, "")
	if textutil.Len(subject) >= 50 || textutil.Len(def) <= 10 {
		return "", ""
	}
	return "What is " + subject + "?", textutil.TruncateAtWord(def, MaxAnswerLength)
}

// explain is the last resort: ask to explain the first prominent noun.
func (s *Synthesizer) explain(sentence string) (string, string) {
	if textutil.Len(sentence) <= 30 {
		return "", ""
	}

	var term string
	if tokens, ok := s.tag(sentence); ok {
		for _, tok := range tokens {
			if strings.HasPrefix(tok.Tag, "NNP") ||
				(strings.HasPrefix(tok.Tag, "NN") && textutil.StartsUpper(tok.Text) && textutil.Len(tok.Text) > 4) {
				term = tok.Text
				break
			}
		}
	} else {
		for i, w := range strings.Fields(sentence) {
			w = strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
			if i > 0 && textutil.StartsUpper(w) && textutil.Len(w) > 4 {
				term = w
				break
			}
		}
	}
	if term == "" {
		return "", ""
	}
	return "Explain: " + term, textutil.Prefix(sentence, 120)
}
