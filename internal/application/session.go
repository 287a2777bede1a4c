package application

import (
	"regexp"
	"sort"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
)

// pronouns that refer back to the previous result's filter values.
var pronouns = []string{"he", "she", "they", "it", "that"}

var pronounRes = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(pronouns))
	for _, p := range pronouns {
		m[p] = regexp.MustCompile(`(?i)\b` + p + `\b`)
	}
	return m
}()

// session carries conversational context across utterances: the table and
// WHERE filters of the last successful SELECT. It never outlives the
// process and resets on a database switch.
type session struct {
	lastTable   string
	lastFilters map[string]string
}

func (s *session) reset() {
	s.lastTable = ""
	s.lastFilters = nil
}

func (s *session) remember(stmt domain.Statement) {
	s.lastTable = domain.TableName(stmt.SQL)
	s.lastFilters = domain.ExtractFilters(stmt.SQL)
}

// resolvePronouns substitutes back-references like "it" or "that" with the
// filter values of the previous utterance, so "when did they join" keeps
// working across turns. Filter keys are walked in sorted order to keep the
// substitution deterministic.
func (s *session) resolvePronouns(text string) string {
	if len(s.lastFilters) == 0 {
		return text
	}

	keys := make([]string, 0, len(s.lastFilters))
	for k := range s.lastFilters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, p := range pronouns {
		re := pronounRes[p]
		for _, k := range keys {
			text = re.ReplaceAllString(text, s.lastFilters[k])
		}
	}
	return text
}
