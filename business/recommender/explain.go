package recommender

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NoMatchExplanation is used for programs sharing no term with the student.
const NoMatchExplanation = "No matching signal with your profile; listed in default order."

// explain renders shared terms as one sentence. Student-side clauses come
// first (interests, then strong subjects), followed by what the program
// emphasizes (skills, tags, then description wording).
func explain(shared []contribution, student, program map[string]source) string {
	if len(shared) == 0 {
		return NoMatchExplanation
	}

	var interests, strengths, skills, tags, described []string
	for _, c := range shared {
		st := student[c.word]
		if st.has(sourceInterest) {
			interests = append(interests, c.word)
		}
		if st.has(sourceStrength) {
			strengths = append(strengths, c.word)
		}

		pt := program[c.word]
		switch {
		case pt.has(sourceSkill):
			skills = append(skills, c.word)
		case pt.has(sourceTag):
			tags = append(tags, c.word)
		default:
			described = append(described, c.word)
		}
	}

	var clauses []string
	if len(interests) > 0 {
		clauses = append(clauses, "matches your interest in "+joinTerms(interests))
	}
	if len(strengths) > 0 {
		clauses = append(clauses, "aligns with your strength in "+joinTerms(strengths))
	}
	if len(skills) > 0 {
		clauses = append(clauses, "program emphasizes skill "+joinTerms(skills))
	}
	if len(tags) > 0 {
		clauses = append(clauses, "program is tagged "+joinTerms(tags))
	}
	if len(described) > 0 {
		clauses = append(clauses, "program description mentions "+joinTerms(described))
	}

	return capitalize(strings.Join(clauses, "; ")) + "."
}

func joinTerms(terms []string) string {
	switch len(terms) {
	case 1:
		return terms[0]
	case 2:
		return terms[0] + " and " + terms[1]
	default:
		return strings.Join(terms[:len(terms)-1], ", ") + " and " + terms[len(terms)-1]
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
