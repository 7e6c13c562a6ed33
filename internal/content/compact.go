package content

import (
	"fmt"

	"medquiz/internal/domain/models/catalog"
)

// CompactQuiz is the abbreviated interchange form used for bulk quiz
// import: single-letter keys keep pasted payloads small. "c" is the
// index into "o" of the correct option; "r" carries per-option
// rationales and may be shorter than "o" or absent.
type CompactQuiz struct {
	Title     string            `json:"t"`
	Questions []CompactQuestion `json:"q"`
}

// CompactQuestion is one question in compact form.
type CompactQuestion struct {
	Text       string   `json:"q"`
	Options    []string `json:"o"`
	Correct    int      `json:"c"`
	Rationales []string `json:"r,omitempty"`
	Hint       string   `json:"h,omitempty"`
}

// ExpandCompact converts a compact payload to full questions. It
// rejects out-of-range correct indexes rather than guessing.
func ExpandCompact(c CompactQuiz) (string, []catalog.Question, error) {
	questions := make([]catalog.Question, 0, len(c.Questions))
	for i, cq := range c.Questions {
		if len(cq.Options) == 0 {
			return "", nil, fmt.Errorf("question %d has no options", i+1)
		}
		if cq.Correct < 0 || cq.Correct >= len(cq.Options) {
			return "", nil, fmt.Errorf("question %d: correct index %d out of range", i+1, cq.Correct)
		}
		opts := make([]catalog.AnswerOption, len(cq.Options))
		for j, text := range cq.Options {
			opt := catalog.AnswerOption{Text: text, IsCorrect: j == cq.Correct}
			if j < len(cq.Rationales) {
				opt.Rationale = cq.Rationales[j]
			}
			opts[j] = opt
		}
		questions = append(questions, catalog.Question{
			Text:          cq.Text,
			AnswerOptions: opts,
			Hint:          cq.Hint,
		})
	}
	return c.Title, questions, nil
}

// CompressQuiz converts full questions back to the compact form, used
// when exporting a quiz for sharing. Multi-correct questions cannot be
// represented and are rejected.
func CompressQuiz(title string, questions []catalog.Question) (CompactQuiz, error) {
	out := CompactQuiz{Title: title, Questions: make([]CompactQuestion, 0, len(questions))}
	for i, q := range questions {
		cq := CompactQuestion{Text: q.Text, Hint: q.Hint, Correct: -1}
		hasRationale := false
		for j, opt := range q.AnswerOptions {
			cq.Options = append(cq.Options, opt.Text)
			cq.Rationales = append(cq.Rationales, opt.Rationale)
			if opt.Rationale != "" {
				hasRationale = true
			}
			if opt.IsCorrect {
				if cq.Correct >= 0 {
					return CompactQuiz{}, fmt.Errorf("question %d has multiple correct options", i+1)
				}
				cq.Correct = j
			}
		}
		if cq.Correct < 0 {
			return CompactQuiz{}, fmt.Errorf("question %d has no correct option", i+1)
		}
		if !hasRationale {
			cq.Rationales = nil
		}
		out.Questions = append(out.Questions, cq)
	}
	return out, nil
}
