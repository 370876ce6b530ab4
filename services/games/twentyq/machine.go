package twentyq

import (
	"errors"
	"strings"
)

var (
	ErrWrongPhase      = errors.New("action not valid in the current phase")
	ErrNotHost         = errors.New("only the host can do that")
	ErrNotGuesser      = errors.New("only the guesser can do that")
	ErrNotAnswerer     = errors.New("only the answerer can resolve questions")
	ErrUnknownCategory = errors.New("unknown item category")
	ErrUnknownItem     = errors.New("item is not part of the selected category")
	ErrEmptyText       = errors.New("text cannot be empty")
	ErrPendingQuestion = errors.New("the last question has not been answered yet")
	ErrNothingToAnswer = errors.New("there is no pending question to answer")
	ErrBadAnswer       = errors.New("answer must be yes or no")
	ErrNoQuestionsLeft = errors.New("no questions remaining")
)

// SelectCategory is the host-only first setup step.
func (s *State) SelectCategory(actor, category string) error {
	if s.Phase != PhaseCategorySelect {
		return ErrWrongPhase
	}
	if actor != s.HostUsername {
		return ErrNotHost
	}
	if _, ok := itemPools[category]; !ok {
		return ErrUnknownCategory
	}
	s.Category = category
	s.Phase = PhaseItemSelect
	return nil
}

// SelectItem fixes the secret item and opens play. An empty item picks one
// uniformly at random from the category's list. The guesser gets the turn
// with the full question budget.
func (s *State) SelectItem(actor, item string) error {
	if s.Phase != PhaseItemSelect {
		return ErrWrongPhase
	}
	if actor != s.HostUsername {
		return ErrNotHost
	}

	if item == "" {
		picked, err := RandomItem(s.Category)
		if err != nil {
			return err
		}
		item = picked
	} else if !ItemInCategory(s.Category, item) {
		return ErrUnknownItem
	}

	s.SecretItem = item
	s.Phase = PhasePlaying
	s.GameStatus = StatusAsking
	s.QuestionsRemaining = QuestionBudget
	s.Log = nil
	s.Winner = ""
	return nil
}

// AskQuestion appends the guesser's free-text question with a provisional
// answer and spends one question. When the budget hits zero the game
// auto-resolves in the answerer's favor; this is the only transition that can
// make the count reach zero, so the resolution fires exactly once per game.
func (s *State) AskQuestion(actor, text string) error {
	if s.Phase != PhasePlaying || s.GameStatus != StatusAsking {
		return ErrWrongPhase
	}
	if actor != s.Guesser() {
		return ErrNotGuesser
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if s.pendingIndex() >= 0 {
		return ErrPendingQuestion
	}
	if s.QuestionsRemaining <= 0 {
		return ErrNoQuestionsLeft
	}

	s.Log = append(s.Log, LogEntry{Kind: EntryQuestion, Text: text, Answer: AnswerPending})
	s.QuestionsRemaining--

	if s.QuestionsRemaining == 0 {
		s.finish(s.Answerer())
	}
	return nil
}

// AnswerQuestion resolves the pending question to yes or no and hands the
// turn back to the guesser.
func (s *State) AnswerQuestion(actor, answer string) error {
	if s.Phase != PhasePlaying || s.GameStatus != StatusAsking {
		return ErrWrongPhase
	}
	if actor != s.Answerer() {
		return ErrNotAnswerer
	}
	if answer != AnswerYes && answer != AnswerNo {
		return ErrBadAnswer
	}
	idx := s.pendingIndex()
	if idx < 0 {
		return ErrNothingToAnswer
	}

	s.Log[idx].Answer = answer
	return nil
}

// SubmitGuess logs a free-text guess. A correct guess (case-insensitive
// exact match, no fuzzy matching) ends the game immediately in the guesser's
// favor regardless of remaining questions; an incorrect one is logged and
// play continues without spending a question.
func (s *State) SubmitGuess(actor, text string) error {
	if s.Phase != PhasePlaying || s.GameStatus != StatusAsking {
		return ErrWrongPhase
	}
	if actor != s.Guesser() {
		return ErrNotGuesser
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if s.pendingIndex() >= 0 {
		return ErrPendingQuestion
	}

	correct := strings.EqualFold(strings.TrimSpace(text), s.SecretItem)
	entry := LogEntry{Kind: EntryGuess, Text: text, Answer: GuessIncorrect}
	if correct {
		entry.Answer = GuessCorrect
	}
	s.Log = append(s.Log, entry)

	if correct {
		s.finish(s.Guesser())
	}
	return nil
}

func (s *State) finish(winner string) {
	s.GameStatus = StatusFinished
	s.Phase = PhaseResults
	s.Winner = winner
}
