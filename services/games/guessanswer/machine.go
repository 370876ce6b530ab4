package guessanswer

import (
	"errors"
)

// QuestionsPerRound is how many questions are drawn at category selection.
// Both rounds play the same draw with the roles swapped.
const QuestionsPerRound = 10

var (
	ErrWrongPhase      = errors.New("action not valid in the current phase")
	ErrNotHost         = errors.New("only the host can do that")
	ErrNotAnswerer     = errors.New("only the current answerer can submit an answer")
	ErrNotGuesser      = errors.New("only the current guesser can submit a guess")
	ErrUnknownCategory = errors.New("unknown question category")
	ErrBadOption       = errors.New("selected option is not one of the question's options")
)

// SelectCategory is the host-only transition out of categorySelect: it draws
// the round's questions without replacement and opens round 1 with the host
// answering.
func (s *State) SelectCategory(actor, category string) error {
	if s.Phase != PhaseCategorySelect {
		return ErrWrongPhase
	}
	if actor != s.HostUsername {
		return ErrNotHost
	}

	questions, err := DrawQuestions(category, QuestionsPerRound)
	if err != nil {
		return err
	}

	s.Category = category
	s.Questions = questions
	s.CurrentIndex = 0
	s.Phase = PhaseRound1
	s.QuestionState = QuestionAnswering
	s.SelectedAnswer = ""
	s.SelectedGuess = ""
	s.RoundScore = 0
	return nil
}

// SubmitAnswer records the answerer's option and hands the turn to the guesser.
func (s *State) SubmitAnswer(actor, option string) error {
	if (s.Phase != PhaseRound1 && s.Phase != PhaseRound2) || s.QuestionState != QuestionAnswering {
		return ErrWrongPhase
	}
	if actor != s.Answerer() {
		return ErrNotAnswerer
	}
	if !s.validOption(option) {
		return ErrBadOption
	}

	s.SelectedAnswer = option
	s.QuestionState = QuestionGuessing
	return nil
}

// SubmitGuess records the guesser's option, scores it against the answer
// (exact match, case-sensitive option strings) and moves to the reveal.
func (s *State) SubmitGuess(actor, option string) error {
	if (s.Phase != PhaseRound1 && s.Phase != PhaseRound2) || s.QuestionState != QuestionGuessing {
		return ErrWrongPhase
	}
	if actor != s.Guesser() {
		return ErrNotGuesser
	}
	if !s.validOption(option) {
		return ErrBadOption
	}

	s.SelectedGuess = option
	if s.SelectedGuess == s.SelectedAnswer {
		s.RoundScore++
	}
	s.QuestionState = QuestionRevealed
	return nil
}

// Advance is the host-only transition out of a reveal: next question, next
// round, or the results phase when round 2 is exhausted.
func (s *State) Advance(actor string) error {
	if (s.Phase != PhaseRound1 && s.Phase != PhaseRound2) || s.QuestionState != QuestionRevealed {
		return ErrWrongPhase
	}
	if actor != s.HostUsername {
		return ErrNotHost
	}

	if s.CurrentIndex+1 < len(s.Questions) {
		s.CurrentIndex++
		s.QuestionState = QuestionAnswering
		s.SelectedAnswer = ""
		s.SelectedGuess = ""
		return nil
	}

	if s.Phase == PhaseRound1 {
		// Snapshot round 1 and restart the question cycle with roles swapped
		s.Round1Score = s.RoundScore
		s.RoundScore = 0
		s.Phase = PhaseRound2
		s.CurrentIndex = 0
		s.QuestionState = QuestionAnswering
		s.SelectedAnswer = ""
		s.SelectedGuess = ""
		return nil
	}

	s.Round2Score = s.RoundScore
	s.Phase = PhaseResults
	s.QuestionState = ""
	s.Winner = s.computeWinner()
	return nil
}

// computeWinner compares the two guessers' round scores. Round 1 was guessed
// by the guest, round 2 by the host.
func (s *State) computeWinner() string {
	switch {
	case s.Round1Score > s.Round2Score:
		return s.GuestUsername
	case s.Round2Score > s.Round1Score:
		return s.HostUsername
	}
	return WinnerTie
}

func (s *State) validOption(option string) bool {
	if s.CurrentIndex >= len(s.Questions) {
		return false
	}
	for _, o := range s.Questions[s.CurrentIndex].Options {
		if o == option {
			return true
		}
	}
	return false
}
