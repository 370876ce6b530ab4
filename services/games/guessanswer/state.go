package guessanswer

// Game phases
const (
	PhaseCategorySelect = "categorySelect"
	PhaseRound1         = "round1"
	PhaseRound2         = "round2"
	PhaseResults        = "results"
)

// Per-question cycle within a round
const (
	QuestionAnswering = "answering"
	QuestionGuessing  = "guessing"
	QuestionRevealed  = "revealed"
)

// WinnerTie marks equal round scores in the results phase
const WinnerTie = "tie"

// Question is one prompt with its fixed answer options.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

/*
 * State is the complete Guess-My-Answer game state. It is serialized whole
 * into the lobby's game-state document on every transition, so every field a
 * client needs to render must live here.
 */
type State struct {
	Phase         string `json:"phase"`
	HostUsername  string `json:"hostUsername"`
	GuestUsername string `json:"guestUsername"`

	Category     string     `json:"category,omitempty"`
	Questions    []Question `json:"questions,omitempty"`
	CurrentIndex int        `json:"currentIndex"`

	QuestionState  string `json:"questionState,omitempty"`
	SelectedAnswer string `json:"selectedAnswer,omitempty"`
	SelectedGuess  string `json:"selectedGuess,omitempty"`

	// RoundScore is the running score of the round in progress; the two
	// snapshots are taken when each round is exhausted
	RoundScore  int `json:"roundScore"`
	Round1Score int `json:"round1Score"`
	Round2Score int `json:"round2Score"`

	Winner string `json:"winner,omitempty"` // username, or "tie"
}

// NewState returns the initial state: category selection pending, host and
// guest roles fixed for the whole game.
func NewState(host, guest string) *State {
	return &State{
		Phase:         PhaseCategorySelect,
		HostUsername:  host,
		GuestUsername: guest,
	}
}

// Answerer returns who answers in the current round. Round 1 answerer is the
// host; round 2 swaps the roles.
func (s *State) Answerer() string {
	if s.Phase == PhaseRound2 {
		return s.GuestUsername
	}
	return s.HostUsername
}

// Guesser returns who guesses in the current round.
func (s *State) Guesser() string {
	if s.Phase == PhaseRound2 {
		return s.HostUsername
	}
	return s.GuestUsername
}

// Turn derives the current-turn pointer from the phase. Nil means nobody
// needs to act (reveal review, between rounds, results).
func (s *State) Turn() *string {
	if s.Phase != PhaseRound1 && s.Phase != PhaseRound2 {
		return nil
	}
	switch s.QuestionState {
	case QuestionAnswering:
		name := s.Answerer()
		return &name
	case QuestionGuessing:
		name := s.Guesser()
		return &name
	}
	return nil
}
