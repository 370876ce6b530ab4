package twentyq

// Game phases
const (
	PhaseCategorySelect = "categorySelect"
	PhaseItemSelect     = "itemSelect"
	PhasePlaying        = "playing"
	PhaseResults        = "results"
)

// Status of the playing phase
const (
	StatusAsking   = "asking"
	StatusFinished = "finished"
)

// Log entry kinds and answers
const (
	EntryQuestion = "question"
	EntryGuess    = "guess"

	AnswerPending = "pending"
	AnswerYes     = "yes"
	AnswerNo      = "no"

	GuessCorrect   = "correct"
	GuessIncorrect = "incorrect"
)

// QuestionBudget is how many yes/no questions the guesser gets.
const QuestionBudget = 20

// LogEntry is one line of the ordered question/guess log.
type LogEntry struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Answer string `json:"answer,omitempty"` // yes/no/pending for questions, correct/incorrect for guesses
}

/*
 * State is the complete Twenty-Questions game state, serialized whole into
 * the lobby's game-state document on every transition. The host is always
 * the answerer (they know the secret item), the guest always the guesser.
 */
type State struct {
	Phase         string `json:"phase"`
	HostUsername  string `json:"hostUsername"`
	GuestUsername string `json:"guestUsername"`

	Category   string `json:"category,omitempty"`
	SecretItem string `json:"secretItem,omitempty"`

	GameStatus         string     `json:"gameStatus,omitempty"`
	QuestionsRemaining int        `json:"questionsRemaining"`
	Log                []LogEntry `json:"log,omitempty"`

	Winner string `json:"winner,omitempty"`
}

// NewState returns the initial state, pending category selection.
func NewState(host, guest string) *State {
	return &State{
		Phase:         PhaseCategorySelect,
		HostUsername:  host,
		GuestUsername: guest,
	}
}

// Answerer is the host for the whole game: they picked the secret item.
func (s *State) Answerer() string { return s.HostUsername }

// Guesser is the other participant.
func (s *State) Guesser() string { return s.GuestUsername }

// pendingIndex returns the index of the unresolved question, or -1.
func (s *State) pendingIndex() int {
	for i := len(s.Log) - 1; i >= 0; i-- {
		if s.Log[i].Kind == EntryQuestion && s.Log[i].Answer == AnswerPending {
			return i
		}
	}
	return -1
}

// Turn derives the current-turn pointer. During setup and after the game
// ends nobody is on turn; while playing, a pending question puts the
// answerer on turn, otherwise the guesser acts.
func (s *State) Turn() *string {
	if s.Phase != PhasePlaying || s.GameStatus != StatusAsking {
		return nil
	}
	var name string
	if s.pendingIndex() >= 0 {
		name = s.Answerer()
	} else {
		name = s.Guesser()
	}
	return &name
}
