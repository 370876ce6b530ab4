package guessanswer

import (
	"math/rand"
)

// Question pools per category. Content mirrors the in-app question tables:
// every question carries its fixed options, guesses are matched against the
// exact option string.
var questionPools = map[string][]Question{
	"romance": {
		{Prompt: "What's my idea of a perfect date?", Options: []string{"Dinner out", "Movie night at home", "A long walk", "Something adventurous"}},
		{Prompt: "How do I prefer to be comforted?", Options: []string{"A hug", "Space to think", "Talking it out", "A distraction"}},
		{Prompt: "What's my love language?", Options: []string{"Words", "Touch", "Gifts", "Quality time"}},
		{Prompt: "Where would I want to be proposed to?", Options: []string{"Somewhere private", "In front of everyone", "On a trip", "At home"}},
		{Prompt: "What romantic gesture do I secretly love?", Options: []string{"Surprise notes", "Flowers", "Cooking for me", "Slow dancing"}},
		{Prompt: "What's my favorite way to spend an anniversary?", Options: []string{"Fancy dinner", "Weekend away", "Recreating our first date", "Quiet night in"}},
		{Prompt: "Which pet name do I like best?", Options: []string{"Babe", "Love", "My first name", "A silly nickname"}},
		{Prompt: "What first attracted me to you?", Options: []string{"Your smile", "Your humor", "Your confidence", "Your kindness"}},
		{Prompt: "How soon did I know I liked you?", Options: []string{"Right away", "After our first date", "After a few weeks", "It snuck up on me"}},
		{Prompt: "What's my dream honeymoon?", Options: []string{"Beach resort", "City exploring", "Mountains", "Road trip"}},
		{Prompt: "What song would I pick as 'our song'?", Options: []string{"A slow ballad", "Something upbeat", "The first song we danced to", "I'd let you pick"}},
	},
	"daily_life": {
		{Prompt: "What's the first thing I do in the morning?", Options: []string{"Check my phone", "Hit snooze", "Make coffee", "Shower"}},
		{Prompt: "What chore do I hate the most?", Options: []string{"Dishes", "Laundry", "Vacuuming", "Taking out the trash"}},
		{Prompt: "What do I usually order at a cafe?", Options: []string{"Coffee, black", "Something milky", "Tea", "Something sweet"}},
		{Prompt: "How do I deal with a bad day?", Options: []string{"Vent about it", "Sleep it off", "Comfort food", "Go quiet"}},
		{Prompt: "What's my ideal weekend?", Options: []string{"Out with friends", "Errands done early", "Total couch day", "A day trip"}},
		{Prompt: "What time do I really want to go to bed?", Options: []string{"Before 10", "Around 11", "Midnight", "whenever I stop scrolling"}},
		{Prompt: "What am I most likely to forget?", Options: []string{"Keys", "Names", "Appointments", "Where I parked"}},
		{Prompt: "What do I snack on when nobody's watching?", Options: []string{"Chips", "Chocolate", "Cheese", "Cereal"}},
		{Prompt: "How do I behave when I'm hungry?", Options: []string{"Grumpy", "Quiet", "Dramatic", "Totally normal"}},
		{Prompt: "What's my driving style?", Options: []string{"Careful", "Fast", "Distracted singer", "Backseat navigator"}},
		{Prompt: "What would I do with a free afternoon?", Options: []string{"Nap", "See friends", "A hobby", "Errands I kept postponing"}},
	},
	"favorites": {
		{Prompt: "What's my favorite season?", Options: []string{"Spring", "Summer", "Autumn", "Winter"}},
		{Prompt: "What's my comfort movie genre?", Options: []string{"Comedy", "Action", "Romance", "Horror"}},
		{Prompt: "What cuisine could I eat every day?", Options: []string{"Italian", "Japanese", "Mexican", "Home cooking"}},
		{Prompt: "What's my favorite way to travel?", Options: []string{"Plane", "Train", "Car", "I'd rather stay home"}},
		{Prompt: "Which dessert wins for me?", Options: []string{"Ice cream", "Cake", "Cookies", "Fruit"}},
		{Prompt: "What's my favorite time of day?", Options: []string{"Early morning", "Afternoon", "Evening", "Late night"}},
		{Prompt: "What animal would I want as a pet?", Options: []string{"Dog", "Cat", "Something small", "No pets"}},
		{Prompt: "What's my go-to karaoke pick?", Options: []string{"A power ballad", "Pop hit", "Something old", "I refuse to sing"}},
		{Prompt: "Which drink do I reach for?", Options: []string{"Water", "Soda", "Juice", "Coffee"}},
		{Prompt: "What's my favorite kind of gift?", Options: []string{"Practical", "Sentimental", "Experiences", "Surprise me"}},
		{Prompt: "What board game would I pick?", Options: []string{"Cards", "Strategy", "Trivia", "Party games"}},
	},
}

// Categories lists the selectable category ids.
func Categories() []string {
	names := make([]string, 0, len(questionPools))
	for name := range questionPools {
		names = append(names, name)
	}
	return names
}

// DrawQuestions draws n random questions without replacement from the
// category's pool.
func DrawQuestions(category string, n int) ([]Question, error) {
	pool, ok := questionPools[category]
	if !ok {
		return nil, ErrUnknownCategory
	}
	if n > len(pool) {
		n = len(pool)
	}

	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n], nil
}
