package twentyq

import (
	"math/rand"
)

// Fixed item lists per category. The host either picks a specific item or
// lets the game draw one uniformly at random.
var itemPools = map[string][]string{
	"animals": {
		"dog", "cat", "elephant", "penguin", "dolphin", "owl", "rabbit",
		"horse", "turtle", "giraffe", "koala", "fox", "octopus", "hamster",
		"butterfly",
	},
	"foods": {
		"pizza", "sushi", "pancakes", "tacos", "ice cream", "spaghetti",
		"dumplings", "croissant", "ramen", "cheesecake", "popcorn",
		"burrito", "waffles", "curry", "strawberries",
	},
	"household": {
		"toothbrush", "umbrella", "pillow", "kettle", "mirror", "scissors",
		"candle", "blanket", "ladder", "doorbell", "vacuum cleaner",
		"alarm clock", "bathtub", "refrigerator", "television",
	},
	"places": {
		"beach", "library", "airport", "cinema", "mountain", "museum",
		"supermarket", "hospital", "playground", "lighthouse", "desert",
		"waterfall", "stadium", "bakery", "aquarium",
	},
}

// Categories lists the selectable category ids.
func Categories() []string {
	names := make([]string, 0, len(itemPools))
	for name := range itemPools {
		names = append(names, name)
	}
	return names
}

// ItemInCategory reports whether the item belongs to the category's list.
func ItemInCategory(category, item string) bool {
	for _, candidate := range itemPools[category] {
		if candidate == item {
			return true
		}
	}
	return false
}

// RandomItem draws a uniformly random item from the category's list.
func RandomItem(category string) (string, error) {
	pool, ok := itemPools[category]
	if !ok {
		return "", ErrUnknownCategory
	}
	return pool[rand.Intn(len(pool))], nil
}
