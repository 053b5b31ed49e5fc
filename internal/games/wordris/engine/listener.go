package engine

// Listener receives board events. Calls happen synchronously inside Step
// and Start, on the goroutine driving the board.
type Listener interface {
	// WordsMatched reports every word occurrence found by one scan.
	WordsMatched(words []string)
	// GameOver fires once when the middle column is full.
	GameOver()
	// NextLetter previews the letter that will be spawned next.
	NextLetter(l Letter)
	// TileSettled fires when the active tile comes to rest.
	TileSettled(t Tile)
}

// NopListener ignores all events.
type NopListener struct{}

func (NopListener) WordsMatched([]string) {}
func (NopListener) GameOver()             {}
func (NopListener) NextLetter(Letter)     {}
func (NopListener) TileSettled(Tile)      {}

// ListenerFuncs adapts optional functions to a Listener.
type ListenerFuncs struct {
	OnWordsMatched func(words []string)
	OnGameOver     func()
	OnNextLetter   func(l Letter)
	OnTileSettled  func(t Tile)
}

func (f ListenerFuncs) WordsMatched(words []string) {
	if f.OnWordsMatched != nil {
		f.OnWordsMatched(words)
	}
}

func (f ListenerFuncs) GameOver() {
	if f.OnGameOver != nil {
		f.OnGameOver()
	}
}

func (f ListenerFuncs) NextLetter(l Letter) {
	if f.OnNextLetter != nil {
		f.OnNextLetter(l)
	}
}

func (f ListenerFuncs) TileSettled(t Tile) {
	if f.OnTileSettled != nil {
		f.OnTileSettled(t)
	}
}
