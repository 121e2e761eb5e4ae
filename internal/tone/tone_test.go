package tone

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolarity(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, 0.0, a.Polarity(""))
	assert.Equal(t, 0.0, a.Polarity("   "))
	assert.Equal(t, 0.0, a.Polarity("The meeting starts at noon."))
	assert.Less(t, a.Polarity("It was terrible and awful. I hate it."), -0.5)
	assert.Greater(t, a.Polarity("The results were excellent."), 0.3)
}

func TestPolarityRange(t *testing.T) {
	a := NewAnalyzer()
	for _, text := range []string{
		"GREAT!!! AMAZING!!! BEST EVER!!!",
		"Horrible, horrible, horrible. Worst disaster, I hate everything!!!",
		"Good food, bad service.",
	} {
		p := a.Polarity(text)
		assert.GreaterOrEqual(t, p, -1.0, text)
		assert.LessOrEqual(t, p, 1.0, text)
	}
}

func TestPolarityNegation(t *testing.T) {
	a := NewAnalyzer()
	assert.Greater(t, a.Polarity("The plan is good."), 0.0)
	assert.Less(t, a.Polarity("The plan isn't good."), 0.0)
	assert.Less(t, a.Polarity("I didn't like it."), 0.0)
}

func TestPolarityTypographicApostrophe(t *testing.T) {
	a := NewAnalyzer()
	assert.InDelta(t, a.Polarity("I didn't like it."), a.Polarity("I didn’t like it."), 1e-9)
	assert.InDelta(t, a.Polarity("The plan isn't good."), a.Polarity("The plan isn’t good."), 1e-9)
}

func TestPolarityConcurrent(t *testing.T) {
	a := NewAnalyzer()
	want := a.Polarity("This is a terrible idea.")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.InDelta(t, want, a.Polarity("This is a terrible idea."), 1e-9)
		}()
	}
	wg.Wait()
}
