package snapshot

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/klondike/card"
	"github.com/domino14/klondike/game"
)

// A legal mid-game position: clubs to the 3 on its foundation, a short
// waste, and the rest of the deck split between the stock and tableaus.
const midGameYAML = `
stock: [4C, 5C, 6C, 7C, 8C, 9C, TC, JC, QC, KC, 3D, 4D, 5D, 6D, 7D, 8D, 9D, TD, JD, QD, KD, JH, KH]
waste: [2H, 3H]
foundations:
  - [AC, 2C, 3C]
  - []
  - []
  - []
tableaus:
  - {up: [KS]}
  - {down: [4H], up: [QH, JS]}
  - {down: [5H, 6H], up: [TH]}
  - {down: [7H, 8H], up: [9H]}
  - {down: [AH, AD], up: [AS]}
  - {down: [2S, 3S, 4S], up: [5S]}
  - {down: [6S, 7S, 8S, 9S, TS, JS], up: [QS]}
`

// The deck above double-lists JS; fix the second copy by hand per test.
func fixedYAML() string {
	return strings.Replace(midGameYAML, "TS, JS]", "TS, 2D]", 1)
}

func TestParseMidGame(t *testing.T) {
	is := is.New(t)
	s, err := Parse([]byte(fixedYAML()), 8)
	is.NoErr(err)
	is.Equal(len(s.Stock()), 23)
	is.Equal(len(s.Waste()), 2)
	is.Equal(s.FoundationHeight(card.Clubs), 3)
	is.Equal(s.Tableau(6).FaceDownCount(), 6)
	is.Equal(s.RecycleCap(), 8)
}

func TestParseRejectsDuplicateCard(t *testing.T) {
	_, err := Parse([]byte(midGameYAML), 8)
	assert.ErrorIs(t, err, game.ErrMalformedSnapshot)
}

func TestParseRejectsBadFoundation(t *testing.T) {
	// A diamond on the clubs foundation.
	bad := strings.Replace(fixedYAML(), "[AC, 2C, 3C]", "[AD, 2C, 3C]", 1)
	bad = strings.Replace(bad, "4D, 5D", "AC, 5D", 1)
	_, err := Parse([]byte(bad), 8)
	assert.ErrorIs(t, err, game.ErrMalformedSnapshot)
}

func TestParseRejectsBadFaceUpRun(t *testing.T) {
	// Same cards, but the 9♥ sits face-up on the same-color 8♥.
	bad := strings.Replace(fixedYAML(),
		"{down: [7H, 8H], up: [9H]}", "{down: [7H], up: [8H, 9H]}", 1)
	_, err := Parse([]byte(bad), 8)
	assert.ErrorIs(t, err, game.ErrMalformedSnapshot)
}

func TestParseRejectsWrongTableauCount(t *testing.T) {
	bad := `
stock: []
tableaus:
  - {up: [KS]}
`
	_, err := Parse([]byte(bad), 8)
	assert.ErrorIs(t, err, game.ErrMalformedSnapshot)
}

func TestParseRejectsGibberish(t *testing.T) {
	_, err := Parse([]byte("{{{"), 8)
	assert.ErrorIs(t, err, game.ErrMalformedSnapshot)
}

func TestRoundTrip(t *testing.T) {
	is := is.New(t)
	s, err := Parse([]byte(fixedYAML()), 8)
	is.NoErr(err)

	data, err := FromState(s).Marshal()
	is.NoErr(err)
	back, err := Parse(data, 8)
	is.NoErr(err)
	is.Equal(Fingerprint(back), Fingerprint(s))
}

func TestFingerprintSensitivity(t *testing.T) {
	is := is.New(t)
	s, err := Parse([]byte(fixedYAML()), 8)
	is.NoErr(err)

	// Flip one tableau card's face flag; the fingerprint must change.
	flipped := strings.Replace(fixedYAML(), "{down: [4H], up: [QH, JS]}", "{down: [4H, QH], up: [JS]}", 1)
	s2, err := Parse([]byte(flipped), 8)
	is.NoErr(err)
	is.True(Fingerprint(s) != Fingerprint(s2))
}
