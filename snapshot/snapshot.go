// Package snapshot converts external board descriptions into root game
// states and back. A snapshot lists, for each of the thirteen piles, the
// ordered cards with their face flags; how those bytes were obtained
// (memory scraping, manual entry) is the upstream collaborator's problem.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/klondike/card"
	"github.com/domino14/klondike/game"
)

// TableauPiles lists a tableau's face-down prefix and face-up suffix,
// both bottom to top. The split encodes the per-card face flags; a
// face-up card under a face-down one is not representable, matching the
// game's invariant.
type TableauPiles struct {
	Down []string `yaml:"down,omitempty" json:"down,omitempty"`
	Up   []string `yaml:"up,omitempty" json:"up,omitempty"`
}

// Snapshot is the serialized form of a complete board. Stock and waste
// are bottom to top; foundations are four ascending same-suit lists in
// clubs, diamonds, hearts, spades order.
type Snapshot struct {
	Stock       []string       `yaml:"stock,omitempty" json:"stock,omitempty"`
	Waste       []string       `yaml:"waste,omitempty" json:"waste,omitempty"`
	Foundations [][]string     `yaml:"foundations,omitempty" json:"foundations,omitempty"`
	Tableaus    []TableauPiles `yaml:"tableaus" json:"tableaus"`
}

func parseAll(names []string, where string) ([]card.Card, error) {
	cards := make([]card.Card, 0, len(names))
	for _, n := range names {
		c, err := card.Parse(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", game.ErrMalformedSnapshot, where, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// ToState validates the snapshot and builds the root state. recycleCap
// bounds stock recycles for searches started from this state.
func (sn *Snapshot) ToState(recycleCap int) (*game.State, error) {
	if len(sn.Tableaus) != game.NumTableaus {
		return nil, fmt.Errorf("%w: need %d tableaus, got %d",
			game.ErrMalformedSnapshot, game.NumTableaus, len(sn.Tableaus))
	}
	if len(sn.Foundations) > game.NumFoundations {
		return nil, fmt.Errorf("%w: too many foundations", game.ErrMalformedSnapshot)
	}

	stock, err := parseAll(sn.Stock, "stock")
	if err != nil {
		return nil, err
	}
	waste, err := parseAll(sn.Waste, "waste")
	if err != nil {
		return nil, err
	}

	var foundations [game.NumFoundations]uint8
	for i, pile := range sn.Foundations {
		cards, err := parseAll(pile, "foundation")
		if err != nil {
			return nil, err
		}
		for j, c := range cards {
			if c.Suit() != card.Suit(i) || int(c.Rank()) != j+1 {
				return nil, fmt.Errorf("%w: foundation %d is not %v built Ace up",
					game.ErrMalformedSnapshot, i+1, card.Suit(i))
			}
		}
		foundations[i] = uint8(len(cards))
	}

	var tableaus [game.NumTableaus]game.Tableau
	for i, tp := range sn.Tableaus {
		down, err := parseAll(tp.Down, fmt.Sprintf("tableau %d", i+1))
		if err != nil {
			return nil, err
		}
		up, err := parseAll(tp.Up, fmt.Sprintf("tableau %d", i+1))
		if err != nil {
			return nil, err
		}
		tableaus[i] = game.NewTableau(down, up)
	}

	return game.NewState(stock, waste, foundations, tableaus, recycleCap)
}

// Parse decodes a YAML (or JSON; YAML is a superset here) snapshot and
// builds the root state.
func Parse(data []byte, recycleCap int) (*game.State, error) {
	var sn Snapshot
	if err := yaml.Unmarshal(data, &sn); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrMalformedSnapshot, err)
	}
	return sn.ToState(recycleCap)
}

// FromFile reads a snapshot file and builds the root state.
func FromFile(path string, recycleCap int) (*game.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	st, err := Parse(data, recycleCap)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).
		Uint64("fingerprint", Fingerprint(st)).
		Msg("loaded snapshot")
	return st, nil
}

// FromState captures a state back into its serialized form, for saving
// deals from the shell.
func FromState(s *game.State) *Snapshot {
	names := func(cards []card.Card) []string {
		out := make([]string, len(cards))
		for i, c := range cards {
			out[i] = c.String()
		}
		return out
	}

	sn := &Snapshot{
		Stock: names(s.Stock()),
		Waste: names(s.Waste()),
	}
	for suit := 0; suit < game.NumFoundations; suit++ {
		pile := []string{}
		for r := 1; r <= s.FoundationHeight(card.Suit(suit)); r++ {
			pile = append(pile, card.New(card.Rank(r), card.Suit(suit)).String())
		}
		sn.Foundations = append(sn.Foundations, pile)
	}
	for i := 0; i < game.NumTableaus; i++ {
		t := s.Tableau(i)
		sn.Tableaus = append(sn.Tableaus, TableauPiles{
			Down: names(t.Cards()[:t.FaceDownCount()]),
			Up:   names(t.FaceUp()),
		})
	}
	return sn
}

// Marshal renders the snapshot as YAML.
func (sn *Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(sn)
}

// Fingerprint returns a 64-bit digest of a state's piles and face flags,
// used to identify deals in logs and batch results.
func Fingerprint(s *game.State) uint64 {
	h := xxhash.New()
	var buf [1]byte
	writeByte := func(b byte) {
		buf[0] = b
		h.Write(buf[:])
	}
	writeByte(0xF0)
	for _, c := range s.Stock() {
		writeByte(byte(c))
	}
	writeByte(0xF1)
	for _, c := range s.Waste() {
		writeByte(byte(c))
	}
	writeByte(0xF2)
	for suit := 0; suit < game.NumFoundations; suit++ {
		writeByte(byte(s.FoundationHeight(card.Suit(suit))))
	}
	for i := 0; i < game.NumTableaus; i++ {
		t := s.Tableau(i)
		writeByte(0xF3)
		writeByte(byte(t.FaceDownCount()))
		for _, c := range t.Cards() {
			writeByte(byte(c))
		}
	}
	var cyc [8]byte
	binary.BigEndian.PutUint64(cyc[:], uint64(s.Cycles()))
	h.Write(cyc[:])
	return h.Sum64()
}
