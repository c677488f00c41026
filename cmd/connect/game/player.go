package game

type playerSet struct {
	One Player
	Two Player
}

// Players represents the pair of players used for self-play.
var Players = playerSet{
	One: NewPlayer("P1", 'X'),
	Two: NewPlayer("P2", 'O'),
}

// =============================================================================

// Disc represents the marker a player drops into the board.
type Disc struct {
	symbol rune
}

// NewDisc constructs a disc for the specified symbol.
func NewDisc(symbol rune) Disc {
	return Disc{symbol}
}

// Symbol returns the character that identifies the disc.
func (d Disc) Symbol() rune {
	return d.symbol
}

// IsZero checks of the disc is set to its zero value.
func (d Disc) IsZero() bool {
	return d.symbol == 0
}

// String returns the symbol of the disc.
func (d Disc) String() string {
	return string(d.symbol)
}

// Equal provides support for the go-cmp package and testing.
func (d Disc) Equal(d2 Disc) bool {
	return d.symbol == d2.symbol
}

// =============================================================================

// Player represents a player in the system.
type Player struct {
	name string
	disc Disc
}

// NewPlayer constructs a player that plays with the specified symbol.
func NewPlayer(name string, symbol rune) Player {
	return Player{
		name: name,
		disc: NewDisc(symbol),
	}
}

// Name returns the name of the player.
func (p Player) Name() string {
	return p.name
}

// Disc returns the disc the player drops.
func (p Player) Disc() Disc {
	return p.disc
}

// IsZero checks of the player is set to its zero value.
func (p Player) IsZero() bool {
	return p.name == "" && p.disc.IsZero()
}

// String returns the name of the player.
func (p Player) String() string {
	return p.name
}

// Equal provides support for the go-cmp package and testing.
func (p Player) Equal(p2 Player) bool {
	return p.name == p2.name && p.disc.Equal(p2.disc)
}
