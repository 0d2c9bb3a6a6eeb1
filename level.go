package flatpaint

// Character is the playable character of a level.
type Character int

const (
	CharacterWheelchairGuy Character = iota + 1
	CharacterSegwayGuy
	CharacterIrresponsibleDad
	CharacterEffectiveShopper
	CharacterMopedCouple
	CharacterLawnmowerMan
	CharacterExplorerGuy
	CharacterSantaClaus
	CharacterPogostickMan
	CharacterIrresponsibleMom
	CharacterHelicopterMan
)

// Background is the backdrop of a level.
type Background int

const (
	BackgroundColor Background = iota
	BackgroundGreenHills
	BackgroundCity
)

// LevelVersion is the level format version written by WriteXML.
const LevelVersion = "1.97"

// Info holds the level settings.
type Info struct {
	Version           string
	CharacterPosition Point
	Character         Character
	ForceCharacter    bool
	HideVehicle       bool
	BackgroundType    Background
	BackgroundColor   Color
}

// DefaultInfo returns the settings of a new level.
func DefaultInfo() Info {
	return Info{
		Version:           LevelVersion,
		CharacterPosition: Point{X: 20000, Y: 10000},
		Character:         CharacterIrresponsibleDad,
		BackgroundType:    BackgroundColor,
		BackgroundColor:   White,
	}
}

// Level collects shapes and groups in emission order. It implements Sink.
type Level struct {
	Info   Info
	Shapes []Shape
	Groups []Group
}

// NewLevel returns an empty level with DefaultInfo.
func NewLevel() *Level {
	return &Level{Info: DefaultInfo()}
}

// AddShape appends s.
func (l *Level) AddShape(s Shape) {
	l.Shapes = append(l.Shapes, s)
}

// AddGroup appends g.
func (l *Level) AddGroup(g Group) {
	l.Groups = append(l.Groups, g)
}

// Layer returns a root scope drawing into the level.
func (l *Level) Layer(opts ...LayerOption) *Layer {
	return NewLayer(l, opts...)
}
