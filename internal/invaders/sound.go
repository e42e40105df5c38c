package invaders

// Sound identifies a sound effect the simulation asks to play.
type Sound int

const (
	SoundShipFire   Sound = iota // player bolt launched
	SoundShipDeath               // ship destroyed
	SoundAlienFire               // enemy bolt launched
	SoundAlienDeath              // enemy destroyed
)

// String returns the effect's name.
func (s Sound) String() string {
	switch s {
	case SoundShipFire:
		return "ship_fire"
	case SoundShipDeath:
		return "ship_death"
	case SoundAlienFire:
		return "alien_fire"
	case SoundAlienDeath:
		return "alien_death"
	default:
		return "unknown"
	}
}

// SoundPlayer plays effects without blocking the caller.
type SoundPlayer interface {
	Play(s Sound)
}

// NopSound discards every effect.
type NopSound struct{}

// Play implements SoundPlayer.
func (NopSound) Play(Sound) {}
