package headless

import (
	"github.com/reusee/taiblock/bridges"
	"github.com/reusee/taiblock/reactive"
)

// Player is a media player whose time is a reactive signal.
type Player struct {
	time *reactive.Signal[float64]

	Seeks []float64
}

var _ bridges.MediaPlayer = new(Player)

func NewPlayer(rt *reactive.Runtime) *Player {
	return &Player{
		time: reactive.NewSignal(rt, 0.0),
	}
}

func (p *Player) CurrentTime() float64 {
	return p.time.Read()
}

func (p *Player) SeekTo(t float64) {
	p.Seeks = append(p.Seeks, t)
	p.time.Write(t)
}

// Advance moves playback to t as the player clock would.
func (p *Player) Advance(t float64) {
	p.time.Write(t)
}
