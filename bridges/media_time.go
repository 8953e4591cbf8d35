package bridges

import "github.com/reusee/taiblock/sandbox"

type MediaTime struct {
	player MediaPlayer
	diag   Diagnostics
}

var _ sandbox.MediaTime = new(MediaTime)

func NewMediaTime(player MediaPlayer, diag Diagnostics) *MediaTime {
	if diag == nil {
		diag = NopDiagnostics
	}
	return &MediaTime{
		player: player,
		diag:   diag,
	}
}

func (m *MediaTime) Get() float64 {
	if m.player == nil {
		m.diag.LookupMiss(Miss{
			Kind: MissPlayer,
		})
		return 0
	}
	return m.player.CurrentTime()
}

func (m *MediaTime) Set(t float64) {
	if m.player == nil {
		m.diag.LookupMiss(Miss{
			Kind: MissPlayer,
		})
		return
	}
	m.player.SeekTo(t)
}
