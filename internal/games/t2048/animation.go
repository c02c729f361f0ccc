package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// TileAnimation represents an animated tile.
type TileAnimation struct {
	ID       int
	Value    int     // Value shown while moving (pre-merge)
	FromX    int     // Start position X (in cells)
	FromY    int     // Start position Y (in cells)
	ToX      int     // End position X (in cells)
	ToY      int     // End position Y (in cells)
	Progress float64 // 0.0 → 1.0
	Absorbed bool    // Disappears into a survivor at the end of the slide
}

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// startSlideAnimation animates every tile from its place in before to its
// place in moved. Absorbed tiles travel to their survivor.
func (g *Game) startSlideAnimation(before, moved board.Snapshot) {
	g.moveSnap = moved
	g.animations = g.animations[:0]

	for _, t := range moved.Elements {
		from, ok := before.Tile(t.ID)
		if !ok {
			from = t
		}
		g.animations = append(g.animations, TileAnimation{
			ID:    t.ID,
			Value: t.Val,
			FromX: from.X,
			FromY: from.Y,
			ToX:   t.X,
			ToY:   t.Y,
		})
	}
	for _, m := range moved.Merges {
		g.animations = append(g.animations, TileAnimation{
			ID:       m.AbsorbedID,
			Value:    m.Value,
			FromX:    m.From.X,
			FromY:    m.From.Y,
			ToX:      m.To.X,
			ToY:      m.To.Y,
			Absorbed: true,
		})
	}

	g.animating = true
	g.animationPhase = PhaseSlide
	g.animationTicks = 0
}

// startPopAnimation animates a freshly spawned tile.
func (g *Game) startPopAnimation(t *board.Tile) {
	g.animations = []TileAnimation{{
		ID:    t.ID,
		Value: t.Val,
		FromX: t.X,
		FromY: t.Y,
		ToX:   t.X,
		ToY:   t.Y,
	}}
	g.animating = true
	g.animationPhase = PhasePop
	g.animationTicks = 0
}

// updateAnimation advances the animation state.
// Returns true if animation is still in progress.
func (g *Game) updateAnimation() bool {
	if !g.animating {
		return false
	}

	g.animationTicks++

	var duration int
	switch g.animationPhase {
	case PhaseSlide:
		duration = g.anim.SlideTicks
	case PhasePop:
		duration = g.anim.PopTicks
	default:
		g.clearAnimation()
		return false
	}

	progress := 1.0
	if duration > 0 {
		progress = core.ClampF(float64(g.animationTicks)/float64(duration), 0, 1)
	}
	for i := range g.animations {
		g.animations[i].Progress = progress
	}

	if g.animationTicks >= duration {
		g.finishAnimation()
		return g.animating
	}
	return true
}

// finishAnimation completes the current animation phase.
func (g *Game) finishAnimation() {
	if g.animationPhase == PhaseSlide {
		g.settle()
		if g.pendingSpawn != nil {
			spawned := g.pendingSpawn
			g.pendingSpawn = nil
			g.startPopAnimation(spawned)
			return
		}
	}
	g.clearAnimation()
}

// finishAll skips to the end of every pending animation phase.
func (g *Game) finishAll() {
	for g.animating {
		g.finishAnimation()
	}
}

func (g *Game) clearAnimation() {
	g.animating = false
	g.animationPhase = PhaseNone
	g.animationTicks = 0
	g.animations = nil
	g.pendingSpawn = nil
}

// Animating reports whether a slide or pop is in progress.
func (g *Game) Animating() bool {
	return g.animating
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition calculates the current position during animation.
func (a *TileAnimation) interpolatePosition() (x, y float64) {
	t := easeOutQuad(a.Progress)
	x = core.Lerp(float64(a.FromX), float64(a.ToX), t)
	y = core.Lerp(float64(a.FromY), float64(a.ToY), t)
	return x, y
}
