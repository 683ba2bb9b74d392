package actor

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-mazechase/internal/games/mazechase/maze"
)

func TestNewStrategyKinds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, k := range Kinds {
		s := NewStrategy(k, DefaultTuning(), rng)
		assert.Equal(t, k, s.Kind(), "strategy for %s", k)
	}
}

func TestChaseTargetsPlayer(t *testing.T) {
	g := openGrid(t, 20, 20)
	player := maze.P(123, 77)

	assert.Equal(t, player, ChaseStrategy{}.Target(maze.P(300, 300), player, g))
}

func TestAmbushTargetsAhead(t *testing.T) {
	g := openGrid(t, 20, 20)
	a := &AmbushStrategy{Cells: 4}

	tests := []struct {
		name     string
		self     maze.Cell
		player   maze.Cell
		expected maze.Position
	}{
		{"approaching from the left", maze.C(2, 10), maze.C(10, 10), g.GridToPixel(14, 10)},
		{"approaching from the right", maze.C(15, 10), maze.C(10, 10), g.GridToPixel(6, 10)},
		{"approaching from above", maze.C(10, 2), maze.C(10, 10), g.GridToPixel(10, 14)},
		{"approaching from below", maze.C(10, 17), maze.C(10, 10), g.GridToPixel(10, 6)},
		{"prediction lands in a wall", maze.C(2, 10), maze.C(17, 10), g.GridToPixel(17, 10)},
		{"diagonal tie below predicts down", maze.C(6, 6), maze.C(10, 10), g.GridToPixel(10, 14)},
		{"diagonal tie above predicts up", maze.C(14, 14), maze.C(10, 10), g.GridToPixel(10, 6)},
		{"on top of the player predicts up", maze.C(10, 10), maze.C(10, 10), g.GridToPixel(10, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self := g.GridToPixel(tt.self.X, tt.self.Y)
			player := g.GridToPixel(tt.player.X, tt.player.Y)
			assert.Equal(t, tt.expected, a.Target(self, player, g))
		})
	}
}

func TestAmbushClampsToGrid(t *testing.T) {
	l, err := maze.ParseLayout([]string{
		"#############",
		"T.P.......G.T",
		"#############",
	})
	require.NoError(t, err)
	g := maze.NewGrid(l, 20)
	a := &AmbushStrategy{Cells: 4}

	// predicted column 14 clamps to 12, a walkable tunnel cell
	got := a.Target(g.GridToPixel(2, 1), g.GridToPixel(10, 1), g)
	assert.Equal(t, g.GridToPixel(12, 1), got)
}

func TestPatrolAlternates(t *testing.T) {
	g := openGrid(t, 20, 20)
	p := NewStrategy(Patroller, DefaultTuning(), nil).(*PatrolStrategy)
	player := g.GridToPixel(3, 3)
	corner := g.GridToPixel(18, 18)

	require.True(t, p.Chasing())
	assert.Equal(t, player, p.Target(maze.P(0, 0), player, g))

	p.Advance(6999 * time.Millisecond)
	assert.True(t, p.Chasing())

	p.Advance(time.Millisecond)
	assert.False(t, p.Chasing())
	assert.Equal(t, corner, p.Target(maze.P(0, 0), player, g))

	p.Advance(19 * time.Second)
	assert.False(t, p.Chasing())
	p.Advance(time.Second)
	assert.True(t, p.Chasing())
}

func TestPatrolTimerRunsInsideGhostUpdate(t *testing.T) {
	g := openGrid(t, 20, 20)
	s := NewStrategy(Patroller, DefaultTuning(), nil)
	gh := NewGhost(s, g.GridToPixel(10, 10), 2, 1.2, 8, Animation{FPS: 8})

	gh.Update(7*time.Second, g, g.GridToPixel(3, 3))

	assert.False(t, s.(*PatrolStrategy).Chasing())
	assert.Equal(t, g.GridToPixel(18, 18), gh.Target, "timer advances before targeting")
}

func TestWanderFleesNearbyPlayer(t *testing.T) {
	g := openGrid(t, 20, 20)
	w := NewStrategy(Wanderer, DefaultTuning(), rand.New(rand.NewSource(3)))

	self := g.GridToPixel(10, 10)
	player := g.GridToPixel(12, 10)
	assert.Equal(t, maze.P(170, 210), w.Target(self, player, g))

	// reflection beyond the border is clamped one cell inside
	self = g.GridToPixel(2, 10)
	player = g.GridToPixel(5, 10)
	assert.Equal(t, maze.P(20, 210), w.Target(self, player, g))
}

func TestWanderRoamsWithinRadius(t *testing.T) {
	g := openGrid(t, 40, 40)
	w := NewStrategy(Wanderer, DefaultTuning(), rand.New(rand.NewSource(42)))
	self := g.GridToPixel(20, 20)
	player := g.GridToPixel(1, 1)

	seen := map[maze.Position]bool{}
	for i := 0; i < 50; i++ {
		tgt := w.Target(self, player, g)
		d := math.Hypot(tgt.X-self.X, tgt.Y-self.Y)
		assert.LessOrEqual(t, d, 5.0*20+1e-9)
		seen[tgt] = true
	}
	assert.Greater(t, len(seen), 1, "target is re-rolled every call")
}

func TestWanderIsDeterministicPerSeed(t *testing.T) {
	g := openGrid(t, 40, 40)
	a := NewStrategy(Wanderer, DefaultTuning(), rand.New(rand.NewSource(7)))
	b := NewStrategy(Wanderer, DefaultTuning(), rand.New(rand.NewSource(7)))
	self := g.GridToPixel(20, 20)
	player := g.GridToPixel(1, 1)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Target(self, player, g), b.Target(self, player, g))
	}
}
