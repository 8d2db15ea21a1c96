package pong

// Side identifies one end of the table.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// Label is the short tag used in log lines.
func (s Side) Label() string {
	switch s {
	case SidePlayer:
		return "P"
	case SideOpponent:
		return "O"
	default:
		return "--"
	}
}

// Paddle is one bat. X is fixed for the lifetime of the game; only Y and Score
// change.
type Paddle struct {
	X, Y   float64
	Width  float64
	Height float64
	Score  uint
}

// CenterY is the vertical centre of the paddle.
func (p Paddle) CenterY() float64 {
	return p.Y + p.Height/2
}

// Rect returns the paddle's collision box.
func (p Paddle) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Ball is the single ball in play.
type Ball struct {
	X, Y      float64
	Radius    float64
	VelocityX float64
	VelocityY float64
	Speed     float64
}

func newPaddle(side Side, p Params) Paddle {
	x := 0.0
	if side == SideOpponent {
		x = p.Width - p.PaddleWidth
	}
	return Paddle{
		X:      x,
		Y:      p.Height/2 - p.PaddleHeight/2,
		Width:  p.PaddleWidth,
		Height: p.PaddleHeight,
	}
}

func newBall(p Params) Ball {
	return Ball{
		X:         p.Width / 2,
		Y:         p.Height / 2,
		Radius:    p.BallRadius,
		VelocityX: p.InitialVelocityX,
		VelocityY: p.InitialVelocityY,
		Speed:     p.BaseSpeed,
	}
}

// reset re-serves the ball from the centre towards the side that just
// conceded. VelocityY is deliberately left as it was.
func (b *Ball) reset(p Params) {
	b.X = p.Width / 2
	b.Y = p.Height / 2
	b.VelocityX = -b.VelocityX
	b.Speed = p.BaseSpeed
}
