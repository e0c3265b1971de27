package component

const maxPlannedSteps = 256

// Mover holds queued step deltas; the movement system applies one per tick.
type Mover struct {
	StepDistance float64
	steps        [][2]float64
}

// EnqueueDelta queues a raw (dx, dz) step. Zero deltas are dropped.
func (m *Mover) EnqueueDelta(dx, dz float64) {
	if dx == 0 && dz == 0 {
		return
	}
	m.steps = append(m.steps, [2]float64{dx, dz})
}

// EnqueueToward queues steps of StepDistance from (fx,fz) until within
// stop of (tx,tz). At most maxPlannedSteps are queued.
func (m *Mover) EnqueueToward(fx, fz, tx, tz, stop float64) {
	step := m.StepDistance
	if step <= 0 {
		step = 1
	}
	for i := 0; i < maxPlannedSteps; i++ {
		d := HorizontalDistance(fx, fz, tx, tz)
		if d-stop <= 1e-9 {
			return
		}
		move := step
		if d-stop < move {
			move = d - stop
		}
		dx := (tx - fx) / d * move
		dz := (tz - fz) / d * move
		m.EnqueueDelta(dx, dz)
		fx += dx
		fz += dz
	}
}

// Next pops the next step.
func (m *Mover) Next() (dx, dz float64, ok bool) {
	if len(m.steps) == 0 {
		return 0, 0, false
	}
	s := m.steps[0]
	m.steps = m.steps[1:]
	return s[0], s[1], true
}

func (m *Mover) Pending() int { return len(m.steps) }
func (m *Mover) Clear()       { m.steps = m.steps[:0] }
