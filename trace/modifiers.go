package trace

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/tensorcity/tensorcity/vec"
)

// perturber applies the configured directional modifiers to a base
// step direction. Effects compose by angle addition; the result is
// renormalized to the incoming step length, so modifiers never change
// the streamline's point spacing.
type perturber struct {
	mods  Modifiers
	angle opensimplex.Noise
	elev  opensimplex.Noise
	mask  opensimplex.Noise
}

func newPerturber(m Modifiers) *perturber {
	if m.NoiseOctaves < 1 {
		m.NoiseOctaves = 1
	}
	if m.NoiseSize <= 0 {
		m.NoiseSize = 1
	}
	if m.TerrainSize <= 0 {
		m.TerrainSize = 1
	}
	if m.BiasMaskSize <= 0 {
		m.BiasMaskSize = 1
	}
	if m.CenterOuter <= m.CenterInner {
		m.CenterOuter = m.CenterInner + 1
	}

	return &perturber{
		mods:  m,
		angle: opensimplex.New(m.Seed),
		elev:  opensimplex.New(m.Seed + 1),
		mask:  opensimplex.NewNormalized(m.Seed + 2),
	}
}

// enabled reports whether any effect is active.
func (pb *perturber) enabled() bool {
	m := pb.mods

	return m.NoiseEnabled || m.TerrainEnabled || m.BiasEnabled
}

// apply perturbs dir at position p and returns a vector of the same
// length. A zero dir passes through untouched.
func (pb *perturber) apply(p, dir vec.Vector) vec.Vector {
	if !pb.enabled() {
		return dir
	}
	length := dir.Length()
	if length < 1e-12 {
		return dir
	}

	m := pb.mods
	offset := 0.0

	if m.NoiseEnabled {
		offset += m.NoiseStrength * pb.centerScale(p) * pb.octaveNoise(p)
	}
	if m.TerrainEnabled {
		offset += pb.contourNudge(p, dir)
	}
	if m.BiasEnabled {
		// Remaining turn toward the bias heading, applied unevenly
		// across the plane via the mask noise.
		target := vec.V(math.Cos(m.BiasAngle), math.Sin(m.BiasAngle))
		delta := dir.TurnAngle(target)
		if delta > math.Pi/2 {
			delta -= math.Pi // eigen directions are headless: lean the short way
		} else if delta < -math.Pi/2 {
			delta += math.Pi
		}
		w := pb.mask.Eval2(p.X/m.BiasMaskSize, p.Y/m.BiasMaskSize)
		offset += m.BiasStrength * w * delta
	}

	return dir.Rotate(offset).Normalize().Scale(length)
}

// octaveNoise layers NoiseOctaves of coherent noise at doubling
// frequency and halving amplitude, normalized to [-1,1].
func (pb *perturber) octaveNoise(p vec.Vector) float64 {
	m := pb.mods
	sum, amp, freq, norm := 0.0, 1.0, 1.0, 0.0
	for o := 0; o < m.NoiseOctaves; o++ {
		sum += amp * pb.angle.Eval2(p.X*freq/m.NoiseSize, p.Y*freq/m.NoiseSize)
		norm += amp
		amp /= 2
		freq *= 2
	}

	return sum / norm
}

// centerScale interpolates the perturbation strength linearly between
// CenterGain (inside CenterInner) and EdgeGain (beyond CenterOuter).
func (pb *perturber) centerScale(p vec.Vector) float64 {
	m := pb.mods
	if !m.CenterEnabled {
		return 1
	}
	d := p.Distance(m.Center)
	t := (d - m.CenterInner) / (m.CenterOuter - m.CenterInner)
	t = math.Max(0, math.Min(1, t))

	return m.CenterGain + (m.EdgeGain-m.CenterGain)*t
}

// contourNudge treats the secondary noise field as elevation; where
// its gradient is steep the direction is pulled toward the local
// contour (perpendicular to the gradient), so roads traverse slopes
// instead of climbing them.
func (pb *perturber) contourNudge(p vec.Vector, dir vec.Vector) float64 {
	m := pb.mods
	const h = 1.0 // finite-difference half-step, world units

	ex := pb.elev.Eval2((p.X+h)/m.TerrainSize, p.Y/m.TerrainSize) -
		pb.elev.Eval2((p.X-h)/m.TerrainSize, p.Y/m.TerrainSize)
	ey := pb.elev.Eval2(p.X/m.TerrainSize, (p.Y+h)/m.TerrainSize) -
		pb.elev.Eval2(p.X/m.TerrainSize, (p.Y-h)/m.TerrainSize)
	grad := vec.V(ex/(2*h), ey/(2*h)).Scale(m.TerrainSize)

	mag := grad.Length()
	if mag <= m.TerrainThreshold {
		return 0
	}

	contour := grad.Perp()
	if contour.Dot(dir) < 0 {
		contour = contour.Neg()
	}
	steep := math.Min(1, (mag-m.TerrainThreshold)/m.TerrainThreshold)

	return m.TerrainStrength * steep * dir.TurnAngle(contour)
}
