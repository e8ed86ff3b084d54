package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Material is the contact response shared by every pair.
type Material struct {
	Friction            float32
	MaxRecoveryVelocity float32
	SpringFrequency     float32
	SpringDampingRatio  float32
}

// contact is one velocity constraint. b is nil against statics.
type contact struct {
	a, b     *Body
	normal   rl.Vector3
	depth    float32
	rA, rB   rl.Vector3
	tangents [2]rl.Vector3

	invMassA, invMassB float32
	normalMass         float32
	tangentMass        [2]float32
	bias               float32

	normalImpulse  float32
	tangentImpulse [2]float32
}

func inverseMass(b *Body) float32 {
	if b == nil || !b.Awake {
		return 0
	}
	return b.LocalInertia.InverseMass
}

func angularTerm(b *Body, r, axis rl.Vector3) float32 {
	if b == nil || !b.Awake {
		return 0
	}
	rn := rl.Vector3CrossProduct(r, axis)
	return rl.Vector3DotProduct(rn, b.worldInverseInertia(rn))
}

func effectiveMass(c *contact, axis rl.Vector3) float32 {
	k := c.invMassA + c.invMassB + angularTerm(c.a, c.rA, axis) + angularTerm(c.b, c.rB, axis)
	if k <= 0 {
		return 0
	}
	return 1 / k
}

func (c *contact) prepare(h float32, mat Material) {
	c.invMassA = inverseMass(c.a)
	c.invMassB = inverseMass(c.b)
	c.normalMass = effectiveMass(c, c.normal)

	t1 := perpendicular(c.normal)
	vt := rl.Vector3Subtract(c.relativeVelocity(), rl.Vector3Scale(c.normal, rl.Vector3DotProduct(c.relativeVelocity(), c.normal)))
	if l := rl.Vector3Length(vt); l > 0.0001 {
		t1 = rl.Vector3Scale(vt, 1/l)
	}
	c.tangents[0] = t1
	c.tangents[1] = rl.Vector3CrossProduct(c.normal, t1)
	c.tangentMass[0] = effectiveMass(c, c.tangents[0])
	c.tangentMass[1] = effectiveMass(c, c.tangents[1])

	if c.depth < 0 {
		// Speculative: the pair may close the gap this step but no further.
		c.bias = c.depth / h
		return
	}
	omega := 2 * math.Pi * float64(mat.SpringFrequency)
	hw := float64(h) * omega
	rate := float32(hw / (2*float64(mat.SpringDampingRatio) + hw))
	c.bias = c.depth * rate / h
	if c.bias > mat.MaxRecoveryVelocity {
		c.bias = mat.MaxRecoveryVelocity
	}
}

func (c *contact) relativeVelocity() rl.Vector3 {
	var v rl.Vector3
	if c.a != nil {
		v = rl.Vector3Add(c.a.Velocity.Linear, rl.Vector3CrossProduct(c.a.Velocity.Angular, c.rA))
	}
	if c.b != nil {
		vb := rl.Vector3Add(c.b.Velocity.Linear, rl.Vector3CrossProduct(c.b.Velocity.Angular, c.rB))
		v = rl.Vector3Subtract(v, vb)
	}
	return v
}

func (c *contact) applyImpulse(p rl.Vector3) {
	if c.invMassA > 0 {
		c.a.Velocity.Linear = rl.Vector3Add(c.a.Velocity.Linear, rl.Vector3Scale(p, c.invMassA))
		c.a.Velocity.Angular = rl.Vector3Add(c.a.Velocity.Angular, c.a.worldInverseInertia(rl.Vector3CrossProduct(c.rA, p)))
	}
	if c.invMassB > 0 {
		c.b.Velocity.Linear = rl.Vector3Subtract(c.b.Velocity.Linear, rl.Vector3Scale(p, c.invMassB))
		c.b.Velocity.Angular = rl.Vector3Subtract(c.b.Velocity.Angular, c.b.worldInverseInertia(rl.Vector3CrossProduct(c.rB, p)))
	}
}

func (c *contact) solve(friction float32) {
	// Friction first so the normal constraint has the last word.
	limit := friction * c.normalImpulse
	for i := 0; i < 2; i++ {
		if c.tangentMass[i] == 0 {
			continue
		}
		vt := rl.Vector3DotProduct(c.relativeVelocity(), c.tangents[i])
		lambda := -vt * c.tangentMass[i]
		old := c.tangentImpulse[i]
		c.tangentImpulse[i] = clampf(old+lambda, -limit, limit)
		lambda = c.tangentImpulse[i] - old
		c.applyImpulse(rl.Vector3Scale(c.tangents[i], lambda))
	}

	if c.normalMass == 0 {
		return
	}
	vn := rl.Vector3DotProduct(c.relativeVelocity(), c.normal)
	lambda := (c.bias - vn) * c.normalMass
	old := c.normalImpulse
	c.normalImpulse = max(old+lambda, 0)
	lambda = c.normalImpulse - old
	c.applyImpulse(rl.Vector3Scale(c.normal, lambda))
}

func perpendicular(n rl.Vector3) rl.Vector3 {
	var t rl.Vector3
	if absf(n.X) < 0.57 {
		t = rl.Vector3CrossProduct(n, rl.Vector3{X: 1})
	} else {
		t = rl.Vector3CrossProduct(n, rl.Vector3{Y: 1})
	}
	return rl.Vector3Normalize(t)
}

// integrateOrientation advances q by angular velocity w over h.
func integrateOrientation(q rl.Quaternion, w rl.Vector3, h float32) rl.Quaternion {
	half := h * 0.5
	dq := rl.Quaternion{
		X: w.X*q.W + w.Y*q.Z - w.Z*q.Y,
		Y: w.Y*q.W + w.Z*q.X - w.X*q.Z,
		Z: w.Z*q.W + w.X*q.Y - w.Y*q.X,
		W: -w.X*q.X - w.Y*q.Y - w.Z*q.Z,
	}
	q.X += dq.X * half
	q.Y += dq.Y * half
	q.Z += dq.Z * half
	q.W += dq.W * half
	return rl.QuaternionNormalize(q)
}
