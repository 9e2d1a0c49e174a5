// SPDX-License-Identifier: EPL-2.0

package utils

// CatmullRom evaluates the Catmull-Rom spline through p1 and p2 at t in
// [0,1], using p0 and p3 as the outer control points. t=0 yields p1 and t=1
// yields p2.
func CatmullRom(p0, p1, p2, p3, t float32) float32 {
	a := 1.5*(p1-p2) + 0.5*(p3-p0)
	b := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	c := 0.5 * (p2 - p0)

	return ((a*t+b)*t+c)*t + p1
}
