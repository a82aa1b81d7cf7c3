// Package platform provides the few filesystem operations whose
// behavior differs across operating systems, so the installer can stay
// portable without scattering GOOS checks.
package platform
