//go:build !windows

package menu

// DefaultRegistrar returns the platform registration backend.
func DefaultRegistrar() Registrar {
	return &ScriptsRegistrar{}
}
