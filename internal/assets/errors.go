package assets

import "fmt"

// Kind classifies what failed to load.
type Kind int

const (
	KindFile Kind = iota
	KindModel
	KindMaterial
	KindTexture
	KindSkybox
	KindShader
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindModel:
		return "model"
	case KindMaterial:
		return "material"
	case KindTexture:
		return "texture"
	case KindSkybox:
		return "skybox"
	case KindShader:
		return "shader"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// LoadError reports a resource that could not be loaded.
type LoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
