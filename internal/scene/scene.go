// Package scene loads batch render descriptions for tunnelshot.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tunnelrunner/internal/tunnel"
)

const (
	DefaultWidth       = 640
	DefaultHeight      = 480
	DefaultTextureSize = 256
	DefaultScale       = 1
)

// File is the top-level document of a scene file. Zero fields take the
// defaults above. TextureFile, when set, replaces the generated pattern;
// Load resolves it against the scene file's directory.
type File struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Texture     string  `yaml:"texture"`
	TextureFile string  `yaml:"texture_file"`
	TextureSize int     `yaml:"texture_size"`
	Ratio       float64 `yaml:"ratio"`
	Scale       int     `yaml:"scale"`
	Scenes      []Scene `yaml:"scenes"`
}

// Scene is one frame to render.
type Scene struct {
	Name        string `yaml:"name"`
	Rotation    int32  `yaml:"rotation"`
	Translation int32  `yaml:"translation"`
	// Look is the look shift in pixels; nil centres the view.
	Look   *Look  `yaml:"look"`
	Color  string `yaml:"color"`
	Mode   string `yaml:"mode"`
	Format string `yaml:"format"`
}

type Look struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

// Load reads and validates a scene file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	if f.TextureFile != "" && !filepath.IsAbs(f.TextureFile) {
		f.TextureFile = filepath.Join(filepath.Dir(path), f.TextureFile)
	}
	return f, nil
}

// Parse decodes a scene document, fills defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) applyDefaults() {
	if f.Width == 0 {
		f.Width = DefaultWidth
	}
	if f.Height == 0 {
		f.Height = DefaultHeight
	}
	if f.TextureSize == 0 {
		f.TextureSize = DefaultTextureSize
	}
	if f.Ratio == 0 {
		f.Ratio = tunnel.DefaultRatio
	}
	if f.Scale == 0 {
		f.Scale = DefaultScale
	}
}

// Validate reports every problem in the file at once.
func (f *File) Validate() error {
	var errs []error
	if f.Width < 0 || f.Height < 0 {
		errs = append(errs, fmt.Errorf("size %dx%d: %w", f.Width, f.Height, tunnel.ErrInvalidSize))
	}
	if f.TextureSize < 0 {
		errs = append(errs, fmt.Errorf("texture_size %d: %w", f.TextureSize, tunnel.ErrInvalidSize))
	}
	if f.Ratio < 0 {
		errs = append(errs, fmt.Errorf("ratio %v must be positive", f.Ratio))
	}
	if f.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale %d must be at least 1", f.Scale))
	}
	if _, err := tunnel.ParsePattern(f.Texture); err != nil {
		errs = append(errs, err)
	}
	if len(f.Scenes) == 0 {
		errs = append(errs, errors.New("no scenes"))
	}
	seen := make(map[string]bool, len(f.Scenes))
	for i, s := range f.Scenes {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("scene %d: missing name", i))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Errorf("scene %d: duplicate name %q", i, s.Name))
		} else if strings.ContainsAny(s.Name, `/\`) {
			errs = append(errs, fmt.Errorf("scene %d: name %q contains a path separator", i, s.Name))
		}
		seen[s.Name] = true
		if _, err := s.View(f.Width, f.Height); err != nil {
			errs = append(errs, fmt.Errorf("scene %q: %w", s.Name, err))
		}
		if _, err := s.OutputFormat(); err != nil {
			errs = append(errs, fmt.Errorf("scene %q: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

// View builds the camera state for a frame of the given size.
func (s Scene) View(width, height int) (tunnel.View, error) {
	c := tunnel.DefaultColor
	if s.Color != "" {
		var err error
		if c, err = tunnel.ParseColor(s.Color); err != nil {
			return tunnel.View{}, err
		}
	}
	v := tunnel.NewView(width, height, c)
	v.Rotation = s.Rotation
	v.Translation = s.Translation
	if s.Look != nil {
		v.LookShiftX, v.LookShiftY = s.Look.X, s.Look.Y
	}
	switch strings.ToLower(s.Mode) {
	case "", "tunnel":
		v.Mode = tunnel.ModeTunnel
	case "flat":
		v.Mode = tunnel.ModeFlat
	default:
		return tunnel.View{}, fmt.Errorf("unknown mode %q", s.Mode)
	}
	return v, nil
}

// OutputFormat is the image extension for the scene, webp by default.
func (s Scene) OutputFormat() (string, error) {
	switch f := strings.ToLower(s.Format); f {
	case "":
		return "webp", nil
	case "webp", "png":
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q", s.Format)
	}
}
