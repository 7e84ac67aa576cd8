package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/stressmeter/stress"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type StressMeterSpec struct {
	Name         string            `yaml:"name"`
	Variant      string            `yaml:"variant"`
	Transform    TransformSpec     `yaml:"transform"`
	Size         SizeSpec          `yaml:"size"`
	Max          float64           `yaml:"max"`
	TickInterval float64           `yaml:"tick_interval"`
	FillColor    *YAMLColor        `yaml:"fill_color"`
	BorderColor  *YAMLColor        `yaml:"border_color"`
	BorderWidth  float64           `yaml:"border_width"`
	RenderLayer  RenderLayerSpec   `yaml:"render_layer"`
	Cue          string            `yaml:"cue"`
	Audio        []AudioSpec       `yaml:"audio"`
	Flash        *FlashSpec        `yaml:"flash"`
	Rules        string            `yaml:"rules"`
	Keys         map[string]string `yaml:"keys"`
}

func LoadStressMeterSpec(filename string) (*StressMeterSpec, error) {
	if filename == "" {
		filename = "stress_meter.yaml"
	}
	spec, err := LoadSpec[StressMeterSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config converts the prefab into widget settings. Missing colors stay nil so
// the widget defaults apply.
func (s *StressMeterSpec) Config() (stress.Config, error) {
	variant, err := stress.ParseVariant(s.Variant)
	if err != nil {
		return stress.Config{}, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}

	cfg := stress.Config{
		X:            s.Transform.X,
		Y:            s.Transform.Y,
		Width:        s.Size.Width,
		Height:       s.Size.Height,
		Max:          s.Max,
		Variant:      variant,
		BorderWidth:  s.BorderWidth,
		TickInterval: time.Duration(s.TickInterval * float64(time.Second)),
		CueName:      s.Cue,
	}
	if s.FillColor != nil {
		cfg.FillColor = s.FillColor.Color
	}
	if s.BorderColor != nil {
		cfg.BorderColor = s.BorderColor.Color
	}
	return cfg, nil
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type FlashSpec struct {
	Color    *YAMLColor `yaml:"color"`
	Duration float32    `yaml:"duration"`
	Peak     float32    `yaml:"peak"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
