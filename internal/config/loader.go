// internal/config/loader.go
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var embeddedPresets []byte

// ErrPresetNotFound — пресет с таким именем отсутствует
var ErrPresetNotFound = errors.New("preset not found")

// Preset — именованная конфигурация
type Preset struct {
	Name   string `yaml:"name"`
	Config `yaml:",inline"`
}

type presetFile struct {
	Presets []yaml.Node `yaml:"presets"`
}

// Load читает одну конфигурацию из YAML. Отсутствующие поля берутся из Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadPresets читает список пресетов. Пустой путь — встроенные пресеты.
func LoadPresets(path string) ([]Preset, error) {
	if path == "" {
		return ParsePresets(embeddedPresets)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	presets, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("presets %s: %w", path, err)
	}
	return presets, nil
}

// ParsePresets разбирает YAML с ключом presets. Каждый пресет
// накладывается на Default, поэтому в файле достаточно указать отличия.
func ParsePresets(data []byte) ([]Preset, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("%w: no presets defined", ErrInvalidConfig)
	}

	presets := make([]Preset, 0, len(file.Presets))
	for i := range file.Presets {
		p := Preset{Config: Default()}
		if err := file.Presets[i].Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode preset #%d: %w", i, err)
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("preset-%d", i+1)
		}
		if err := p.Config.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// FindPreset ищет пресет по имени. Пустое имя — первый пресет.
func FindPreset(presets []Preset, name string) (Preset, int, error) {
	if len(presets) == 0 {
		return Preset{}, -1, ErrPresetNotFound
	}
	if name == "" {
		return presets[0], 0, nil
	}
	for i, p := range presets {
		if p.Name == name {
			return p, i, nil
		}
	}
	return Preset{}, -1, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}
