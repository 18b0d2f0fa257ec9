package points

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Struct-valued map entries are held back undecoded so each one can be laid
// over the base entry field by field. A plain decode zeroes unlisted fields.
type yamlEntries struct {
	Levels           map[Level]yaml.Node    `yaml:"levels"`
	TimeThresholds   map[QuizType]yaml.Node `yaml:"timeThresholds"`
	DifficultyTweaks map[Level]yaml.Node    `yaml:"difficultyTweaks"`
}

type jsonEntries struct {
	Levels           map[Level]json.RawMessage    `json:"levels"`
	TimeThresholds   map[QuizType]json.RawMessage `json:"timeThresholds"`
	DifficultyTweaks map[Level]json.RawMessage    `json:"difficultyTweaks"`
}

// OverlayYAML decodes a YAML table on top of base. Only the keys and fields
// present in data change; a level that sets only multiplier keeps its
// timeBonus and perfectBonus.
func OverlayYAML(base Config, data []byte) (Config, error) {
	out := base.Clone()
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Config{}, err
	}
	var entries yamlEntries
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return Config{}, err
	}
	decode := func(n yaml.Node, v any) error { return n.Decode(v) }

	var err error
	if out.Levels, err = mergeEntries(out.Levels, base.Levels, entries.Levels, decode); err != nil {
		return Config{}, fmt.Errorf("levels: %w", err)
	}
	if out.TimeThresholds, err = mergeEntries(out.TimeThresholds, base.TimeThresholds, entries.TimeThresholds, decode); err != nil {
		return Config{}, fmt.Errorf("timeThresholds: %w", err)
	}
	if out.DifficultyTweaks, err = mergeEntries(out.DifficultyTweaks, base.DifficultyTweaks, entries.DifficultyTweaks, decode); err != nil {
		return Config{}, fmt.Errorf("difficultyTweaks: %w", err)
	}
	return out, nil
}

// OverlayJSON is OverlayYAML for JSON documents.
func OverlayJSON(base Config, data []byte) (Config, error) {
	out := base.Clone()
	if err := json.Unmarshal(data, &out); err != nil {
		return Config{}, err
	}
	var entries jsonEntries
	if err := json.Unmarshal(data, &entries); err != nil {
		return Config{}, err
	}
	decode := func(raw json.RawMessage, v any) error { return json.Unmarshal(raw, v) }

	var err error
	if out.Levels, err = mergeEntries(out.Levels, base.Levels, entries.Levels, decode); err != nil {
		return Config{}, fmt.Errorf("levels: %w", err)
	}
	if out.TimeThresholds, err = mergeEntries(out.TimeThresholds, base.TimeThresholds, entries.TimeThresholds, decode); err != nil {
		return Config{}, fmt.Errorf("timeThresholds: %w", err)
	}
	if out.DifficultyTweaks, err = mergeEntries(out.DifficultyTweaks, base.DifficultyTweaks, entries.DifficultyTweaks, decode); err != nil {
		return Config{}, fmt.Errorf("difficultyTweaks: %w", err)
	}
	return out, nil
}

func mergeEntries[K comparable, V, P any](dst, base map[K]V, patches map[K]P, decode func(P, any) error) (map[K]V, error) {
	if len(patches) == 0 {
		return dst, nil
	}
	if dst == nil {
		dst = make(map[K]V, len(patches))
	}
	for key, patch := range patches {
		v := base[key]
		if err := decode(patch, &v); err != nil {
			return nil, fmt.Errorf("%v: %w", key, err)
		}
		dst[key] = v
	}
	return dst, nil
}
