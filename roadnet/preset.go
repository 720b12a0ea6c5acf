package roadnet

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/zeu5/impact-eval/types"
)

// NumStates is the number of latent condition states; the last one is failure
const NumStates = types.MaxCondition + 1

const DefaultPreset = "ToyExample-v2"

//go:embed schema.json
var presetSchema string

//go:embed presets/*.json
var presetFiles embed.FS

type Budget struct {
	Amount float64 `json:"amount"`
	Cycle  int     `json:"cycle"`
}

type CapacityFactors struct {
	Condition [NumStates]float64        `json:"condition"`
	Action    [types.NumActions]float64 `json:"action"`
}

type Segment struct {
	FreeFlowTime float64 `json:"free_flow_time"`
	Length       float64 `json:"length"`
	InitialState int     `json:"initial_state"`
}

type Edge struct {
	Name     string    `json:"name"`
	Volume   float64   `json:"volume"`
	Capacity float64   `json:"capacity"`
	Segments []Segment `json:"segments"`
}

// Preset describes a road network and the parameters of its simulation
type Preset struct {
	Name                string                    `json:"name"`
	Horizon             int                       `json:"horizon"`
	ValueOfTime         float64                   `json:"value_of_time"`
	Budget              Budget                    `json:"budget"`
	ActionCosts         [types.NumActions]float64 `json:"action_costs"`
	Deterioration       [NumStates - 1]float64    `json:"deterioration"`
	ObservationAccuracy float64                   `json:"observation_accuracy"`
	CapacityFactors     CapacityFactors           `json:"capacity_factors"`
	Edges               []Edge                    `json:"edges"`
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func presetValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("preset.schema.json", strings.NewReader(presetSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("preset.schema.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ParsePreset validates raw JSON against the preset schema and decodes it
func ParsePreset(raw []byte) (*Preset, error) {
	schema, err := presetValidator()
	if err != nil {
		return nil, err
	}
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode preset: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("invalid preset: %w", err)
	}
	preset := &Preset{}
	if err := json.Unmarshal(raw, preset); err != nil {
		return nil, fmt.Errorf("decode preset: %w", err)
	}
	return preset, nil
}

// Registry holds the presets environments can be made from
type Registry struct {
	presets map[string]*Preset
}

// NewRegistry returns a registry with the built-in presets
func NewRegistry() (*Registry, error) {
	r := &Registry{presets: make(map[string]*Preset)}
	entries, err := presetFiles.ReadDir("presets")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		raw, err := presetFiles.ReadFile(path.Join("presets", entry.Name()))
		if err != nil {
			return nil, err
		}
		p, err := ParsePreset(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		r.presets[p.Name] = p
	}
	return r, nil
}

// LoadFile adds the preset stored at filePath, replacing any preset with the same name
func (r *Registry) LoadFile(filePath string) (*Preset, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	p, err := ParsePreset(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	r.presets[p.Name] = p
	return p, nil
}

func (r *Registry) Get(name string) (*Preset, error) {
	p, ok := r.presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", types.ErrUnknownEnvironment, name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Make creates an environment from the named preset
func (r *Registry) Make(name string, seed uint64) (*RoadEnvironment, error) {
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return NewRoadEnvironment(p, seed), nil
}
