// Package input loads the engine's immutable inputs from data files. Both
// JSON and YAML are accepted; the file extension selects the decoder.
package input

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sajals2410/elyx-assignment/core/model"
)

// Inputs bundles everything one scheduling run needs.
type Inputs struct {
	Activities []model.Activity
	Resources  []model.Resource
	Travel     []model.TravelPlan
	Client     model.ClientSchedule
}

// Load reads activities, resources, travel plans and the client schedule
// from dir. Each entity lives in its own file: activities.json,
// resources.json, travel_plans.json, client_schedule.json (or .yaml).
func Load(dir string) (*Inputs, error) {
	in := &Inputs{}

	var activityDefs []ActivityDef
	if err := decodeFirst(dir, "activities", &activityDefs); err != nil {
		return nil, err
	}
	for _, def := range activityDefs {
		a, err := def.ToModel()
		if err != nil {
			return nil, err
		}
		in.Activities = append(in.Activities, a)
	}

	var resourceDefs []ResourceDef
	if err := decodeFirst(dir, "resources", &resourceDefs); err != nil {
		return nil, err
	}
	for _, def := range resourceDefs {
		r, err := def.ToModel()
		if err != nil {
			return nil, err
		}
		in.Resources = append(in.Resources, r)
	}

	var travelDefs []TravelDef
	if err := decodeFirst(dir, "travel_plans", &travelDefs); err != nil {
		return nil, err
	}
	for _, def := range travelDefs {
		t, err := def.ToModel()
		if err != nil {
			return nil, err
		}
		in.Travel = append(in.Travel, t)
	}

	var clientDef ClientDef
	if err := decodeFirst(dir, "client_schedule", &clientDef); err != nil {
		return nil, err
	}
	client, err := clientDef.ToModel()
	if err != nil {
		return nil, err
	}
	in.Client = client

	return in, nil
}

// decodeFirst tries name.json, name.yaml and name.yml in dir, decoding the
// first one that exists.
func decodeFirst(dir, name string, out any) error {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return DecodeFile(path, out)
	}
	return fmt.Errorf("no %s file found in %s", name, dir)
}

// DecodeFile decodes a JSON or YAML file into out.
func DecodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported input format: %s", path)
	}
	return nil
}
