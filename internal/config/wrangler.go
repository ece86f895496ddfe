package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Mechse/turbomigrate/internal/core/target"
)

// wranglerDoc mirrors the subset of the wrangler schema this tool reads. The
// same shape covers all three formats because TOML tables and JSON objects
// project identically through the document.
type wranglerDoc struct {
	Name      string                 `json:"name"`
	Main      string                 `json:"main"`
	Env       map[string]wranglerEnv `json:"env"`
	Databases []target.Database      `json:"d1_databases"`
}

type wranglerEnv struct {
	Databases []target.Database `json:"d1_databases"`
}

// ProjectDeployment builds the typed deployment view from a raw document and
// validates it. Known fields are read here exactly once; afterwards only the
// view is consulted.
func ProjectDeployment(doc Document) (*target.Deployment, error) {
	var wd wranglerDoc
	if err := reproject(doc, &wd); err != nil {
		return nil, fmt.Errorf("deployment config: %w", err)
	}

	dep := &target.Deployment{
		Name:      wd.Name,
		Main:      wd.Main,
		Databases: wd.Databases,
	}
	if len(wd.Env) > 0 {
		dep.Envs = make(map[string][]target.Database, len(wd.Env))
		for name, env := range wd.Env {
			dep.Envs[name] = env.Databases
		}
	}

	if err := validateView(dep); err != nil {
		return nil, fmt.Errorf("deployment config: %w", err)
	}
	return dep, nil
}

// reproject converts the schemaless document into a typed view through a JSON
// round trip. Unknown keys are dropped; mistyped known keys surface as a
// shape error.
func reproject(doc Document, view any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(data, view); err != nil {
		return fmt.Errorf("unexpected shape: %w", err)
	}
	return nil
}

// validate is shared by the projections. Struct is concurrency-safe and
// caches parsed tags.
var validate = validator.New()

func validateView(view any) error {
	err := validate.Struct(view)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("invalid fields: %s", formatValidationErrors(verrs))
	}
	return err
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, fmt.Sprintf("%s (%s)", err.Namespace(), err.Tag()))
	}
	return strings.Join(msgs, "; ")
}
