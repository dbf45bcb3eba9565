package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
)

var ErrUnknownSchemaVersion = errors.New("unknown schema version")

// Resolver picks the adapter for a document. It is read-only after construction and
// safe for concurrent use.
type Resolver struct {
	log      *slog.Logger
	adapters map[string]Adapter
}

func NewResolver(log *slog.Logger, adapters ...Adapter) *Resolver {
	r := &Resolver{log: log, adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.SchemaVersion()] = a
	}
	return r
}

// Versions lists the registered schema versions in ascending order.
func (r *Resolver) Versions() []string {
	out := make([]string, 0, len(r.adapters))
	for v := range r.adapters {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Adapter returns the adapter registered for version.
func (r *Resolver) Adapter(version string) (Adapter, error) {
	a, ok := r.adapters[strings.TrimSpace(version)]
	if !ok {
		return nil, &ParseError{SchemaVersion: version, Err: fmt.Errorf("%w: %q", ErrUnknownSchemaVersion, version)}
	}
	return a, nil
}

// DetectVersion reads the schemaVersion discriminator without decoding the tree.
func (r *Resolver) DetectVersion(raw string) (string, error) {
	const op = "schema.Resolver.DetectVersion"

	var head struct {
		SchemaVersion string `json:"schemaVersion"`
	}
	if err := json.Unmarshal([]byte(raw), &head); err != nil {
		r.log.Warn("template is not valid json", slog.String("op", op), slog.String("error", err.Error()))
		return "", &ParseError{Err: err}
	}
	if strings.TrimSpace(head.SchemaVersion) == "" {
		return "", &ParseError{Err: errors.New("required property 'schemaVersion' not found")}
	}
	return strings.TrimSpace(head.SchemaVersion), nil
}

// Parse routes raw to the adapter matching its schemaVersion.
func (r *Resolver) Parse(raw string) (*model.Contents, error) {
	version, err := r.DetectVersion(raw)
	if err != nil {
		return nil, err
	}
	a, err := r.Adapter(version)
	if err != nil {
		return nil, err
	}
	return a.Parse(raw)
}
