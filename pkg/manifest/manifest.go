package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/reactor"
)

// Format is a manifest encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Filenames lists the manifest names [Locate] looks for, in order of
// preference.
var Filenames = []string{"reactor.toml", "reactor.yaml", "reactor.yml", "reactor.json"}

// Manifest is a decoded reactor descriptor file.
type Manifest struct {
	// Group is the default groupId of projects that do not set one.
	Group string `toml:"group" yaml:"group" json:"group" validate:"omitempty,coordinate"`

	// Projects lists the modules in declaration order. The order matters:
	// it is the input order of the reactor graph.
	Projects []Project `toml:"project" yaml:"projects" json:"projects" validate:"required,min=1,dive"`
}

// Project is one module entry of a manifest.
type Project struct {
	Artifact     string   `toml:"artifact" yaml:"artifact" json:"artifact" validate:"required,coordinate"`
	Group        string   `toml:"group" yaml:"group" json:"group,omitempty" validate:"omitempty,coordinate"`
	Version      string   `toml:"version" yaml:"version" json:"version,omitempty"`
	Path         string   `toml:"path" yaml:"path" json:"path,omitempty" validate:"omitempty,modpath"`
	Dependencies []string `toml:"dependencies" yaml:"dependencies" json:"dependencies,omitempty" validate:"dive,required"`
}

// DetectFormat returns the format implied by path's extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", rerr.New(rerr.ErrCodeInvalidFormat, "unsupported manifest %q (want .toml, .yaml, .yml or .json)", filepath.Base(path))
}

// Locate returns the path of the reactor manifest in dir.
func Locate(dir string) (string, error) {
	for _, name := range Filenames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", rerr.New(rerr.ErrCodeFileNotFound, "no reactor manifest in %s (looked for %s)", dir, strings.Join(Filenames, ", "))
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	if err := rerr.ValidateManifestFilename(filepath.Base(path)); err != nil {
		return nil, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, rerr.Wrap(rerr.ErrCodeFileNotFound, err, "manifest %s not found", path)
	}
	if err != nil {
		return nil, rerr.Wrap(rerr.ErrCodeInternal, err, "read manifest %s", path)
	}
	return Decode(data, format)
}

// Decode parses and validates manifest data in the given format.
func Decode(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&m)
		if undecoded := md.Undecoded(); err == nil && len(undecoded) > 0 {
			err = fmt.Errorf("unknown field %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&m)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	default:
		return nil, rerr.New(rerr.ErrCodeInvalidFormat, "unsupported manifest format %q", format)
	}
	if err != nil {
		return nil, rerr.Wrap(rerr.ErrCodeInvalidManifest, err, "decode %s manifest", format)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Descriptors converts the manifest into reactor projects, in declaration
// order, resolving default groups and short dependency names.
func (m *Manifest) Descriptors() ([]*reactor.Descriptor, error) {
	out := make([]*reactor.Descriptor, 0, len(m.Projects))
	for i, p := range m.Projects {
		group := p.Group
		if group == "" {
			group = m.Group
		}
		if group == "" {
			return nil, rerr.New(rerr.ErrCodeInvalidManifest, "project %q (#%d) has no group and the manifest sets no default", p.Artifact, i)
		}

		d := &reactor.Descriptor{
			GroupID:    group,
			ArtifactID: p.Artifact,
			Version:    p.Version,
			Path:       p.Path,
		}
		for _, dep := range p.Dependencies {
			ga, err := resolveDependency(group, dep)
			if err != nil {
				return nil, rerr.Wrap(rerr.ErrCodeInvalidManifest, err, "project %s: dependency %q", d.ID(), dep)
			}
			d.Deps = append(d.Deps, ga)
		}
		out = append(out, d)
	}
	return out, nil
}

// ReactorProjects is like [Manifest.Descriptors] but returns the reactor
// interface type expected by [reactor.New].
func (m *Manifest) ReactorProjects() ([]reactor.Project, error) {
	ds, err := m.Descriptors()
	if err != nil {
		return nil, err
	}
	ps := make([]reactor.Project, len(ds))
	for i, d := range ds {
		ps[i] = d
	}
	return ps, nil
}

func resolveDependency(group, dep string) (reactor.GA, error) {
	if !strings.Contains(dep, ":") {
		ga := reactor.GA{GroupID: group, ArtifactID: dep}
		if err := rerr.ValidateCoordinate("artifactId", dep); err != nil {
			return reactor.GA{}, err
		}
		return ga, nil
	}
	return reactor.ParseGA(dep)
}
