package scenario

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"regr/pkg/harness"
	"regr/pkg/model"
	"regr/pkg/system"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File is a scenario declared in YAML:
//
//	name: invalid_args
//	program: call
//	args: []
//	retcode: 1
//	stderr: "./bbus-call: expected additional parameters\ntry ./bbus-call --help"
//
// Omitting stdout or stderr leaves that stream unchecked.
type File struct {
	ID      string   `yaml:"name"`
	Program string   `yaml:"program"`
	Args    []string `yaml:"args"`
	Retcode *int     `yaml:"retcode"`
	Stdout  *string  `yaml:"stdout"`
	Stderr  *string  `yaml:"stderr"`
}

// Load reads and validates the scenario file at path from system.AppFs.
// A file without a name takes its base name without extension.
func Load(path string) (*File, error) {
	data, err := afero.ReadFile(system.AppFs, path)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if f.ID == "" {
		f.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if errs := f.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("scenario %s: %w", path, errs)
	}
	return &f, nil
}

// Validate checks the declaration and the outcome it describes.
func (f *File) Validate() model.ValidationErrors {
	var errs model.ValidationErrors
	if f.Program == "" {
		errs = append(errs, model.ValidationError{Field: "program", Message: "required"})
	}
	if f.Retcode == nil {
		errs = append(errs, model.ValidationError{Field: "retcode", Message: "required"})
		return errs
	}
	return append(errs, f.Outcome().Validate()...)
}

// Outcome converts the declaration into an expectation.
func (f *File) Outcome() model.ExpectedOutcome {
	var code int
	if f.Retcode != nil {
		code = *f.Retcode
	}
	o := model.Expect(code, f.Args...)
	if f.Stdout != nil {
		o = o.WithStdout(*f.Stdout)
	}
	if f.Stderr != nil {
		o = o.WithStderr(*f.Stderr)
	}
	return o
}

func (f *File) Name() string { return f.ID }

func (f *File) Run(ctx context.Context, h harness.TestHarness) error {
	return h.CallExpect(ctx, f.Program, f.Outcome())
}
