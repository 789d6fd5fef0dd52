package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/iwata-n/repospots/lib/filters"
	"github.com/iwata-n/repospots/lib/model"
	"github.com/iwata-n/repospots/lib/utils"
)

// File is the YAML configuration file. Fields left out of the file keep the
// values given on the command line.
type File struct {
	Parse  ParseSection  `yaml:"parse"`
	Output OutputSection `yaml:"output"`
}

type ParseSection struct {
	Branch           *string     `yaml:"branch"`
	Depth            *int        `yaml:"depth"`
	LargeCommitLines *int        `yaml:"large_commit_lines"`
	Member           []string    `yaml:"member"`
	File             FileSection `yaml:"file"`
}

type FileSection struct {
	Exclude []string `yaml:"exclude"`
}

type OutputSection struct {
	Top *int `yaml:"top"`
}

func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.WrapConfigurationError(err, "config")
	}
	defer f.Close()

	result := &File{}

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	err = dec.Decode(result)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, model.WrapConfigurationError(errors.Wrapf(err, "error parsing %v", path), "config")
	}

	return result, nil
}

// Resolve merges the config file into the command line parameters and
// validates the result. file may be nil.
func Resolve(flags model.RunParameters, file *File) (model.RunParameters, error) {
	result := flags
	result.Exclude = append([]string(nil), flags.Exclude...)
	result.Member = append([]string(nil), flags.Member...)

	if file != nil {
		p := file.Parse
		if p.Branch != nil {
			result.Branch = *p.Branch
		}
		if p.Depth != nil {
			depth := *p.Depth
			result.Depth = &depth
		}
		if p.LargeCommitLines != nil {
			result.LargeCommitLines = *p.LargeCommitLines
		}
		if p.Member != nil {
			result.Member = append([]string(nil), p.Member...)
		}
		if p.File.Exclude != nil {
			result.Exclude = append([]string(nil), p.File.Exclude...)
		}
		if file.Output.Top != nil {
			result.Top = *file.Output.Top
		}
	}

	err := Validate(&result)
	if err != nil {
		return model.RunParameters{}, err
	}

	return result, nil
}

func Validate(params *model.RunParameters) error {
	if params.Path == "" {
		return model.NewConfigurationError("path", "a repository path is required")
	}

	exists, err := utils.DirExists(params.Path)
	if err != nil {
		return model.WrapConfigurationError(err, "path")
	}
	if !exists {
		return model.NewConfigurationError("path", "%v does not exist", params.Path)
	}

	if params.Branch == "" {
		return model.NewConfigurationError("branch", "a branch is required")
	}

	if params.Depth != nil && *params.Depth < 0 {
		return model.NewConfigurationError("depth", "must be >= 0, got %v", *params.Depth)
	}

	return filters.ValidatePatterns(params.Exclude)
}
