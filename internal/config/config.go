package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/wrm/internal/env"
	"github.com/babarot/wrm/internal/utils/fs"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Core    Core    `yaml:"core"`
	Logging Logging `yaml:"logging"`
}

type Core struct {
	// Dir is the base directory; empty means the XDG default
	Dir            string  `yaml:"dir"`
	Noninteractive bool    `yaml:"noninteractive"`
	Quiet          bool    `yaml:"quiet"`
	Protect        Protect `yaml:"protect"`
}

// Protect lists paths that remove and delete refuse to touch
type Protect struct {
	Names    []string `yaml:"names"`
	Patterns []string `yaml:"patterns" validate:"dive,validRegexp"`
	Globs    []string `yaml:"globs" validate:"dive,validGlob"`
}

type Logging struct {
	Enabled  bool     `yaml:"enabled"`
	Level    string   `yaml:"level" validate:"required,oneof=debug info warn error"`
	Rotation Rotation `yaml:"rotation"`
}

type Rotation struct {
	MaxSize  string `yaml:"max_size" validate:"required,validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
}

// BaseDir returns the absolute base directory. WRM_DIR wins over
// core.dir, which wins over the XDG default.
func (c Config) BaseDir() (string, error) {
	dir := env.WRM_DIR
	if dir == "" {
		dir = c.Core.Dir
	}
	if dir == "" {
		dir = env.DefaultDir()
	}
	return fs.ResolveConfigPath(dir)
}

type configError struct {
	configPath string
	configDir  string
	parser     parser
	err        error
}

type parser struct {
	validate *validator.Validate
}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(NewDefaultConfig())
	return string(content)
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.WRM_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (e configError) Unwrap() error {
	return e.err
}

func (p parser) createConfigFile(path string) error {
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		newConfigFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			return err
		}
		defer newConfigFile.Close()

		if _, err := newConfigFile.WriteString(p.getDefaultConfigContents()); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) ensureConfigFile() (string, error) {
	path := env.WRM_CONFIG_PATH

	if err := p.createConfigFile(path); err != nil {
		return "", configError{
			configPath: path,
			configDir:  filepath.Dir(path),
			parser:     p,
			err:        err,
		}
	}

	return path, nil
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

func (p parser) readConfigFile(path string) (Config, error) {
	cfg := *NewDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			configDir:  filepath.Dir(path),
			parser:     p,
			err:        err,
		}
	}

	// keys missing from the file keep their defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := p.validate.Struct(cfg); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, err := range verrs {
				return cfg, fmt.Errorf("validation error: Field %s, %v is invalid", err.Namespace(), err.Value())
			}
		}
		return cfg, err
	}
	return cfg, nil
}

func initParser() parser {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validGlob", validateGlob)
	_ = validate.RegisterValidation("validRegexp", validateRegexp)

	return parser{validate: validate}
}

// Parse reads the config file at path. An empty path means the default
// location, where a config with default values is created if missing.
func Parse(path string) (Config, error) {
	parser := initParser()

	var cfg Config
	var err error
	var configPath string

	if path == "" {
		configPath, err = parser.ensureConfigFile()
		if err != nil {
			return cfg, parsingError{err: err}
		}
	} else {
		configPath = path
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err = parser.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}

	return cfg, nil
}
