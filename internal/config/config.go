package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/alphapapa/rubbish/internal/env"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Core Core       `yaml:"core"`
	List ListConfig `yaml:"list"`
}

type Core struct {
	// TrashDir overrides the bin root; empty means the XDG home trash
	TrashDir string `yaml:"trash_dir"`

	// Verbose prints one line per processed path
	Verbose bool `yaml:"verbose"`

	Size SizeAccounting `yaml:"size"`
}

type SizeAccounting struct {
	// FollowSymlinks makes size accounting traverse symlink targets
	// instead of counting links as their own lstat size
	FollowSymlinks bool `yaml:"follow_symlinks"`
}

type ListConfig struct {
	Include IncludeConfig `yaml:"include"`
	Exclude ExcludeConfig `yaml:"exclude"`
}

type IncludeConfig struct {
	Period int `yaml:"within_days"`
}

type ExcludeConfig struct {
	Files    []string   `yaml:"files"`
	Patterns []string   `yaml:"patterns"`
	Globs    []string   `yaml:"globs"`
	Size     SizeConfig `yaml:"size"`
}

type SizeConfig struct {
	Min string `yaml:"min" validate:"validSize"`
	Max string `yaml:"max" validate:"validSize"`
}

type configError struct {
	configPath string
	configDir  string
	parser     parser
	err        error
}

type parser struct{}

func validSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(fl.Field().String())
	re := regexp.MustCompile(`^(\d+(KB|MB|GB|TB|PB))?$`) // empty is acceptable
	return re.MatchString(value)
}

func (p parser) getDefaultConfig() Config {
	return Config{
		Core: Core{
			TrashDir: "",
			Verbose:  false,
			Size: SizeAccounting{
				FollowSymlinks: false,
			},
		},
		List: ListConfig{
			Include: IncludeConfig{
				Period: 0,
			},
			Exclude: ExcludeConfig{
				Files: []string{
					// In macOS, .DS_Store is a file that stores custom attributes of its
					// containing folder, such as folder view options, icon positions,
					// and other visual information
					".DS_Store",
				},
				Patterns: []string{},
				Globs:    []string{},
				Size:     SizeConfig{},
			},
		},
	}
}

func (p parser) getDefaultConfigContents() string {
	defaultConfig := p.getDefaultConfig()
	content, _ := yaml.Marshal(defaultConfig)
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
		env.RUBBISH_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (p parser) createConfigFile(path string) error {
	// Ensure directory exists
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	// Create the config file if missing
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		newConfigFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer newConfigFile.Close()

		// Write default config contents
		if _, err := newConfigFile.WriteString(p.getDefaultConfigContents()); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) ensureConfigFile() (string, error) {
	path := env.RUBBISH_CONFIG_PATH

	// Ensure directory exists before creating file
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return "", configError{
			parser:    p,
			configDir: filepath.Dir(path),
			err:       err,
		}
	}

	// Create file if missing
	if err := p.createConfigFile(path); err != nil {
		return "", configError{
			parser:    p,
			configDir: filepath.Dir(path),
			err:       err,
		}
	}

	return path, nil
}

func (p parser) readConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			configDir:  filepath.Dir(path),
			parser:     p,
			err:        err,
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := validate.Struct(cfg); err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			return cfg, fmt.Errorf("validation error: Field %s, %q is invalid", err.Field(), err.Value())
		}
	}
	return cfg, nil
}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validSize)

	return parser{}
}

// Parse loads the config at path, or the default config location when path
// is empty, creating the file with defaults if it is missing.
func Parse(path string) (Config, error) {
	parser := initParser()

	var err error
	configPath := path
	if configPath == "" {
		configPath, err = parser.ensureConfigFile()
		if err != nil {
			return Config{}, err
		}
	}

	return parser.readConfigFile(configPath)
}
