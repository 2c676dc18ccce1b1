package config

import (
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every service environment variable, e.g. OMR_ADDRESS.
const EnvPrefix = "OMR"

// Service holds the settings of the CLI and the preview server.
type Service struct {
	Address         string `mapstructure:"address" validate:"required,hostname_port"`
	Debug           bool   `mapstructure:"debug"`
	LogLevel        string `mapstructure:"log_level" validate:"oneof=debug info warn error off"`
	Format          string `mapstructure:"format" validate:"oneof=pdf svg"`
	BengaliFont     string `mapstructure:"bengali_font" validate:"omitempty,file"`
	BengaliBoldFont string `mapstructure:"bengali_bold_font" validate:"omitempty,file"`
	// DataFile is the default JSON binding source for ${...} placeholders.
	DataFile string `mapstructure:"data_file" validate:"omitempty,file"`
}

type serviceOptions struct {
	envFile    string
	configFile string
}

// Option customises LoadService.
type Option func(*serviceOptions)

// WithEnvFile loads variables from path before reading the environment.
// A missing file is ignored.
func WithEnvFile(path string) Option { return func(o *serviceOptions) { o.envFile = path } }

// WithConfigFile reads settings from a YAML/JSON/TOML file; the environment
// still takes precedence.
func WithConfigFile(path string) Option { return func(o *serviceOptions) { o.configFile = path } }

// LoadService reads service settings from defaults, an optional config file,
// an optional .env file and OMR_* environment variables, then validates them.
func LoadService(opts ...Option) (Service, error) {
	o := serviceOptions{envFile: ".env"}
	for _, opt := range opts {
		opt(&o)
	}

	// load .env if it exists (ignore if it does not)
	if o.envFile != "" {
		if _, err := os.Stat(o.envFile); err == nil {
			if err := godotenv.Load(o.envFile); err != nil {
				return Service{}, errors.Wrapf(err, "config: load %s", o.envFile)
			}
		} else if !os.IsNotExist(err) {
			return Service{}, errors.Wrapf(err, "config: stat %s", o.envFile)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("address", ":8080")
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("format", "pdf")
	v.SetDefault("bengali_font", "")
	v.SetDefault("bengali_bold_font", "")
	v.SetDefault("data_file", "")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return Service{}, errors.Wrapf(err, "config: read %s", o.configFile)
		}
	}

	var s Service
	if err := v.Unmarshal(&s); err != nil {
		return Service{}, errors.Wrap(err, "config: decode service settings")
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	s.Format = strings.ToLower(s.Format)
	if err := validateService(s); err != nil {
		return Service{}, err
	}
	return s, nil
}

var (
	validate   = validator.New()
	translator ut.Translator
)

func init() {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// report settings by their config keys
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
}

// ValidationError lists every invalid setting.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "config: invalid settings: " + strings.Join(msgs, "; ")
}

func validateService(s Service) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "config: validate")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(translator)
	}
	return &ValidationError{Fields: fields}
}
