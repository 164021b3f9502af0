package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"adifc/adif"
	"adifc/common"
	"adifc/layout"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// GeometryConfig describes label sheet, sizes are in inches, line height
	// and font size in points.
	GeometryConfig struct {
		PageWidth       float64 `yaml:"page_width" validate:"gt=0"`
		PageHeight      float64 `yaml:"page_height" validate:"gt=0"`
		Columns         int     `yaml:"columns" validate:"min=1"`
		Rows            int     `yaml:"rows" validate:"min=1"`
		LabelWidth      float64 `yaml:"label_width" validate:"gt=0"`
		LabelHeight     float64 `yaml:"label_height" validate:"gt=0"`
		LeftMargin      float64 `yaml:"left_margin" validate:"gte=0"`
		TopMargin       float64 `yaml:"top_margin" validate:"gte=0"`
		TextLeftPadding float64 `yaml:"text_left_padding" validate:"gte=0"`
		TextTopPadding  float64 `yaml:"text_top_padding" validate:"gte=0"`
		LineHeight      float64 `yaml:"line_height" validate:"gt=0"`
		FontSize        float64 `yaml:"font_size" validate:"gt=0"`
	}

	FilterConfig struct {
		ExcludeDXCC      []string `yaml:"exclude_dxcc" validate:"dive,required"`
		RequireQSLVia    []string `yaml:"require_qsl_via" validate:"min=1,dive,required"`
		ExcludeQSLStatus []string `yaml:"exclude_qsl_status" validate:"dive,required"`
	}

	LabelsConfig struct {
		OutputName string           `yaml:"output_name" validate:"required"`
		Format     common.LabelsFmt `yaml:"format" validate:"gte=0"`
		Font       string           `yaml:"font" validate:"oneof=Helvetica Courier Times"`
		PNGDPI     int              `yaml:"png_dpi" validate:"min=36,max=600"`
		Template   string           `yaml:"template" validate:"required"`
		Geometry   GeometryConfig   `yaml:"geometry"`
		Filter     FilterConfig     `yaml:"filter"`
	}

	PotaConfig struct {
		Output string        `yaml:"output" validate:"required"`
		Format common.LogFmt `yaml:"format" validate:"gte=0"`
		Sig    string        `yaml:"sig" validate:"required"`
		Fields []string      `yaml:"fields" validate:"min=1,dive,required"`
	}

	CallsDBConfig struct {
		URL      string `yaml:"url" validate:"required,url"`
		Database string `yaml:"database" sanitize:"path_clean" validate:"required"`
		Table    string `yaml:"table" validate:"required,alphanum"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Labels    LabelsConfig   `yaml:"labels"`
		Pota      PotaConfig     `yaml:"pota"`
		CallsDB   CallsDBConfig  `yaml:"callsdb"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	LabelTemplateFieldName TemplateFieldName = "template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(LabelTemplateFieldName)),
)

// Layout converts configured sheet into layout geometry.
func (g *GeometryConfig) Layout() layout.Geometry {
	return layout.Geometry{
		PageWidth:       g.PageWidth * layout.Inch,
		PageHeight:      g.PageHeight * layout.Inch,
		Columns:         g.Columns,
		Rows:            g.Rows,
		LabelWidth:      g.LabelWidth * layout.Inch,
		LabelHeight:     g.LabelHeight * layout.Inch,
		LeftMargin:      g.LeftMargin * layout.Inch,
		TopMargin:       g.TopMargin * layout.Inch,
		TextLeftPadding: g.TextLeftPadding * layout.Inch,
		TextTopPadding:  g.TextTopPadding * layout.Inch,
		LineHeight:      g.LineHeight,
		FontSize:        g.FontSize,
	}
}

// Criteria converts configured filter into selection rules.
func (f *FilterConfig) Criteria() adif.Criteria {
	return adif.Criteria{
		ExcludeDXCC:   f.ExcludeDXCC,
		RequireVia:    f.RequireQSLVia,
		ExcludeStatus: f.ExcludeQSLStatus,
	}
}

// checkConfig performs checks which cannot be expressed with tags.
func checkConfig(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	if err := cfg.Labels.Geometry.Layout().Validate(); err != nil {
		sl.ReportError(cfg.Labels.Geometry, "Geometry", "geometry", "fits_page", err.Error())
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkConfig)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
