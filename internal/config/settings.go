package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/handiism/csv-image-downloader/internal/http"
	ioutils "github.com/handiism/csv-image-downloader/internal/io"
)

// PositionPlaceholder is replaced with the 1-based column position when a
// default template is generated. It is not a row placeholder.
const PositionPlaceholder = "{#}"

// EnvPrefix is the prefix of environment variables overriding settings,
// e.g. CSVIMG_SENTINEL or CSVIMG_HTTP_TIMEOUT.
const EnvPrefix = "CSVIMG"

// Settings holds all configuration options.
type Settings struct {
	// Source data conventions
	Sentinel         string   `json:"sentinel" mapstructure:"sentinel"`
	IdentifierFields []string `json:"identifier_fields" mapstructure:"identifier_fields"`
	LabelField       string   `json:"label_field" mapstructure:"label_field"`

	// Column selection
	ImageColumnPrefix string   `json:"image_column_prefix" mapstructure:"image_column_prefix"`
	SelectionTemplate string   `json:"selection_template" mapstructure:"selection_template"`
	FallbackColumns   []string `json:"fallback_columns" mapstructure:"fallback_columns"`
	FallbackTemplate  string   `json:"fallback_template" mapstructure:"fallback_template"`

	// Output
	LogFileName string `json:"log_file_name" mapstructure:"log_file_name"`
	PreviewRows int    `json:"preview_rows" mapstructure:"preview_rows"`

	// HTTP
	HTTPTimeout float64 `json:"http_timeout" mapstructure:"http_timeout"` // seconds, 0 = none
	UserAgent   string  `json:"user_agent" mapstructure:"user_agent"`
	ChunkSize   int     `json:"chunk_size" mapstructure:"chunk_size"`

	// Image post-processing
	ResizeImages bool `json:"resize_images" mapstructure:"resize_images"`
	MaxImageSize int  `json:"max_image_size" mapstructure:"max_image_size"`
	ConvertToJPG bool `json:"convert_to_jpg" mapstructure:"convert_to_jpg"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Sentinel:         "#N/A",
		IdentifierFields: []string{"produkt_ean", "EAN", "ean"},
		LabelField:       "Indeks_handlowy",

		ImageColumnPrefix: "zdjecie",
		SelectionTemplate: "{produkt_ean}-" + PositionPlaceholder,
		FallbackColumns:   []string{"zdjecie", "zdjecie_opakowania"},
		FallbackTemplate:  "{EAN}-" + PositionPlaceholder,

		LogFileName: "errors.txt",
		PreviewRows: 3,

		HTTPTimeout: 60,
		UserAgent:   "csv-image-downloader",
		ChunkSize:   http.DefaultChunkSize,

		ResizeImages: false,
		MaxImageSize: 1000,
		ConvertToJPG: false,
	}
}

// Load reads settings from a JSON or YAML file, then applies CSVIMG_*
// environment overrides.
//
// An empty path or a file that does not exist yields the defaults
// (still subject to environment overrides).
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("sentinel", s.Sentinel)
	v.SetDefault("identifier_fields", s.IdentifierFields)
	v.SetDefault("label_field", s.LabelField)
	v.SetDefault("image_column_prefix", s.ImageColumnPrefix)
	v.SetDefault("selection_template", s.SelectionTemplate)
	v.SetDefault("fallback_columns", s.FallbackColumns)
	v.SetDefault("fallback_template", s.FallbackTemplate)
	v.SetDefault("log_file_name", s.LogFileName)
	v.SetDefault("preview_rows", s.PreviewRows)
	v.SetDefault("http_timeout", s.HTTPTimeout)
	v.SetDefault("user_agent", s.UserAgent)
	v.SetDefault("chunk_size", s.ChunkSize)
	v.SetDefault("resize_images", s.ResizeImages)
	v.SetDefault("max_image_size", s.MaxImageSize)
	v.SetDefault("convert_to_jpg", s.ConvertToJPG)
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultSelection returns the columns preselected for a CSV header together
// with their templates.
//
// A column is preselected when its lower-cased name starts with
// ImageColumnPrefix. Its template is SelectionTemplate with {#} replaced by the
// column's 1-based position in the header.
//
// Example:
//
//	cols, tmpls := s.DefaultSelection([]string{"produkt_ean", "zdjecie", "zdjecie_2"})
//	// cols  = ["zdjecie", "zdjecie_2"]
//	// tmpls = ["{produkt_ean}-2", "{produkt_ean}-3"]
func (s *Settings) DefaultSelection(header []string) (columns, templates []string) {
	prefix := strings.ToLower(s.ImageColumnPrefix)
	for i, col := range header {
		if prefix != "" && strings.HasPrefix(strings.ToLower(col), prefix) {
			columns = append(columns, col)
			templates = append(templates, s.SelectionTemplateFor(i))
		}
	}
	return columns, templates
}

// SelectionTemplateFor returns the default template for the header column at index i.
func (s *Settings) SelectionTemplateFor(i int) string {
	return expandPosition(s.SelectionTemplate, i)
}

// FallbackTemplateFor returns the fallback template for the selected column at index i.
func (s *Settings) FallbackTemplateFor(i int) string {
	return expandPosition(s.FallbackTemplate, i)
}

func expandPosition(template string, i int) string {
	return strings.ReplaceAll(template, PositionPlaceholder, strconv.Itoa(i+1))
}

// LogPath returns the error log location inside destDir.
func (s *Settings) LogPath(destDir string) string {
	return filepath.Join(destDir, s.LogFileName)
}

// ToClientOptions converts settings to http.Options.
func (s *Settings) ToClientOptions() http.Options {
	return http.Options{
		Timeout:   time.Duration(s.HTTPTimeout * float64(time.Second)),
		UserAgent: s.UserAgent,
		ChunkSize: s.ChunkSize,
	}
}

// ToImageOptions converts settings to ioutils.ImageOptions.
func (s *Settings) ToImageOptions() ioutils.ImageOptions {
	return ioutils.ImageOptions{
		Resize:        s.ResizeImages,
		MaxSize:       s.MaxImageSize,
		ConvertToJPEG: s.ConvertToJPG,
	}
}
