package config

import (
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/goccy/go-json"
    "github.com/goccy/go-yaml"
    "github.com/pelletier/go-toml/v2"
)

// EnvDataDir overrides DataDir when set.
const EnvDataDir = "SENSORPREP_DATA_DIR"

var ErrUnknownFormat = errors.New("formato de configuração desconhecido (use .yaml, .yml, .toml ou .json)")

type Config struct {
    DataDir      string  `json:"data_dir" yaml:"data_dir" toml:"data_dir" validate:"required"`
    WindowSize   int     `json:"window_size" yaml:"window_size" toml:"window_size" validate:"min=1"`
    Stride       int     `json:"stride" yaml:"stride" toml:"stride" validate:"min=1"`
    TestSize     float64 `json:"test_size" yaml:"test_size" toml:"test_size" validate:"gt=0,lt=1"`
    Seed         int64   `json:"seed" yaml:"seed" toml:"seed"`
    TargetSize   int     `json:"target_size" yaml:"target_size" toml:"target_size" validate:"min=0"`
    Workers      int     `json:"workers" yaml:"workers" toml:"workers" validate:"min=1,max=64"`
    StrictLabels bool    `json:"strict_labels" yaml:"strict_labels" toml:"strict_labels"`
    RespectFiles bool    `json:"respect_files" yaml:"respect_files" toml:"respect_files"`
    Output       Output  `json:"output" yaml:"output" toml:"output"`
}

type Output struct {
    Dataset      string `json:"dataset" yaml:"dataset" toml:"dataset"`
    Distribution string `json:"distribution" yaml:"distribution" toml:"distribution"`
    Plot         string `json:"plot" yaml:"plot" toml:"plot"`
}

func Default() Config {
    return Config{
        DataDir:    filepath.Join("data", "separated"),
        WindowSize: 20,
        Stride:     1,
        TestSize:   0.2,
        Seed:       42,
        TargetSize: 0,
        Workers:    4,
        Output: Output{
            Dataset:      filepath.Join("out", "dataset.gob"),
            Distribution: filepath.Join("out", "distribution.csv"),
            Plot:         filepath.Join("cmd", "api", "static", "distribution.png"),
        },
    }
}

// Load starts from Default, overlays path when non-empty, then the
// environment. The result is not validated; call Validate once flags are
// applied.
func Load(path string) (Config, error) {
    cfg := Default()
    if path != "" {
        raw, err := os.ReadFile(path)
        if err != nil {
            return cfg, err
        }
        if err := decode(path, raw, &cfg); err != nil {
            return cfg, fmt.Errorf("%s: %w", path, err)
        }
    }
    if dir := os.Getenv(EnvDataDir); dir != "" {
        cfg.DataDir = dir
    }
    return cfg, nil
}

func decode(path string, raw []byte, cfg *Config) error {
    switch strings.ToLower(filepath.Ext(path)) {
    case ".yaml", ".yml":
        return yaml.Unmarshal(raw, cfg)
    case ".toml":
        return toml.Unmarshal(raw, cfg)
    case ".json":
        return json.Unmarshal(raw, cfg)
    default:
        return ErrUnknownFormat
    }
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
    if err := validate.Struct(c); err != nil {
        var verrs validator.ValidationErrors
        if errors.As(err, &verrs) {
            msgs := make([]string, 0, len(verrs))
            for _, fe := range verrs {
                msgs = append(msgs, fmt.Sprintf("%s: regra %s", fe.Field(), fe.Tag()))
            }
            return fmt.Errorf("configuração inválida: %s", strings.Join(msgs, "; "))
        }
        return err
    }
    return nil
}
