package config

import (
	"fmt"
	"strings"

	"leoroute/internal/configloader"
	"leoroute/internal/logger"
)

type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
}

type TelemetryConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
}

type FileLoggerConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Active   bool             `yaml:"active"`
	Level    string           `yaml:"level"`
	Encoding string           `yaml:"encoding"`
	Mode     string           `yaml:"mode"`
	File     FileLoggerConfig `yaml:"file"`
}

// GraphProviderConfig selects and configures the Graph Provider
// implementation that supplies snapshots to the controller.
type GraphProviderConfig struct {
	Kind string `yaml:"kind"` // "static" | "jsonfile"
	Dir  string `yaml:"dir"`  // source directory for kind=jsonfile
}

// AnchorLMSRConfig holds the options specific to the ANCHOR-LMSR algorithm.
type AnchorLMSRConfig struct {
	AnchorSet      []int64 `yaml:"anchorSet"`
	EmitSatToSat   bool    `yaml:"emitSatToSat"`
}

// ConstellationConfig describes the static shape of the constellation and
// the thresholds the Graph Provider uses to decide link visibility.
type ConstellationConfig struct {
	NumOrbits        int   `yaml:"numOrbits"`
	NumSatsPerOrbit  int   `yaml:"numSatsPerOrbit"`
	NumGroundStations int  `yaml:"numGroundStations"`
	MaxISLLengthM    int64 `yaml:"maxIslLengthM"`
	MaxGSLLengthM    int64 `yaml:"maxGslLengthM"`
}

// RouterConfig holds the parameters governing a single routing run: the
// algorithm, its time grid, the look-ahead window, and output location.
type RouterConfig struct {
	Algorithm      string           `yaml:"algorithm"` // free_gs | naive_lmsr | anchor_lmsr
	TimeStepNs     int64            `yaml:"timeStepNs"`
	DurationS      int64            `yaml:"durationS"`
	LookaheadSteps int              `yaml:"lookaheadSteps"`
	OutputDir      string           `yaml:"outputDir"`
	AnchorLMSR     AnchorLMSRConfig `yaml:"anchorLmsr"`
}

type Config struct {
	Logger        LoggerConfig         `yaml:"logger"`
	Telemetry     TelemetryConfig      `yaml:"telemetry"`
	Constellation ConstellationConfig  `yaml:"constellation"`
	GraphProvider GraphProviderConfig  `yaml:"graphProvider"`
	Router        RouterConfig         `yaml:"router"`
}

// LoadConfig loads the configuration from a YAML file at the given path.
//
// This function performs only syntactic parsing of the YAML file. Call
// cfg.ValidateConfig() after loading to check structural correctness.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := configloader.LoadYAML(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. Supported overrides:
//
//	LEOROUTE_ALGORITHM        -> cfg.Router.Algorithm
//	LEOROUTE_OUTPUT_DIR       -> cfg.Router.OutputDir
//	LEOROUTE_LOOKAHEAD_STEPS  -> cfg.Router.LookaheadSteps
//	LEOROUTE_TIME_STEP_NS     -> cfg.Router.TimeStepNs
//	LEOROUTE_DURATION_S       -> cfg.Router.DurationS
//	LEOROUTE_GRAPH_PROVIDER_DIR -> cfg.GraphProvider.Dir
//	LEOROUTE_LOG_LEVEL        -> cfg.Logger.Level
//	LOGGER_ENCODING           -> cfg.Logger.Encoding
//	LOGGER_MODE               -> cfg.Logger.Mode
//	LOGGER_FILE_PATH          -> cfg.Logger.File.Path
//	TRACE_ENABLED             -> cfg.Telemetry.Tracing.Enabled
//	TRACE_EXPORTER            -> cfg.Telemetry.Tracing.Exporter
//	TRACE_ENDPOINT            -> cfg.Telemetry.Tracing.Endpoint
func (cfg *Config) ApplyEnvOverrides() {
	configloader.OverrideString(&cfg.Router.Algorithm, "LEOROUTE_ALGORITHM")
	configloader.OverrideString(&cfg.Router.OutputDir, "LEOROUTE_OUTPUT_DIR")
	configloader.OverrideInt(&cfg.Router.LookaheadSteps, "LEOROUTE_LOOKAHEAD_STEPS")
	configloader.OverrideInt64(&cfg.Router.TimeStepNs, "LEOROUTE_TIME_STEP_NS")
	configloader.OverrideInt64(&cfg.Router.DurationS, "LEOROUTE_DURATION_S")
	configloader.OverrideString(&cfg.GraphProvider.Dir, "LEOROUTE_GRAPH_PROVIDER_DIR")
	configloader.OverrideString(&cfg.Logger.Level, "LEOROUTE_LOG_LEVEL")
	configloader.OverrideString(&cfg.Logger.Encoding, "LOGGER_ENCODING")
	configloader.OverrideString(&cfg.Logger.Mode, "LOGGER_MODE")
	configloader.OverrideString(&cfg.Logger.File.Path, "LOGGER_FILE_PATH")
	configloader.OverrideBool(&cfg.Telemetry.Tracing.Enabled, "TRACE_ENABLED")
	configloader.OverrideString(&cfg.Telemetry.Tracing.Exporter, "TRACE_EXPORTER")
	configloader.OverrideString(&cfg.Telemetry.Tracing.Endpoint, "TRACE_ENDPOINT")
}

// ValidateConfig performs structural validation of the loaded configuration.
// All detected issues are accumulated and returned as a single error.
func (cfg *Config) ValidateConfig() error {
	var errs []string

	// --- Logger ---
	switch cfg.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.level: %s", cfg.Logger.Level))
	}
	switch cfg.Logger.Encoding {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.encoding: %s", cfg.Logger.Encoding))
	}
	switch cfg.Logger.Mode {
	case "stdout":
	case "file":
		if cfg.Logger.File.Path == "" {
			errs = append(errs, "logger.file.path is required when mode=file")
		}
		if cfg.Logger.File.MaxSize < 0 || cfg.Logger.File.MaxBackups < 0 || cfg.Logger.File.MaxAge < 0 {
			errs = append(errs, "logger.file.* values must be non-negative")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.mode: %s", cfg.Logger.Mode))
	}

	// --- Constellation ---
	c := cfg.Constellation
	if c.NumOrbits <= 0 {
		errs = append(errs, "constellation.numOrbits must be > 0")
	}
	if c.NumSatsPerOrbit <= 0 {
		errs = append(errs, "constellation.numSatsPerOrbit must be > 0")
	}
	if c.NumGroundStations < 0 {
		errs = append(errs, "constellation.numGroundStations must be >= 0")
	}
	if c.MaxISLLengthM <= 0 {
		errs = append(errs, "constellation.maxIslLengthM must be > 0")
	}
	if c.MaxGSLLengthM <= 0 {
		errs = append(errs, "constellation.maxGslLengthM must be > 0")
	}

	// --- Graph provider ---
	switch cfg.GraphProvider.Kind {
	case "static":
	case "jsonfile":
		if cfg.GraphProvider.Dir == "" {
			errs = append(errs, "graphProvider.dir is required when kind=jsonfile")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid graphProvider.kind: %s (must be static or jsonfile)", cfg.GraphProvider.Kind))
	}

	// --- Router ---
	r := cfg.Router
	switch r.Algorithm {
	case "free_gs", "naive_lmsr", "anchor_lmsr":
	default:
		errs = append(errs, fmt.Sprintf("invalid router.algorithm: %s (must be free_gs, naive_lmsr or anchor_lmsr)", r.Algorithm))
	}
	if r.TimeStepNs <= 0 {
		errs = append(errs, "router.timeStepNs must be > 0")
	}
	if r.DurationS <= 0 {
		errs = append(errs, "router.durationS must be > 0")
	}
	if r.Algorithm == "naive_lmsr" || r.Algorithm == "anchor_lmsr" {
		if r.LookaheadSteps <= 0 {
			errs = append(errs, "router.lookaheadSteps must be > 0 for naive_lmsr/anchor_lmsr")
		}
	}
	if r.Algorithm == "anchor_lmsr" && len(r.AnchorLMSR.AnchorSet) == 0 {
		errs = append(errs, "router.anchorLmsr.anchorSet must be non-empty when algorithm=anchor_lmsr")
	}
	if r.OutputDir == "" {
		errs = append(errs, "router.outputDir is required")
	}

	// --- Telemetry ---
	if cfg.Telemetry.Tracing.Enabled {
		switch cfg.Telemetry.Tracing.Exporter {
		case "stdout":
		default:
			errs = append(errs, fmt.Sprintf("invalid telemetry.tracing.exporter: %s (only stdout is supported)", cfg.Telemetry.Tracing.Exporter))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// LogConfig prints the loaded configuration at DEBUG level. Useful for
// debugging startup issues and verifying the file parsed as expected.
func (cfg *Config) LogConfig(lgr logger.Logger) {
	lgr.Debug("loaded configuration",
		logger.F("logger.active", cfg.Logger.Active),
		logger.F("logger.level", cfg.Logger.Level),
		logger.F("logger.encoding", cfg.Logger.Encoding),
		logger.F("logger.mode", cfg.Logger.Mode),
		logger.F("logger.file.path", cfg.Logger.File.Path),

		logger.F("constellation.numOrbits", cfg.Constellation.NumOrbits),
		logger.F("constellation.numSatsPerOrbit", cfg.Constellation.NumSatsPerOrbit),
		logger.F("constellation.numGroundStations", cfg.Constellation.NumGroundStations),
		logger.F("constellation.maxIslLengthM", cfg.Constellation.MaxISLLengthM),
		logger.F("constellation.maxGslLengthM", cfg.Constellation.MaxGSLLengthM),

		logger.F("graphProvider.kind", cfg.GraphProvider.Kind),
		logger.F("graphProvider.dir", cfg.GraphProvider.Dir),

		logger.F("router.algorithm", cfg.Router.Algorithm),
		logger.F("router.timeStepNs", cfg.Router.TimeStepNs),
		logger.F("router.durationS", cfg.Router.DurationS),
		logger.F("router.lookaheadSteps", cfg.Router.LookaheadSteps),
		logger.F("router.outputDir", cfg.Router.OutputDir),
		logger.F("router.anchorLmsr.anchorSet", cfg.Router.AnchorLMSR.AnchorSet),
		logger.F("router.anchorLmsr.emitSatToSat", cfg.Router.AnchorLMSR.EmitSatToSat),

		logger.F("telemetry.tracing.enabled", cfg.Telemetry.Tracing.Enabled),
		logger.F("telemetry.tracing.exporter", cfg.Telemetry.Tracing.Exporter),
	)
}
