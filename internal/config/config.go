package config

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/internal/version"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ReplaceLastPolicy decides how indicator groups missing from a replace-last
// payload are filled.
type ReplaceLastPolicy string

const (
	// ReplaceLastCarryOver keeps the previous value of the last bar.
	ReplaceLastCarryOver ReplaceLastPolicy = "carry_over"
	// ReplaceLastRecompute recomputes the group from raw OHLCV.
	ReplaceLastRecompute ReplaceLastPolicy = "recompute"
)

// Config is an immutable snapshot of every chart option. Components read one
// snapshot per frame; use Holder to swap snapshots.
type Config struct {
	Version           string            `yaml:"version" json:"version" jsonschema:"title=Version,description=Library version the file was written for,required" validate:"required"`
	Layout            Layout            `yaml:"layout" json:"layout" jsonschema:"title=Layout,description=Pane layout and bar geometry"`
	Indicators        IndicatorConfig   `yaml:"indicators" json:"indicators" jsonschema:"title=Indicators,description=Indicator periods and smoothing constants"`
	ReplaceLastPolicy ReplaceLastPolicy `yaml:"replace_last_policy" json:"replace_last_policy" jsonschema:"title=Replace Last Policy,description=How absent indicator groups of a replace-last payload are filled,enum=carry_over,enum=recompute" validate:"required,oneof=carry_over recompute"`
	Draw              DrawConfig        `yaml:"draw" json:"draw" jsonschema:"title=Draw,description=Draw tool defaults"`
	Colors            ColorConfig       `yaml:"colors" json:"colors" jsonschema:"title=Colors,description=Hex colors used by the render pass"`
	Format            FormatConfig      `yaml:"format" json:"format" jsonschema:"title=Format,description=Number and time formatting"`
}

// Layout describes the pane stack and bar geometry in pixels.
type Layout struct {
	GridRows           int                 `yaml:"grid_rows" json:"grid_rows" jsonschema:"title=Grid Rows,minimum=0" validate:"gte=0"`
	GridColumns        int                 `yaml:"grid_columns" json:"grid_columns" jsonschema:"title=Grid Columns,minimum=0" validate:"gte=0"`
	ItemWidth          float64             `yaml:"item_width" json:"item_width" jsonschema:"title=Item Width,description=Horizontal pixels per bar" validate:"gt=0"`
	CandleWidth        float64             `yaml:"candle_width" json:"candle_width" jsonschema:"title=Candle Width,description=Candle body width at the initial item width" validate:"gt=0,ltefield=ItemWidth"`
	MinItemWidth       float64             `yaml:"min_item_width" json:"min_item_width" jsonschema:"title=Min Item Width,description=Lower zoom bound for the item width" validate:"gt=0,ltefield=ItemWidth"`
	PaddingTop         float64             `yaml:"padding_top" json:"padding_top" validate:"gte=0"`
	PaddingBottom      float64             `yaml:"padding_bottom" json:"padding_bottom" validate:"gte=0"`
	PaddingRight       float64             `yaml:"padding_right" json:"padding_right" jsonschema:"description=Empty space after the newest bar" validate:"gte=0"`
	MainFlex           float64             `yaml:"main_flex" json:"main_flex" validate:"gt=0"`
	VolumeFlex         float64             `yaml:"volume_flex" json:"volume_flex" validate:"gte=0"`
	SecondaryFlex      float64             `yaml:"secondary_flex" json:"secondary_flex" validate:"gte=0"`
	MinVisibleCandles  int                 `yaml:"min_visible_candles" json:"min_visible_candles" jsonschema:"description=Upper zoom bound expressed as the fewest bars on screen" validate:"gte=1"`
	PrimaryIndicator   types.IndicatorType `yaml:"primary_indicator" json:"primary_indicator" jsonschema:"enum=ma,enum=boll,enum=none" validate:"oneof=ma boll none"`
	SecondaryIndicator types.IndicatorType `yaml:"secondary_indicator" json:"secondary_indicator" jsonschema:"enum=macd,enum=kdj,enum=rsi,enum=wr,enum=none" validate:"oneof=macd kdj rsi wr none"`
	ShowVolume         bool                `yaml:"show_volume" json:"show_volume"`
	MinuteMode         bool                `yaml:"minute_mode" json:"minute_mode" jsonschema:"description=Render the main pane as a close line instead of candles"`
	ClosePriceLabelW   float64             `yaml:"close_price_label_width" json:"close_price_label_width" validate:"gt=0"`
	ClosePriceLabelH   float64             `yaml:"close_price_label_height" json:"close_price_label_height" validate:"gt=0"`
}

// IndicatorConfig holds the periods of every indicator group.
type IndicatorConfig struct {
	MAPeriods       []int   `yaml:"ma_periods" json:"ma_periods" validate:"dive,gt=0"`
	VolumeMAPeriods []int   `yaml:"volume_ma_periods" json:"volume_ma_periods" validate:"dive,gt=0"`
	BOLLPeriod      int     `yaml:"boll_period" json:"boll_period" validate:"gt=0"`
	BOLLMultiplier  float64 `yaml:"boll_multiplier" json:"boll_multiplier" validate:"gt=0"`
	MACDShort       int     `yaml:"macd_short" json:"macd_short" validate:"gt=0,ltfield=MACDLong"`
	MACDLong        int     `yaml:"macd_long" json:"macd_long" validate:"gt=0"`
	MACDSignal      int     `yaml:"macd_signal" json:"macd_signal" validate:"gt=0"`
	KDJPeriod       int     `yaml:"kdj_period" json:"kdj_period" validate:"gt=0"`
	KDJM1           int     `yaml:"kdj_m1" json:"kdj_m1" jsonschema:"description=K smoothing constant" validate:"gt=0"`
	KDJM2           int     `yaml:"kdj_m2" json:"kdj_m2" jsonschema:"description=D smoothing constant" validate:"gt=0"`
	RSIPeriods      []int   `yaml:"rsi_periods" json:"rsi_periods" validate:"dive,gt=0"`
	WRPeriods       []int   `yaml:"wr_periods" json:"wr_periods" validate:"dive,gt=0"`
}

// DrawConfig holds the defaults applied to new draw items.
type DrawConfig struct {
	Color          string  `yaml:"color" json:"color" validate:"required,hexcolor"`
	LineHeight     float64 `yaml:"line_height" json:"line_height" validate:"gt=0"`
	DashWidth      float64 `yaml:"dash_width" json:"dash_width" validate:"gte=0"`
	DashSpace      float64 `yaml:"dash_space" json:"dash_space" validate:"gte=0"`
	ShouldContinue bool    `yaml:"should_continue" json:"should_continue" jsonschema:"description=Keep the tool armed after an item completes"`
	HitTolerance   float64 `yaml:"hit_tolerance" json:"hit_tolerance" jsonschema:"description=Hit-test radius in pixels" validate:"gt=0"`
}

// ColorConfig holds the render palette as hex strings.
type ColorConfig struct {
	Background string   `yaml:"background" json:"background" validate:"required,hexcolor"`
	Grid       string   `yaml:"grid" json:"grid" validate:"required,hexcolor"`
	Text       string   `yaml:"text" json:"text" validate:"required,hexcolor"`
	Increase   string   `yaml:"increase" json:"increase" validate:"required,hexcolor"`
	Decrease   string   `yaml:"decrease" json:"decrease" validate:"required,hexcolor"`
	MinuteLine string   `yaml:"minute_line" json:"minute_line" validate:"required,hexcolor"`
	ClosePrice string   `yaml:"close_price" json:"close_price" validate:"required,hexcolor"`
	Series     []string `yaml:"series" json:"series" jsonschema:"description=Palette for indicator lines in order" validate:"min=1,dive,hexcolor"`
}

// FormatConfig controls number and time formatting.
type FormatConfig struct {
	PricePrecision  int32  `yaml:"price_precision" json:"price_precision" validate:"gte=0,lte=12"`
	VolumePrecision int32  `yaml:"volume_precision" json:"volume_precision" validate:"gte=0,lte=12"`
	TimeLayout      string `yaml:"time_layout" json:"time_layout" jsonschema:"description=Go time layout for the detail panel" validate:"required"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Version: version.GetVersion(),
		Layout: Layout{
			GridRows:           4,
			GridColumns:        4,
			ItemWidth:          9,
			CandleWidth:        7,
			MinItemWidth:       2,
			PaddingTop:         20,
			PaddingBottom:      20,
			PaddingRight:       60,
			MainFlex:           0.6,
			VolumeFlex:         0.15,
			SecondaryFlex:      0.25,
			MinVisibleCandles:  10,
			PrimaryIndicator:   types.IndicatorTypeMA,
			SecondaryIndicator: types.IndicatorTypeMACD,
			ShowVolume:         true,
			ClosePriceLabelW:   64,
			ClosePriceLabelH:   18,
		},
		Indicators: IndicatorConfig{
			MAPeriods:       []int{5, 10, 20, 30, 60},
			VolumeMAPeriods: []int{5, 10},
			BOLLPeriod:      20,
			BOLLMultiplier:  2,
			MACDShort:       12,
			MACDLong:        26,
			MACDSignal:      9,
			KDJPeriod:       9,
			KDJM1:           3,
			KDJM2:           3,
			RSIPeriods:      []int{14},
			WRPeriods:       []int{14},
		},
		ReplaceLastPolicy: ReplaceLastCarryOver,
		Draw: DrawConfig{
			Color:        "#1E90FF",
			LineHeight:   1.5,
			HitTolerance: 12,
		},
		Colors: ColorConfig{
			Background: "#161A25",
			Grid:       "#2A2E39",
			Text:       "#B2B5BE",
			Increase:   "#26A69A",
			Decrease:   "#EF5350",
			MinuteLine: "#2962FF",
			ClosePrice: "#F0B90B",
			Series:     []string{"#F6C85F", "#6F4E7C", "#9DD866", "#CA472F", "#0B84A5", "#FFA056"},
		},
		Format: FormatConfig{
			PricePrecision:  2,
			VolumePrecision: 2,
			TimeLayout:      "2006-01-02 15:04",
		},
	}
}

// Parse decodes a YAML document on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse chart config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return Parse(data)
}

// Validate checks field constraints and the version compatibility.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid chart config", err)
	}

	if err := version.CheckConfigCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	return nil
}

// GenerateSchema generates a JSON schema for Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(c)
	schema.Title = "argo-kline-config"
	schema.Description = "Configuration schema for the candlestick chart"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to marshal config schema", err)
	}

	return string(schemaBytes), nil
}
