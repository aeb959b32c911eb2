package tabular

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[BorderStyle]string{
	BorderRounded: "rounded",
	BorderNone:    "none",
	BorderASCII:   "ascii",
	BorderHeavy:   "heavy",
	BorderDouble:  "double",
}

// String returns the border name.
func (b BorderStyle) String() string {
	if s, ok := borderNames[b]; ok {
		return s
	}
	return fmt.Sprintf("BorderStyle(%d)", int(b))
}

// MarshalText implements [encoding.TextMarshaler].
func (b BorderStyle) MarshalText() ([]byte, error) {
	s, ok := borderNames[b]
	if !ok {
		return nil, fmt.Errorf("%w: unknown border %d", ErrInvalidConfig, int(b))
	}
	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (b *BorderStyle) UnmarshalText(text []byte) error {
	for style, name := range borderNames {
		if name == string(text) {
			*b = style
			return nil
		}
	}
	return fmt.Errorf("%w: unknown border %q", ErrInvalidConfig, text)
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

var alignNames = map[Alignment]string{
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
}

// String returns the alignment name.
func (a Alignment) String() string {
	if s, ok := alignNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// MarshalText implements [encoding.TextMarshaler].
func (a Alignment) MarshalText() ([]byte, error) {
	s, ok := alignNames[a]
	if !ok {
		return nil, fmt.Errorf("%w: unknown alignment %d", ErrInvalidConfig, int(a))
	}
	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Alignment) UnmarshalText(text []byte) error {
	for align, name := range alignNames {
		if name == string(text) {
			*a = align
			return nil
		}
	}
	return fmt.Errorf("%w: unknown alignment %q", ErrInvalidConfig, text)
}

// RenderConfig controls how rows are rendered. Per-column settings are keyed
// by column name; columns without an entry use the default. Settings a
// format has no use for are ignored by it.
type RenderConfig struct {
	// Columns retains only the named columns. Nil keeps every column.
	Columns []string `yaml:"columns"`

	// NoHeader omits the header row from CSV, TSV, Table and HTML.
	// Markdown always has a header.
	NoHeader bool `yaml:"no_header"`

	// Title is rendered above a bordered table and as the HTML caption.
	Title string `yaml:"title"`

	// Border is the table border style. Default: BorderRounded.
	Border BorderStyle `yaml:"border"`

	// Align sets per-column alignment for Table, Markdown and HTML.
	Align map[string]Alignment `yaml:"align"`

	// Footer is a row rendered below Table and HTML bodies.
	Footer []string `yaml:"footer"`

	// Numbered prepends a right-aligned row number column to Table.
	Numbered     bool   `yaml:"numbered"`
	NumberHeader string `yaml:"number_header"`

	// Caption is a line written below a Table.
	Caption string `yaml:"caption"`

	// MaxWidths truncates Table cells wider than the limit with "...".
	MaxWidths map[string]int `yaml:"max_widths"`

	// WrapWidths wraps Table cells wider than the limit onto several lines.
	WrapWidths map[string]int `yaml:"wrap_widths"`

	// PageSize repeats the Table header every PageSize rows.
	PageSize int `yaml:"page_size"`

	// GroupBy names a column; Table draws a separator wherever its value
	// changes between consecutive rows.
	GroupBy string `yaml:"group_by"`

	// Delimiter is the CSV field delimiter, a single character.
	// Default: comma.
	Delimiter string `yaml:"delimiter"`

	// Indent indents JSON, JSONL and YAML output.
	Indent string `yaml:"indent"`

	// Styles wraps fully formatted Table cells, after truncation and
	// alignment, so escape codes never affect widths.
	Styles map[string]func(string) string `yaml:"-"`
}

// Validate reports settings no format can honor.
func (c *RenderConfig) Validate() error {
	var errs []error
	if c.Delimiter != "" && utf8.RuneCountInString(c.Delimiter) != 1 {
		errs = append(errs, fmt.Errorf("%w: delimiter %q must be a single character", ErrInvalidConfig, c.Delimiter))
	}
	if c.PageSize < 0 {
		errs = append(errs, fmt.Errorf("%w: negative page size %d", ErrInvalidConfig, c.PageSize))
	}
	if _, ok := borderNames[c.Border]; !ok {
		errs = append(errs, fmt.Errorf("%w: unknown border %d", ErrInvalidConfig, int(c.Border)))
	}
	return errors.Join(errs...)
}

func (c *RenderConfig) delimiter() rune {
	if c.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// LoadRenderConfig decodes a YAML render configuration. Unknown keys are
// rejected.
func LoadRenderConfig(r io.Reader) (RenderConfig, error) {
	var cfg RenderConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, ErrInvalidConfig) {
			return RenderConfig{}, err
		}
		return RenderConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// RenderOption adjusts a [RenderConfig].
type RenderOption func(*RenderConfig)

func newRenderConfig(opts []RenderOption) *RenderConfig {
	cfg := &RenderConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithConfig replaces the configuration built so far with cfg.
func WithConfig(cfg RenderConfig) RenderOption {
	return func(c *RenderConfig) { *c = cfg }
}

// WithColumns retains only the named columns.
func WithColumns(names ...string) RenderOption {
	return func(c *RenderConfig) { c.Columns = names }
}

// WithoutHeader omits the header row.
func WithoutHeader() RenderOption {
	return func(c *RenderConfig) { c.NoHeader = true }
}

// WithTitle sets the table title.
func WithTitle(title string) RenderOption {
	return func(c *RenderConfig) { c.Title = title }
}

// WithBorder sets the table border style.
func WithBorder(b BorderStyle) RenderOption {
	return func(c *RenderConfig) { c.Border = b }
}

// WithAlign sets the alignment of one column.
func WithAlign(column string, a Alignment) RenderOption {
	return func(c *RenderConfig) {
		if c.Align == nil {
			c.Align = make(map[string]Alignment)
		}
		c.Align[column] = a
	}
}

// WithFooter sets the footer row.
func WithFooter(cells ...string) RenderOption {
	return func(c *RenderConfig) { c.Footer = cells }
}

// WithNumbers prepends a row number column with the given header.
func WithNumbers(header string) RenderOption {
	return func(c *RenderConfig) { c.Numbered, c.NumberHeader = true, header }
}

// WithCaption sets the line written below the table.
func WithCaption(caption string) RenderOption {
	return func(c *RenderConfig) { c.Caption = caption }
}

// WithMaxWidth truncates one column at n display cells.
func WithMaxWidth(column string, n int) RenderOption {
	return func(c *RenderConfig) {
		if c.MaxWidths == nil {
			c.MaxWidths = make(map[string]int)
		}
		c.MaxWidths[column] = n
	}
}

// WithWrapWidth wraps one column at n display cells.
func WithWrapWidth(column string, n int) RenderOption {
	return func(c *RenderConfig) {
		if c.WrapWidths == nil {
			c.WrapWidths = make(map[string]int)
		}
		c.WrapWidths[column] = n
	}
}

// WithPageSize repeats the header every n rows.
func WithPageSize(n int) RenderOption {
	return func(c *RenderConfig) { c.PageSize = n }
}

// WithGroupBy separates runs of equal values in column.
func WithGroupBy(column string) RenderOption {
	return func(c *RenderConfig) { c.GroupBy = column }
}

// WithDelimiter sets the CSV field delimiter.
func WithDelimiter(d rune) RenderOption {
	return func(c *RenderConfig) { c.Delimiter = string(d) }
}

// WithIndent indents JSON, JSONL and YAML output.
func WithIndent(indent string) RenderOption {
	return func(c *RenderConfig) { c.Indent = indent }
}

// WithStyle styles the cells of one column in Table output.
func WithStyle(column string, fn func(string) string) RenderOption {
	return func(c *RenderConfig) {
		if c.Styles == nil {
			c.Styles = make(map[string]func(string) string)
		}
		c.Styles[column] = fn
	}
}
