package csv

import (
	"runtime"
	"strings"
)

// QuoteMode is the policy controlling when output fields are wrapped in
// the quote character.
type QuoteMode int

const (
	// QuoteMinimal quotes only fields that would otherwise be ambiguous:
	// ones containing the delimiter, quote, escape or a line terminator,
	// or starting/ending in characters the parser treats leniently.
	QuoteMinimal QuoteMode = iota
	// QuoteAll quotes every field, nulls included.
	QuoteAll
	// QuoteAllNonNull quotes every field except nulls, which lets the
	// parser tell a quoted empty string from an absent value.
	QuoteAllNonNull
	// QuoteNonNumeric quotes every non-numeric, non-null field.
	QuoteNonNumeric
	// QuoteNone never quotes; everything goes through the escape
	// character, which must therefore be configured.
	QuoteNone
)

// String returns the name of the quote mode.
func (m QuoteMode) String() string {
	switch m {
	case QuoteMinimal:
		return "minimal"
	case QuoteAll:
		return "all"
	case QuoteAllNonNull:
		return "all-non-null"
	case QuoteNonNumeric:
		return "non-numeric"
	case QuoteNone:
		return "none"
	default:
		return "unknown"
	}
}

// isStrict reports whether the mode changes null/empty disambiguation on
// the parse side (the two "strict" modes).
func (m QuoteMode) isStrict() bool {
	return m == QuoteAllNonNull || m == QuoteNonNumeric
}

type headerMode int

const (
	headerNone headerMode = iota
	headerFromInput
	headerExplicit
)

// Dialect is the complete configuration governing how text is tokenized
// and produced. A Dialect is immutable once built: NewDialect validates
// every invariant exactly once, and parsers and printers copy the value at
// construction, so mutating a caller-held variable never affects in-flight
// work.
//
// The zero Dialect is not usable; start from NewDialect or a preset.
type Dialect struct {
	delimiter       string
	quote           rune
	escape          rune
	comment         rune
	quoteMode       QuoteMode
	recordSeparator string
	nullString      string
	hasNullString   bool

	headerMode headerMode
	header     []string

	ignoreEmptyLines          bool
	ignoreSurroundingSpaces   bool
	ignoreHeaderCase          bool
	allowMissingColumnNames   bool
	allowDuplicateHeaderNames bool
	skipHeaderRecord          bool
	trim                      bool
	trailingDelimiter         bool
	autoFlush                 bool
}

// Option configures a Dialect under construction.
type Option func(*Dialect)

// WithDelimiter sets the field delimiter. It may be longer than one
// character and must not contain a line terminator.
func WithDelimiter(d string) Option {
	return func(c *Dialect) { c.delimiter = d }
}

// WithQuote sets the quote character; 0 disables quoting entirely.
func WithQuote(q rune) Option {
	return func(c *Dialect) { c.quote = q }
}

// WithEscape sets the escape character; 0 disables escaping.
func WithEscape(e rune) Option {
	return func(c *Dialect) { c.escape = e }
}

// WithComment sets the comment marker; 0 disables comment handling.
func WithComment(m rune) Option {
	return func(c *Dialect) { c.comment = m }
}

// WithQuoteMode sets the output quoting policy.
func WithQuoteMode(m QuoteMode) Option {
	return func(c *Dialect) { c.quoteMode = m }
}

// WithRecordSeparator sets the separator written between output records.
// Input accepts CR, LF and CRLF regardless of this setting.
func WithRecordSeparator(s string) Option {
	return func(c *Dialect) { c.recordSeparator = s }
}

// WithNullString sets the text that represents a null field on the wire.
// The empty string is a valid null string and is distinct from having
// none configured.
func WithNullString(s string) Option {
	return func(c *Dialect) {
		c.nullString = s
		c.hasNullString = true
	}
}

// WithoutNullString removes a configured null string.
func WithoutNullString() Option {
	return func(c *Dialect) {
		c.nullString = ""
		c.hasNullString = false
	}
}

// WithHeader configures the header. With explicit names those become the
// column names; with no arguments the header is read from the first input
// record. The name list is copied.
func WithHeader(names ...string) Option {
	return func(c *Dialect) {
		if len(names) == 0 {
			c.headerMode = headerFromInput
			c.header = nil
			return
		}
		c.headerMode = headerExplicit
		c.header = append([]string(nil), names...)
	}
}

// WithoutHeader disables header handling; name lookups are unsupported.
func WithoutHeader() Option {
	return func(c *Dialect) {
		c.headerMode = headerNone
		c.header = nil
	}
}

// WithIgnoreEmptyLines controls whether blank input lines are skipped
// instead of producing a single empty field record.
func WithIgnoreEmptyLines(on bool) Option {
	return func(c *Dialect) { c.ignoreEmptyLines = on }
}

// WithIgnoreSurroundingSpaces controls trimming of spaces around unquoted
// fields during parsing.
func WithIgnoreSurroundingSpaces(on bool) Option {
	return func(c *Dialect) { c.ignoreSurroundingSpaces = on }
}

// WithIgnoreHeaderCase makes header name lookups case-insensitive.
func WithIgnoreHeaderCase(on bool) Option {
	return func(c *Dialect) { c.ignoreHeaderCase = on }
}

// WithAllowMissingColumnNames permits blank header names. Blank names stay
// in the ordered name list but are excluded from name lookup.
func WithAllowMissingColumnNames(on bool) Option {
	return func(c *Dialect) { c.allowMissingColumnNames = on }
}

// WithAllowDuplicateHeaderNames permits repeated non-blank header names.
// Lookup of a duplicated name resolves to its last occurrence.
func WithAllowDuplicateHeaderNames(on bool) Option {
	return func(c *Dialect) { c.allowDuplicateHeaderNames = on }
}

// WithSkipHeaderRecord controls whether, with an explicit header, the
// first input record is consumed and discarded on parse, and whether the
// header record is written on print.
func WithSkipHeaderRecord(on bool) Option {
	return func(c *Dialect) { c.skipHeaderRecord = on }
}

// WithTrim controls whitespace trimming of parsed and printed values.
func WithTrim(on bool) Option {
	return func(c *Dialect) { c.trim = on }
}

// WithTrailingDelimiter controls whether records end with a delimiter
// before the record separator; on parse a final empty field is dropped.
func WithTrailingDelimiter(on bool) Option {
	return func(c *Dialect) { c.trailingDelimiter = on }
}

// WithAutoFlush controls whether Printer.Close flushes before closing.
func WithAutoFlush(on bool) Option {
	return func(c *Dialect) { c.autoFlush = on }
}

// NewDialect builds a Dialect starting from the Default preset and
// applying opts in order. All invariants are checked here, once; the
// returned value never needs re-validation.
func NewDialect(opts ...Option) (Dialect, error) {
	return NewDialectFrom(Default(), opts...)
}

// NewDialectFrom derives a new Dialect from base, applying opts in order
// and re-validating the result. The base value is not modified.
func NewDialectFrom(base Dialect, opts ...Option) (Dialect, error) {
	d := base
	d.header = append([]string(nil), base.header...)
	for _, opt := range opts {
		opt(&d)
	}
	if err := d.validate(); err != nil {
		return Dialect{}, err
	}
	return d, nil
}

func mustDialect(d Dialect, err error) Dialect {
	if err != nil {
		panic(err)
	}
	return d
}

// validate checks the construction invariants. It runs exactly once per
// built Dialect.
func (d *Dialect) validate() error {
	if d.delimiter == "" {
		return &ConfigError{Option: "delimiter", Message: "must not be empty"}
	}
	if strings.ContainsAny(d.delimiter, "\r\n") {
		return &ConfigError{Option: "delimiter", Message: "must not contain a line terminator"}
	}
	if d.quote != 0 && strings.ContainsRune(d.delimiter, d.quote) {
		return &ConfigError{Option: "quote", Message: "must differ from the delimiter"}
	}
	if d.escape != 0 && strings.ContainsRune(d.delimiter, d.escape) {
		return &ConfigError{Option: "escape", Message: "must differ from the delimiter"}
	}
	if d.comment != 0 {
		if strings.ContainsRune(d.delimiter, d.comment) {
			return &ConfigError{Option: "comment", Message: "must differ from the delimiter"}
		}
		if d.comment == d.quote {
			return &ConfigError{Option: "comment", Message: "must differ from the quote character"}
		}
		if d.comment == d.escape {
			return &ConfigError{Option: "comment", Message: "must differ from the escape character"}
		}
	}
	if d.quoteMode == QuoteNone && d.escape == 0 {
		return &ConfigError{Option: "quote mode", Message: "quote mode none requires an escape character"}
	}
	if d.headerMode == headerExplicit && !d.allowDuplicateHeaderNames {
		seen := make(map[string]struct{}, len(d.header))
		for _, name := range d.header {
			if isBlank(name) {
				continue
			}
			key := name
			if d.ignoreHeaderCase {
				key = strings.ToLower(name)
			}
			if _, dup := seen[key]; dup {
				return &ConfigError{Option: "header", Message: "duplicate name " + name}
			}
			seen[key] = struct{}{}
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Delimiter returns the field delimiter.
func (d Dialect) Delimiter() string { return d.delimiter }

// Quote returns the quote character, or 0 when quoting is disabled.
func (d Dialect) Quote() rune { return d.quote }

// Escape returns the escape character, or 0 when escaping is disabled.
func (d Dialect) Escape() rune { return d.escape }

// Comment returns the comment marker, or 0 when comments are disabled.
func (d Dialect) Comment() rune { return d.comment }

// QuoteMode returns the output quoting policy.
func (d Dialect) QuoteMode() QuoteMode { return d.quoteMode }

// RecordSeparator returns the output record separator.
func (d Dialect) RecordSeparator() string { return d.recordSeparator }

// NullString returns the configured null string and whether one is set.
func (d Dialect) NullString() (string, bool) { return d.nullString, d.hasNullString }

// HeaderNames returns a copy of the explicit header names, if any.
func (d Dialect) HeaderNames() []string {
	return append([]string(nil), d.header...)
}

// built reports whether the value went through NewDialect. Guards against
// zero-value Dialects reaching a parser or printer.
func (d Dialect) built() bool { return d.delimiter != "" }

var (
	presetDefault = mustDialect(NewDialectFrom(Dialect{
		delimiter:        ",",
		quote:            '"',
		recordSeparator:  "\r\n",
		quoteMode:        QuoteMinimal,
		ignoreEmptyLines: true,
	}))

	presetRFC4180 = mustDialect(NewDialectFrom(presetDefault,
		WithIgnoreEmptyLines(false)))

	presetExcel = mustDialect(NewDialectFrom(presetDefault,
		WithIgnoreEmptyLines(false),
		WithAllowMissingColumnNames(true)))

	presetMySQL = mustDialect(NewDialectFrom(presetDefault,
		WithDelimiter("\t"),
		WithQuote(0),
		WithEscape('\\'),
		WithRecordSeparator("\n"),
		WithNullString("\\N"),
		WithQuoteMode(QuoteAllNonNull),
		WithIgnoreEmptyLines(false)))

	presetOracle = mustDialect(NewDialectFrom(presetDefault,
		WithEscape('\\'),
		WithRecordSeparator(osLineSeparator()),
		WithNullString("\\N"),
		WithTrim(true)))

	presetPostgreSQLCSV = mustDialect(NewDialectFrom(presetDefault,
		WithEscape('"'),
		WithRecordSeparator("\n"),
		WithNullString(""),
		WithQuoteMode(QuoteAllNonNull),
		WithIgnoreEmptyLines(false)))

	presetPostgreSQLText = mustDialect(NewDialectFrom(presetDefault,
		WithDelimiter("\t"),
		WithEscape('\\'),
		WithRecordSeparator("\n"),
		WithNullString("\\N"),
		WithQuoteMode(QuoteAllNonNull),
		WithIgnoreEmptyLines(false)))

	presetInformixUnload = mustDialect(NewDialectFrom(presetDefault,
		WithDelimiter("|"),
		WithEscape('\\'),
		WithRecordSeparator("\n")))

	presetMongoDBCSV = mustDialect(NewDialectFrom(presetDefault,
		WithEscape('"'),
		WithSkipHeaderRecord(false)))

	presetMongoDBTSV = mustDialect(NewDialectFrom(presetMongoDBCSV,
		WithDelimiter("\t")))

	presetTDF = mustDialect(NewDialectFrom(presetDefault,
		WithDelimiter("\t"),
		WithIgnoreSurroundingSpaces(true)))
)

// Default is the comma-separated, double-quoted dialect with CRLF record
// separators, minimal quoting, and blank lines skipped.
func Default() Dialect { return presetDefault }

// RFC4180 is Default without blank-line skipping, per the RFC.
func RFC4180() Dialect { return presetRFC4180 }

// Excel matches what Microsoft Excel reads and writes, locale aside.
func Excel() Dialect { return presetExcel }

// MySQL matches the defaults of MySQL's SELECT INTO OUTFILE and
// LOAD DATA INFILE: tab-delimited, no quoting, backslash escapes, \N nulls.
func MySQL() Dialect { return presetMySQL }

// Oracle matches the defaults of Oracle's SQL*Loader utility.
func Oracle() Dialect { return presetOracle }

// PostgreSQLCSV matches the defaults of PostgreSQL's COPY ... CSV.
func PostgreSQLCSV() Dialect { return presetPostgreSQLCSV }

// PostgreSQLText matches the defaults of PostgreSQL's text COPY format.
func PostgreSQLText() Dialect { return presetPostgreSQLText }

// InformixUnload matches Informix's UNLOAD TO pipe-delimited format.
func InformixUnload() Dialect { return presetInformixUnload }

// MongoDBCSV matches the format written by mongoexport --type=csv.
func MongoDBCSV() Dialect { return presetMongoDBCSV }

// MongoDBTSV matches the format written by mongoexport --type=tsv.
func MongoDBTSV() Dialect { return presetMongoDBTSV }

// TDF is the tab-delimited format with surrounding spaces ignored.
func TDF() Dialect { return presetTDF }

// Preset returns the named preset dialect. Names are the lower-case
// function names above ("default", "rfc4180", "excel", "mysql", "oracle",
// "postgresql-csv", "postgresql-text", "informix-unload", "mongodb-csv",
// "mongodb-tsv", "tdf").
func Preset(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case "default":
		return Default(), true
	case "rfc4180":
		return RFC4180(), true
	case "excel":
		return Excel(), true
	case "mysql":
		return MySQL(), true
	case "oracle":
		return Oracle(), true
	case "postgresql-csv":
		return PostgreSQLCSV(), true
	case "postgresql-text":
		return PostgreSQLText(), true
	case "informix-unload":
		return InformixUnload(), true
	case "mongodb-csv":
		return MongoDBCSV(), true
	case "mongodb-tsv":
		return MongoDBTSV(), true
	case "tdf":
		return TDF(), true
	default:
		return Dialect{}, false
	}
}

func osLineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
