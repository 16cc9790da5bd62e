// Package crosswalk maps the logical roll-forward fields to the column headers
// used by a particular facility extract.
package crosswalk

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"arac/ar-rollforward/internal/arerror"
	"arac/ar-rollforward/internal/models"

	"gopkg.in/yaml.v3"
)

// OptionalFields may be mapped to an empty header, meaning the extract has no
// such column and the field loads as blank.
var OptionalFields = map[string]bool{
	models.FieldAging: true,
}

// Crosswalk is a validated mapping from every logical field to a source header.
type Crosswalk struct {
	headers map[string]string
	source  string
}

// New validates m and returns a Crosswalk. Every required field must be
// present and no unknown keys are allowed.
func New(m map[string]string, source string) (*Crosswalk, error) {
	headers := make(map[string]string, len(m))
	for k, v := range m {
		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	required := make(map[string]bool, len(models.RequiredFields))
	var missing, empty []string
	for _, field := range models.RequiredFields {
		required[field] = true
		header, ok := headers[field]
		if !ok {
			missing = append(missing, field)
			continue
		}
		if header == "" && !OptionalFields[field] {
			empty = append(empty, field)
		}
	}

	var unknown []string
	for k := range headers {
		if !required[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)

	if len(missing) > 0 || len(unknown) > 0 || len(empty) > 0 {
		cerr := &arerror.CrosswalkError{FilePath: source, Missing: missing, Unknown: unknown}
		if len(empty) > 0 {
			cerr.Msg = "no source header for " + strings.Join(empty, ", ")
		}
		return nil, cerr
	}
	return &Crosswalk{headers: headers, source: source}, nil
}

// Default returns the identity crosswalk: every source header equals its logical name.
func Default() *Crosswalk {
	m := make(map[string]string, len(models.RequiredFields))
	for _, field := range models.RequiredFields {
		m[field] = field
	}
	return &Crosswalk{headers: m, source: "default"}
}

// CroweExtract returns the crosswalk for the standard analysis extract, which
// has no aging column.
func CroweExtract() *Crosswalk {
	return &Crosswalk{
		source: "crowe",
		headers: map[string]string{
			models.FieldNumber:       "Account Number",
			models.FieldFacility:     "Source Facility",
			models.FieldAging:        "",
			models.FieldFCBegin:      "Financial Class Beginning",
			models.FieldFCEnd:        "Financial Class Ending",
			models.FieldStartDate:    "ATB Date - Min",
			models.FieldEndDate:      "ATB Date - Max",
			models.FieldBeginBalance: "Beginning AR Balance",
			models.FieldCharges:      "Charges",
			models.FieldAdmin:        "Admin",
			models.FieldBadDebt:      "Bad Debt",
			models.FieldCharity:      "Charity",
			models.FieldContractuals: "Contractuals",
			models.FieldDenials:      "Denials",
			models.FieldPayments:     "Payments",
			models.FieldEndBalance:   "Ending AR Balance",
			models.FieldReserveBegin: "MRA - Estimated Reserve Beginning",
			models.FieldReserveEnd:   "MRA - Estimated Reserve Ending",
		},
	}
}

// Builtin returns a named built-in crosswalk.
func Builtin(name string) (*Crosswalk, bool) {
	switch strings.ToLower(name) {
	case "", "default":
		return Default(), true
	case "crowe":
		return CroweExtract(), true
	}
	return nil, false
}

// Header returns the source header for a logical field, or "" if the field is
// unmapped.
func (c *Crosswalk) Header(field string) string {
	return c.headers[field]
}

// Source names where the crosswalk came from: a file path or a built-in name.
func (c *Crosswalk) Source() string {
	return c.source
}

// SourceHeaders returns the mapped source headers in field order, skipping
// unmapped optional fields.
func (c *Crosswalk) SourceHeaders() []string {
	out := make([]string, 0, len(models.RequiredFields))
	for _, field := range models.RequiredFields {
		if h := c.headers[field]; h != "" {
			out = append(out, h)
		}
	}
	return out
}

// Load reads a crosswalk file. Files ending in .yaml or .yml are parsed as a
// YAML mapping; anything else uses the "key = value" text format.
func Load(path string) (*Crosswalk, error) {
	resolved, err := FindFile(path)
	if err != nil {
		return nil, fmt.Errorf("crosswalk file %s: %w", path, err)
	}
	data, err := os.ReadFile(resolved) // #nosec G304 -- path supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("error reading crosswalk file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		return ParseYAML(data, resolved)
	default:
		return Parse(bytes.NewReader(data), resolved)
	}
}

// FindFile resolves a crosswalk path. Relative names are looked up in the
// working directory, then ./config, then ~/.arac.
func FindFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".arac", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Parse reads the text format: one `field = header` pair per line. Lines
// starting with # and blank lines are skipped and double quotes are removed.
func Parse(r io.Reader, source string) (*Crosswalk, error) {
	m := make(map[string]string)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		parts := strings.Split(text, "=")
		if len(parts) != 2 {
			return nil, &arerror.CrosswalkError{
				FilePath: source,
				Line:     line,
				Msg:      fmt.Sprintf("expected 'field = header', got %q", text),
			}
		}
		key := unquote(parts[0])
		if _, dup := m[key]; dup {
			return nil, &arerror.CrosswalkError{
				FilePath: source,
				Line:     line,
				Msg:      fmt.Sprintf("field %q mapped twice", key),
			}
		}
		m[key] = unquote(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading crosswalk %s: %w", source, err)
	}
	return New(m, source)
}

// ParseYAML reads a YAML mapping of field to header.
func ParseYAML(data []byte, source string) (*Crosswalk, error) {
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &arerror.CrosswalkError{FilePath: source, Msg: err.Error()}
	}
	return New(m, source)
}

// WriteText writes the crosswalk in the text format, fields in report order.
func (c *Crosswalk) WriteText(w io.Writer) error {
	for _, field := range models.RequiredFields {
		if _, err := fmt.Fprintf(w, "%s = %s\n", field, c.headers[field]); err != nil {
			return err
		}
	}
	return nil
}

// WriteYAML writes the crosswalk as a YAML mapping, fields in report order.
func (c *Crosswalk) WriteYAML(w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range models.RequiredFields {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field, Style: yaml.DoubleQuotedStyle},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.headers[field], Style: yaml.DoubleQuotedStyle},
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("error encoding crosswalk: %w", err)
	}
	return enc.Close()
}

func unquote(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}
