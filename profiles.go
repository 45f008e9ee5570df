package swiftcsv

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// Profile is a named, serializable dialect preset: a field delimiter, one
// or more row delimiters, an optional escape scalar, and trim scalars.
// Profiles let a deployment ship a dialect as data (a YAML document)
// rather than Go literals.
type Profile struct {
	Name      string   `yaml:"name"`
	Field     string   `yaml:"field"`
	Rows      []string `yaml:"rows"`
	Escape    string   `yaml:"escape,omitempty"`
	TrimChars string   `yaml:"trim,omitempty"`
}

// ProfileSet is a named collection of Profiles, as loaded from a YAML
// document of the form:
//
//	profiles:
//	  - name: csv
//	    field: ","
//	    rows: ["\n", "\r\n"]
//	    escape: "\""
//	  - name: tsv
//	    field: "\t"
//	    rows: ["\n"]
type ProfileSet struct {
	Profiles []Profile `yaml:"profiles"`
}

// StandardProfiles returns the conventional csv/tsv/scsv/psv profiles,
// used as the fallback when no profile file is supplied.
func StandardProfiles() ProfileSet {
	return ProfileSet{Profiles: []Profile{
		{Name: "csv", Field: ",", Rows: []string{"\n", "\r\n"}, Escape: "\""},
		{Name: "tsv", Field: "\t", Rows: []string{"\n", "\r\n"}, Escape: "\""},
		{Name: "scsv", Field: ";", Rows: []string{"\n", "\r\n"}, Escape: "\""},
		{Name: "psv", Field: "|", Rows: []string{"\n", "\r\n"}, Escape: "\""},
	}}
}

// ParseProfileSet decodes a YAML document into a ProfileSet.
func ParseProfileSet(doc []byte) (ProfileSet, error) {
	var set ProfileSet
	if err := yaml.Unmarshal(doc, &set); err != nil {
		return ProfileSet{}, newError(ErrInvalidConfiguration, "malformed profile document").
			with("cause", err.Error())
	}
	return set, nil
}

// Marshal renders the ProfileSet back to YAML, primarily for round-trip
// tests and for seeding a profile file from StandardProfiles.
func (s ProfileSet) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Lookup finds the named profile, reporting invalidConfiguration if absent.
func (s ProfileSet) Lookup(name string) (Profile, error) {
	for _, p := range s.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, newError(ErrInvalidConfiguration, fmt.Sprintf("unknown profile %q", name)).
		with("profile", name)
}

// Config converts the profile into a reader Config with a concrete
// (non-inferred) dialect.
func (p Profile) Config() (Config, error) {
	if p.Field == "" {
		return Config{}, newError(ErrInvalidConfiguration, "profile field delimiter must not be empty").
			with("profile", p.Name)
	}
	if len(p.Rows) == 0 {
		return Config{}, newError(ErrInvalidConfiguration, "profile must name at least one row delimiter").
			with("profile", p.Name)
	}

	rowDelims := make([]Delimiter, len(p.Rows))
	for i, r := range p.Rows {
		if r == "" {
			return Config{}, newError(ErrInvalidConfiguration, "profile row delimiter must not be empty").
				with("profile", p.Name)
		}
		rowDelims[i] = NewDelimiter(r)
	}

	escape := NoEscape()
	if p.Escape != "" {
		escape = EscapeWith([]rune(p.Escape)[0])
	}

	trim := TrimSet{}
	if p.TrimChars != "" {
		trim = NewTrimSet([]rune(p.TrimChars)...)
	}

	return Config{
		FieldDelimiter: UseFieldDelimiter(NewDelimiter(p.Field)),
		RowDelimiter:   UseRowDelimiter(NewRowDelimiterSet(rowDelims...)),
		Escape:         escape,
		Trim:           trim,
	}, nil
}

// WriterConfig converts the profile into a WriterConfig, using only the
// first row delimiter as the writer's single row terminator.
func (p Profile) WriterConfig() (WriterConfig, error) {
	cfg, err := p.Config()
	if err != nil {
		return WriterConfig{}, err
	}
	return WriterConfig{
		FieldDelimiter: *cfg.FieldDelimiter.use,
		RowDelimiter:   cfg.RowDelimiter.use.members[0],
		Escape:         cfg.Escape,
		BOM:            BOMConvention,
	}, nil
}
