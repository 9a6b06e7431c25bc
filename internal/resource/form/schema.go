package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ridloal/hidayah-backoffice/internal/platform/validation"
	"github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

type Kind int

const (
	Text Kind = iota
	Number
	Integer
	Choice
)

type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	Default  string
	// Options yields the allowed values of a Choice field. It is called at validation
	// time, so choices loaded from another collection stay current.
	Options func() []string
}

func (f Field) choices() []string {
	if f.Options == nil {
		return nil
	}
	return f.Options()
}

// StaticOptions is a helper for Choice fields with a fixed value set.
func StaticOptions(values ...string) func() []string {
	return func() []string { return values }
}

// Draft holds the raw text the user typed, keyed by field name.
type Draft map[string]string

func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (d Draft) Text(name string) string {
	return strings.TrimSpace(d[name])
}

// Decimal returns the parsed value, or zero when the field is empty.
func (d Draft) Decimal(name string) decimal.Decimal {
	v, err := decimal.NewFromString(d.Text(name))
	if err != nil {
		return decimal.Zero
	}
	return v
}

func (d Draft) Int(name string) int {
	v, err := strconv.Atoi(d.Text(name))
	if err != nil {
		return 0
	}
	return v
}

// Schema describes how one resource type is edited.
type Schema[T domain.Record] struct {
	Fields []Field
	Fill   func(rec T) Draft
	// Build turns a validated Draft into a record. id is 0 in add mode.
	Build func(id domain.ID, d Draft) T
}

func (s Schema[T]) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema[T]) Defaults() Draft {
	d := make(Draft, len(s.Fields))
	for _, f := range s.Fields {
		d[f.Name] = f.Default
	}
	return d
}

// Validate checks presence, numeric coercion and choice membership, then runs the
// struct tags of the built record. Nothing here talks to the network.
func (s Schema[T]) Validate(id domain.ID, d Draft) (T, error) {
	var zero T
	errs := domain.ValidationErrors{}
	for _, f := range s.Fields {
		raw := d.Text(f.Name)
		if raw == "" {
			if f.Required {
				errs.Add(f.Name, "wajib diisi")
			}
			continue
		}
		switch f.Kind {
		case Number:
			v, err := decimal.NewFromString(raw)
			if err != nil {
				errs.Add(f.Name, "harus berupa angka")
			} else if v.IsNegative() {
				errs.Add(f.Name, "tidak boleh negatif")
			}
		case Integer:
			v, err := strconv.Atoi(raw)
			if err != nil {
				errs.Add(f.Name, "harus berupa bilangan bulat")
			} else if v < 0 {
				errs.Add(f.Name, "tidak boleh negatif")
			}
		case Choice:
			if opts := f.choices(); len(opts) > 0 && !contains(opts, raw) {
				errs.Add(f.Name, fmt.Sprintf("harus salah satu dari: %s", strings.Join(opts, ", ")))
			}
		}
	}
	if err := errs.OrNil(); err != nil {
		return zero, err
	}

	rec := s.Build(id, d)
	if err := validation.Validator().Struct(rec); err != nil {
		for field, msg := range validation.Fields(err) {
			errs.Add(field, msg)
		}
		if len(errs) == 0 {
			return zero, fmt.Errorf("validate record: %w", err)
		}
		return zero, errs
	}
	return rec, nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
