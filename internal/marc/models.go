package marc

import "strings"

// Record represents one MARC bibliographic record in field/subfield form,
// as exported by catalog dumps (one JSON object per line).
type Record struct {
	Leader string  `json:"leader,omitempty" parquet:"leader,optional"`
	Fields []Field `json:"fields" parquet:"fields,list"`
}

// Field is a single tagged field. Control fields (00X) carry a flat Value;
// data fields carry indicators and subfields.
type Field struct {
	Tag       string     `json:"tag" parquet:"tag"`
	Value     string     `json:"value,omitempty" parquet:"value,optional"`
	Ind1      string     `json:"ind1,omitempty" parquet:"ind1,optional"`
	Ind2      string     `json:"ind2,omitempty" parquet:"ind2,optional"`
	Subfields []Subfield `json:"subfields,omitempty" parquet:"subfields,list"`
}

// Subfield is one coded value inside a data field.
type Subfield struct {
	Code  string `json:"code" parquet:"code"`
	Value string `json:"value" parquet:"value"`
}

// IsControl reports whether the field is a control field (tags 001-009).
func (f *Field) IsControl() bool {
	return strings.HasPrefix(f.Tag, "00")
}

// FieldsByTag returns all fields with the given tag, in document order.
func (r *Record) FieldsByTag(tag string) []Field {
	var out []Field
	for _, f := range r.Fields {
		if f.Tag == tag {
			out = append(out, f)
		}
	}
	return out
}

// ControlValue returns the value of the first control field with the given
// tag, or "" when absent.
func (r *Record) ControlValue(tag string) string {
	for _, f := range r.Fields {
		if f.Tag == tag {
			return f.Value
		}
	}
	return ""
}

// Subfield returns the value of the first subfield with the given code,
// or "" when absent.
func (f *Field) Subfield(code string) string {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return sf.Value
		}
	}
	return ""
}

// Subfields returns the values of every subfield with the given code,
// in document order.
func (f *Field) SubfieldValues(code string) []string {
	var out []string
	for _, sf := range f.Subfields {
		if sf.Code == code {
			out = append(out, sf.Value)
		}
	}
	return out
}
