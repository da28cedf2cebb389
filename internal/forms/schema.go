package forms

import (
	"fmt"
	"sort"
	"strconv"
)

type FieldType string

const (
	Text     FieldType = "text"
	Email    FieldType = "email"
	Phone    FieldType = "phone"
	PAN      FieldType = "pan"
	Pincode  FieldType = "pincode"
	Date     FieldType = "date"
	Number   FieldType = "number"
	Document FieldType = "document"
)

type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
}

type Step struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

type Schema struct {
	Kind  Kind   `json:"kind"`
	Steps []Step `json:"steps"`
}

// Values is the content of one step: field name to primitive value or
// document reference.
type Values map[string]any

// Steps is the step-keyed shape of a whole form ("step1" -> fields).
type Steps map[string]Values

// StepName returns the key of the i-th step (zero based), e.g. "step1".
func StepName(i int) string { return "step" + strconv.Itoa(i+1) }

func (s Schema) StepNames() []string {
	names := make([]string, len(s.Steps))
	for i, st := range s.Steps {
		names[i] = st.Name
	}
	return names
}

func (s Schema) Step(name string) (Step, bool) {
	for _, st := range s.Steps {
		if st.Name == name {
			return st, true
		}
	}
	return Step{}, false
}

// Field looks up the step and definition of a field by name.
func (s Schema) Field(name string) (string, Field, bool) {
	for _, st := range s.Steps {
		for _, f := range st.Fields {
			if f.Name == name {
				return st.Name, f, true
			}
		}
	}
	return "", Field{}, false
}

// DocumentFields lists every document-typed field in step order.
func (s Schema) DocumentFields() []string {
	var out []string
	for _, st := range s.Steps {
		for _, f := range st.Fields {
			if f.Type == Document {
				out = append(out, f.Name)
			}
		}
	}
	return out
}

// Empty returns a step-keyed value set with every step present and no values.
func (s Schema) Empty() Steps {
	out := make(Steps, len(s.Steps))
	for _, st := range s.Steps {
		out[st.Name] = Values{}
	}
	return out
}

// Group maps a flat record into the step-keyed shape. Fields the schema does
// not know are dropped.
func (s Schema) Group(flat map[string]any) Steps {
	out := s.Empty()
	for _, st := range s.Steps {
		for _, f := range st.Fields {
			if v, ok := flat[f.Name]; ok && v != nil {
				out[st.Name][f.Name] = v
			}
		}
	}
	return out
}

// Flatten merges step values into one record. Later steps win on collision;
// keys that do not follow the stepN naming are merged last.
func Flatten(steps Steps) map[string]any {
	names := make([]string, 0, len(steps))
	for name := range steps {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ni, oki := stepNumber(names[i])
		nj, okj := stepNumber(names[j])
		switch {
		case oki && okj:
			return ni < nj
		case oki != okj:
			return oki
		default:
			return names[i] < names[j]
		}
	})

	out := map[string]any{}
	for _, name := range names {
		for k, v := range steps[name] {
			out[k] = v
		}
	}
	return out
}

func stepNumber(name string) (int, bool) {
	if len(name) < 5 || name[:4] != "step" {
		return 0, false
	}
	n, err := strconv.Atoi(name[4:])
	return n, err == nil
}

var schemas = map[Kind]Schema{
	GST: {Kind: GST, Steps: []Step{
		{Name: "step1", Title: "Business details", Fields: []Field{
			{Name: "businessName", Type: Text, Required: true},
			{Name: "businessType", Type: Text, Required: true},
			{Name: "panNumber", Type: PAN, Required: true},
			{Name: "email", Type: Email, Required: true},
			{Name: "phone", Type: Phone, Required: true},
			{Name: "commencementDate", Type: Date},
		}},
		{Name: "step2", Title: "Principal place of business", Fields: []Field{
			{Name: "addressLine1", Type: Text, Required: true},
			{Name: "addressLine2", Type: Text},
			{Name: "city", Type: Text, Required: true},
			{Name: "state", Type: Text, Required: true},
			{Name: "pincode", Type: Pincode, Required: true},
		}},
		{Name: "step3", Title: "Promoter", Fields: []Field{
			{Name: "promoterName", Type: Text, Required: true},
			{Name: "promoterPan", Type: PAN, Required: true},
			{Name: "promoterAadhaar", Type: Text, Required: true},
			{Name: "promoterPhone", Type: Phone},
		}},
		{Name: "step4", Title: "Documents", Fields: []Field{
			{Name: "panCardUrl", Type: Document, Required: true},
			{Name: "addressProofUrl", Type: Document, Required: true},
			{Name: "photoUrl", Type: Document, Required: true},
			{Name: "bankStatementUrl", Type: Document},
		}},
	}},
	StartupIndia: {Kind: StartupIndia, Steps: []Step{
		{Name: "step1", Title: "Entity details", Fields: []Field{
			{Name: "entityName", Type: Text, Required: true},
			{Name: "entityType", Type: Text, Required: true},
			{Name: "incorporationNumber", Type: Text, Required: true},
			{Name: "incorporationDate", Type: Date, Required: true},
			{Name: "sector", Type: Text, Required: true},
		}},
		{Name: "step2", Title: "Founder", Fields: []Field{
			{Name: "founderName", Type: Text, Required: true},
			{Name: "founderEmail", Type: Email, Required: true},
			{Name: "founderPhone", Type: Phone, Required: true},
			{Name: "teamSize", Type: Number},
		}},
		{Name: "step3", Title: "Innovation", Fields: []Field{
			{Name: "problemStatement", Type: Text, Required: true},
			{Name: "solution", Type: Text, Required: true},
			{Name: "uniqueness", Type: Text},
			{Name: "revenueModel", Type: Text},
		}},
		{Name: "step4", Title: "Documents", Fields: []Field{
			{Name: "incorporationCertUrl", Type: Document, Required: true},
			{Name: "pitchDeckUrl", Type: Document},
			{Name: "authorizationLetterUrl", Type: Document},
		}},
	}},
	PrivateLimited: {Kind: PrivateLimited, Steps: []Step{
		{Name: "step1", Title: "Company", Fields: []Field{
			{Name: "proposedName1", Type: Text, Required: true},
			{Name: "proposedName2", Type: Text},
			{Name: "businessActivity", Type: Text, Required: true},
			{Name: "authorisedCapital", Type: Number, Required: true},
			{Name: "paidUpCapital", Type: Number, Required: true},
		}},
		{Name: "step2", Title: "Directors", Fields: []Field{
			{Name: "director1Name", Type: Text, Required: true},
			{Name: "director1Email", Type: Email, Required: true},
			{Name: "director1Phone", Type: Phone, Required: true},
			{Name: "director1Pan", Type: PAN, Required: true},
			{Name: "director2Name", Type: Text, Required: true},
			{Name: "director2Email", Type: Email, Required: true},
			{Name: "director2Phone", Type: Phone, Required: true},
			{Name: "director2Pan", Type: PAN, Required: true},
		}},
		{Name: "step3", Title: "Registered office", Fields: []Field{
			{Name: "officeAddress", Type: Text, Required: true},
			{Name: "city", Type: Text, Required: true},
			{Name: "state", Type: Text, Required: true},
			{Name: "pincode", Type: Pincode, Required: true},
			{Name: "ownershipType", Type: Text, Required: true},
		}},
		{Name: "step4", Title: "Documents", Fields: []Field{
			{Name: "director1PanUrl", Type: Document, Required: true},
			{Name: "director2PanUrl", Type: Document, Required: true},
			{Name: "utilityBillUrl", Type: Document, Required: true},
			{Name: "nocUrl", Type: Document},
		}},
	}},
	Proprietorship: {Kind: Proprietorship, Steps: []Step{
		{Name: "step1", Title: "Proprietor", Fields: []Field{
			{Name: "proprietorName", Type: Text, Required: true},
			{Name: "email", Type: Email, Required: true},
			{Name: "phone", Type: Phone, Required: true},
			{Name: "panNumber", Type: PAN, Required: true},
		}},
		{Name: "step2", Title: "Business", Fields: []Field{
			{Name: "businessName", Type: Text, Required: true},
			{Name: "natureOfBusiness", Type: Text, Required: true},
			{Name: "businessAddress", Type: Text, Required: true},
			{Name: "city", Type: Text, Required: true},
			{Name: "state", Type: Text, Required: true},
			{Name: "pincode", Type: Pincode, Required: true},
		}},
		{Name: "step3", Title: "Documents", Fields: []Field{
			{Name: "panCardUrl", Type: Document, Required: true},
			{Name: "aadhaarCardUrl", Type: Document, Required: true},
			{Name: "shopPhotoUrl", Type: Document},
		}},
	}},
}

// SchemaFor returns the schema of a registration kind.
func SchemaFor(k Kind) (Schema, error) {
	s, ok := schemas[k]
	if !ok {
		return Schema{}, fmt.Errorf("no schema for kind %q", k)
	}
	return s, nil
}

// MustSchema is SchemaFor for kinds known at compile time.
func MustSchema(k Kind) Schema {
	s, err := SchemaFor(k)
	if err != nil {
		panic(err)
	}
	return s
}
