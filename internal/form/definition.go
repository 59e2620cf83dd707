package form

import "fmt"

// FieldType selects which validation rule applies to a field's value.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldEmail  FieldType = "email"
	FieldPhone  FieldType = "phone"
	FieldDate   FieldType = "date"
	FieldSelect FieldType = "select"
	// FieldChoice marks mutually-exclusive choice groups (radio-button
	// style). Validation treats them like plain text; the draft store
	// persists an unselected group as "".
	FieldChoice FieldType = "choice"
)

// FieldSpec describes one form field.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
}

// Definition is the full field set of one form, in display order.
type Definition struct {
	ID     string // form identifier, also the draft store key
	Type   Type
	Fields []FieldSpec
}

// Spec returns the spec for a named field, if the form has one.
func (d Definition) Spec(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// BookingForm mirrors the booking request form on the contact page.
var BookingForm = Definition{
	ID:   "booking-form",
	Type: TypeBooking,
	Fields: []FieldSpec{
		{Name: "name", Type: FieldText, Required: true},
		{Name: "email", Type: FieldEmail, Required: true},
		{Name: "phone", Type: FieldPhone},
		{Name: "guests", Type: FieldSelect, Required: true},
		{Name: "checkin", Type: FieldDate, Required: true},
		{Name: "checkout", Type: FieldDate, Required: true},
		{Name: "room", Type: FieldSelect},
		{Name: "message", Type: FieldText},
	},
}

// ReviewForm mirrors the guest review form.
var ReviewForm = Definition{
	ID:   "review-form",
	Type: TypeReview,
	Fields: []FieldSpec{
		{Name: "name", Type: FieldText, Required: true},
		{Name: "email", Type: FieldEmail, Required: true},
		{Name: "satisfaction", Type: FieldChoice, Required: true},
		{Name: "recommend", Type: FieldChoice, Required: true},
		{Name: "cleanliness", Type: FieldSelect, Required: true},
		{Name: "service", Type: FieldSelect, Required: true},
		{Name: "problems", Type: FieldText},
		{Name: "improvements", Type: FieldText},
		{Name: "comments", Type: FieldText},
	},
}

// DefinitionFor maps a form type to its definition.
func DefinitionFor(t Type) (Definition, error) {
	switch t {
	case TypeBooking:
		return BookingForm, nil
	case TypeReview:
		return ReviewForm, nil
	default:
		return Definition{}, fmt.Errorf("no form definition for type %q", t)
	}
}
