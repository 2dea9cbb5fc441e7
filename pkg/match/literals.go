package match

// literalRule maps one normalized label verbatim to a key. Rules are
// evaluated in order and the first hit wins, so the unit/apartment rules sit
// above the street rules: "address line 2" must resolve to address.unit even
// though it shares most of its tokens with "address line 1". That ordering is
// a contract, not a tie-break.
type literalRule struct {
	label string
	key   string
}

// defaultLiterals is the hand-curated table for Tier 1.5. Labels are written
// in normalized form.
var defaultLiterals = []literalRule{
	// Unit/apartment before street.
	{"address line 2", "address.unit"},
	{"address 2", "address.unit"},
	{"apartment unit suite", "address.unit"},
	{"apartment unit", "address.unit"},
	{"unit suite", "address.unit"},
	{"apartment", "address.unit"},
	{"suite", "address.unit"},
	{"unit number", "address.unit"},

	{"address line 1", "address.street"},
	{"address 1", "address.street"},
	{"street address", "address.street"},
	{"address", "address.street"},
	{"street", "address.street"},

	{"first name", "name.first"},
	{"given name", "name.first"},
	{"middle name", "name.middle"},
	{"middle initial", "name.middle"},
	{"last name", "name.last"},
	{"family name", "name.last"},
	{"surname", "name.last"},
	{"full name", "name.full"},
	{"name", "name.full"},

	{"email", "email"},
	{"email address", "email"},
	{"phone", "phone"},
	{"phone number", "phone"},

	{"postal code", "address.postal"},
	{"city", "address.city"},
	{"town", "address.city"},
	{"state", "address.state"},
	{"province", "address.state"},
	{"country", "address.country"},

	{"date birth", "dob"},
	{"amount", "purchase.amount"},
	{"quantity", "purchase.quantity"},
	{"company", "company"},
	{"company name", "company"},
	{"employer", "company"},
}
