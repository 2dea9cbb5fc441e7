package semantics

import (
	"regexp"

	"github.com/goliatone/go-formfill/pkg/field"
)

func f64(v float64) *float64 { return &v }

// builtinEntries returns a fresh copy of the built-in schema table. Keywords
// are written in source form; the registry normalizes them at build time with
// the same normalizer the matcher uses on labels.
func builtinEntries() []*Entry {
	return []*Entry{
		{
			Key:  "name.first",
			Type: TypeText,
			Positive: Signals{
				Autocomplete: []string{"given-name"},
				Keywords:     []string{"first name", "given name", "legal first name"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)first[_\-]?name|fname|given[_\-]?name`),
				},
				Types: []field.ControlType{field.ControlText},
			},
			Negative: Signals{
				Keywords: []string{"last name", "family name", "middle name", "full name", "user name", "company name"},
				Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)last|surname|family`)},
			},
			Validate: validateName,
		},
		{
			Key:  "name.middle",
			Type: TypeText,
			Positive: Signals{
				Autocomplete: []string{"additional-name"},
				Keywords:     []string{"middle name", "middle initial"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)middle[_\-]?(name|initial)|mname`),
				},
				Types: []field.ControlType{field.ControlText},
			},
			Negative: Signals{
				Keywords: []string{"first name", "last name"},
			},
			Validate: validateName,
		},
		{
			Key:  "name.last",
			Type: TypeText,
			Positive: Signals{
				Autocomplete: []string{"family-name"},
				Keywords:     []string{"last name", "family name", "surname", "legal last name"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)last[_\-]?name|lname|surname|family[_\-]?name`),
				},
				Types: []field.ControlType{field.ControlText},
			},
			Negative: Signals{
				Keywords: []string{"first name", "given name", "middle name", "full name"},
				Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)first|given`)},
			},
			Validate: validateName,
		},
		{
			Key:  "name.full",
			Type: TypeText,
			Positive: Signals{
				Autocomplete: []string{"name"},
				// The bare token "name" is deliberately absent: it would
				// window-match inside almost every label. Exact "name" labels
				// resolve through the literal table instead.
				Keywords: []string{"full name", "legal name", "first and last name"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)^(full[_\-]?name|name)$`),
				},
				Types: []field.ControlType{field.ControlText},
			},
			Negative: Signals{
				Keywords: []string{"first name", "last name", "middle name", "company name", "user name", "file name", "street name", "bank name"},
				Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)user|company|business|file`)},
			},
			Validate: validateName,
		},
		{
			Key:  "email",
			Type: TypeEmail,
			Positive: Signals{
				Autocomplete: []string{"email"},
				Keywords:     []string{"email", "email address", "contact email"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)e?[-_]?mail`),
				},
				Types: []field.ControlType{field.ControlEmail},
			},
			Negative: Signals{
				Keywords: []string{"mailing address", "street"},
			},
			Validate: validateEmail,
		},
		{
			Key:  "phone",
			Type: TypePhone,
			Positive: Signals{
				Autocomplete: []string{"tel", "tel-national"},
				Keywords:     []string{"phone", "phone number", "telephone", "mobile number", "contact number"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)phone|mobile|tel(?:ephone)?[_\-]?(num|no)?`),
				},
				Types: []field.ControlType{field.ControlTel},
			},
			Negative: Signals{
				Keywords: []string{"how many", "quantity", "units", "count", "extension"},
				// A numeric cap under 100 means a counter, not a phone.
				MaxBelow: f64(100),
			},
			Validate: validatePhone,
		},
		{
			Key:  "address.street",
			Type: TypeText,
			Positive: Signals{
				Autocomplete: []string{"street-address", "address-line1"},
				Keywords:     []string{"street address", "address", "address line 1", "street", "mailing address", "home address"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)street|addr(?:ess)?[_\-]?(line)?[_\-]?1?$|address1`),
				},
				Types: []field.ControlType{field.ControlText},
			},
			Negative: Signals{
				Keywords: []string{"email", "address line 2", "address 2", "apartment", "unit", "suite", "city", "state", "postal code", "country", "ip address"},
				Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)(line|address|addr)[_\-]?2|apt|unit|suite|email|city|state|zip|country`)},
			},
			Validate: validateFreeText(200),
		},
		{
			Key:  "address.unit",
			Type: TypeText,
			Positive: Signals{
				Autocomplete: []string{"address-line2"},
				Keywords:     []string{"apartment", "unit", "suite", "apartment unit suite", "apt unit", "address line 2", "address 2", "unit number"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)apt|unit|suite|addr(?:ess)?[_\-]?(line)?[_\-]?2|address2`),
				},
				Types: []field.ControlType{field.ControlText},
			},
			Validate: validateFreeText(100),
		},
		{
			Key:  "address.city",
			Type: TypeText,
			Positive: Signals{
				Autocomplete: []string{"address-level2"},
				Keywords:     []string{"city", "town", "city town"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)city|town|locality`),
				},
				Types: []field.ControlType{field.ControlText},
			},
			Validate: validateFreeText(100),
		},
		{
			Key:  "address.state",
			Type: TypeText,
			Positive: Signals{
				Autocomplete: []string{"address-level1"},
				Keywords:     []string{"state", "province", "state province", "region"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)state|province|region`),
				},
				Types: []field.ControlType{field.ControlText, field.ControlSelect},
			},
			Negative: Signals{
				Keywords: []string{"statement", "united states"},
			},
			Validate: validateFreeText(100),
		},
		{
			Key:  "address.postal",
			Type: TypePostal,
			Positive: Signals{
				Autocomplete: []string{"postal-code"},
				Keywords:     []string{"postal code", "zip"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)zip|postal`),
				},
				Types: []field.ControlType{field.ControlText},
			},
			Validate: validatePostal,
		},
		{
			Key:  "address.country",
			Type: TypeText,
			Positive: Signals{
				Autocomplete: []string{"country", "country-name"},
				Keywords:     []string{"country"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)country`),
				},
				Types: []field.ControlType{field.ControlText, field.ControlSelect},
			},
			Negative: Signals{
				Keywords: []string{"county"},
			},
			Validate: validateFreeText(100),
		},
		{
			Key:  "dob",
			Type: TypeDate,
			Positive: Signals{
				Autocomplete: []string{"bday"},
				Keywords:     []string{"date of birth", "birth date", "dob"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)dob|birth`),
				},
				Types: []field.ControlType{field.ControlDate},
			},
			Negative: Signals{
				Keywords: []string{"purchase date", "date of purchase", "claim date"},
			},
			Validate: validateDate,
		},
		{
			Key:  "purchase.date",
			Type: TypeDate,
			Positive: Signals{
				Keywords: []string{"purchase date", "date of purchase", "transaction date", "order date"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)purchase[_\-]?date|order[_\-]?date|transaction[_\-]?date`),
				},
				Types: []field.ControlType{field.ControlDate},
			},
			Negative: Signals{
				Keywords: []string{"date of birth", "birth date"},
			},
			Validate: validateDate,
		},
		{
			Key:  "purchase.amount",
			Type: TypeNumber,
			Positive: Signals{
				Keywords: []string{"amount", "purchase amount", "total amount", "amount paid", "price paid", "total spent"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)amount|price|total[_\-]?(paid|spent)?$`),
				},
				Types: []field.ControlType{field.ControlNumber},
			},
			Negative: Signals{
				Keywords: []string{"how many", "quantity", "units"},
			},
			Validate: validateNumber,
		},
		{
			Key:  "purchase.quantity",
			Type: TypeNumber,
			Positive: Signals{
				Keywords: []string{"quantity", "number of units", "units purchased", "how many purchased"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)qty|quantity|num[_\-]?units`),
				},
				Types: []field.ControlType{field.ControlNumber},
			},
			Negative: Signals{
				Keywords: []string{"amount paid", "price"},
			},
			Validate: validateNumber,
		},
		{
			Key:  "company",
			Type: TypeText,
			Positive: Signals{
				Autocomplete: []string{"organization"},
				Keywords:     []string{"company", "company name", "employer", "organization", "business name"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)company|employer|organi[sz]ation|business`),
				},
				Types: []field.ControlType{field.ControlText},
			},
			Negative: Signals{
				Keywords: []string{"first name", "last name"},
			},
			Validate: validateFreeText(150),
		},
	}
}
