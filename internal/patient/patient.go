// Package patient holds the registration domain model: the raw draft a form
// submits, the normalized record that leaves the service, and the pure
// validators the schema layer builds on.
package patient

import (
	"fmt"
	"strconv"

	"patient-intake/pkg/apperrors"
)

// HMO is one of the four insurer codes a patient can register under.
type HMO string

const (
	HMOClalit   HMO = "clalit"
	HMOMaccabi  HMO = "maccabi"
	HMOMeuhedet HMO = "meuhedet"
	HMOLeumit   HMO = "leumit"
)

// ParseHMO validates an insurer code.
func ParseHMO(s string) (HMO, error) {
	switch HMO(s) {
	case HMOClalit, HMOMaccabi, HMOMeuhedet, HMOLeumit:
		return HMO(s), nil
	}
	return "", apperrors.New(apperrors.CodeValidation, fmt.Sprintf("unknown hmo %q", s))
}

// PhoneType classifies a phone entry.
type PhoneType string

const (
	PhoneHome   PhoneType = "home"
	PhoneMobile PhoneType = "mobile"
	PhoneWork   PhoneType = "work"
	PhoneOther  PhoneType = "other"
)

// ParsePhoneType validates a phone type.
func ParsePhoneType(s string) (PhoneType, error) {
	switch PhoneType(s) {
	case PhoneHome, PhoneMobile, PhoneWork, PhoneOther:
		return PhoneType(s), nil
	}
	return "", apperrors.New(apperrors.CodeValidation, fmt.Sprintf("unknown phone type %q", s))
}

// AddressType classifies an address entry.
type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

// ParseAddressType validates an address type.
func ParseAddressType(s string) (AddressType, error) {
	switch AddressType(s) {
	case AddressHome, AddressWork, AddressOther:
		return AddressType(s), nil
	}
	return "", apperrors.New(apperrors.CodeValidation, fmt.Sprintf("unknown address type %q", s))
}

// Draft is the raw form submission before validation. Field values are
// whatever the form sent; the street number arrives as text and is coerced
// during validation.
type Draft struct {
	ID           string         `json:"id"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	HMO          string         `json:"hmo"`
	PhoneNumbers []PhoneDraft   `json:"phoneNumbers"`
	Addresses    []AddressDraft `json:"addresses"`
}

// PhoneDraft is one raw phone row.
type PhoneDraft struct {
	Type   string `json:"type"`
	Number string `json:"number"`
	IsMain bool   `json:"isMain"`
}

// AddressDraft is one raw address row. City and street carry denormalized
// code/name pairs: the name is cached for display, the code is authoritative.
type AddressDraft struct {
	CityCode     string `json:"cityCode"`
	CityName     string `json:"cityName"`
	StreetCode   string `json:"streetCode"`
	StreetName   string `json:"streetName"`
	StreetNumber string `json:"streetNumber"`
	AddressType  string `json:"addressType"`
	Comments     string `json:"comments,omitempty"`
}

// Record is a validated, normalized patient registration. Instances exist
// only for the duration of a submission; nothing here is persisted.
type Record struct {
	ID           string         `json:"id"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	HMO          HMO            `json:"hmo"`
	PhoneNumbers []PhoneEntry   `json:"phoneNumbers"`
	Addresses    []AddressEntry `json:"addresses"`
}

// PhoneEntry is a validated phone row.
type PhoneEntry struct {
	Type   PhoneType `json:"type"`
	Number string    `json:"number"`
	IsMain bool      `json:"isMain"`
}

// AddressEntry is a validated address row.
type AddressEntry struct {
	CityCode     string      `json:"cityCode"`
	CityName     string      `json:"cityName"`
	StreetCode   string      `json:"streetCode"`
	StreetName   string      `json:"streetName"`
	StreetNumber int         `json:"streetNumber"`
	AddressType  AddressType `json:"addressType"`
	Comments     string      `json:"comments,omitempty"`
}

// Draft converts a normalized record back into draft form, as when a form is
// re-populated for editing. Validating the result of a successful validation
// must yield zero errors again.
func (r Record) Draft() Draft {
	d := Draft{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		HMO:       string(r.HMO),
	}
	for _, p := range r.PhoneNumbers {
		d.PhoneNumbers = append(d.PhoneNumbers, PhoneDraft{
			Type:   string(p.Type),
			Number: p.Number,
			IsMain: p.IsMain,
		})
	}
	for _, a := range r.Addresses {
		d.Addresses = append(d.Addresses, AddressDraft{
			CityCode:     a.CityCode,
			CityName:     a.CityName,
			StreetCode:   a.StreetCode,
			StreetName:   a.StreetName,
			StreetNumber: strconv.Itoa(a.StreetNumber),
			AddressType:  string(a.AddressType),
			Comments:     a.Comments,
		})
	}
	return d
}

// MaxCommentsLength caps the free-text comments field on an address.
const MaxCommentsLength = 500

// DefaultStreetNumber seeds new address rows. Defaults live here, named and
// explicit, so validation logic never has to invent values.
const DefaultStreetNumber = "1"

// DefaultDraft returns the empty form the UI starts a session from: one main
// phone row and one home address row, satisfying the minimum row counts
// structurally while leaving every value for the user to fill in.
func DefaultDraft() Draft {
	return Draft{
		PhoneNumbers: []PhoneDraft{
			{Type: string(PhoneMobile), IsMain: true},
		},
		Addresses: []AddressDraft{
			{AddressType: string(AddressHome), StreetNumber: DefaultStreetNumber},
		},
	}
}
