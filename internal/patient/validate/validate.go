// Package validate turns a raw patient draft into a normalized record or a
// complete set of field-scoped errors. It is the judgment core of the
// service: pure, synchronous, and free of side effects. Callers own all
// mutation and transaction discipline around it.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"patient-intake/internal/patient"
	"patient-intake/pkg/apperrors"
)

// FieldError describes one violation, keyed by the structural path of the
// offending field ("phoneNumbers[2].number") or collection root
// ("addresses").
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Errors is the complete violation set for one draft. Validation never
// short-circuits: the caller receives every failing field in one pass so a
// form can annotate all invalid inputs simultaneously.
type Errors []FieldError

// Paths returns the set of offending field paths, in report order.
func (e Errors) Paths() []string {
	paths := make([]string, len(e))
	for i, fe := range e {
		paths[i] = fe.Path
	}
	return paths
}

func (e *Errors) add(path, message string) {
	*e = append(*e, FieldError{Path: path, Message: message})
}

// Draft validates and normalizes a raw draft. On success it returns the
// normalized record and an empty error set; on failure the record is the
// zero value and the error set holds every violation.
func Draft(d patient.Draft) (patient.Record, Errors) {
	var errs Errors
	var rec patient.Record

	rec.ID = strings.TrimSpace(d.ID)
	if !patient.ValidID(rec.ID) {
		errs.add("id", "identifier must be 9 digits with a valid check digit")
	}

	rec.FirstName = strings.TrimSpace(d.FirstName)
	if rec.FirstName == "" {
		errs.add("firstName", "first name is required")
	}

	rec.LastName = strings.TrimSpace(d.LastName)
	if rec.LastName == "" {
		errs.add("lastName", "last name is required")
	}

	hmo, err := patient.ParseHMO(strings.TrimSpace(d.HMO))
	if err != nil {
		errs.add("hmo", messageOf(err))
	}
	rec.HMO = hmo

	rec.PhoneNumbers = validatePhones(d.PhoneNumbers, &errs)
	rec.Addresses = validateAddresses(d.Addresses, &errs)

	if len(errs) > 0 {
		return patient.Record{}, errs
	}
	return rec, nil
}

func validatePhones(drafts []patient.PhoneDraft, errs *Errors) []patient.PhoneEntry {
	if len(drafts) == 0 {
		errs.add("phoneNumbers", "at least one phone number is required")
		return nil
	}

	entries := make([]patient.PhoneEntry, len(drafts))
	for i, pd := range drafts {
		phoneType, err := patient.ParsePhoneType(strings.TrimSpace(pd.Type))
		if err != nil {
			errs.add(fmt.Sprintf("phoneNumbers[%d].type", i), messageOf(err))
		}

		number := strings.TrimSpace(pd.Number)
		if !patient.ValidPhone(number) {
			errs.add(fmt.Sprintf("phoneNumbers[%d].number", i), "not an accepted domestic phone number")
		}

		entries[i] = patient.PhoneEntry{Type: phoneType, Number: number, IsMain: pd.IsMain}
	}

	// Collection-level rule, evaluated independently of per-entry checks:
	// exactly one entry is the main phone. With zero mains the error sits on
	// the collection root; with several it is reported against each entry
	// still marked main, so the user unchecks extras instead of the form
	// silently picking a winner.
	var mains []int
	for i, entry := range entries {
		if entry.IsMain {
			mains = append(mains, i)
		}
	}
	switch {
	case len(mains) == 0:
		errs.add("phoneNumbers", "one phone number must be marked as main")
	case len(mains) > 1:
		for _, i := range mains {
			errs.add(fmt.Sprintf("phoneNumbers[%d].isMain", i), "only one phone number may be marked as main")
		}
	}

	return entries
}

func validateAddresses(drafts []patient.AddressDraft, errs *Errors) []patient.AddressEntry {
	if len(drafts) == 0 {
		errs.add("addresses", "at least one address is required")
		return nil
	}

	entries := make([]patient.AddressEntry, len(drafts))
	for i, ad := range drafts {
		entry := patient.AddressEntry{
			CityCode:   strings.TrimSpace(ad.CityCode),
			CityName:   strings.TrimSpace(ad.CityName),
			StreetCode: strings.TrimSpace(ad.StreetCode),
			StreetName: strings.TrimSpace(ad.StreetName),
			Comments:   strings.TrimSpace(ad.Comments),
		}

		requireField(errs, entry.CityCode, fmt.Sprintf("addresses[%d].cityCode", i), "city is required")
		requireField(errs, entry.CityName, fmt.Sprintf("addresses[%d].cityName", i), "city name is required")
		requireField(errs, entry.StreetCode, fmt.Sprintf("addresses[%d].streetCode", i), "street is required")
		requireField(errs, entry.StreetName, fmt.Sprintf("addresses[%d].streetName", i), "street name is required")

		number, err := strconv.Atoi(strings.TrimSpace(ad.StreetNumber))
		if err != nil || number <= 0 {
			errs.add(fmt.Sprintf("addresses[%d].streetNumber", i), "street number must be a positive number")
		} else {
			entry.StreetNumber = number
		}

		addressType, err := patient.ParseAddressType(strings.TrimSpace(ad.AddressType))
		if err != nil {
			errs.add(fmt.Sprintf("addresses[%d].addressType", i), messageOf(err))
		}
		entry.AddressType = addressType

		if len([]rune(entry.Comments)) > patient.MaxCommentsLength {
			errs.add(fmt.Sprintf("addresses[%d].comments", i), fmt.Sprintf("comments must be at most %d characters", patient.MaxCommentsLength))
		}

		entries[i] = entry
	}

	return entries
}

func requireField(errs *Errors, value, path, message string) {
	if value == "" {
		errs.add(path, message)
	}
}

func messageOf(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
