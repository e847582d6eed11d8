package users

// User is a registered account. Records are created only by a
// successful registration, never mutated and never deleted; they live
// for the lifetime of the process.
type User struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dob"`
	// CreditCardNumber is optional at registration. A nil pointer means
	// the card was never supplied, which is distinct from an empty
	// string.
	CreditCardNumber *string `json:"credit_card_number,omitempty"`
}

// HasCard reports whether the user has a non-empty stored card number.
func (u User) HasCard() bool {
	return u.CreditCardNumber != nil && *u.CreditCardNumber != ""
}

// CardFilter selects users by card presence when listing.
type CardFilter int

const (
	// CardAny returns every user.
	CardAny CardFilter = iota
	// CardPresent returns users with a non-empty stored card number.
	CardPresent
	// CardAbsent returns users whose card number is absent or empty.
	CardAbsent
)

// CardFilterFromQuery maps the CreditCard query parameter to a filter.
// Anything other than "Yes" or "No" leaves the listing unfiltered.
func CardFilterFromQuery(value string) CardFilter {
	switch value {
	case "Yes":
		return CardPresent
	case "No":
		return CardAbsent
	default:
		return CardAny
	}
}

// Matches reports whether the user satisfies the filter.
func (f CardFilter) Matches(u User) bool {
	switch f {
	case CardPresent:
		return u.HasCard()
	case CardAbsent:
		return !u.HasCard()
	default:
		return true
	}
}
