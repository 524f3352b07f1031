package model

// Quote is a single quote extracted from a listing page.
type Quote struct {
	// Text is the quote body, whitespace-trimmed.
	Text string `json:"text"`

	// Author is the author name shown next to the quote.
	Author string `json:"author"`

	// Tags are the quote's tag labels in page order. Nil when the
	// quote carries no tags.
	Tags []string `json:"tags,omitempty"`
}

// Author holds the biographical fields of one author-profile page.
// Fields degrade individually: a profile missing its birth location
// still yields the other three fields.
type Author struct {
	// Name is the author's display name.
	Name string `json:"name"`

	// BirthDate is the birth date as shown on the page, not parsed.
	BirthDate string `json:"birth_date"`

	// BirthLocation is the birth place as shown on the page.
	BirthLocation string `json:"birth_location"`

	// Description is the biography text, whitespace-trimmed.
	Description string `json:"description"`
}

// IsEmpty reports whether every field is empty, which marks a profile
// whose fetch failed outright.
func (a Author) IsEmpty() bool {
	return a == Author{}
}

// AuthorRecord pairs a resolved author with the profile URL it was
// fetched from. Records appear in the report in first-reference order.
type AuthorRecord struct {
	// URL is the absolute author-profile URL.
	URL string `json:"url"`

	// Author holds the extracted fields; all-empty when the fetch
	// failed.
	Author Author `json:"author"`
}
