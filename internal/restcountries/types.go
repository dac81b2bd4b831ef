package restcountries

// Country is one country document as served by the REST Countries v3.1 API,
// decoded into typed fields. Every field is optional on the wire; absent
// fields stay at their zero value.
//
// Currencies, Languages, and Name.NativeName are JSON objects keyed by code.
// They decode through OrderedMap so downstream joins see document order.
type Country struct {
	Name        Name                  `json:"name"`
	Currencies  OrderedMap[Currency]  `json:"currencies,omitempty"`
	IDD         IDD                   `json:"idd"`
	Capital     []string              `json:"capital,omitempty"`
	Region      string                `json:"region,omitempty"`
	Subregion   string                `json:"subregion,omitempty"`
	Languages   OrderedMap[string]    `json:"languages,omitempty"`
	Area        float64               `json:"area,omitempty"`
	Population  int64                 `json:"population,omitempty"`
	Continents  []string              `json:"continents,omitempty"`
	Independent bool                  `json:"independent,omitempty"`
	UNMember    bool                  `json:"unMember,omitempty"`
	StartOfWeek string                `json:"startOfWeek,omitempty"`
}

// Name holds a country's names.
type Name struct {
	Common     string                 `json:"common,omitempty"`
	Official   string                 `json:"official,omitempty"`
	NativeName OrderedMap[NativeName] `json:"nativeName,omitempty"`
}

// NativeName is one native-language rendering of a country's name.
type NativeName struct {
	Official string `json:"official,omitempty"`
	Common   string `json:"common,omitempty"`
}

// Currency is one entry of the currencies object, keyed by currency code.
type Currency struct {
	Name   string `json:"name,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// IDD holds international direct dialing information. Full dial codes are the
// root concatenated with each suffix.
type IDD struct {
	Root     string   `json:"root,omitempty"`
	Suffixes []string `json:"suffixes,omitempty"`
}

// profileDoc is the subset of Country returned by the first API call.
type profileDoc struct {
	Name       Name                 `json:"name"`
	Currencies OrderedMap[Currency] `json:"currencies"`
	IDD        IDD                  `json:"idd"`
	Capital    []string             `json:"capital"`
	Region     string               `json:"region"`
	Subregion  string               `json:"subregion"`
}

// factsDoc is the subset of Country returned by the second API call.
type factsDoc struct {
	Languages   OrderedMap[string] `json:"languages"`
	Area        float64            `json:"area"`
	Population  int64              `json:"population"`
	Continents  []string           `json:"continents"`
	Independent bool               `json:"independent"`
	UNMember    bool               `json:"unMember"`
	StartOfWeek string             `json:"startOfWeek"`
}

// mergeDocs zips the two partial responses index-wise into full Country
// documents. The API returns both lists in the same order; if the lengths
// ever disagree the result is truncated to the shorter list.
func mergeDocs(profiles []profileDoc, facts []factsDoc) []Country {
	n := min(len(profiles), len(facts))
	if n == 0 {
		return nil
	}

	merged := make([]Country, n)
	for i := range n {
		merged[i] = Country{
			Name:        profiles[i].Name,
			Currencies:  profiles[i].Currencies,
			IDD:         profiles[i].IDD,
			Capital:     profiles[i].Capital,
			Region:      profiles[i].Region,
			Subregion:   profiles[i].Subregion,
			Languages:   facts[i].Languages,
			Area:        facts[i].Area,
			Population:  facts[i].Population,
			Continents:  facts[i].Continents,
			Independent: facts[i].Independent,
			UNMember:    facts[i].UNMember,
			StartOfWeek: facts[i].StartOfWeek,
		}
	}
	return merged
}
