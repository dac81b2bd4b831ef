package domain

// CountryRow is one flattened row of the countries table. Multi-valued
// attributes (currencies, capitals, languages, continents, native names,
// calling codes) arrive already joined into delimited strings; missing source
// fields are represented by the zero value, never by NULL.
type CountryRow struct {
	CountryName     string
	OfficialName    string
	NativeNames     string
	CurrencyCodes   string
	CurrencyNames   string
	CurrencySymbols string
	IDDCodes        string
	Capitals        string
	Region          string
	Subregion       string
	Languages       string
	Area            float64
	Population      int64
	Continents      string
	Independent     bool
	UNMember        bool
	StartOfWeek     string
}

// NumColumns is the number of non-id columns in the countries table, and the
// number of positional parameters in the insert statement.
const NumColumns = 17

// Args returns the row's insert parameters in table column order.
func (r CountryRow) Args() []any {
	return []any{
		r.CountryName,
		r.OfficialName,
		r.NativeNames,
		r.CurrencyCodes,
		r.CurrencyNames,
		r.CurrencySymbols,
		r.IDDCodes,
		r.Capitals,
		r.Region,
		r.Subregion,
		r.Languages,
		r.Area,
		r.Population,
		r.Continents,
		r.Independent,
		r.UNMember,
		r.StartOfWeek,
	}
}
