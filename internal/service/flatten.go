package service

import (
	"strings"

	"countries-etl/internal/domain"
	"countries-etl/internal/restcountries"
)

// joinDelimiter separates the elements of every flattened multi-value column.
const joinDelimiter = ", "

// Flatten maps one API country document onto a flat table row.
//
// Multi-valued fields join in document order with joinDelimiter. Absent
// fields flatten to the zero value (empty string, 0, false) so a sparse
// document still yields a loadable row.
func Flatten(c restcountries.Country) domain.CountryRow {
	return domain.CountryRow{
		CountryName:     c.Name.Common,
		OfficialName:    c.Name.Official,
		NativeNames:     joinNativeNames(c.Name.NativeName),
		CurrencyCodes:   strings.Join(c.Currencies.Keys(), joinDelimiter),
		CurrencyNames:   joinCurrencyField(c.Currencies, func(cur restcountries.Currency) string { return cur.Name }),
		CurrencySymbols: joinCurrencyField(c.Currencies, func(cur restcountries.Currency) string { return cur.Symbol }),
		IDDCodes:        joinDialCodes(c.IDD),
		Capitals:        strings.Join(c.Capital, joinDelimiter),
		Region:          c.Region,
		Subregion:       c.Subregion,
		Languages:       strings.Join(c.Languages.Values(), joinDelimiter),
		Area:            c.Area,
		Population:      c.Population,
		Continents:      strings.Join(c.Continents, joinDelimiter),
		Independent:     c.Independent,
		UNMember:        c.UNMember,
		StartOfWeek:     c.StartOfWeek,
	}
}

// joinNativeNames joins the common form of each native name in document order.
func joinNativeNames(names restcountries.OrderedMap[restcountries.NativeName]) string {
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, len(names))
	for i, e := range names {
		parts[i] = e.Value.Common
	}
	return strings.Join(parts, joinDelimiter)
}

func joinCurrencyField(currencies restcountries.OrderedMap[restcountries.Currency], field func(restcountries.Currency) string) string {
	if len(currencies) == 0 {
		return ""
	}
	parts := make([]string, len(currencies))
	for i, e := range currencies {
		parts[i] = field(e.Value)
	}
	return strings.Join(parts, joinDelimiter)
}

// joinDialCodes composes full dial codes as root+suffix for each suffix.
// A document with no suffixes flattens to "" even when a root is present,
// since a bare root is not a dialable code.
func joinDialCodes(idd restcountries.IDD) string {
	if len(idd.Suffixes) == 0 {
		return ""
	}
	codes := make([]string, len(idd.Suffixes))
	for i, suffix := range idd.Suffixes {
		codes[i] = idd.Root + suffix
	}
	return strings.Join(codes, joinDelimiter)
}
