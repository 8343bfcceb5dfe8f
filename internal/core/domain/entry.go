package domain

import "github.com/shopspring/decimal"

// EntryKind is a priced unit of service recorded by quantity on a closing.
// The set is closed: keys outside it fail validation instead of silently
// contributing zero.
type EntryKind string

const (
	EntryCarro              EntryKind = "carro"
	EntryCaminhonete        EntryKind = "caminhonete"
	EntryCaminhao           EntryKind = "caminhao"
	EntryMoto               EntryKind = "moto"
	EntryCautelar           EntryKind = "cautelar"
	EntryRevistoriaDetran   EntryKind = "revistoriaDetran"
	EntryPesquisaProcedencia EntryKind = "pesquisaProcedencia"
)

var entryPrices = map[EntryKind]decimal.Decimal{
	EntryCarro:               decimal.NewFromInt(120),
	EntryCaminhonete:         decimal.NewFromInt(140),
	EntryCaminhao:            decimal.NewFromInt(180),
	EntryMoto:                decimal.NewFromInt(100),
	EntryCautelar:            decimal.NewFromInt(220),
	EntryRevistoriaDetran:    decimal.NewFromInt(200),
	EntryPesquisaProcedencia: decimal.NewFromInt(60),
}

// entryKindOrder fixes the presentation order of entry kinds.
var entryKindOrder = []EntryKind{
	EntryCarro, EntryCaminhonete, EntryCaminhao, EntryMoto,
	EntryCautelar, EntryRevistoriaDetran, EntryPesquisaProcedencia,
}

// ParseEntryKind validates a raw key against the closed enumeration.
func ParseEntryKind(raw string) (EntryKind, bool) {
	kind := EntryKind(raw)
	_, ok := entryPrices[kind]
	return kind, ok
}

// Price returns the fixed unit price of the entry kind, or zero if unknown.
func (k EntryKind) Price() decimal.Decimal {
	return entryPrices[k]
}

// IsValid reports whether the kind belongs to the closed enumeration.
func (k EntryKind) IsValid() bool {
	_, ok := entryPrices[k]
	return ok
}

// AllEntryKinds returns every valid entry kind in presentation order.
func AllEntryKinds() []EntryKind {
	kinds := make([]EntryKind, len(entryKindOrder))
	copy(kinds, entryKindOrder)
	return kinds
}
