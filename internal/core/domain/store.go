package domain

// Store identifiers are stable keys; external consumers key off them directly.
const (
	StoreCapao    = "capao"
	StoreGuapiara = "guapiara"
	StoreRibeirao = "ribeirao"
	// StoreAdmin is the administrative cash box, not a physical store.
	StoreAdmin = "admin"
)

var storeNames = map[string]string{
	StoreCapao:    "Top Capão Bonito",
	StoreGuapiara: "Top Guapiara",
	StoreRibeirao: "Top Ribeirão Branco",
	StoreAdmin:    "Caixa Administrativo",
}

// storeOrder fixes the presentation order of known stores in reports.
var storeOrder = []string{StoreCapao, StoreGuapiara, StoreRibeirao, StoreAdmin}

// StoreName returns the display name for a store id. Unknown ids are
// returned as-is so ad hoc buckets still render.
func StoreName(storeID string) string {
	if name, ok := storeNames[storeID]; ok {
		return name
	}
	return storeID
}

// KnownStoreIDs returns the registered store ids in presentation order.
func KnownStoreIDs() []string {
	ids := make([]string, len(storeOrder))
	copy(ids, storeOrder)
	return ids
}

// IsKnownStore reports whether storeID is in the registry.
func IsKnownStore(storeID string) bool {
	_, ok := storeNames[storeID]
	return ok
}

// IsAdminStore reports whether storeID is the administrative cash box.
func IsAdminStore(storeID string) bool {
	return storeID == StoreAdmin
}

// OperatorNameRequired reports whether a closing for this store must carry
// the operator's name.
func OperatorNameRequired(storeID string) bool {
	return storeID == StoreCapao || storeID == StoreAdmin
}
