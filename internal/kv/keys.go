package kv

// KeyPrefix namespaces every key written by the store.
const KeyPrefix = "sgpro_"

// Logical keys of the persisted collections.
const (
	KeyProducts       = KeyPrefix + "products"
	KeySales          = KeyPrefix + "sales"
	KeyExpenses       = KeyPrefix + "expenses"
	KeyUsers          = KeyPrefix + "users"
	KeyLogs           = KeyPrefix + "logs"
	KeyCurrentSession = KeyPrefix + "currentUser"
	KeySettings       = KeyPrefix + "settings"
)

// Keys lists every logical key.
var Keys = []string{
	KeyProducts,
	KeySales,
	KeyExpenses,
	KeyUsers,
	KeyLogs,
	KeyCurrentSession,
	KeySettings,
}
