package common

// DefaultRemoteRoot is the document tree root (or key prefix) under which the
// remote mirror keeps journal entries.
const DefaultRemoteRoot = "journal_entries"

// TableName is the local table holding journal entries.
const TableName = "journal_entries"
