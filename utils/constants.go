package utils

import "time"

// DraftCachePrefix is the prefix used for Redis draft session keys.
const DraftCachePrefix = "draft:"

// CatalogCachePrefix is the prefix used for cached catalog entries.
const CatalogCachePrefix = "catalog:"

// CatalogCacheTTL is the time-to-live for cached catalog entries.
const CatalogCacheTTL = 10 * time.Minute
