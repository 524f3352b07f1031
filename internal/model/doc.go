// Package model defines the data types shared across quotecrawl:
// quotes, authors, and the crawl report assembled from them.
//
// Types in this package are plain values with no behavior beyond
// convenience accessors. They carry JSON tags so reports can be
// serialized for archival.
package model
